package assessment

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind discriminates the answer value union.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindNumber
	KindList
)

// Value is one answer collected from a user. Questionnaire producers hand
// the engine loosely-typed JSON, so a value is exactly one of: string,
// boolean, number, or list of strings (multi-select).
type Value struct {
	Kind Kind
	Str  string
	Bool bool
	Num  float64
	List []string
}

func String(s string) Value      { return Value{Kind: KindString, Str: s} }
func Bool(b bool) Value          { return Value{Kind: KindBool, Bool: b} }
func Number(n float64) Value     { return Value{Kind: KindNumber, Num: n} }
func List(items ...string) Value { return Value{Kind: KindList, List: items} }

// Stringify renders a scalar value in the form catalog conditions are
// written against: booleans become "Yes"/"No", numbers a decimal string
// truncated toward zero. Lists have no scalar form and return "".
func (v Value) Stringify() string {
	switch v.Kind {
	case KindBool:
		if v.Bool {
			return "Yes"
		}
		return "No"
	case KindNumber:
		return strconv.FormatInt(int64(v.Num), 10)
	case KindList:
		return ""
	default:
		return v.Str
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindBool:
		return json.Marshal(v.Bool)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindList:
		if v.List == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.List)
	default:
		return json.Marshal(v.Str)
	}
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = String("")
	case bool:
		*v = Bool(t)
	case float64:
		*v = Number(t)
	case string:
		*v = String(t)
	case []any:
		items := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return fmt.Errorf("multi-select answers must be strings, got %T", e)
			}
			items = append(items, s)
		}
		*v = List(items...)
	default:
		return fmt.Errorf("unsupported answer value type %T", t)
	}
	return nil
}
