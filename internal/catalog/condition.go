package catalog

import (
	"strconv"
	"strings"
)

// AcceptedValue is one entry in a condition's value list: either a literal
// (matched case-insensitively against the stringified answer) or a numeric
// comparator such as ">=3". Malformed comparators are never an error, they
// simply match nothing.
type AcceptedValue string

// ConditionSet maps a field name to the values that satisfy it. A field
// passes if the answer matches ANY accepted value (OR); the set passes only
// if EVERY field passes (AND). An empty set always passes.
type ConditionSet map[string][]AcceptedValue

// Comparator is a parsed numeric accepted value.
type Comparator struct {
	Op        string
	Threshold int
}

var comparatorOps = []string{">=", "<=", ">", "<"}

// Comparator parses the accepted value as a numeric comparison. The second
// return is false when the value is a plain literal or the operand does not
// parse as an integer.
func (v AcceptedValue) Comparator() (Comparator, bool) {
	s := strings.TrimSpace(string(v))
	for _, op := range comparatorOps {
		if strings.HasPrefix(s, op) {
			n, err := strconv.Atoi(strings.TrimSpace(s[len(op):]))
			if err != nil {
				return Comparator{}, false
			}
			return Comparator{Op: op, Threshold: n}, true
		}
	}
	return Comparator{}, false
}

// Matches reports whether n satisfies the comparison.
func (c Comparator) Matches(n int) bool {
	switch c.Op {
	case ">=":
		return n >= c.Threshold
	case "<=":
		return n <= c.Threshold
	case ">":
		return n > c.Threshold
	case "<":
		return n < c.Threshold
	}
	return false
}

// EqualsFold reports a case-insensitive literal match against s.
func (v AcceptedValue) EqualsFold(s string) bool {
	return strings.EqualFold(strings.TrimSpace(string(v)), strings.TrimSpace(s))
}

// MatchesAbsent reports whether this accepted value matches a field the
// user never answered: the literals "nil" and "" do.
func (v AcceptedValue) MatchesAbsent() bool {
	s := strings.TrimSpace(string(v))
	return s == "" || strings.EqualFold(s, "nil")
}
