package assessment

import "strings"

// Response is an immutable view over a set of answers with case-insensitive
// field lookup. Catalog authors and questionnaire producers do not agree on
// key casing, so keys are folded to lower case once at construction.
type Response struct {
	values map[string]Value
}

func NewResponse(answers map[string]Value) *Response {
	r := &Response{values: make(map[string]Value, len(answers))}
	for k, v := range answers {
		r.values[strings.ToLower(k)] = v
	}
	return r
}

// Lookup returns the answer for field, matching the field name ignoring
// case. Absence is a normal, matchable state, not an error.
func (r *Response) Lookup(field string) (Value, bool) {
	v, ok := r.values[strings.ToLower(field)]
	return v, ok
}

func (r *Response) Len() int {
	return len(r.values)
}

// Combined builds the merged view a cascade evaluates conditions against:
// the core answers plus every completed mini-assessment answer set. Sets
// must be given in completion order; a later set wins on key collision.
func Combined(core map[string]Value, sets []AnswerSet) *Response {
	r := NewResponse(core)
	for _, s := range sets {
		for k, v := range s.Answers.Data() {
			r.values[strings.ToLower(k)] = v
		}
	}
	return r
}
