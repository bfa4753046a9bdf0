package engine

import (
	"strconv"
	"strings"

	"movingday/internal/assessment"
	"movingday/internal/catalog"
)

// Evaluate reports whether the user's answers satisfy the entry's
// conditions. Pure and total: malformed accepted values and unknown fields
// are normal non-matching cases, never errors.
//
// Semantics: AND across fields, OR within a field's accepted values. An
// empty condition set applies to everyone.
func Evaluate(conds catalog.ConditionSet, data *assessment.Response) bool {
	for field, accepted := range conds {
		if !fieldMatches(field, accepted, data) {
			return false
		}
	}
	return true
}

func fieldMatches(field string, accepted []catalog.AcceptedValue, data *assessment.Response) bool {
	v, ok := data.Lookup(field)
	if !ok {
		for _, av := range accepted {
			if av.MatchesAbsent() {
				return true
			}
		}
		return false
	}

	if v.Kind == assessment.KindList {
		return listMatches(v.List, accepted)
	}

	s := v.Stringify()
	for _, av := range accepted {
		if cmp, isCmp := av.Comparator(); isCmp {
			n, err := strconv.Atoi(s)
			if err == nil && cmp.Matches(n) {
				return true
			}
			continue
		}
		if av.EqualsFold(s) {
			return true
		}
	}
	return false
}

// listMatches handles multi-select answers: any selected element matching
// any literal accepted value passes. Comparators do not apply to lists.
func listMatches(selected []string, accepted []catalog.AcceptedValue) bool {
	for _, av := range accepted {
		if _, isCmp := av.Comparator(); isCmp {
			continue
		}
		for _, el := range selected {
			if strings.EqualFold(strings.TrimSpace(string(av)), strings.TrimSpace(el)) {
				return true
			}
		}
	}
	return false
}
