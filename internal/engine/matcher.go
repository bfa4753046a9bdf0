package engine

import (
	"sort"

	"movingday/internal/assessment"
	"movingday/internal/catalog"
)

// Match returns the catalog entries whose conditions the user's answers
// satisfy, sorted by entry ID so the result is deterministic. When
// excludeChildren is set, entries gated on a mini-assessment are skipped
// entirely; initial generation defers them until their parent completes.
func Match(entries []catalog.Entry, data *assessment.Response, excludeChildren bool) []catalog.Entry {
	var matched []catalog.Entry
	for _, e := range entries {
		if excludeChildren && e.IsChild() {
			continue
		}
		if Evaluate(e.ConditionSet(), data) {
			matched = append(matched, e)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched
}

// Children filters the catalog to the sub-tasks of one mini-assessment.
func Children(entries []catalog.Entry, parentID string) []catalog.Entry {
	var children []catalog.Entry
	for _, e := range entries {
		if e.ParentID == parentID {
			children = append(children, e)
		}
	}
	return children
}
