package engine

import (
	"testing"

	"gorm.io/datatypes"

	"movingday/internal/assessment"
	"movingday/internal/catalog"
)

func entry(id, parentID string, conds catalog.ConditionSet) catalog.Entry {
	return catalog.Entry{
		ID:                id,
		Title:             "Task " + id,
		UrgencyPercentage: 50,
		ParentID:          parentID,
		Conditions:        datatypes.NewJSONType(conds),
	}
}

func TestMatch_ExcludesChildren(t *testing.T) {
	entries := []catalog.Entry{
		entry("a", "", nil),
		entry("b", "finances-survey", nil),
	}
	data := resp(nil)

	matched := Match(entries, data, true)
	if len(matched) != 1 || matched[0].ID != "a" {
		t.Errorf("children must be excluded from initial generation, got %+v", matched)
	}

	matched = Match(entries, data, false)
	if len(matched) != 2 {
		t.Errorf("children included when not excluded, got %d", len(matched))
	}
}

func TestMatch_FiltersByConditions(t *testing.T) {
	entries := []catalog.Entry{
		entry("kids-school", "", catalog.ConditionSet{"hasKids": {"Yes"}}),
		entry("pet-vet", "", catalog.ConditionSet{"petType": {"Dog", "Cat"}}),
		entry("everyone", "", nil),
	}
	data := resp(map[string]assessment.Value{"hasKids": assessment.Bool(true)})

	matched := Match(entries, data, true)
	if len(matched) != 2 {
		t.Fatalf("expected 2 matches, got %+v", matched)
	}
	if matched[0].ID != "everyone" || matched[1].ID != "kids-school" {
		t.Errorf("output must be sorted by id, got %+v", matched)
	}
}

func TestChildren_ScopedToParent(t *testing.T) {
	entries := []catalog.Entry{
		entry("a", "", nil),
		entry("b", "finances-survey", nil),
		entry("c", "utilities-survey", nil),
		entry("d", "finances-survey", nil),
	}
	children := Children(entries, "finances-survey")
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	for _, c := range children {
		if c.ParentID != "finances-survey" {
			t.Errorf("wrong child %+v", c)
		}
	}
}
