package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoadSeed parses and validates a catalog seed file (a JSON array of
// entries). Authoring mistakes the engine cannot tolerate are rejected
// here; bound sanity (earliest vs latest) is intentionally not checked,
// the scheduler resolves pathological bounds latest-wins.
func LoadSeed(path string) ([]Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog seed: %w", err)
	}
	seen := make(map[string]struct{}, len(entries))
	for i := range entries {
		e := &entries[i]
		if e.ID == "" {
			return nil, fmt.Errorf("catalog seed: entry %d has no id", i)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("catalog seed: duplicate id %q", e.ID)
		}
		seen[e.ID] = struct{}{}
		if e.UrgencyPercentage < 0 || e.UrgencyPercentage > 100 {
			return nil, fmt.Errorf("catalog seed: entry %q urgency %d out of range 0-100", e.ID, e.UrgencyPercentage)
		}
		if e.EarliestDaysBeforeMove != nil && *e.EarliestDaysBeforeMove < 0 {
			return nil, fmt.Errorf("catalog seed: entry %q has negative earliest bound", e.ID)
		}
		if e.LatestDaysBeforeMove != nil && *e.LatestDaysBeforeMove < 0 {
			return nil, fmt.Errorf("catalog seed: entry %q has negative latest bound", e.ID)
		}
		for field, accepted := range e.ConditionSet() {
			if len(accepted) == 0 {
				return nil, fmt.Errorf("catalog seed: entry %q condition %q has no accepted values", e.ID, field)
			}
		}
	}
	return entries, nil
}

// Seed upserts the entries into the catalog table, keyed by entry ID.
func Seed(db *gorm.DB, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&entries).Error
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}
