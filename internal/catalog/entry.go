package catalog

import (
	"time"

	"gorm.io/datatypes"
)

// Entry is one authored task definition in the shared catalog. Entries are
// read-only inputs to the engine; they are maintained by the catalog seed
// file and never mutated per user.
//
// An entry with a ParentID is a sub-task: it is skipped during initial
// generation and only considered when the mini-assessment named by ParentID
// completes.
type Entry struct {
	ID                     string                           `gorm:"primaryKey;size:64" json:"id"`
	Title                  string                           `gorm:"size:256;not null" json:"title"`
	Description            string                           `json:"description"`
	Category               string                           `gorm:"size:64;index" json:"category"`
	Tips                   string                           `json:"tips"`
	Rationale              string                           `json:"rationale"`
	UrgencyPercentage      int                              `gorm:"not null" json:"urgencyPercentage"`
	EarliestDaysBeforeMove *int                             `json:"earliestDaysBeforeMove,omitempty"`
	LatestDaysBeforeMove   *int                             `json:"latestDaysBeforeMove,omitempty"`
	Conditions             datatypes.JSONType[ConditionSet] `json:"conditions"`
	ParentID               string                           `gorm:"size:64;index" json:"parentId,omitempty"`
	CreatedAt              time.Time                        `json:"-"`
	UpdatedAt              time.Time                        `json:"-"`
}

func (Entry) TableName() string { return "catalog_entries" }

// ConditionSet unwraps the stored jsonb condition set.
func (e *Entry) ConditionSet() ConditionSet {
	return e.Conditions.Data()
}

// IsChild reports whether the entry is gated on a mini-assessment.
func (e *Entry) IsChild() bool {
	return e.ParentID != ""
}
