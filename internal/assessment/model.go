package assessment

import (
	"time"

	"gorm.io/datatypes"
)

// Record is the core assessment a user completes once, together with the
// move date everything is scheduled against.
type Record struct {
	UserID    string                               `gorm:"primaryKey;size:64" json:"user_id"`
	Answers   datatypes.JSONType[map[string]Value] `json:"answers"`
	MoveDate  time.Time                            `json:"move_date"`
	CreatedAt time.Time                            `json:"createdAt"`
	UpdatedAt time.Time                            `json:"updatedAt"`
}

func (Record) TableName() string { return "assessment_records" }

// AnswerSet holds the answers of one completed mini-assessment. Seq is a
// per-user counter assigned at completion time; the combined view folds
// sets in Seq order so the latest completion wins on key collision.
// Re-completing the same mini-assessment merges answers and bumps Seq.
type AnswerSet struct {
	ID        uint                                 `gorm:"primaryKey" json:"id"`
	UserID    string                               `gorm:"size:64;not null;uniqueIndex:idx_answer_sets_user_parent" json:"user_id"`
	ParentID  string                               `gorm:"size:64;not null;uniqueIndex:idx_answer_sets_user_parent" json:"parent_id"`
	Answers   datatypes.JSONType[map[string]Value] `json:"answers"`
	Seq       int64                                `gorm:"not null;index" json:"seq"`
	CreatedAt time.Time                            `json:"createdAt"`
	UpdatedAt time.Time                            `json:"updatedAt"`
}

func (AnswerSet) TableName() string { return "mini_answer_sets" }
