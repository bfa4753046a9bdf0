package task

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a generated task.
type Status string

const (
	StatusUpcoming   Status = "upcoming"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusSnoozed    Status = "snoozed"
	StatusSkipped    Status = "skipped"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusInProgress, StatusCompleted, StatusSnoozed, StatusSkipped:
		return true
	}
	return false
}

// GeneratedTask is one checklist row produced for a user from a qualifying
// catalog entry. The ID is derived deterministically from (user, entry), so
// re-running generation upserts the same row instead of duplicating it.
type GeneratedTask struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:64;index;not null" json:"user_id"`
	CatalogID   string    `gorm:"size:64;index;not null" json:"catalog_id"`
	Title       string    `gorm:"size:256;not null" json:"title"`
	Description string    `json:"description"`
	Category    string    `gorm:"size:64" json:"category"`
	Tips        string    `json:"tips"`
	Rationale   string    `json:"rationale"`
	DueDate     time.Time `json:"due_date"`
	Status      Status    `gorm:"type:varchar(16);not null;default:'upcoming'" json:"status"`
	ParentID    string    `gorm:"size:64;index" json:"parent_id,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (GeneratedTask) TableName() string { return "generated_tasks" }

// Namespace for task IDs. Fixed forever: changing it would orphan every
// previously generated row.
var idNamespace = uuid.MustParse("8f3c2b44-9d17-4a6e-b502-6c51dd24e9a1")

// DeterministicID derives the stable task ID for a (user, catalog entry)
// pair. Same inputs, same UUID, which is what makes generation idempotent.
func DeterministicID(userID, catalogID string) string {
	return uuid.NewSHA1(idNamespace, []byte(userID+":"+catalogID)).String()
}
