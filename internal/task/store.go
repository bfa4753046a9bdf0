package task

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists generated tasks. UpsertBatch is all-or-nothing: a failed
// batch leaves no partial write visible, and callers retry by rewriting the
// whole batch.
type Store interface {
	UpsertBatch(ctx context.Context, tasks []GeneratedTask) error
	ListByUser(ctx context.Context, userID string) ([]GeneratedTask, error)
	UpdateStatus(ctx context.Context, userID, taskID string, status Status) error
	// CompleteByCatalogID marks the user's task generated from the given
	// catalog entry as completed. Used when a mini-assessment finishes to
	// close its originating task; missing rows are not an error.
	CompleteByCatalogID(ctx context.Context, userID, catalogID string) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) UpsertBatch(ctx context.Context, tasks []GeneratedTask) error {
	if len(tasks) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&tasks).Error
	})
	if err != nil {
		return fmt.Errorf("upsert task batch: %w", err)
	}
	return nil
}

func (s *GormStore) ListByUser(ctx context.Context, userID string) ([]GeneratedTask, error) {
	var tasks []GeneratedTask
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("due_date asc, id asc").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *GormStore) UpdateStatus(ctx context.Context, userID, taskID string, status Status) error {
	res := s.db.WithContext(ctx).
		Model(&GeneratedTask{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update task status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *GormStore) CompleteByCatalogID(ctx context.Context, userID, catalogID string) error {
	err := s.db.WithContext(ctx).
		Model(&GeneratedTask{}).
		Where("user_id = ? AND catalog_id = ?", userID, catalogID).
		Update("status", StatusCompleted).Error
	if err != nil {
		return fmt.Errorf("complete originating task: %w", err)
	}
	return nil
}
