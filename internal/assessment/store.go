package assessment

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists the core assessment record and the per-user
// mini-assessment answer sets.
type Store interface {
	SaveResponse(ctx context.Context, rec *Record) error
	GetResponse(ctx context.Context, userID string) (*Record, error)
	// UpsertAnswerSet merges answers into the set keyed (userID, parentID),
	// creating it if absent, and marks it as the user's latest completion.
	UpsertAnswerSet(ctx context.Context, userID, parentID string, answers map[string]Value) (*AnswerSet, error)
	// ListAnswerSets returns all of a user's answer sets in completion order.
	ListAnswerSets(ctx context.Context, userID string) ([]AnswerSet, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) SaveResponse(ctx context.Context, rec *Record) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(rec).Error
	if err != nil {
		return fmt.Errorf("save assessment record: %w", err)
	}
	return nil
}

func (s *GormStore) GetResponse(ctx context.Context, userID string) (*Record, error) {
	var rec Record
	if err := s.db.WithContext(ctx).First(&rec, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *GormStore) UpsertAnswerSet(ctx context.Context, userID, parentID string, answers map[string]Value) (*AnswerSet, error) {
	var out AnswerSet
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxSeq int64
		if err := tx.Model(&AnswerSet{}).
			Where("user_id = ?", userID).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&maxSeq).Error; err != nil {
			return err
		}

		var existing AnswerSet
		err := tx.Where("user_id = ? AND parent_id = ?", userID, parentID).First(&existing).Error
		switch {
		case err == nil:
			merged := existing.Answers.Data()
			if merged == nil {
				merged = make(map[string]Value, len(answers))
			}
			for k, v := range answers {
				merged[k] = v
			}
			existing.Answers = datatypes.NewJSONType(merged)
			existing.Seq = maxSeq + 1
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			out = existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			created := AnswerSet{
				UserID:   userID,
				ParentID: parentID,
				Answers:  datatypes.NewJSONType(answers),
				Seq:      maxSeq + 1,
			}
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
			out = created
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, fmt.Errorf("upsert answer set: %w", err)
	}
	return &out, nil
}

func (s *GormStore) ListAnswerSets(ctx context.Context, userID string) ([]AnswerSet, error) {
	var sets []AnswerSet
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("seq asc").
		Find(&sets).Error; err != nil {
		return nil, fmt.Errorf("list answer sets: %w", err)
	}
	return sets, nil
}
