package task

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBSeq atomic.Int64

func setupTaskDB(t *testing.T) *GormStore {
	dsn := fmt.Sprintf("file:task_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	dbConn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := dbConn.AutoMigrate(&GeneratedTask{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewGormStore(dbConn)
}

func sampleTask(userID, catalogID string, due time.Time) GeneratedTask {
	return GeneratedTask{
		ID:        DeterministicID(userID, catalogID),
		UserID:    userID,
		CatalogID: catalogID,
		Title:     "Task " + catalogID,
		DueDate:   due,
		Status:    StatusUpcoming,
	}
}

func TestGormStore_UpsertBatch_ReplacesNotDuplicates(t *testing.T) {
	store := setupTaskDB(t)
	ctx := context.Background()
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	batch := []GeneratedTask{
		sampleTask("u1", "a", due),
		sampleTask("u1", "b", due),
	}
	if err := store.UpsertBatch(ctx, batch); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// Re-generate with a shifted due date: same ids, rewritten rows
	batch[0].DueDate = due.AddDate(0, 0, 5)
	if err := store.UpsertBatch(ctx, batch); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}

	tasks, err := store.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tasks))
	}
	// ListByUser orders by due date; the rewritten row now sorts last
	if !tasks[1].DueDate.Equal(due.AddDate(0, 0, 5)) {
		t.Errorf("expected rewritten due date, got %v", tasks[1].DueDate)
	}
}

func TestGormStore_UpsertBatch_Empty(t *testing.T) {
	store := setupTaskDB(t)
	if err := store.UpsertBatch(context.Background(), nil); err != nil {
		t.Errorf("empty batch should be a no-op, got %v", err)
	}
}

func TestGormStore_UpdateStatus(t *testing.T) {
	store := setupTaskDB(t)
	ctx := context.Background()
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tk := sampleTask("u1", "a", due)
	if err := store.UpsertBatch(ctx, []GeneratedTask{tk}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := store.UpdateStatus(ctx, "u1", tk.ID, StatusSnoozed); err != nil {
		t.Fatalf("update: %v", err)
	}
	tasks, _ := store.ListByUser(ctx, "u1")
	if tasks[0].Status != StatusSnoozed {
		t.Errorf("status not updated: %s", tasks[0].Status)
	}

	// Another user cannot touch the row
	if err := store.UpdateStatus(ctx, "u2", tk.ID, StatusSkipped); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected not found for foreign user, got %v", err)
	}
}

func TestGormStore_CompleteByCatalogID(t *testing.T) {
	store := setupTaskDB(t)
	ctx := context.Background()
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	if err := store.UpsertBatch(ctx, []GeneratedTask{
		sampleTask("u1", "finances-survey", due),
		sampleTask("u2", "finances-survey", due),
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := store.CompleteByCatalogID(ctx, "u1", "finances-survey"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	u1Tasks, _ := store.ListByUser(ctx, "u1")
	u2Tasks, _ := store.ListByUser(ctx, "u2")
	if u1Tasks[0].Status != StatusCompleted {
		t.Errorf("u1 task should be completed")
	}
	if u2Tasks[0].Status != StatusUpcoming {
		t.Errorf("u2 task must be untouched")
	}

	// No matching row is fine
	if err := store.CompleteByCatalogID(ctx, "u1", "never-generated"); err != nil {
		t.Errorf("missing originating task should not error: %v", err)
	}
}
