package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"movingday/internal/assessment"
	"movingday/internal/catalog"
	"movingday/internal/task"
)

// Precondition violations, rejected before any store access.
var (
	ErrMissingUser   = errors.New("engine: user id is required")
	ErrMissingParent = errors.New("engine: mini-assessment parent id is required")
)

// Clock supplies "today". Injected so generation is deterministic under
// test; the engine never reads the system clock directly.
type Clock func() time.Time

// Generator orchestrates matching and scheduling against the injected
// stores. The pure pieces (Evaluate, Schedule, Match) carry no state and
// are safe to call concurrently; Generator additionally serializes
// generation per user, because a cascade is a read-then-write over the
// merged answer sets and two concurrent runs for one user could lose an
// update.
type Generator struct {
	catalog catalog.Source
	tasks   task.Store
	answers assessment.Store
	clock   Clock
	log     *zap.SugaredLogger

	mu    sync.Mutex
	users map[string]*sync.Mutex
}

func NewGenerator(src catalog.Source, tasks task.Store, answers assessment.Store, clock Clock, log *zap.SugaredLogger) *Generator {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Generator{
		catalog: src,
		tasks:   tasks,
		answers: answers,
		clock:   clock,
		log:     log,
		users:   make(map[string]*sync.Mutex),
	}
}

func (g *Generator) userLock(userID string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, ok := g.users[userID]
	if !ok {
		l = &sync.Mutex{}
		g.users[userID] = l
	}
	return l
}

// Generate builds the user's initial task set from the core assessment:
// match the catalog (sub-tasks excluded), schedule each applicable entry,
// and write the rows as one atomic batch. Re-running with the same inputs
// rewrites the same rows; it never duplicates.
func (g *Generator) Generate(ctx context.Context, userID string, data *assessment.Response, moveDate time.Time) ([]task.GeneratedTask, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	lock := g.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	entries, err := g.catalog.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	today := g.clock()
	applicable := Match(entries, data, true)
	tasks := g.buildTasks(userID, "", applicable, moveDate, today)

	if err := g.tasks.UpsertBatch(ctx, tasks); err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	g.log.Infow("generated tasks", "user", userID, "catalog_entries", len(entries), "tasks", len(tasks))
	return tasks, nil
}

// OnMiniAssessmentCompleted runs the cascade for one completed
// mini-assessment: persist (merge) its answers, close the originating
// task, rebuild the combined answer view, and generate the qualifying
// sub-tasks of that parent. Idempotent: repeating the event with the same
// merged answers rewrites the same child rows.
func (g *Generator) OnMiniAssessmentCompleted(ctx context.Context, userID, parentID string, answers map[string]assessment.Value, moveDate time.Time) ([]task.GeneratedTask, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	if parentID == "" {
		return nil, ErrMissingParent
	}
	lock := g.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := g.answers.UpsertAnswerSet(ctx, userID, parentID, answers); err != nil {
		return nil, fmt.Errorf("cascade: %w", err)
	}
	if err := g.tasks.CompleteByCatalogID(ctx, userID, parentID); err != nil {
		return nil, fmt.Errorf("cascade: %w", err)
	}

	combined, err := g.combinedView(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cascade: %w", err)
	}

	entries, err := g.catalog.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("cascade: %w", err)
	}

	today := g.clock()
	qualifying := Match(Children(entries, parentID), combined, false)
	tasks := g.buildTasks(userID, parentID, qualifying, moveDate, today)

	if err := g.tasks.UpsertBatch(ctx, tasks); err != nil {
		return nil, fmt.Errorf("cascade: %w", err)
	}
	g.log.Infow("cascade generated sub-tasks", "user", userID, "parent", parentID, "tasks", len(tasks))
	return tasks, nil
}

// combinedView is the core assessment plus every persisted answer set, in
// completion order. A user who somehow cascades before completing the core
// assessment gets an empty core, not an error.
func (g *Generator) combinedView(ctx context.Context, userID string) (*assessment.Response, error) {
	var core map[string]assessment.Value
	rec, err := g.answers.GetResponse(ctx, userID)
	switch {
	case err == nil:
		core = rec.Answers.Data()
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, err
	}
	sets, err := g.answers.ListAnswerSets(ctx, userID)
	if err != nil {
		return nil, err
	}
	return assessment.Combined(core, sets), nil
}

func (g *Generator) buildTasks(userID, parentID string, entries []catalog.Entry, moveDate, today time.Time) []task.GeneratedTask {
	tasks := make([]task.GeneratedTask, 0, len(entries))
	for _, e := range entries {
		due := Schedule(today, moveDate, e.UrgencyPercentage, e.EarliestDaysBeforeMove, e.LatestDaysBeforeMove)
		tasks = append(tasks, task.GeneratedTask{
			ID:          task.DeterministicID(userID, e.ID),
			UserID:      userID,
			CatalogID:   e.ID,
			Title:       e.Title,
			Description: e.Description,
			Category:    e.Category,
			Tips:        e.Tips,
			Rationale:   e.Rationale,
			DueDate:     due,
			Status:      task.StatusUpcoming,
			ParentID:    parentID,
			CreatedAt:   today,
		})
	}
	return tasks
}
