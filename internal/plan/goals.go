package plan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/vocadays/internal/store"
)

// Goal is a user chosen pacing of a level. There is at most one per level.
type Goal struct {
	Level        string    `yaml:"level"`
	DurationDays int       `yaml:"duration_days"`
	ItemsPerDay  int       `yaml:"items_per_day"`
	StartedAt    time.Time `yaml:"started_at"`
}

// MemorizedSource returns the memorized ids of a level. *progress.Tracker implements it.
type MemorizedSource interface {
	MemorizedIDs(level string) (map[string]struct{}, error)
}

// GoalObserver is notified after a goal change has been stored locally.
type GoalObserver interface {
	GoalSet(goal Goal, plan Plan)
	GoalCleared(level string)
}

// Goals keeps the active goal and its generated plan of each level.
type Goals struct {
	generator *Generator
	memorized MemorizedSource
	goals     *store.Collection[Goal]
	plans     *store.Collection[Plan]
	observer  GoalObserver
	now       func() time.Time
}

// NewGoals creates the goal service. observer may be nil.
func NewGoals(generator *Generator, memorized MemorizedSource, s store.Store, observer GoalObserver) *Goals {
	return &Goals{
		generator: generator,
		memorized: memorized,
		goals:     store.NewCollection[Goal](s, store.KeyGoals),
		plans:     store.NewCollection[Plan](s, store.KeyPlans),
		observer:  observer,
		now:       time.Now,
	}
}

// SetGoal replaces the goal of a level and regenerates its plan from the items not yet
// memorized. An itemsPerDay of 0 spreads the remaining items evenly over durationDays.
// ErrEmptyPool is returned when nothing remains.
func (g *Goals) SetGoal(ctx context.Context, levelID string, durationDays, itemsPerDay int) (Goal, Plan, error) {
	if durationDays <= 0 {
		return Goal{}, Plan{}, fmt.Errorf("%w: %d", ErrInvalidDuration, durationDays)
	}
	if itemsPerDay < 0 {
		return Goal{}, Plan{}, fmt.Errorf("%w: %d", ErrInvalidItemsPerDay, itemsPerDay)
	}

	memorized, err := g.memorized.MemorizedIDs(levelID)
	if err != nil {
		return Goal{}, Plan{}, fmt.Errorf("MemorizedIDs(%s) > %w", levelID, err)
	}
	remaining, err := g.generator.Remaining(levelID, memorized)
	if err != nil {
		return Goal{}, Plan{}, err
	}
	if len(remaining) == 0 {
		return Goal{}, Plan{}, ErrEmptyPool
	}
	if itemsPerDay == 0 {
		itemsPerDay = ItemsPerDayFor(len(remaining), durationDays)
	}

	plan, err := g.generator.CreatePlan(levelID, durationDays, memorized, itemsPerDay)
	if err != nil {
		return Goal{}, Plan{}, fmt.Errorf("CreatePlan(%s) > %w", levelID, err)
	}
	goal := Goal{
		Level:        levelID,
		DurationDays: durationDays,
		ItemsPerDay:  itemsPerDay,
		StartedAt:    g.now(),
	}

	goals := withoutLevel(g.goals.Load(ctx), func(goal Goal) string { return goal.Level }, levelID)
	if err := g.goals.Save(ctx, append(goals, goal)); err != nil {
		return Goal{}, Plan{}, err
	}
	plans := withoutLevel(g.plans.Load(ctx), func(plan Plan) string { return plan.Level }, levelID)
	if err := g.plans.Save(ctx, append(plans, plan)); err != nil {
		return Goal{}, Plan{}, err
	}
	slog.Default().Debug("set a study goal",
		"level", levelID,
		"duration_days", durationDays,
		"items_per_day", itemsPerDay,
		"uncovered", Uncovered(plan, len(remaining)),
	)

	if g.observer != nil {
		g.observer.GoalSet(goal, plan)
	}
	return goal, plan, nil
}

// Goal returns the active goal of a level.
func (g *Goals) Goal(ctx context.Context, levelID string) (Goal, bool) {
	for _, goal := range g.goals.Load(ctx) {
		if goal.Level == levelID {
			return goal, true
		}
	}
	return Goal{}, false
}

// Plan returns the plan of the active goal of a level.
func (g *Goals) Plan(ctx context.Context, levelID string) (Plan, bool) {
	for _, plan := range g.plans.Load(ctx) {
		if plan.Level == levelID {
			return plan, true
		}
	}
	return Plan{}, false
}

// Goals returns every active goal.
func (g *Goals) Goals(ctx context.Context) []Goal {
	return g.goals.Load(ctx)
}

// ClearGoal removes the goal and plan of a level.
func (g *Goals) ClearGoal(ctx context.Context, levelID string) error {
	goals := withoutLevel(g.goals.Load(ctx), func(goal Goal) string { return goal.Level }, levelID)
	if err := g.goals.Save(ctx, goals); err != nil {
		return err
	}
	plans := withoutLevel(g.plans.Load(ctx), func(plan Plan) string { return plan.Level }, levelID)
	if err := g.plans.Save(ctx, plans); err != nil {
		return err
	}
	if g.observer != nil {
		g.observer.GoalCleared(levelID)
	}
	return nil
}

func withoutLevel[T any](values []T, levelOf func(T) string, levelID string) []T {
	result := make([]T, 0, len(values))
	for _, value := range values {
		if levelOf(value) != levelID {
			result = append(result, value)
		}
	}
	return result
}
