package study

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/vocadays/internal/plan"
)

// Overview summarizes a level.
type Overview struct {
	Level          string
	Name           string
	TotalDays      int
	CompletedDays  int
	CompletionRate int
	PoolSize       int
	Memorized      int
	Remaining      int
	Goal           *plan.Goal
	PlanDays       int
	PlanCovered    int
	PlanUncovered  int
}

// Overview returns the completion and plan coverage of a level.
func (s *Service) Overview(ctx context.Context, levelID string) (Overview, error) {
	level, err := s.level(levelID)
	if err != nil {
		return Overview{}, err
	}
	rate, err := s.tracker.CompletionRate(levelID)
	if err != nil {
		return Overview{}, fmt.Errorf("CompletionRate(%s) > %w", levelID, err)
	}
	memorized, err := s.tracker.MemorizedIDs(levelID)
	if err != nil {
		return Overview{}, fmt.Errorf("MemorizedIDs(%s) > %w", levelID, err)
	}
	remaining, err := s.generator.Remaining(levelID, memorized)
	if err != nil {
		return Overview{}, err
	}

	overview := Overview{
		Level:          levelID,
		Name:           level.DisplayName(),
		TotalDays:      level.TotalDays,
		CompletedDays:  s.tracker.CompletedDays(levelID),
		CompletionRate: rate,
		PoolSize:       len(level.Pool()),
		Memorized:      len(memorized),
		Remaining:      len(remaining),
	}
	if goal, ok := s.goals.Goal(ctx, levelID); ok {
		overview.Goal = &goal
		if p, ok := s.goals.Plan(ctx, levelID); ok {
			overview.PlanDays = len(p.Schedule)
			overview.PlanCovered = p.Covered()
			overview.PlanUncovered = plan.Uncovered(p, len(remaining))
		}
	}
	return overview, nil
}
