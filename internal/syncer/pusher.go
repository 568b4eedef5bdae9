// Package syncer re-sends the whole local study state to the remote mirror.
package syncer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/vocadays/internal/mirror"
	"github.com/at-ishikawa/vocadays/internal/plan"
	"github.com/at-ishikawa/vocadays/internal/progress"
	"github.com/at-ishikawa/vocadays/internal/quiz"
	"github.com/at-ishikawa/vocadays/internal/store"
	"github.com/at-ishikawa/vocadays/internal/study"
	"github.com/at-ishikawa/vocadays/internal/wrongnote"
)

// PushResult tracks counts for each pushed collection.
type PushResult struct {
	Progress     int
	Goals        int
	WrongAnswers int
	QuizResults  int
}

// Pusher upserts every locally stored row. Upserts are idempotent, so a push repairs
// mirror writes that were lost while the remote was unreachable.
type Pusher struct {
	store  store.Store
	remote mirror.Remote
	tenant mirror.Tenant
}

func NewPusher(s store.Store, remote mirror.Remote, tenant mirror.Tenant) *Pusher {
	return &Pusher{
		store:  s,
		remote: remote,
		tenant: tenant,
	}
}

// Push sends all collections and stops at the first remote error.
func (p *Pusher) Push(ctx context.Context) (*PushResult, error) {
	var result PushResult

	records := store.NewCollection[progress.Record](p.store, store.KeyProgress).Load(ctx)
	if len(records) > 0 {
		rows := make([]mirror.ProgressRow, len(records))
		for i, record := range records {
			rows[i] = study.ProgressRow(record)
		}
		if err := p.remote.UpsertProgress(ctx, p.tenant, rows); err != nil {
			return nil, fmt.Errorf("remote.UpsertProgress() > %w", err)
		}
		result.Progress = len(rows)
	}

	plans := make(map[string]plan.Plan)
	for _, stored := range store.NewCollection[plan.Plan](p.store, store.KeyPlans).Load(ctx) {
		plans[stored.Level] = stored
	}
	for _, goal := range store.NewCollection[plan.Goal](p.store, store.KeyGoals).Load(ctx) {
		if err := p.remote.UpsertGoal(ctx, p.tenant, study.GoalRow(goal, plans[goal.Level])); err != nil {
			return nil, fmt.Errorf("remote.UpsertGoal(%s) > %w", goal.Level, err)
		}
		result.Goals++
	}

	entries := store.NewCollection[wrongnote.Entry](p.store, store.KeyWrongAnswers).Load(ctx)
	if len(entries) > 0 {
		rows := make([]mirror.WrongAnswerRow, len(entries))
		for i, entry := range entries {
			rows[i] = study.WrongAnswerRow(entry)
		}
		if err := p.remote.UpsertWrongAnswers(ctx, p.tenant, rows); err != nil {
			return nil, fmt.Errorf("remote.UpsertWrongAnswers() > %w", err)
		}
		result.WrongAnswers = len(rows)
	}

	results := store.NewCollection[quiz.Result](p.store, store.KeyQuizResults).Load(ctx)
	if len(results) > 0 {
		rows := make([]mirror.QuizResultRow, len(results))
		for i, r := range results {
			rows[i] = study.QuizResultRow(r)
		}
		if err := p.remote.UpsertQuizResults(ctx, p.tenant, rows); err != nil {
			return nil, fmt.Errorf("remote.UpsertQuizResults() > %w", err)
		}
		result.QuizResults = len(rows)
	}

	slog.Default().Info("pushed local state to the remote",
		"progress", result.Progress,
		"goals", result.Goals,
		"wrong_answers", result.WrongAnswers,
		"quiz_results", result.QuizResults,
	)
	return &result, nil
}
