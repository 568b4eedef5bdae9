package mirror

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// AsyncWriter sends each write to a Remote in its own goroutine.
// Failures are logged and otherwise ignored; the local store stays authoritative.
type AsyncWriter struct {
	remote  Remote
	tenant  Tenant
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewAsyncWriter(remote Remote, tenant Tenant, timeout time.Duration) *AsyncWriter {
	return &AsyncWriter{
		remote:  remote,
		tenant:  tenant,
		timeout: timeout,
	}
}

// Tenant returns the tenant every write is scoped to.
func (w *AsyncWriter) Tenant() Tenant {
	return w.tenant
}

func (w *AsyncWriter) dispatch(operation string, fn func(ctx context.Context) error) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ctx := context.Background()
		if w.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, w.timeout)
			defer cancel()
		}
		if err := fn(ctx); err != nil {
			slog.Default().Warn("failed to mirror a write",
				"operation", operation,
				"academy_id", w.tenant.AcademyID,
				"user_id", w.tenant.UserID,
				"error", err,
			)
			return
		}
		slog.Default().Debug("mirrored a write", "operation", operation)
	}()
}

func (w *AsyncWriter) UpsertProgress(rows ...ProgressRow) {
	w.dispatch("UpsertProgress", func(ctx context.Context) error {
		return w.remote.UpsertProgress(ctx, w.tenant, rows)
	})
}

func (w *AsyncWriter) DeleteLevelProgress(level string) {
	w.dispatch("DeleteLevelProgress", func(ctx context.Context) error {
		return w.remote.DeleteLevelProgress(ctx, w.tenant, level)
	})
}

func (w *AsyncWriter) UpsertGoal(row GoalRow) {
	w.dispatch("UpsertGoal", func(ctx context.Context) error {
		return w.remote.UpsertGoal(ctx, w.tenant, row)
	})
}

func (w *AsyncWriter) DeleteGoal(level string) {
	w.dispatch("DeleteGoal", func(ctx context.Context) error {
		return w.remote.DeleteGoal(ctx, w.tenant, level)
	})
}

func (w *AsyncWriter) UpsertWrongAnswers(rows ...WrongAnswerRow) {
	w.dispatch("UpsertWrongAnswers", func(ctx context.Context) error {
		return w.remote.UpsertWrongAnswers(ctx, w.tenant, rows)
	})
}

func (w *AsyncWriter) DeleteWrongAnswer(itemID string) {
	w.dispatch("DeleteWrongAnswer", func(ctx context.Context) error {
		return w.remote.DeleteWrongAnswer(ctx, w.tenant, itemID)
	})
}

func (w *AsyncWriter) ClearWrongAnswers() {
	w.dispatch("ClearWrongAnswers", func(ctx context.Context) error {
		return w.remote.ClearWrongAnswers(ctx, w.tenant)
	})
}

func (w *AsyncWriter) UpsertQuizResults(rows ...QuizResultRow) {
	w.dispatch("UpsertQuizResults", func(ctx context.Context) error {
		return w.remote.UpsertQuizResults(ctx, w.tenant, rows)
	})
}

// Wait blocks until every dispatched write has finished or ctx is done.
func (w *AsyncWriter) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
