package study_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/vocadays/internal/mirror"
	mock_mirror "github.com/at-ishikawa/vocadays/internal/mocks/mirror"
	"github.com/at-ishikawa/vocadays/internal/progress"
	"github.com/at-ishikawa/vocadays/internal/quiz"
	"github.com/at-ishikawa/vocadays/internal/store"
	"github.com/at-ishikawa/vocadays/internal/study"
	"github.com/at-ishikawa/vocadays/internal/testutil"
)

var fixedNow = time.Date(2026, 3, 14, 7, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, writer *mirror.AsyncWriter) *study.Service {
	t.Helper()
	curriculum := testutil.NewCurriculum(t, testutil.NewLevel("basic", 3, 2))
	return study.NewService(context.Background(), curriculum, store.NewMemoryStore(), writer,
		study.WithQuizSeed(11),
		study.WithClock(func() time.Time { return fixedNow }),
	)
}

// play answers every question, correctly when correct returns true.
func play(t *testing.T, q *study.Quiz, quizType quiz.Type, correct func(question quiz.Question) bool) {
	t.Helper()
	require.NoError(t, q.Session.Start(quizType))
	for q.Session.State() == quiz.StateInProgress {
		question, ok := q.Session.Current()
		require.True(t, ok)
		answer := "not the answer"
		if correct(question) {
			answer = question.Answer
		}
		_, err := q.Session.Submit(answer)
		require.NoError(t, err)
		require.NoError(t, q.Session.Next())
	}
}

func TestService_DayQuiz(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t, nil)
	missedID := testutil.ItemID("basic", 1, 2)

	q, err := service.DayQuiz("basic", 1, nil)
	require.NoError(t, err)
	play(t, q, quiz.TypeSpelling, func(question quiz.Question) bool {
		return question.Item.ID != missedID
	})

	result, err := service.FinishQuiz(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "basic", result.Level)
	assert.Equal(t, 1, result.Day)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, []string{missedID}, result.MissedItemIDs)
	assert.Equal(t, fixedNow, result.CompletedAt)
	assert.Equal(t, 50, result.Percentage())

	status, err := service.Progress().Status("basic", 1)
	require.NoError(t, err)
	assert.Equal(t, progress.StatusCompleted, status)

	entries := service.Ledger().List(ctx)
	require.Len(t, entries, 1)
	assert.Equal(t, missedID, entries[0].ItemID)
	assert.Equal(t, "basic", entries[0].Level)
	assert.Equal(t, 1, entries[0].Day)

	results := service.Results(ctx)
	require.Len(t, results, 1)
	assert.Equal(t, result.ID, results[0].ID)
}

func TestService_DayQuizInvalidKey(t *testing.T) {
	service := newTestService(t, nil)

	tests := []struct {
		name  string
		level string
		day   int
	}{
		{name: "unknown level", level: "advanced", day: 1},
		{name: "day zero", level: "basic", day: 0},
		{name: "day after the last", level: "basic", day: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.DayQuiz(tt.level, tt.day, nil)
			assert.ErrorIs(t, err, progress.ErrInvalidKey)
		})
	}
}

func TestService_FinishQuizRequiresCompletion(t *testing.T) {
	service := newTestService(t, nil)
	q, err := service.DayQuiz("basic", 2, nil)
	require.NoError(t, err)
	require.NoError(t, q.Session.Start(quiz.TypeChoice))

	_, err = service.FinishQuiz(context.Background(), q)
	assert.ErrorIs(t, err, quiz.ErrNotComplete)
	assert.Empty(t, service.Results(context.Background()))
}

func TestService_PlanQuiz(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t, nil)

	_, err := service.PlanQuiz(ctx, "basic", 1, nil)
	require.ErrorIs(t, err, study.ErrNoPlan)

	_, p, err := service.Goals().SetGoal(ctx, "basic", 2, 0)
	require.NoError(t, err)
	require.Equal(t, 3, p.ItemsPerDay)

	_, err = service.PlanQuiz(ctx, "basic", 3, nil)
	assert.ErrorIs(t, err, progress.ErrInvalidKey)

	q, err := service.PlanQuiz(ctx, "basic", 1, nil)
	require.NoError(t, err)
	play(t, q, quiz.TypeChoice, func(quiz.Question) bool { return false })
	assert.Len(t, q.Session.Questions(), 3)

	result, err := service.FinishQuiz(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Day)
	assert.ElementsMatch(t, p.Schedule[1], result.MissedItemIDs)

	level, _ := service.Curriculum().Level("basic")
	for _, entry := range service.Ledger().List(ctx) {
		_, day, ok := level.Item(entry.ItemID)
		require.True(t, ok)
		assert.Equal(t, day, entry.Day)
		assert.Equal(t, "basic", entry.Level)
	}

	for day := 1; day <= 3; day++ {
		status, err := service.Progress().Status("basic", day)
		require.NoError(t, err)
		assert.Equal(t, progress.StatusNotStarted, status)
	}
}

func TestService_WrongQuizAndRetry(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t, nil)

	_, err := service.WrongQuiz(ctx, 0, nil)
	require.ErrorIs(t, err, study.ErrNoWrongAnswers)

	q, err := service.DayQuiz("basic", 1, nil)
	require.NoError(t, err)
	play(t, q, quiz.TypeSpelling, func(quiz.Question) bool { return false })
	_, err = service.FinishQuiz(ctx, q)
	require.NoError(t, err)

	retry, err := service.RetryQuiz(q)
	require.NoError(t, err)
	assert.Equal(t, study.KindDay, retry.Kind)
	assert.Equal(t, quiz.TypeSpelling, retry.Session.Type())
	assert.Len(t, retry.Session.Questions(), 2)

	review, err := service.WrongQuiz(ctx, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, study.KindWrong, review.Kind)
	play(t, review, quiz.TypeSpelling, func(quiz.Question) bool { return false })
	reviewed := review.Session.Questions()[0].Item.ID

	result, err := service.FinishQuiz(ctx, review)
	require.NoError(t, err)
	assert.Empty(t, result.Level)
	assert.Equal(t, 0, result.Day)

	entry, ok := service.Ledger().Entry(ctx, reviewed)
	require.True(t, ok)
	assert.Equal(t, 2, entry.WrongCount)
	assert.Equal(t, "basic", entry.Level)
	assert.Equal(t, 1, entry.Day)
}

func TestService_Overview(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t, nil)

	for n := 1; n <= 2; n++ {
		_, err := service.Progress().MarkMemorized(ctx, "basic", 1, testutil.ItemID("basic", 1, n), 0)
		require.NoError(t, err)
	}
	_, _, err := service.Goals().SetGoal(ctx, "basic", 3, 1)
	require.NoError(t, err)

	overview, err := service.Overview(ctx, "basic")
	require.NoError(t, err)
	assert.Equal(t, "Level basic", overview.Name)
	assert.Equal(t, 3, overview.TotalDays)
	assert.Equal(t, 1, overview.CompletedDays)
	assert.Equal(t, 33, overview.CompletionRate)
	assert.Equal(t, 6, overview.PoolSize)
	assert.Equal(t, 2, overview.Memorized)
	assert.Equal(t, 4, overview.Remaining)
	require.NotNil(t, overview.Goal)
	assert.Equal(t, 3, overview.PlanDays)
	assert.Equal(t, 3, overview.PlanCovered)
	assert.Equal(t, 1, overview.PlanUncovered)

	_, err = service.Overview(ctx, "missing")
	assert.ErrorIs(t, err, progress.ErrInvalidKey)
}

func TestService_MirrorsLocalWrites(t *testing.T) {
	ctx := context.Background()
	tenant := mirror.Tenant{AcademyID: "academy", UserID: "learner"}

	ctrl := gomock.NewController(t)
	remote := mock_mirror.NewMockRemote(ctrl)
	remote.EXPECT().
		UpsertWrongAnswers(gomock.Any(), tenant, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ mirror.Tenant, rows []mirror.WrongAnswerRow) error {
			if assert.Len(t, rows, 1) {
				assert.Equal(t, 1, rows[0].WrongCount)
			}
			return nil
		}).
		Times(2)
	remote.EXPECT().
		UpsertQuizResults(gomock.Any(), tenant, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ mirror.Tenant, rows []mirror.QuizResultRow) error {
			if assert.Len(t, rows, 1) {
				assert.Equal(t, "spelling", rows[0].QuizType)
				assert.Equal(t, 2, rows[0].TotalQuestions)
			}
			return nil
		})
	remote.EXPECT().
		UpsertProgress(gomock.Any(), tenant, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ mirror.Tenant, rows []mirror.ProgressRow) error {
			if assert.Len(t, rows, 1) {
				assert.Equal(t, "basic", rows[0].Level)
				assert.Equal(t, 1, rows[0].Day)
				assert.Equal(t, "completed", rows[0].Status)
			}
			return nil
		})
	remote.EXPECT().DeleteLevelProgress(gomock.Any(), tenant, "basic").Return(nil)

	service := newTestService(t, mirror.NewAsyncWriter(remote, tenant, time.Second))
	q, err := service.DayQuiz("basic", 1, nil)
	require.NoError(t, err)
	play(t, q, quiz.TypeSpelling, func(quiz.Question) bool { return false })
	_, err = service.FinishQuiz(ctx, q)
	require.NoError(t, err)
	require.NoError(t, service.ResetLevel(ctx, "basic"))

	require.NoError(t, service.Wait(ctx))
}

// flakyStore fails the next failures writes of key.
type flakyStore struct {
	store.Store
	key      string
	failures int
}

func (s *flakyStore) Put(ctx context.Context, key string, value []byte) error {
	if key == s.key && s.failures > 0 {
		s.failures--
		return errors.New("disk full")
	}
	return s.Store.Put(ctx, key, value)
}

func TestService_FinishQuizAfterStoreError(t *testing.T) {
	tests := []struct {
		name    string
		failKey string
	}{
		{name: "result not saved", failKey: store.KeyQuizResults},
		{name: "day not marked completed", failKey: store.KeyProgress},
		{name: "miss not recorded", failKey: store.KeyWrongAnswers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := &flakyStore{Store: store.NewMemoryStore(), key: tt.failKey, failures: 1}
			curriculum := testutil.NewCurriculum(t, testutil.NewLevel("basic", 3, 2))
			service := study.NewService(ctx, curriculum, s, nil, study.WithQuizSeed(11))

			q, err := service.DayQuiz("basic", 1, nil)
			require.NoError(t, err)
			play(t, q, quiz.TypeSpelling, func(quiz.Question) bool { return false })

			_, err = service.FinishQuiz(ctx, q)
			require.ErrorContains(t, err, "disk full")

			result, err := service.FinishQuiz(ctx, q)
			require.NoError(t, err)

			results := service.Results(ctx)
			require.Len(t, results, 1)
			assert.Equal(t, result.ID, results[0].ID)
			entries := service.Ledger().List(ctx)
			require.Len(t, entries, 2)
			for _, entry := range entries {
				assert.Equal(t, 1, entry.WrongCount, entry.ItemID)
			}
			status, err := service.Progress().Status("basic", 1)
			require.NoError(t, err)
			assert.Equal(t, progress.StatusCompleted, status)
		})
	}
}
