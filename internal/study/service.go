// Package study wires the study core together: local-first writes with an asynchronous
// mirror to the remote store.
package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/vocadays/internal/mirror"
	"github.com/at-ishikawa/vocadays/internal/plan"
	"github.com/at-ishikawa/vocadays/internal/progress"
	"github.com/at-ishikawa/vocadays/internal/quiz"
	"github.com/at-ishikawa/vocadays/internal/store"
	"github.com/at-ishikawa/vocadays/internal/wordpool"
	"github.com/at-ishikawa/vocadays/internal/wrongnote"
)

var (
	// ErrNoPlan is returned for a plan quiz of a level without an active goal.
	ErrNoPlan = errors.New("level has no active study plan")
	// ErrNoWrongAnswers is returned for a review quiz when the ledger is empty.
	ErrNoWrongAnswers = errors.New("no wrong answers to review")
)

// Kind is where the items of a quiz come from.
type Kind string

const (
	KindDay   Kind = "day"
	KindPlan  Kind = "plan"
	KindWrong Kind = "wrong"
)

// Quiz is a session together with the place it was started from.
type Quiz struct {
	Kind    Kind
	Level   string
	Day     int
	Session *quiz.Session

	// finish progress, so a FinishQuiz retried after an error does not count twice
	result         *quiz.Result
	recordedMisses int
	resultSaved    bool
}

type Option func(*Service)

// WithQuizSeed fixes the seed of question shuffles.
func WithQuizSeed(seed int64) Option {
	return func(s *Service) {
		s.quizSeed = seed
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service is the application facade of the study core.
type Service struct {
	curriculum *wordpool.Curriculum
	tracker    *progress.Tracker
	generator  *plan.Generator
	goals      *plan.Goals
	ledger     *wrongnote.Ledger
	results    *store.Collection[quiz.Result]
	writer     *mirror.AsyncWriter
	quizSeed   int64
	now        func() time.Time
}

// NewService hydrates the study state from s. writer may be nil to disable mirroring.
func NewService(ctx context.Context, curriculum *wordpool.Curriculum, s store.Store, writer *mirror.AsyncWriter, opts ...Option) *Service {
	var (
		progressObserver progress.Observer
		goalObserver     plan.GoalObserver
		ledgerObserver   wrongnote.Observer
	)
	if writer != nil {
		observer := mirrorObserver{writer: writer}
		progressObserver, goalObserver, ledgerObserver = observer, observer, observer
	}

	tracker := progress.NewTracker(ctx, curriculum, s, progressObserver)
	generator := plan.NewGenerator(curriculum)
	service := &Service{
		curriculum: curriculum,
		tracker:    tracker,
		generator:  generator,
		goals:      plan.NewGoals(generator, tracker, s, goalObserver),
		ledger:     wrongnote.NewLedger(s, ledgerObserver),
		results:    store.NewCollection[quiz.Result](s, store.KeyQuizResults),
		writer:     writer,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *Service) Curriculum() *wordpool.Curriculum { return s.curriculum }
func (s *Service) Progress() *progress.Tracker { return s.tracker }
func (s *Service) Goals() *plan.Goals { return s.goals }
func (s *Service) Ledger() *wrongnote.Ledger { return s.ledger }

func (s *Service) level(levelID string) (wordpool.Level, error) {
	level, ok := s.curriculum.Level(levelID)
	if !ok {
		return wordpool.Level{}, fmt.Errorf("%w: unknown level %q", progress.ErrInvalidKey, levelID)
	}
	return level, nil
}

func (s *Service) newSession(items []wordpool.VocabItem, newTimer quiz.TimerFunc) *quiz.Session {
	seed := s.quizSeed
	if seed == 0 {
		seed = s.now().UnixNano()
	}
	return quiz.NewSession(quiz.NewGenerator(seed), items, newTimer)
}

// DayQuiz creates a session over the curriculum bucket of a day.
func (s *Service) DayQuiz(levelID string, day int, newTimer quiz.TimerFunc) (*Quiz, error) {
	level, err := s.level(levelID)
	if err != nil {
		return nil, err
	}
	if !level.HasDay(day) {
		return nil, fmt.Errorf("%w: day %d is outside 1..%d of level %q", progress.ErrInvalidKey, day, level.TotalDays, levelID)
	}
	bucket, _ := level.Bucket(day)
	return &Quiz{
		Kind:    KindDay,
		Level:   levelID,
		Day:     day,
		Session: s.newSession(bucket.Items, newTimer),
	}, nil
}

// PlanQuiz creates a session over the items the active plan schedules for planDay.
func (s *Service) PlanQuiz(ctx context.Context, levelID string, planDay int, newTimer quiz.TimerFunc) (*Quiz, error) {
	level, err := s.level(levelID)
	if err != nil {
		return nil, err
	}
	p, ok := s.goals.Plan(ctx, levelID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoPlan, levelID)
	}
	ids, ok := p.Schedule[planDay]
	if !ok {
		return nil, fmt.Errorf("%w: plan day %d is not scheduled for level %q", progress.ErrInvalidKey, planDay, levelID)
	}

	items := make([]wordpool.VocabItem, 0, len(ids))
	for _, id := range ids {
		item, _, ok := level.Item(id)
		if !ok {
			slog.Default().Warn("planned item is no longer in the curriculum", "level", levelID, "item_id", id)
			continue
		}
		items = append(items, item)
	}
	return &Quiz{
		Kind:    KindPlan,
		Level:   levelID,
		Day:     planDay,
		Session: s.newSession(items, newTimer),
	}, nil
}

// WrongQuiz creates a review session over the most missed items. A non-positive
// limit reviews every entry.
func (s *Service) WrongQuiz(ctx context.Context, limit int, newTimer quiz.TimerFunc) (*Quiz, error) {
	items := s.ledger.ReviewItems(ctx, limit)
	if len(items) == 0 {
		return nil, ErrNoWrongAnswers
	}
	return &Quiz{
		Kind:    KindWrong,
		Session: s.newSession(items, newTimer),
	}, nil
}

// RetryQuiz creates a session over the items missed in q, in the same format.
func (s *Service) RetryQuiz(q *Quiz) (*Quiz, error) {
	session, err := quiz.Retry(q.Session)
	if err != nil {
		return nil, err
	}
	return &Quiz{
		Kind:    q.Kind,
		Level:   q.Level,
		Day:     q.Day,
		Session: session,
	}, nil
}

// FinishQuiz records the misses of a completed session in the ledger, stores its
// result and marks a finished day quiz completed. The result is mirrored afterwards.
// After an error FinishQuiz can be called again with the same q; steps that already
// succeeded are not repeated.
func (s *Service) FinishQuiz(ctx context.Context, q *Quiz) (quiz.Result, error) {
	if q.result == nil {
		level, day := q.Level, 0
		if q.Kind == KindDay {
			day = q.Day
		}
		result, err := q.Session.Result(level, day, s.now())
		if err != nil {
			return quiz.Result{}, err
		}
		q.result = &result
	}
	result := *q.result

	missed := q.Session.Missed()
	for ; q.recordedMisses < len(missed); q.recordedMisses++ {
		item := missed[q.recordedMisses]
		missLevel, missDay := s.origin(q, item.ID)
		if _, err := s.ledger.RecordMiss(ctx, item, missLevel, missDay); err != nil {
			return quiz.Result{}, fmt.Errorf("ledger.RecordMiss(%s) > %w", item.ID, err)
		}
	}

	if !q.resultSaved {
		results := s.results.Load(ctx)
		if err := s.results.Save(ctx, append(results, result)); err != nil {
			return quiz.Result{}, fmt.Errorf("results.Save() > %w", err)
		}
		q.resultSaved = true
	}

	if q.Kind == KindDay {
		if err := s.tracker.SetStatus(ctx, q.Level, q.Day, progress.StatusCompleted); err != nil {
			return quiz.Result{}, fmt.Errorf("tracker.SetStatus(%s, %d) > %w", q.Level, q.Day, err)
		}
	}

	if s.writer != nil {
		s.writer.UpsertQuizResults(QuizResultRow(result))
	}
	slog.Default().Debug("finished a quiz",
		"kind", q.Kind,
		"level", q.Level,
		"day", q.Day,
		"percentage", result.Percentage(),
	)
	return result, nil
}

// origin returns the curriculum level and day of a missed item. Review items keep the
// origin recorded by their first miss.
func (s *Service) origin(q *Quiz, itemID string) (string, int) {
	switch q.Kind {
	case KindDay:
		return q.Level, q.Day
	case KindPlan:
		if level, ok := s.curriculum.Level(q.Level); ok {
			if _, day, ok := level.Item(itemID); ok {
				return q.Level, day
			}
		}
		return q.Level, 0
	}
	return "", 0
}

// Results returns the stored quiz results, oldest first.
func (s *Service) Results(ctx context.Context) []quiz.Result {
	return s.results.Load(ctx)
}

// ResetLevel deletes the progress of a level.
func (s *Service) ResetLevel(ctx context.Context, levelID string) error {
	return s.tracker.Reset(ctx, levelID)
}

// Wait lets in-flight mirror writes finish.
func (s *Service) Wait(ctx context.Context) error {
	if s.writer == nil {
		return nil
	}
	return s.writer.Wait(ctx)
}
