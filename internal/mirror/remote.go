// Package mirror copies local study state to a remote multi-tenant store.
//
// Every write is an idempotent upsert keyed by tenant and row key, so duplicate
// or out-of-order delivery is harmless.
package mirror

import (
	"context"
	"time"

	"github.com/at-ishikawa/vocadays/internal/wordpool"
)

//go:generate mockgen -source=remote.go -destination=../mocks/mirror/mock_remote.go -package=mock_mirror

// Tenant scopes every remote row.
type Tenant struct {
	AcademyID string `json:"academy_id"`
	UserID    string `json:"user_id"`
}

// ProgressRow is keyed by (tenant, level, day).
type ProgressRow struct {
	Level            string    `json:"level"`
	Day              int       `json:"day"`
	Status           string    `json:"status"`
	MemorizedItemIDs []string  `json:"memorized_item_ids"`
	LastStudiedAt    time.Time `json:"last_studied_at"`
}

// GoalRow is keyed by (tenant, level) and carries the generated schedule.
type GoalRow struct {
	Level        string           `json:"level"`
	DurationDays int              `json:"duration_days"`
	ItemsPerDay  int              `json:"items_per_day"`
	StartedAt    time.Time        `json:"started_at"`
	Schedule     map[int][]string `json:"schedule"`
}

// WrongAnswerRow is keyed by (tenant, item id).
type WrongAnswerRow struct {
	ItemID     string             `json:"item_id"`
	Level      string             `json:"level"`
	Day        int                `json:"day"`
	WrongCount int                `json:"wrong_count"`
	Item       wordpool.VocabItem `json:"item"`
	AddedAt    time.Time          `json:"added_at"`
}

// QuizResultRow is keyed by (tenant, id).
type QuizResultRow struct {
	ID             string    `json:"id"`
	QuizType       string    `json:"quiz_type"`
	Level          string    `json:"level"`
	Day            int       `json:"day"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	MissedItemIDs  []string  `json:"missed_item_ids"`
	CompletedAt    time.Time `json:"completed_at"`
}

// Remote is the remote multi-tenant store.
type Remote interface {
	UpsertProgress(ctx context.Context, tenant Tenant, rows []ProgressRow) error
	DeleteLevelProgress(ctx context.Context, tenant Tenant, level string) error
	UpsertGoal(ctx context.Context, tenant Tenant, row GoalRow) error
	DeleteGoal(ctx context.Context, tenant Tenant, level string) error
	UpsertWrongAnswers(ctx context.Context, tenant Tenant, rows []WrongAnswerRow) error
	DeleteWrongAnswer(ctx context.Context, tenant Tenant, itemID string) error
	ClearWrongAnswers(ctx context.Context, tenant Tenant) error
	UpsertQuizResults(ctx context.Context, tenant Tenant, rows []QuizResultRow) error
	Close() error
}

// Noop discards every write. It is used when no remote is configured.
type Noop struct{}

func (Noop) UpsertProgress(context.Context, Tenant, []ProgressRow) error { return nil }
func (Noop) DeleteLevelProgress(context.Context, Tenant, string) error { return nil }
func (Noop) UpsertGoal(context.Context, Tenant, GoalRow) error { return nil }
func (Noop) DeleteGoal(context.Context, Tenant, string) error { return nil }
func (Noop) UpsertWrongAnswers(context.Context, Tenant, []WrongAnswerRow) error { return nil }
func (Noop) DeleteWrongAnswer(context.Context, Tenant, string) error { return nil }
func (Noop) ClearWrongAnswers(context.Context, Tenant) error { return nil }
func (Noop) UpsertQuizResults(context.Context, Tenant, []QuizResultRow) error { return nil }
func (Noop) Close() error { return nil }
