package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/vocadays/internal/database"
)

var (
	progressColumns = []string{"academy_id", "user_id", "level", "day", "status", "memorized_item_ids", "last_studied_at"}
	progressKeys    = []string{"academy_id", "user_id", "level", "day"}

	goalColumns = []string{"academy_id", "user_id", "level", "duration_days", "items_per_day", "started_at", "schedule"}
	goalKeys    = []string{"academy_id", "user_id", "level"}

	wrongAnswerColumns = []string{"academy_id", "user_id", "item_id", "level", "day", "wrong_count", "item", "added_at"}
	wrongAnswerKeys    = []string{"academy_id", "user_id", "item_id"}

	quizResultColumns = []string{"academy_id", "user_id", "id", "quiz_type", "level", "day", "total_questions", "correct_answers", "missed_item_ids", "completed_at"}
	quizResultKeys    = []string{"academy_id", "user_id", "id"}
)

const (
	// maxPlaceholders is the bind parameter limit of PostgreSQL and MySQL prepared statements.
	maxPlaceholders  = 65535
	defaultBatchRows = 500
)

// SQLRemote mirrors rows into MySQL or PostgreSQL tables.
type SQLRemote struct {
	db        *sqlx.DB
	dialect   database.Dialect
	batchRows int
}

func NewSQLRemote(db *sqlx.DB, dialect database.Dialect) *SQLRemote {
	return &SQLRemote{db: db, dialect: dialect, batchRows: defaultBatchRows}
}

// batchSize returns the rows of one statement, capped by the placeholder limit.
func (r *SQLRemote) batchSize(columns int) int {
	size := r.batchRows
	if limit := maxPlaceholders / columns; size <= 0 || size > limit {
		size = limit
	}
	return size
}

// upsert writes rows in batches. Several batches share one transaction.
func (r *SQLRemote) upsert(ctx context.Context, table string, columns, keys []string, rows int, args []any) error {
	if rows == 0 {
		return nil
	}
	size := r.batchSize(len(columns))
	if rows <= size {
		return r.upsertBatch(ctx, r.db, table, columns, keys, rows, args)
	}
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for start := 0; start < rows; start += size {
			end := min(start+size, rows)
			batch := args[start*len(columns) : end*len(columns)]
			if err := r.upsertBatch(ctx, tx, table, columns, keys, end-start, batch); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLRemote) upsertBatch(ctx context.Context, execer sqlx.ExecerContext, table string, columns, keys []string, rows int, args []any) error {
	query := r.db.Rebind(database.BuildUpsert(r.dialect, table, columns, keys, rows))
	if _, err := execer.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %s > %w", table, err)
	}
	return nil
}

func (r *SQLRemote) exec(ctx context.Context, query string, args ...any) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("db.ExecContext(%s) > %w", query, err)
	}
	return nil
}

func (r *SQLRemote) UpsertProgress(ctx context.Context, tenant Tenant, rows []ProgressRow) error {
	args := make([]any, 0, len(rows)*len(progressColumns))
	for _, row := range rows {
		args = append(args,
			tenant.AcademyID,
			tenant.UserID,
			row.Level,
			row.Day,
			row.Status,
			strings.Join(row.MemorizedItemIDs, ","),
			row.LastStudiedAt.UTC(),
		)
	}
	return r.upsert(ctx, "progress_records", progressColumns, progressKeys, len(rows), args)
}

func (r *SQLRemote) DeleteLevelProgress(ctx context.Context, tenant Tenant, level string) error {
	return r.exec(ctx, "DELETE FROM progress_records WHERE academy_id = ? AND user_id = ? AND level = ?",
		tenant.AcademyID, tenant.UserID, level)
}

func (r *SQLRemote) UpsertGoal(ctx context.Context, tenant Tenant, row GoalRow) error {
	schedule, err := json.Marshal(row.Schedule)
	if err != nil {
		return fmt.Errorf("json.Marshal(schedule) > %w", err)
	}
	args := []any{
		tenant.AcademyID,
		tenant.UserID,
		row.Level,
		row.DurationDays,
		row.ItemsPerDay,
		row.StartedAt.UTC(),
		string(schedule),
	}
	return r.upsert(ctx, "study_goals", goalColumns, goalKeys, 1, args)
}

func (r *SQLRemote) DeleteGoal(ctx context.Context, tenant Tenant, level string) error {
	return r.exec(ctx, "DELETE FROM study_goals WHERE academy_id = ? AND user_id = ? AND level = ?",
		tenant.AcademyID, tenant.UserID, level)
}

func (r *SQLRemote) UpsertWrongAnswers(ctx context.Context, tenant Tenant, rows []WrongAnswerRow) error {
	args := make([]any, 0, len(rows)*len(wrongAnswerColumns))
	for _, row := range rows {
		item, err := json.Marshal(row.Item)
		if err != nil {
			return fmt.Errorf("json.Marshal(%s) > %w", row.ItemID, err)
		}
		args = append(args,
			tenant.AcademyID,
			tenant.UserID,
			row.ItemID,
			row.Level,
			row.Day,
			row.WrongCount,
			string(item),
			row.AddedAt.UTC(),
		)
	}
	return r.upsert(ctx, "wrong_answers", wrongAnswerColumns, wrongAnswerKeys, len(rows), args)
}

func (r *SQLRemote) DeleteWrongAnswer(ctx context.Context, tenant Tenant, itemID string) error {
	return r.exec(ctx, "DELETE FROM wrong_answers WHERE academy_id = ? AND user_id = ? AND item_id = ?",
		tenant.AcademyID, tenant.UserID, itemID)
}

func (r *SQLRemote) ClearWrongAnswers(ctx context.Context, tenant Tenant) error {
	return r.exec(ctx, "DELETE FROM wrong_answers WHERE academy_id = ? AND user_id = ?",
		tenant.AcademyID, tenant.UserID)
}

func (r *SQLRemote) UpsertQuizResults(ctx context.Context, tenant Tenant, rows []QuizResultRow) error {
	args := make([]any, 0, len(rows)*len(quizResultColumns))
	for _, row := range rows {
		args = append(args,
			tenant.AcademyID,
			tenant.UserID,
			row.ID,
			row.QuizType,
			row.Level,
			row.Day,
			row.TotalQuestions,
			row.CorrectAnswers,
			strings.Join(row.MissedItemIDs, ","),
			row.CompletedAt.UTC(),
		)
	}
	return r.upsert(ctx, "quiz_results", quizResultColumns, quizResultKeys, len(rows), args)
}

func (r *SQLRemote) Close() error {
	return r.db.Close()
}
