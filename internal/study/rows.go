package study

import (
	"github.com/at-ishikawa/vocadays/internal/mirror"
	"github.com/at-ishikawa/vocadays/internal/plan"
	"github.com/at-ishikawa/vocadays/internal/progress"
	"github.com/at-ishikawa/vocadays/internal/quiz"
	"github.com/at-ishikawa/vocadays/internal/wrongnote"
)

func ProgressRow(record progress.Record) mirror.ProgressRow {
	return mirror.ProgressRow{
		Level:            record.Level,
		Day:              record.Day,
		Status:           string(record.Status),
		MemorizedItemIDs: record.MemorizedItemIDs,
		LastStudiedAt:    record.LastStudiedAt,
	}
}

func GoalRow(goal plan.Goal, p plan.Plan) mirror.GoalRow {
	return mirror.GoalRow{
		Level:        goal.Level,
		DurationDays: goal.DurationDays,
		ItemsPerDay:  goal.ItemsPerDay,
		StartedAt:    goal.StartedAt,
		Schedule:     p.Schedule,
	}
}

func WrongAnswerRow(entry wrongnote.Entry) mirror.WrongAnswerRow {
	return mirror.WrongAnswerRow{
		ItemID:     entry.ItemID,
		Level:      entry.Level,
		Day:        entry.Day,
		WrongCount: entry.WrongCount,
		Item:       entry.Item,
		AddedAt:    entry.AddedAt,
	}
}

func QuizResultRow(result quiz.Result) mirror.QuizResultRow {
	return mirror.QuizResultRow{
		ID:             result.ID,
		QuizType:       string(result.QuizType),
		Level:          result.Level,
		Day:            result.Day,
		TotalQuestions: result.TotalQuestions,
		CorrectAnswers: result.CorrectAnswers,
		MissedItemIDs:  result.MissedItemIDs,
		CompletedAt:    result.CompletedAt,
	}
}
