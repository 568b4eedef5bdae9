package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/vocadays/internal/plan"
	"github.com/at-ishikawa/vocadays/internal/progress"
	"github.com/at-ishikawa/vocadays/internal/quiz"
	"github.com/at-ishikawa/vocadays/internal/study"
	"github.com/at-ishikawa/vocadays/internal/wordpool"
	"github.com/at-ishikawa/vocadays/internal/wrongnote"
)

func TestPrintStatsReport(t *testing.T) {
	results := []quiz.Result{
		{TotalQuestions: 4, CorrectAnswers: 3, MissedItemIDs: []string{"a"}, CompletedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{TotalQuestions: 2, CorrectAnswers: 2, CompletedAt: time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)},
	}

	tests := []struct {
		name  string
		year  int
		month int
		want  []string
	}{
		{
			name: "all periods",
			want: []string{"Quiz Statistics Report", "2025-02", "2025-01", "Totals:"},
		},
		{
			name:  "no results",
			year:  2020,
			month: 1,
			want:  []string{"No quiz results found"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			PrintStatsReport(&out, results, tt.year, tt.month)
			for _, want := range tt.want {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestPrintOverview(t *testing.T) {
	var out bytes.Buffer
	PrintOverview(&out, study.Overview{
		Level:          "toeic",
		Name:           "TOEIC 600",
		TotalDays:      30,
		CompletedDays:  1,
		CompletionRate: 3,
		PoolSize:       300,
		Memorized:      10,
		Remaining:      290,
		Goal:           &plan.Goal{Level: "toeic", DurationDays: 10, ItemsPerDay: 29, StartedAt: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
		PlanDays:       10,
		PlanCovered:    290,
	})
	assert.Contains(t, out.String(), "TOEIC 600 (toeic)")
	assert.Contains(t, out.String(), "Completed days: 1/30 (3%)")
	assert.Contains(t, out.String(), "10 days, 29 words/day since 2026-01-05")
	assert.NotContains(t, out.String(), "not covered")
}

func TestPrintDayRecords(t *testing.T) {
	var out bytes.Buffer
	PrintDayRecords(&out, 2, []progress.Record{
		{Level: "basic", Day: 2, Status: progress.StatusInProgress, MemorizedItemIDs: []string{"x"}},
	})
	assert.Contains(t, out.String(), "Day   1  not-started")
	assert.Contains(t, out.String(), "Day   2  in-progress  1 memorized")
}

func TestPrintWrongAnswers(t *testing.T) {
	var out bytes.Buffer
	PrintWrongAnswers(&out, nil)
	assert.Contains(t, out.String(), "No wrong answers.")

	out.Reset()
	PrintWrongAnswers(&out, []wrongnote.Entry{
		{ItemID: "basic-1-1", Item: wordpool.VocabItem{Headword: "apple"}, Level: "basic", Day: 1, WrongCount: 3},
	})
	assert.Contains(t, out.String(), "missed 3 time(s)  (basic day 1)")

	out.Reset()
	PrintPlan(&out, plan.Plan{Schedule: map[int][]string{2: {"c"}, 1: {"a", "b"}}})
	assert.Equal(t, "Day   1  a, b\nDay   2  c\n", out.String())
}
