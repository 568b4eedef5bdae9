package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/at-ishikawa/vocadays/internal/plan"
	"github.com/at-ishikawa/vocadays/internal/progress"
	"github.com/at-ishikawa/vocadays/internal/quiz"
	"github.com/at-ishikawa/vocadays/internal/statistics"
	"github.com/at-ishikawa/vocadays/internal/study"
	"github.com/at-ishikawa/vocadays/internal/wrongnote"
)

// PrintStatsReport displays monthly quiz statistics
func PrintStatsReport(w io.Writer, results []quiz.Result, year, month int) {
	result := statistics.CalculateQuizStatistics(results, year, month)

	if len(result.Periods) == 0 {
		_, _ = fmt.Fprintln(w, "No quiz results found for the specified period.")
		return
	}

	_, _ = fmt.Fprintln(w, "Quiz Statistics Report")
	_, _ = fmt.Fprintln(w, "======================")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "%-10s  %8s  %9s  %7s  %8s  %6s\n", "Period", "Sessions", "Questions", "Correct", "Accuracy", "Missed")
	_, _ = fmt.Fprintf(w, "%-10s  %8s  %9s  %7s  %8s  %6s\n", "------", "--------", "---------", "-------", "--------", "------")

	for _, s := range result.Periods {
		_, _ = fmt.Fprintf(w, "%-10s  %8d  %9d  %7d  %7d%%  %6d\n",
			s.Period, s.Sessions, s.Questions, s.CorrectAnswers, s.Accuracy(), s.MissedUnique)
	}

	a := result.Aggregate
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "%-10s  %8d  %9d  %7d  %7d%%  %6d\n",
		"Totals:", a.Sessions, a.Questions, a.CorrectAnswers, a.Accuracy(), a.MissedUnique)
}

// PrintOverview displays the completion of a level.
func PrintOverview(w io.Writer, overview study.Overview) {
	_, _ = fmt.Fprintf(w, "%s (%s)\n", overview.Name, overview.Level)
	_, _ = fmt.Fprintf(w, "  Completed days: %d/%d (%d%%)\n", overview.CompletedDays, overview.TotalDays, overview.CompletionRate)
	_, _ = fmt.Fprintf(w, "  Memorized:      %d/%d (%d remaining)\n", overview.Memorized, overview.PoolSize, overview.Remaining)
	if overview.Goal == nil {
		_, _ = fmt.Fprintln(w, "  Goal:           none")
		return
	}
	_, _ = fmt.Fprintf(w, "  Goal:           %d days, %d words/day since %s\n",
		overview.Goal.DurationDays, overview.Goal.ItemsPerDay, overview.Goal.StartedAt.Format("2006-01-02"))
	_, _ = fmt.Fprintf(w, "  Plan:           %d words over %d days", overview.PlanCovered, overview.PlanDays)
	if overview.PlanUncovered > 0 {
		_, _ = fmt.Fprintf(w, ", %d not covered", overview.PlanUncovered)
	}
	_, _ = fmt.Fprintln(w)
}

// PrintDayRecords displays the status of every day of a level.
func PrintDayRecords(w io.Writer, totalDays int, records []progress.Record) {
	byDay := make(map[int]progress.Record, len(records))
	for _, record := range records {
		byDay[record.Day] = record
	}
	for day := 1; day <= totalDays; day++ {
		record, ok := byDay[day]
		if !ok {
			_, _ = fmt.Fprintf(w, "Day %3d  %-11s\n", day, progress.StatusNotStarted)
			continue
		}
		_, _ = fmt.Fprintf(w, "Day %3d  %-11s  %d memorized  %s\n",
			day, record.Status, len(record.MemorizedItemIDs), record.LastStudiedAt.Format("2006-01-02 15:04"))
	}
}

// PrintPlan displays the schedule of a plan.
func PrintPlan(w io.Writer, p plan.Plan) {
	for _, day := range p.Days() {
		_, _ = fmt.Fprintf(w, "Day %3d  %s\n", day, strings.Join(p.Schedule[day], ", "))
	}
}

// PrintWrongAnswers displays the wrong-answer ledger.
func PrintWrongAnswers(w io.Writer, entries []wrongnote.Entry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No wrong answers.")
		return
	}
	for _, entry := range entries {
		origin := "review"
		if entry.Level != "" {
			origin = fmt.Sprintf("%s day %d", entry.Level, entry.Day)
		}
		_, _ = fmt.Fprintf(w, "%-20s  %-20s  missed %d time(s)  (%s)\n",
			entry.ItemID, entry.Item.Headword, entry.WrongCount, origin)
	}
}
