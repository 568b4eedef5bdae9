package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/at-ishikawa/vocadays/internal/quiz"
)

// QuizStatistics holds statistics for a time period
type QuizStatistics struct {
	Period         string // "2025-01"
	Sessions       int
	Questions      int
	CorrectAnswers int
	MissedUnique   int // Unique items missed in the period
}

// Accuracy returns round(100 * correct / questions).
func (s QuizStatistics) Accuracy() int {
	return accuracy(s.CorrectAnswers, s.Questions)
}

// AggregateStatistics holds totals across all periods with global unique counts
type AggregateStatistics struct {
	Sessions       int
	Questions      int
	CorrectAnswers int
	MissedUnique   int // Deduplicated across periods
}

func (s AggregateStatistics) Accuracy() int {
	return accuracy(s.CorrectAnswers, s.Questions)
}

// StatisticsResult holds both per-period and aggregate statistics
type StatisticsResult struct {
	Periods   []QuizStatistics
	Aggregate AggregateStatistics
}

type periodData struct {
	sessions     int
	questions    int
	correct      int
	missedUnique map[string]struct{}
}

// CalculateQuizStatistics groups quiz results by month.
// It accepts optional year and month filters (0 means no filter).
func CalculateQuizStatistics(results []quiz.Result, year, month int) StatisticsResult {
	stats := make(map[string]*periodData)
	globalMissed := make(map[string]struct{})

	for _, result := range results {
		if result.CompletedAt.IsZero() {
			continue
		}
		resultYear := result.CompletedAt.Year()
		resultMonth := int(result.CompletedAt.Month())
		if !matchesFilter(resultYear, resultMonth, year, month) {
			continue
		}

		period := fmt.Sprintf("%d-%02d", resultYear, resultMonth)
		data := ensurePeriodExists(stats, period)
		data.sessions++
		data.questions += result.TotalQuestions
		data.correct += result.CorrectAnswers
		for _, id := range result.MissedItemIDs {
			data.missedUnique[id] = struct{}{}
			globalMissed[id] = struct{}{}
		}
	}

	return buildResult(stats, globalMissed)
}

func ensurePeriodExists(stats map[string]*periodData, period string) *periodData {
	if stats[period] == nil {
		stats[period] = &periodData{
			missedUnique: make(map[string]struct{}),
		}
	}
	return stats[period]
}

func matchesFilter(resultYear, resultMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if resultYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return resultMonth == filterMonth
}

func buildResult(stats map[string]*periodData, globalMissed map[string]struct{}) StatisticsResult {
	periods := make([]QuizStatistics, 0, len(stats))

	var aggregate AggregateStatistics
	for period, data := range stats {
		periods = append(periods, QuizStatistics{
			Period:         period,
			Sessions:       data.sessions,
			Questions:      data.questions,
			CorrectAnswers: data.correct,
			MissedUnique:   len(data.missedUnique),
		})
		aggregate.Sessions += data.sessions
		aggregate.Questions += data.questions
		aggregate.CorrectAnswers += data.correct
	}
	aggregate.MissedUnique = len(globalMissed)

	// Newest first
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period > periods[j].Period
	})

	return StatisticsResult{
		Periods:   periods,
		Aggregate: aggregate,
	}
}

func accuracy(correct, questions int) int {
	if questions == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(questions)))
}
