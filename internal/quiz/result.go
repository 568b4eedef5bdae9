package quiz

import (
	"time"

	"github.com/google/uuid"
)

// Result is the persisted summary of a completed session. Day is 0 for sessions that are
// not a curriculum day, and Level is empty for wrong-answer reviews.
type Result struct {
	ID             string    `yaml:"id"`
	QuizType       Type      `yaml:"quiz_type"`
	Level          string    `yaml:"level,omitempty"`
	Day            int       `yaml:"day,omitempty"`
	TotalQuestions int       `yaml:"total_questions"`
	CorrectAnswers int       `yaml:"correct_answers"`
	MissedItemIDs  []string  `yaml:"missed_item_ids,omitempty"`
	CompletedAt    time.Time `yaml:"completed_at"`
}

// Percentage returns round(100 * correct / total).
func (r Result) Percentage() int {
	return percentage(r.CorrectAnswers*PointsPerCorrect, r.TotalQuestions)
}

// Result summarizes a completed session.
func (s *Session) Result(level string, day int, completedAt time.Time) (Result, error) {
	if s.state != StateComplete {
		return Result{}, ErrNotComplete
	}
	missed := make([]string, len(s.missed))
	for i, item := range s.missed {
		missed[i] = item.ID
	}
	return Result{
		ID:             uuid.NewString(),
		QuizType:       s.quizType,
		Level:          level,
		Day:            day,
		TotalQuestions: len(s.questions),
		CorrectAnswers: s.CorrectAnswers(),
		MissedItemIDs:  missed,
		CompletedAt:    completedAt,
	}, nil
}
