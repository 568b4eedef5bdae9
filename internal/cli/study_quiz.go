package cli

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/vocadays/internal/quiz"
	"github.com/at-ishikawa/vocadays/internal/study"
)

// QuizService is the part of *study.Service a quiz needs.
type QuizService interface {
	FinishQuiz(ctx context.Context, q *study.Quiz) (quiz.Result, error)
	RetryQuiz(q *study.Quiz) (*study.Quiz, error)
}

// PlayQuiz plays q in quizType, stores its result and offers to retry the missed words
// until nothing is missed or the learner declines.
func (r *QuizRunner) PlayQuiz(ctx context.Context, service QuizService, q *study.Quiz, quizType quiz.Type) ([]quiz.Result, error) {
	if _, err := r.Start(ctx, q.Session, quizType); err != nil {
		return nil, err
	}

	var results []quiz.Result
	for {
		if err := r.Run(ctx, q.Session); err != nil {
			return results, err
		}
		result, err := service.FinishQuiz(ctx, q)
		if err != nil {
			return results, fmt.Errorf("FinishQuiz() > %w", err)
		}
		results = append(results, result)

		missed := len(result.MissedItemIDs)
		if missed == 0 {
			_, _ = r.correct.Fprintln(r.out, "All words answered correctly.")
			return results, nil
		}
		retry, err := r.Confirm(ctx, fmt.Sprintf("Retry %d missed word(s)?", missed))
		if err != nil || !retry {
			return results, err
		}
		q, err = service.RetryQuiz(q)
		if err != nil {
			return results, fmt.Errorf("RetryQuiz() > %w", err)
		}
	}
}
