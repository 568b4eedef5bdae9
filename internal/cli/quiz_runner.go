package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/vocadays/internal/quiz"
)

// ErrInputClosed is returned when the input ends in the middle of a session.
var ErrInputClosed = errors.New("input closed")

// QuizRunner plays quiz sessions on a terminal. Answers and countdown ticks are
// handled by the same loop, so a session is never mutated concurrently.
// Close must be called once the runner is no longer used.
type QuizRunner struct {
	lines     <-chan string
	done      chan struct{}
	closeOnce sync.Once
	out       io.Writer
	ticks     chan quiz.Tick
	interval  time.Duration
	dwell     time.Duration
	bold      *color.Color
	italic    *color.Color
	correct   *color.Color
	wrong     *color.Color
}

// NewQuizRunner creates a runner reading answers from in. interval is the time between
// two countdown ticks and dwell how long a timed-out result stays on screen.
func NewQuizRunner(in io.Reader, out io.Writer, interval, dwell time.Duration) *QuizRunner {
	done := make(chan struct{})
	return &QuizRunner{
		lines:    readLines(in, done),
		done:     done,
		out:      out,
		ticks:    make(chan quiz.Tick),
		interval: interval,
		dwell:    dwell,
		bold:     color.New(color.Bold),
		italic:   color.New(color.Italic),
		correct:  color.New(color.FgGreen),
		wrong:    color.New(color.FgRed),
	}
}

// readLines sends the lines of in until in ends or done is closed.
func readLines(in io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	return lines
}

// Close stops reading the input. A read already blocked on the input returns
// when the input delivers its next line.
func (r *QuizRunner) Close() {
	r.closeOnce.Do(func() { close(r.done) })
}

// TimerFunc returns the countdown sessions played by this runner must be created with.
func (r *QuizRunner) TimerFunc() quiz.TimerFunc {
	return quiz.NewCountdownFunc(r.ticks, r.interval)
}

func (r *QuizRunner) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-r.lines:
		if !ok {
			return "", ErrInputClosed
		}
		return strings.TrimSpace(line), nil
	}
}

// Start starts session in quizType. When the items cannot produce questions of that
// format, the learner is asked for another one.
func (r *QuizRunner) Start(ctx context.Context, session *quiz.Session, quizType quiz.Type) (quiz.Type, error) {
	for {
		err := session.Start(quizType)
		if err == nil {
			return quizType, nil
		}
		if !errors.Is(err, quiz.ErrNoQuestions) {
			return "", err
		}

		_, _ = r.wrong.Fprintf(r.out, "No %s questions can be made from these words.\n", quizType)
		_, _ = fmt.Fprintf(r.out, "Choose another format %v: ", quiz.Types())
		line, err := r.readLine(ctx)
		if err != nil {
			return "", err
		}
		next, err := quiz.ParseType(line)
		if err != nil {
			_, _ = fmt.Fprintf(r.out, "%v\n", err)
			continue
		}
		quizType = next
	}
}

// Run plays a started session until it completes. On cancellation or closed input the
// session is abandoned and the error returned.
func (r *QuizRunner) Run(ctx context.Context, session *quiz.Session) error {
	for session.State() == quiz.StateInProgress {
		question, _ := session.Current()
		r.showQuestion(session, question)

		answer, err := r.waitAnswer(ctx, session, question)
		if err != nil {
			session.Abandon()
			return err
		}
		r.showAnswer(answer)

		if answer.Outcome == quiz.OutcomeTimedOut {
			select {
			case <-ctx.Done():
				session.Abandon()
				return ctx.Err()
			case <-time.After(r.dwell):
			}
		}
		if err := session.Next(); err != nil {
			return fmt.Errorf("session.Next() > %w", err)
		}
	}

	_, _ = fmt.Fprintln(r.out)
	_, _ = r.bold.Fprintf(r.out, "Score: %d (%d/%d, %d%%)\n",
		session.Score(),
		session.CorrectAnswers(),
		len(session.Questions()),
		session.Percentage(),
	)
	return nil
}

func (r *QuizRunner) waitAnswer(ctx context.Context, session *quiz.Session, question quiz.Question) (quiz.Answer, error) {
	for {
		select {
		case <-ctx.Done():
			return quiz.Answer{}, ctx.Err()

		case tick := <-r.ticks:
			outcome, answer := session.Tick(tick)
			switch outcome {
			case quiz.TickTimedOut:
				return answer, nil
			case quiz.TickCounted:
				if tick.Remaining <= 3 {
					_, _ = r.wrong.Fprintf(r.out, "(%d) ", tick.Remaining)
				}
			}

		case line, ok := <-r.lines:
			if !ok {
				return quiz.Answer{}, ErrInputClosed
			}
			answer, err := session.Submit(resolveOption(question, strings.TrimSpace(line)))
			if err != nil {
				return quiz.Answer{}, fmt.Errorf("session.Submit() > %w", err)
			}
			return answer, nil
		}
	}
}

// resolveOption turns a 1-based option number into the option text.
func resolveOption(question quiz.Question, input string) string {
	if len(question.Options) == 0 {
		return input
	}
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(question.Options) {
		return input
	}
	return question.Options[n-1]
}

func (r *QuizRunner) showQuestion(session *quiz.Session, question quiz.Question) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = fmt.Fprintf(r.out, "Question %d/%d  (%ds)\n",
		session.Index()+1,
		len(session.Questions()),
		session.RemainingTicks(),
	)
	switch question.Type {
	case quiz.TypeSpelling:
		_, _ = fmt.Fprintf(r.out, "Spell the word meaning %s\n", r.italic.Sprintf("%q", question.Prompt))
	case quiz.TypeMatching:
		_, _ = fmt.Fprintf(r.out, "Pick the %s\n", r.bold.Sprint(question.Prompt))
	default:
		_, _ = fmt.Fprintf(r.out, "What does %s mean?\n", r.bold.Sprint(question.Prompt))
	}
	for i, option := range question.Options {
		_, _ = fmt.Fprintf(r.out, "  %d) %s\n", i+1, option)
	}
	_, _ = fmt.Fprint(r.out, "> ")
}

func (r *QuizRunner) showAnswer(answer quiz.Answer) {
	_, _ = fmt.Fprintln(r.out)
	switch answer.Outcome {
	case quiz.OutcomeCorrect:
		_, _ = fmt.Fprint(r.out, "✅ ")
		_, _ = r.correct.Fprintln(r.out, "Correct!")
	case quiz.OutcomeTimedOut:
		_, _ = fmt.Fprint(r.out, "⏰ ")
		_, _ = r.wrong.Fprintf(r.out, "Time is up. The answer is %s\n", r.bold.Sprint(answer.Question.Answer))
	default:
		_, _ = fmt.Fprint(r.out, "❌ ")
		_, _ = r.wrong.Fprintf(r.out, "Wrong. The answer is %s\n", r.bold.Sprint(answer.Question.Answer))
	}
}

// Confirm asks a yes/no question. Anything but y or yes is a no.
func (r *QuizRunner) Confirm(ctx context.Context, prompt string) (bool, error) {
	_, _ = fmt.Fprintf(r.out, "%s [y/N]: ", prompt)
	line, err := r.readLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
