package quiz

import (
	"errors"
	"fmt"
	"math"

	"github.com/at-ishikawa/vocadays/internal/wordpool"
)

// PointsPerCorrect is added to the score for each correct answer.
const PointsPerCorrect = 5

var (
	ErrNotStarted      = errors.New("quiz session has not started")
	ErrSessionComplete = errors.New("quiz session is complete")
	ErrNotComplete     = errors.New("quiz session is not complete")
	ErrNoQuestions     = errors.New("no questions can be generated from the items")
	ErrAlreadyStarted  = errors.New("quiz session has already started")
	ErrAlreadyAnswered = errors.New("question has already been answered")
	ErrNotAnswered     = errors.New("question has not been answered")
	ErrNothingToRetry  = errors.New("no missed items to retry")
)

type State string

const (
	StateSelectingFormat State = "selecting-format"
	StateInProgress      State = "in-progress"
	StateComplete        State = "complete"
	StateAbandoned       State = "abandoned"
)

// Phase is the state of the current question of an in-progress session.
type Phase string

const (
	PhaseAnswering     Phase = "answering"
	PhaseShowingResult Phase = "showing-result"
)

type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	OutcomeTimedOut  Outcome = "timed-out"
)

// Answer is the judged answer of one question.
type Answer struct {
	Question Question
	Given    string
	Outcome  Outcome
}

// Correct reports whether the answer scored.
func (a Answer) Correct() bool {
	return a.Outcome == OutcomeCorrect
}

// TickOutcome tells the caller what a tick did.
type TickOutcome int

const (
	// TickIgnored is a tick of a question that is no longer being answered.
	TickIgnored TickOutcome = iota
	TickCounted
	TickTimedOut
)

// Session is one quiz run. It is not safe for concurrent use: ticks must be fed from the
// same goroutine that submits answers.
type Session struct {
	generator *Generator
	newTimer  TimerFunc
	items     []wordpool.VocabItem

	quizType   Type
	state      State
	phase      Phase
	questions  []Question
	current    int
	score      int
	missed     []wordpool.VocabItem
	answers    []Answer
	remaining  int
	generation int
	timer      Timer
}

// NewSession creates a session over items waiting for a format. newTimer may be nil,
// in which case only Tick drives timeouts.
func NewSession(generator *Generator, items []wordpool.VocabItem, newTimer TimerFunc) *Session {
	return &Session{
		generator: generator,
		newTimer:  newTimer,
		items:     items,
		state:     StateSelectingFormat,
	}
}

// Start generates the questions of quizType and starts the first question.
// ErrNoQuestions leaves the session waiting for another format.
func (s *Session) Start(quizType Type) error {
	if s.state != StateSelectingFormat {
		return ErrAlreadyStarted
	}
	questions, err := s.generator.Generate(s.items, quizType)
	if err != nil {
		return fmt.Errorf("Generate(%s) > %w", quizType, err)
	}
	if len(questions) == 0 {
		return ErrNoQuestions
	}

	s.quizType = quizType
	s.questions = questions
	s.current = 0
	s.state = StateInProgress
	s.beginQuestion()
	return nil
}

func (s *Session) beginQuestion() {
	s.phase = PhaseAnswering
	s.remaining = TimerTicks
	s.generation++
	if s.newTimer != nil {
		s.timer = s.newTimer(s.generation)
	}
}

// stopTimer cancels the running countdown and invalidates its pending ticks.
func (s *Session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
}

func (s *Session) checkAnswering() error {
	switch s.state {
	case StateSelectingFormat:
		return ErrNotStarted
	case StateComplete, StateAbandoned:
		return ErrSessionComplete
	}
	if s.phase != PhaseAnswering {
		return ErrAlreadyAnswered
	}
	return nil
}

// Submit stops the timer and then judges answer for the current question.
func (s *Session) Submit(answer string) (Answer, error) {
	if err := s.checkAnswering(); err != nil {
		return Answer{}, err
	}
	s.stopTimer()

	question := s.questions[s.current]
	outcome := OutcomeIncorrect
	if CheckAnswer(question, answer) {
		outcome = OutcomeCorrect
	}
	return s.record(question, answer, outcome), nil
}

func (s *Session) record(question Question, given string, outcome Outcome) Answer {
	result := Answer{Question: question, Given: given, Outcome: outcome}
	if outcome == OutcomeCorrect {
		s.score += PointsPerCorrect
	} else {
		s.missed = append(s.missed, question.Item)
	}
	s.answers = append(s.answers, result)
	s.phase = PhaseShowingResult
	return result
}

// Tick applies a countdown tick. Ticks of an earlier generation are ignored, so a tick
// that arrives after a submission can never record a second answer. On the last tick an
// empty answer is recorded as timed out.
func (s *Session) Tick(tick Tick) (TickOutcome, Answer) {
	if s.checkAnswering() != nil || tick.Generation != s.generation {
		return TickIgnored, Answer{}
	}
	s.remaining = tick.Remaining
	if s.remaining > 0 {
		return TickCounted, Answer{}
	}

	s.stopTimer()
	return TickTimedOut, s.record(s.questions[s.current], "", OutcomeTimedOut)
}

// Next leaves the result of the current question and starts the next one,
// or completes the session after the last question.
func (s *Session) Next() error {
	switch s.state {
	case StateSelectingFormat:
		return ErrNotStarted
	case StateComplete, StateAbandoned:
		return ErrSessionComplete
	}
	if s.phase != PhaseShowingResult {
		return ErrNotAnswered
	}

	s.current++
	if s.current >= len(s.questions) {
		s.state = StateComplete
		return nil
	}
	s.beginQuestion()
	return nil
}

// Abandon ends an unfinished session without a result.
func (s *Session) Abandon() {
	if s.state == StateComplete {
		return
	}
	s.stopTimer()
	s.state = StateAbandoned
}

// Current returns the current question.
func (s *Session) Current() (Question, bool) {
	if s.state != StateInProgress {
		return Question{}, false
	}
	return s.questions[s.current], true
}

func (s *Session) Type() Type { return s.quizType }
func (s *Session) State() State { return s.state }
func (s *Session) Phase() Phase { return s.phase }
func (s *Session) Generation() int { return s.generation }
func (s *Session) RemainingTicks() int { return s.remaining }
func (s *Session) Score() int { return s.score }
func (s *Session) Questions() []Question { return s.questions }
func (s *Session) Answers() []Answer { return s.answers }
func (s *Session) Missed() []wordpool.VocabItem { return s.missed }

// Index returns the 0-based index of the current question.
func (s *Session) Index() int {
	return s.current
}

// CorrectAnswers returns the number of correct answers so far.
func (s *Session) CorrectAnswers() int {
	return s.score / PointsPerCorrect
}

// Percentage returns round(100 * score / (questions * PointsPerCorrect)).
func (s *Session) Percentage() int {
	return percentage(s.score, len(s.questions))
}

func percentage(score, questions int) int {
	if questions == 0 {
		return 0
	}
	return int(math.Round(100 * float64(score) / float64(questions*PointsPerCorrect)))
}

// Retry starts a new session over the items missed in prev, in the same format.
func Retry(prev *Session) (*Session, error) {
	if prev.state != StateComplete {
		return nil, ErrNotComplete
	}
	if len(prev.missed) == 0 {
		return nil, ErrNothingToRetry
	}
	session := NewSession(prev.generator, prev.missed, prev.newTimer)
	if err := session.Start(prev.quizType); err != nil {
		return nil, err
	}
	return session, nil
}
