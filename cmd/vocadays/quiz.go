package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/vocadays/internal/cli"
	"github.com/at-ishikawa/vocadays/internal/quiz"
	"github.com/at-ishikawa/vocadays/internal/study"
)

// quizTypeFlag is a --type value. Empty means the configured default type.
type quizTypeFlag quiz.Type

// Set implements pflag.Value.
func (f *quizTypeFlag) Set(v string) error {
	quizType, err := quiz.ParseType(v)
	if err != nil {
		return err
	}
	*f = quizTypeFlag(quizType)
	return nil
}

// String implements pflag.Value.
func (f *quizTypeFlag) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *quizTypeFlag) Type() string {
	return "QuizType"
}

var (
	_ pflag.Value = (*quizTypeFlag)(nil)
)

type quizFlags struct {
	quizType quizTypeFlag
}

func (f *quizFlags) register(flags *pflag.FlagSet) {
	flags.Var(&f.quizType, "type", "quiz type: choice, spelling or matching (default: quiz.default_type)")
}

func (f *quizFlags) resolve(env *environment) (quiz.Type, error) {
	if f.quizType != "" {
		return quiz.Type(f.quizType), nil
	}
	return quiz.ParseType(env.cfg.Quiz.DefaultType)
}

// playQuiz builds a quiz with newQuiz and plays it on the command's terminal.
func playQuiz(cmd *cobra.Command, flags *quizFlags, newQuiz func(ctx context.Context, env *environment, newTimer quiz.TimerFunc) (*study.Quiz, error)) error {
	return runWithEnvironment(cmd, func(ctx context.Context, env *environment) error {
		quizType, err := flags.resolve(env)
		if err != nil {
			return err
		}
		runner := cli.NewQuizRunner(cmd.InOrStdin(), cmd.OutOrStdout(), quiz.TickInterval, quiz.ResultDwell)
		defer runner.Close()
		q, err := newQuiz(ctx, env, runner.TimerFunc())
		if err != nil {
			return err
		}
		_, err = runner.PlayQuiz(ctx, env.service, q, quizType)
		return err
	})
}

func newQuizCommand() *cobra.Command {
	quizCommand := &cobra.Command{
		Use:   "quiz",
		Short: "Take a timed vocabulary quiz",
	}
	quizCommand.AddCommand(
		newQuizDayCommand(),
		newQuizPlanCommand(),
		newQuizWrongCommand(),
	)
	return quizCommand
}

func newQuizDayCommand() *cobra.Command {
	var flags quizFlags
	command := &cobra.Command{
		Use:   "day <level> <day>",
		Short: "Quiz the words of a curriculum day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[1])
			if err != nil {
				return err
			}
			return playQuiz(cmd, &flags, func(_ context.Context, env *environment, newTimer quiz.TimerFunc) (*study.Quiz, error) {
				return env.service.DayQuiz(args[0], day, newTimer)
			})
		},
	}
	flags.register(command.Flags())
	return command
}

func newQuizPlanCommand() *cobra.Command {
	var flags quizFlags
	command := &cobra.Command{
		Use:   "plan <level> <plan-day>",
		Short: "Quiz the words a study plan schedules for a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			planDay, err := parseDay(args[1])
			if err != nil {
				return err
			}
			return playQuiz(cmd, &flags, func(ctx context.Context, env *environment, newTimer quiz.TimerFunc) (*study.Quiz, error) {
				return env.service.PlanQuiz(ctx, args[0], planDay, newTimer)
			})
		},
	}
	flags.register(command.Flags())
	return command
}

func newQuizWrongCommand() *cobra.Command {
	var (
		flags quizFlags
		limit int
	)
	command := &cobra.Command{
		Use:   "wrong",
		Short: "Review the words answered wrong most often",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("invalid limit %d", limit)
			}
			return playQuiz(cmd, &flags, func(ctx context.Context, env *environment, newTimer quiz.TimerFunc) (*study.Quiz, error) {
				return env.service.WrongQuiz(ctx, limit, newTimer)
			})
		},
	}
	flags.register(command.Flags())
	command.Flags().IntVar(&limit, "limit", quiz.MaxQuestions, "maximum number of words to review")
	return command
}
