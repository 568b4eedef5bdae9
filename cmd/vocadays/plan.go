package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/vocadays/internal/cli"
	"github.com/at-ishikawa/vocadays/internal/plan"
)

func newPlanCommand() *cobra.Command {
	planCommand := &cobra.Command{
		Use:   "plan",
		Short: "Manage the study goal of a level",
	}
	planCommand.AddCommand(
		newPlanSetCommand(),
		newPlanShowCommand(),
		newPlanClearCommand(),
	)
	return planCommand
}

func newPlanSetCommand() *cobra.Command {
	var (
		days   int
		perDay int
	)
	command := &cobra.Command{
		Use:   "set <level>",
		Short: "Spread the words not yet memorized over a number of days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd, func(ctx context.Context, env *environment) error {
				out := cmd.OutOrStdout()
				goal, p, err := env.service.Goals().SetGoal(ctx, args[0], days, perDay)
				if errors.Is(err, plan.ErrEmptyPool) {
					_, _ = fmt.Fprintf(out, "Every word of %s is memorized. Run \"progress reset %s\" to study it again.\n", args[0], args[0])
					return nil
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "%s: %d days, %d words/day\n", goal.Level, goal.DurationDays, goal.ItemsPerDay)
				cli.PrintPlan(out, p)
				return nil
			})
		},
	}
	command.Flags().IntVar(&days, "days", 0, "number of days of the goal")
	command.Flags().IntVar(&perDay, "per-day", 0, "words per day (default: remaining words / days)")
	_ = command.MarkFlagRequired("days")
	return command
}

func newPlanShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <level>",
		Short: "Show the active plan of a level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd, func(ctx context.Context, env *environment) error {
				out := cmd.OutOrStdout()
				overview, err := env.service.Overview(ctx, args[0])
				if err != nil {
					return err
				}
				cli.PrintOverview(out, overview)
				if p, ok := env.service.Goals().Plan(ctx, args[0]); ok {
					cli.PrintPlan(out, p)
				}
				return nil
			})
		},
	}
}

func newPlanClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <level>",
		Short: "Remove the goal and plan of a level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd, func(ctx context.Context, env *environment) error {
				if err := env.service.Goals().ClearGoal(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cleared the goal of %s\n", args[0])
				return nil
			})
		},
	}
}
