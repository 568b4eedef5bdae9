package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/vocadays/internal/cli"
	"github.com/at-ishikawa/vocadays/internal/progress"
)

func parseDay(value string) (int, error) {
	day, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid day %q: %w", value, err)
	}
	return day, nil
}

func newProgressCommand() *cobra.Command {
	progressCommand := &cobra.Command{
		Use:   "progress",
		Short: "Show and update the study progress",
	}
	progressCommand.AddCommand(
		newProgressStatusCommand(),
		newProgressMarkCommand(),
		newProgressUnmarkCommand(),
		newProgressSetCommand(),
		newProgressResetCommand(),
	)
	return progressCommand
}

func newProgressStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <level> [day]",
		Short: "Show the completion of a level or the record of one day",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd, func(ctx context.Context, env *environment) error {
				out := cmd.OutOrStdout()
				levelID := args[0]
				if len(args) == 1 {
					overview, err := env.service.Overview(ctx, levelID)
					if err != nil {
						return err
					}
					cli.PrintOverview(out, overview)
					cli.PrintDayRecords(out, overview.TotalDays, env.service.Progress().Records(levelID))
					return nil
				}

				day, err := parseDay(args[1])
				if err != nil {
					return err
				}
				status, err := env.service.Progress().Status(levelID, day)
				if err != nil {
					return err
				}
				record, _ := env.service.Progress().Record(levelID, day)
				_, _ = fmt.Fprintf(out, "%s day %d: %s\n", levelID, day, status)
				for _, id := range record.MemorizedItemIDs {
					_, _ = fmt.Fprintf(out, "  memorized %s\n", id)
				}
				return nil
			})
		},
	}
}

func newProgressMarkCommand() *cobra.Command {
	var total int
	command := &cobra.Command{
		Use:   "mark <level> <day> <item-id>",
		Short: "Mark a word of a day as memorized",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[1])
			if err != nil {
				return err
			}
			return runWithEnvironment(cmd, func(ctx context.Context, env *environment) error {
				record, err := env.service.Progress().MarkMemorized(ctx, args[0], day, args[2], total)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s day %d: %s (%d memorized)\n",
					record.Level, record.Day, record.Status, len(record.MemorizedItemIDs))
				return nil
			})
		},
	}
	command.Flags().IntVar(&total, "total", 0, "number of words that completes the day (default: words in the day)")
	return command
}

func newProgressUnmarkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unmark <level> <day> <item-id>",
		Short: "Remove a word from the memorized words of a day",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[1])
			if err != nil {
				return err
			}
			return runWithEnvironment(cmd, func(ctx context.Context, env *environment) error {
				record, err := env.service.Progress().UnmarkMemorized(ctx, args[0], day, args[2])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s day %d: %s (%d memorized)\n",
					record.Level, record.Day, record.Status, len(record.MemorizedItemIDs))
				return nil
			})
		},
	}
}

func newProgressSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <level> <day> <status>",
		Short: "Set the status of a day (not-started, in-progress, completed)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[1])
			if err != nil {
				return err
			}
			status, err := progress.ParseStatus(args[2])
			if err != nil {
				return err
			}
			return runWithEnvironment(cmd, func(ctx context.Context, env *environment) error {
				if err := env.service.Progress().SetStatus(ctx, args[0], day, status); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s day %d: %s\n", args[0], day, status)
				return nil
			})
		},
	}
}

func newProgressResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <level>",
		Short: "Delete all progress of a level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd, func(ctx context.Context, env *environment) error {
				if err := env.service.ResetLevel(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reset the progress of %s\n", args[0])
				return nil
			})
		},
	}
}
