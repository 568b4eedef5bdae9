package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/vocadays/internal/cli"
)

func newWrongCommand() *cobra.Command {
	wrongCommand := &cobra.Command{
		Use:   "wrong",
		Short: "Manage the wrong answer notebook",
	}
	wrongCommand.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the words answered wrong, oldest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithEnvironment(cmd, func(ctx context.Context, env *environment) error {
					cli.PrintWrongAnswers(cmd.OutOrStdout(), env.service.Ledger().List(ctx))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "remove <item-id>",
			Short: "Remove a word from the notebook",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithEnvironment(cmd, func(ctx context.Context, env *environment) error {
					if err := env.service.Ledger().Remove(ctx, args[0]); err != nil {
						return err
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every word from the notebook",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithEnvironment(cmd, func(ctx context.Context, env *environment) error {
					if err := env.service.Ledger().Clear(ctx); err != nil {
						return err
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cleared the wrong answer notebook")
					return nil
				})
			},
		},
	)
	return wrongCommand
}
