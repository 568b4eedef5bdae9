package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/vocadays/internal/cli"
)

func newStatsCommand() *cobra.Command {
	var year, month int
	command := &cobra.Command{
		Use:   "stats",
		Short: "Show quiz statistics per month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd, func(ctx context.Context, env *environment) error {
				cli.PrintStatsReport(cmd.OutOrStdout(), env.service.Results(ctx), year, month)
				return nil
			})
		},
	}
	command.Flags().IntVar(&year, "year", 0, "filter by year")
	command.Flags().IntVar(&month, "month", 0, "filter by month (1-12)")
	return command
}
