package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/vocadays/internal/database"
	"github.com/at-ishikawa/vocadays/internal/syncer"
)

var errNoRemote = errors.New("no remote is configured: set remote.driver")

func newSyncCommand() *cobra.Command {
	var every time.Duration
	command := &cobra.Command{
		Use:   "sync",
		Short: "Push the whole local state to the remote store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd, func(ctx context.Context, env *environment) error {
				if env.remote == nil {
					return errNoRemote
				}
				if env.remoteDB != nil {
					dialect := database.Dialect(env.cfg.Remote.Driver)
					if err := database.Migrate(ctx, env.remoteDB, dialect); err != nil {
						return fmt.Errorf("database.Migrate(%s) > %w", dialect, err)
					}
				}

				pusher := syncer.NewPusher(env.store, env.remote, env.tenant)
				if every <= 0 {
					result, err := pusher.Push(ctx)
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pushed %d progress record(s), %d goal(s), %d wrong answer(s) and %d quiz result(s)\n",
						result.Progress, result.Goals, result.WrongAnswers, result.QuizResults)
					return nil
				}

				scheduler := syncer.NewScheduler(pusher, remoteTimeout(env.cfg.Remote))
				if err := scheduler.Start(every); err != nil {
					return err
				}
				defer scheduler.Stop()
				slog.Info("syncing periodically", "every", every)
				<-ctx.Done()
				return nil
			})
		},
	}
	command.Flags().DurationVar(&every, "every", 0, "keep pushing at this interval until interrupted")
	return command
}
