package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCurriculumCommand() *cobra.Command {
	curriculumCommand := &cobra.Command{
		Use:   "curriculum",
		Short: "Inspect the course curriculum",
	}
	curriculumCommand.AddCommand(
		&cobra.Command{
			Use:   "validate",
			Short: "Load the curriculum and report validation errors",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				curriculum, err := loadCurriculum(cfg)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d level(s)\n", cfg.Curriculum.Path, len(curriculum.LevelIDs()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "levels",
			Short: "List the levels with their day counts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				curriculum, err := loadCurriculum(cfg)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, id := range curriculum.LevelIDs() {
					level, _ := curriculum.Level(id)
					_, _ = fmt.Fprintf(out, "%-16s  %-24s  %3d day(s) (%d with words)  %4d word(s)\n",
						level.ID, level.DisplayName(), level.TotalDays, len(level.Days), len(level.Pool()))
				}
				return nil
			},
		},
	)
	return curriculumCommand
}
