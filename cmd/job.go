package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shipping-management/internal/app"
	"shipping-management/internal/scheduler"
)

var jobCmd = &cobra.Command{
	Use:       "job [tracking-refresh|sla-alerts]",
	Short:     "Run one scheduled job immediately and exit",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"tracking-refresh", "sla-alerts"},
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closeRepos, err := openRepositories()
		if err != nil {
			return err
		}
		defer closeRepos()

		container := app.New(cfg, repos, nil)
		job, ok := container.Job(args[0])
		if !ok {
			return fmt.Errorf("unknown job %q", args[0])
		}
		return scheduler.RunJob(cmd.Context(), job)
	},
}
