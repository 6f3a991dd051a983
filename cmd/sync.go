package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/autosync/cli"
)

func NewSyncCmd() *cobra.Command {
	var withPull bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one backup cycle: stage, commit, and push local changes",
		Long: `Runs a single backup cycle against the repository. Any changed files
are staged, committed with the configured message template, and pushed
to the configured remote unless pushing is disabled.

A cycle with no changed files does nothing. Push and network failures
are reported but leave the commit in place for the next cycle.

Examples:
  # Back up the current directory
  autosync sync

  # Pull remote changes first, then back up
  autosync sync --pull

  # Back up a specific repository
  autosync sync -C ~/notes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd)
			if err != nil {
				return err
			}
			handler := cli.NewErrorHandler(app.opts.Verbose)

			ctx := cmd.Context()
			if err := app.controller.CheckRepo(ctx); err != nil {
				return handler.Handle(err)
			}

			if withPull {
				if _, err := app.controller.Pull(ctx); err != nil {
					return handler.Handle(err)
				}
			}

			if err := app.controller.CreateBackup(ctx); err != nil {
				return handler.Handle(err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withPull, "pull", false, "Pull remote changes before backing up")
	return cmd
}
