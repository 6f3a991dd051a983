package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/autosync/cli"
)

func NewPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Pull remote changes into the repository",
		Long: `Pulls from the configured remote and reports how many files changed.

Example:
  autosync pull -C ~/notes`,
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

			n, err := app.controller.Pull(ctx)
			if err != nil {
				return handler.Handle(err)
			}
			if n == 0 {
				app.notifier.Info("Already up to date")
			}
			return nil
		},
	}
}
