package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/autosync/cli"
	"github.com/grovetools/autosync/config"
	"github.com/grovetools/autosync/tui/theme"
)

func NewBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "branch [name]",
		Short: "List local branches or switch the sync branch",
		Long: `Without arguments, lists the repository's local branches with the
current one marked. With a branch name, checks out that branch and
records it as the branch future syncs push to.

Examples:
  # List branches
  autosync branch

  # Switch to and sync against a branch
  autosync branch drafts`,
		Args: cobra.MaximumNArgs(1),
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

			if len(args) == 0 {
				info, err := app.client.BranchLocal(ctx)
				if err != nil {
					return handler.Handle(err)
				}
				t := theme.DefaultTheme
				for _, name := range info.All {
					if name == info.Current {
						fmt.Printf("%s %s\n", t.Success.Render("*"), t.Bold.Render(name))
					} else {
						fmt.Printf("  %s\n", name)
					}
				}
				return nil
			}

			name := args[0]
			if err := app.client.Checkout(ctx, name); err != nil {
				return handler.Handle(err)
			}

			app.settings.Branch = name
			if err := config.Save(app.dir, app.settings); err != nil {
				return handler.Handle(err)
			}
			app.notifier.Success("Switched to branch " + name)
			return nil
		},
	}
}
