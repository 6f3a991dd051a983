package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/autosync/cli"
	"github.com/grovetools/autosync/config"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change autosync settings",
		Long: `Reads and writes settings in the repository's autosync.yml. Without a
subcommand, prints the effective settings after defaults are applied.

Examples:
  # Show the effective settings
  autosync config

  # Read one setting
  autosync config get commit_message_template

  # Change a setting
  autosync config set auto_sync_interval_minutes 15`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(app.settings)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}

	cmd.AddCommand(newConfigGetCmd(), newConfigSetCmd())
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value of one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd)
			if err != nil {
				return err
			}
			handler := cli.NewErrorHandler(app.opts.Verbose)

			value, err := app.settings.GetField(args[0])
			if err != nil {
				return handler.Handle(err)
			}
			fmt.Println(value)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting and write it back to autosync.yml",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd)
			if err != nil {
				return err
			}
			handler := cli.NewErrorHandler(app.opts.Verbose)

			if err := app.settings.SetField(args[0], args[1]); err != nil {
				return handler.Handle(err)
			}
			if err := app.settings.Validate(); err != nil {
				return handler.Handle(err)
			}
			if err := config.Save(app.dir, app.settings); err != nil {
				return handler.Handle(err)
			}
			app.notifier.Success(fmt.Sprintf("Set %s = %s", args[0], args[1]))
			return nil
		},
	}
}
