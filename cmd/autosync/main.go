package main

import (
	"os"

	"github.com/grovetools/autosync/cli"
	"github.com/grovetools/autosync/cmd"
	"github.com/grovetools/autosync/errors"
	"github.com/grovetools/autosync/tui"
	"github.com/grovetools/autosync/version"
)

func main() {
	tui.InitializeTUI()

	rootCmd := cli.NewStandardCommand(
		"autosync",
		"Keep a git repository continuously backed up to its remote",
	)
	cli.SetVersionTemplate(rootCmd, cli.VersionInfo{
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.BuildDate,
	})

	rootCmd.AddCommand(cmd.NewSyncCmd())
	rootCmd.AddCommand(cmd.NewPullCmd())
	rootCmd.AddCommand(cmd.NewWatchCmd())
	rootCmd.AddCommand(cmd.NewStatusCmd())
	rootCmd.AddCommand(cmd.NewBranchCmd())
	rootCmd.AddCommand(cmd.NewConfigCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	cli.ApplyStyledHelpRecursive(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		// Structured sync errors were already reported by the command's
		// error handler; everything else still needs a message.
		if errors.GetCode(err) == "" {
			cli.PrintError(rootCmd, err)
		}
		os.Exit(1)
	}
}
