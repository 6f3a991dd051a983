package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/grovetools/autosync/cli"
	"github.com/grovetools/autosync/tui/theme"
)

// statusOutput is the JSON shape of `autosync status --json`.
type statusOutput struct {
	Repo         string   `json:"repo"`
	Branch       string   `json:"branch"`
	Dirty        bool     `json:"dirty"`
	ChangedFiles []string `json:"changed_files"`
	Ahead        int      `json:"ahead"`
	Behind       int      `json:"behind"`
	HasUpstream  bool     `json:"has_upstream"`
	AutoSync     bool     `json:"auto_sync"`
	LastSync     string   `json:"last_sync,omitempty"`
}

func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the repository's sync status",
		Long: `Shows the current branch, pending changes, and the time of the last
sync attempt.

Examples:
  autosync status
  autosync status --json`,
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

			status, err := app.client.Status(ctx)
			if err != nil {
				return handler.Handle(err)
			}

			lastSync := app.controller.LastSync()

			if app.opts.JSONOutput {
				out := statusOutput{
					Repo:        app.dir,
					Branch:      status.Branch,
					Dirty:       status.IsDirty(),
					Ahead:       status.AheadCount,
					Behind:      status.BehindCount,
					HasUpstream: status.HasUpstream,
					AutoSync:    app.settings.AutoSyncEnabled(),
				}
				for _, f := range status.Files {
					out.ChangedFiles = append(out.ChangedFiles, f.Kind+" "+f.Path)
				}
				if !lastSync.IsZero() {
					out.LastSync = lastSync.Format(time.RFC3339)
				}
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			t := theme.DefaultTheme
			fmt.Printf("%s %s\n", t.Bold.Render("Repository:"), app.dir)
			fmt.Printf("%s %s\n", t.Bold.Render("Branch:"), status.Branch)

			if status.HasUpstream && (status.AheadCount > 0 || status.BehindCount > 0) {
				fmt.Printf("%s ahead %d, behind %d\n",
					t.Bold.Render("Upstream:"), status.AheadCount, status.BehindCount)
			}

			if len(status.Files) == 0 {
				fmt.Println(t.Success.Render("✓") + " Working tree clean")
			} else {
				fmt.Printf("%s %d changed files\n", t.Warning.Render("⚠"), len(status.Files))
				for _, f := range status.Files {
					fmt.Printf("  %s %s\n", t.Muted.Render(f.Kind), f.Path)
				}
			}

			if app.settings.AutoSyncEnabled() {
				fmt.Printf("%s every %d minutes\n",
					t.Bold.Render("Auto-sync:"), app.settings.AutoSyncIntervalMinutes)
			} else {
				fmt.Printf("%s off\n", t.Bold.Render("Auto-sync:"))
			}

			if lastSync.IsZero() {
				fmt.Printf("%s never\n", t.Bold.Render("Last sync:"))
			} else {
				fmt.Printf("%s %s\n", t.Bold.Render("Last sync:"), lastSync.Format(time.RFC1123))
			}
			return nil
		},
	}
}
