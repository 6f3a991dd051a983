package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/grovetools/autosync/cli"
	"github.com/grovetools/autosync/pkg/syncer"
	"github.com/grovetools/autosync/tui/statusbar"
)

func NewWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the repository and back it up continuously",
		Long: `Runs until interrupted, backing the repository up on two triggers: a
filesystem change followed by a quiet debounce period, and the recurring
auto-sync timer when auto_sync_interval_minutes is set.

On a terminal, a one-line status bar shows sync progress and recent
messages. Without a terminal the same messages go to the log.

Examples:
  autosync watch
  autosync watch -C ~/notes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd)
			if err != nil {
				return err
			}
			handler := cli.NewErrorHandler(app.opts.Verbose)

			interactive := isatty.IsTerminal(os.Stdout.Fd())

			// The presenter reads controller state through closures so the
			// controller can be constructed with the presenter as one of
			// its notification sinks.
			var controller *syncer.Controller
			presenter := syncer.NewPresenter(
				func() syncer.State {
					if controller == nil {
						return syncer.StateIdle
					}
					return controller.State()
				},
				func() time.Time {
					if controller == nil {
						return time.Time{}
					}
					return controller.LastSync()
				},
			)

			// On a terminal the status bar owns the screen; route messages
			// through the presenter instead of stderr.
			notifier := app.notifier
			if interactive && !app.settings.NotificationsDisabled {
				notifier = presenter.Notifier()
			}

			controller, err = syncer.New(syncer.Options{
				Git:      app.client,
				Settings: app.settings,
				Notifier: notifier,
				Store:    app.store,
			})
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := controller.CheckRepo(ctx); err != nil {
				return handler.Handle(err)
			}

			if app.settings.PullOnStartup {
				if _, err := controller.Pull(ctx); err != nil {
					app.logger.WithError(err).Warn("Startup pull failed")
				}
			}

			if app.settings.AutoSyncEnabled() {
				controller.StartAutoSync(app.settings.AutoSyncIntervalMinutes)
				defer controller.StopAutoSync()
			}

			debounce := time.Duration(app.settings.WatchDebounceSeconds) * time.Second
			watcher, err := syncer.NewWatcher(controller, app.dir, debounce, app.settings.WatchIgnorePatterns)
			if err != nil {
				return handler.Handle(err)
			}
			go func() {
				if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
					app.logger.WithError(err).Error("Watcher stopped")
					cancel()
				}
			}()

			if !interactive {
				app.logger.WithField("dir", app.dir).Info("Watching repository")
				<-ctx.Done()
				return nil
			}

			program := tea.NewProgram(statusbar.New(presenter, filepath.Base(app.dir)))
			go func() {
				<-ctx.Done()
				program.Quit()
			}()
			if _, err := program.Run(); err != nil {
				return err
			}
			cancel()
			return nil
		},
	}
}
