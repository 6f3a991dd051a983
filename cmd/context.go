package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/autosync/cli"
	"github.com/grovetools/autosync/config"
	"github.com/grovetools/autosync/git"
	"github.com/grovetools/autosync/notify"
	"github.com/grovetools/autosync/pkg/syncer"
	"github.com/grovetools/autosync/state"
	"github.com/grovetools/autosync/util/pathutil"
)

// appContext bundles everything a subcommand needs: resolved flags, the
// repository settings, and a wired sync controller.
type appContext struct {
	opts       cli.CommandOptions
	dir        string
	settings   *config.Settings
	logger     *logrus.Logger
	client     *git.Client
	store      *state.Store
	notifier   notify.Notifier
	controller *syncer.Controller
}

// newAppContext resolves the target directory, loads its settings, and wires
// a controller against it. Settings fall back to defaults when no
// autosync.yml exists.
func newAppContext(cmd *cobra.Command) (*appContext, error) {
	opts := cli.GetOptions(cmd)

	dir, err := cli.ResolveDir(opts)
	if err != nil {
		return nil, err
	}
	dir = cli.FindConfigDir(dir)

	settings, err := config.LoadFrom(dir)
	if err != nil {
		return nil, err
	}
	if settings.RepoPath != "" {
		expanded, err := pathutil.Expand(settings.RepoPath)
		if err != nil {
			return nil, err
		}
		dir = expanded
	}

	var notifier notify.Notifier = notify.NewConsole()
	if settings.NotificationsDisabled {
		notifier = notify.Silent{}
	}

	client := git.NewClient(dir)
	store := state.NewStore(dir)

	controller, err := syncer.New(syncer.Options{
		Git:      client,
		Settings: settings,
		Notifier: notifier,
		Store:    store,
	})
	if err != nil {
		return nil, err
	}

	return &appContext{
		opts:       opts,
		dir:        dir,
		settings:   settings,
		logger:     cli.GetLogger(cmd),
		client:     client,
		store:      store,
		notifier:   notifier,
		controller: controller,
	}, nil
}
