package syncer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/autosync/config"
	"github.com/grovetools/autosync/git"
	"github.com/grovetools/autosync/notify"
	"github.com/grovetools/autosync/state"
	"github.com/grovetools/autosync/testutil"
)

// newRepoController wires a controller against a real repository with a
// bare origin remote.
func newRepoController(t *testing.T, settings *config.Settings) (*Controller, string, string) {
	t.Helper()
	testutil.RequireGit(t)

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	remote := testutil.InitBareRemote(t, dir)

	if settings == nil {
		settings = config.Default()
	}
	ctrl, err := New(Options{
		Git:      git.NewClient(dir),
		Settings: settings,
		Notifier: notify.Silent{},
		Store:    state.NewStore(dir),
	})
	require.NoError(t, err)
	return ctrl, dir, remote
}

func TestBackupAgainstRealRepo(t *testing.T) {
	ctx := context.Background()

	settings := config.Default()
	settings.CommitMessageTemplate = "backup: {{numFiles}} files"
	ctrl, dir, _ := newRepoController(t, settings)

	require.NoError(t, ctrl.CheckRepo(ctx))

	testutil.WriteFile(t, dir, "notes/daily.md", "first note\n")
	testutil.WriteFile(t, dir, "todo.md", "- [ ] write tests\n")

	require.NoError(t, ctrl.CreateBackup(ctx))

	assert.Equal(t, "backup: 2 files", testutil.HeadMessage(t, dir))
	assert.False(t, ctrl.LastSync().IsZero())

	// Working tree is clean afterwards, so a second cycle does nothing
	before := testutil.HeadMessage(t, dir)
	require.NoError(t, ctrl.CreateBackup(ctx))
	assert.Equal(t, before, testutil.HeadMessage(t, dir))
}

func TestPullAgainstRealRepo(t *testing.T) {
	ctx := context.Background()
	ctrl, _, remote := newRepoController(t, nil)

	// A second clone pushes a commit the first repository doesn't have
	other := t.TempDir()
	testutil.RunGitCommand(t, other, "clone", remote, ".")
	testutil.RunGitCommand(t, other, "config", "user.name", "Test User")
	testutil.RunGitCommand(t, other, "config", "user.email", "test@example.com")
	testutil.CreateCommit(t, other, "shared.md", "from the other clone\n")
	testutil.RunGitCommand(t, other, "push", "origin", "main")

	n, err := ctrl.Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
