package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	syncerrors "github.com/grovetools/autosync/errors"
)

// runGitCommand is a test helper to execute git commands.
func runGitCommand(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s failed with output: %s", strings.Join(args, " "), string(output))
}

// setupGitRepo creates a test git repository.
func setupGitRepo(t *testing.T, dir string) {
	t.Helper()
	runGitCommand(t, dir, "init")
	runGitCommand(t, dir, "config", "user.email", "test@example.com")
	runGitCommand(t, dir, "config", "user.name", "Test User")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestIsRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("non-git directory", func(t *testing.T) {
		client := NewClient(t.TempDir())
		assert.False(t, client.IsRepo(ctx))
	})

	t.Run("git repository", func(t *testing.T) {
		dir := t.TempDir()
		setupGitRepo(t, dir)
		client := NewClient(dir)
		assert.True(t, client.IsRepo(ctx))
	})
}

func TestStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("non-git directory", func(t *testing.T) {
		client := NewClient(t.TempDir())
		_, err := client.Status(ctx)
		require.Error(t, err)
		assert.Equal(t, syncerrors.ErrCodeRepoNotFound, syncerrors.GetCode(err))
	})

	t.Run("clean repo", func(t *testing.T) {
		dir := t.TempDir()
		setupGitRepo(t, dir)
		writeFile(t, dir, "file.txt", "content")
		runGitCommand(t, dir, "add", "file.txt")
		runGitCommand(t, dir, "commit", "-m", "initial commit")

		client := NewClient(dir)
		status, err := client.Status(ctx)
		require.NoError(t, err)
		assert.False(t, status.IsDirty())
		assert.NotEmpty(t, status.Branch)
	})

	t.Run("with changes", func(t *testing.T) {
		dir := t.TempDir()
		setupGitRepo(t, dir)
		writeFile(t, dir, "initial.txt", "initial")
		runGitCommand(t, dir, "add", "initial.txt")
		runGitCommand(t, dir, "commit", "-m", "initial commit")

		writeFile(t, dir, "initial.txt", "modified")
		writeFile(t, dir, "untracked.txt", "untracked")

		client := NewClient(dir)
		status, err := client.Status(ctx)
		require.NoError(t, err)
		assert.True(t, status.IsDirty())
		require.Len(t, status.Files, 2)
		assert.Equal(t, "initial.txt", status.Files[0].Path)
		assert.Equal(t, "M", status.Files[0].Kind)
		assert.Equal(t, "untracked.txt", status.Files[1].Path)
		assert.Equal(t, "U", status.Files[1].Kind)
	})
}

func TestAddCommit(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	setupGitRepo(t, dir)
	client := NewClient(dir)

	writeFile(t, dir, "a.md", "one")
	require.NoError(t, client.AddAll(ctx))
	require.NoError(t, client.Commit(ctx, "first"))

	status, err := client.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.IsDirty())

	t.Run("nothing to commit", func(t *testing.T) {
		err := client.Commit(ctx, "empty")
		assert.Equal(t, ErrNothingToCommit, err)
	})

	t.Run("add respects pathspec", func(t *testing.T) {
		writeFile(t, dir, "b.md", "two")
		writeFile(t, dir, "c.md", "three")
		require.NoError(t, client.Add(ctx, "b.md"))
		require.NoError(t, client.Commit(ctx, "second"))

		status, err := client.Status(ctx)
		require.NoError(t, err)
		require.Len(t, status.Files, 1)
		assert.Equal(t, "c.md", status.Files[0].Path)
	})

	t.Run("add rejects unsafe pathspec", func(t *testing.T) {
		err := client.Add(ctx, "../outside")
		require.Error(t, err)
		assert.Equal(t, syncerrors.ErrCodeInvalidInput, syncerrors.GetCode(err))
	})
}

func TestBranches(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	setupGitRepo(t, dir)
	writeFile(t, dir, "file.txt", "content")
	runGitCommand(t, dir, "add", ".")
	runGitCommand(t, dir, "commit", "-m", "initial")
	runGitCommand(t, dir, "branch", "second")

	client := NewClient(dir)

	info, err := client.BranchLocal(ctx)
	require.NoError(t, err)
	assert.Len(t, info.All, 2)
	assert.Contains(t, info.All, "second")
	assert.Contains(t, info.All, info.Current)

	require.NoError(t, client.Checkout(ctx, "second"))
	current, err := client.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", current)

	t.Run("checkout unknown branch", func(t *testing.T) {
		err := client.Checkout(ctx, "does-not-exist")
		require.Error(t, err)
		assert.Equal(t, syncerrors.ErrCodeCheckoutFailed, syncerrors.GetCode(err))
	})

	t.Run("checkout rejects unsafe ref", func(t *testing.T) {
		err := client.Checkout(ctx, "-rf")
		require.Error(t, err)
		assert.Equal(t, syncerrors.ErrCodeInvalidInput, syncerrors.GetCode(err))
	})
}

func TestPushPull(t *testing.T) {
	ctx := context.Background()
	baseDir := t.TempDir()
	remoteDir := filepath.Join(baseDir, "remote.git")
	localDir := filepath.Join(baseDir, "local")
	otherDir := filepath.Join(baseDir, "other")

	require.NoError(t, os.Mkdir(remoteDir, 0755))
	runGitCommand(t, remoteDir, "init", "--bare", "--initial-branch=main")

	runGitCommand(t, baseDir, "clone", "remote.git", "local")
	setupGitRepo(t, localDir)
	writeFile(t, localDir, "file.txt", "1")
	runGitCommand(t, localDir, "add", ".")
	runGitCommand(t, localDir, "commit", "-m", "c1")
	runGitCommand(t, localDir, "push", "origin", "main")

	local := NewClient(localDir)

	t.Run("remotes", func(t *testing.T) {
		remotes, err := local.Remotes(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"origin"}, remotes)
	})

	t.Run("push", func(t *testing.T) {
		writeFile(t, localDir, "file2.txt", "2")
		require.NoError(t, local.AddAll(ctx))
		require.NoError(t, local.Commit(ctx, "c2"))
		require.NoError(t, local.Push(ctx, "origin", "main"))
	})

	t.Run("pull reports updated files", func(t *testing.T) {
		runGitCommand(t, baseDir, "clone", "remote.git", "other")
		setupGitRepo(t, otherDir)
		writeFile(t, otherDir, "file3.txt", "3")
		runGitCommand(t, otherDir, "add", ".")
		runGitCommand(t, otherDir, "commit", "-m", "c3")
		runGitCommand(t, otherDir, "push", "origin", "main")

		files, err := local.Pull(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"file3.txt"}, files)
	})

	t.Run("pull with nothing new", func(t *testing.T) {
		files, err := local.Pull(ctx)
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("push to missing remote", func(t *testing.T) {
		err := local.Push(ctx, "nosuchremote", "main")
		require.Error(t, err)
	})
}
