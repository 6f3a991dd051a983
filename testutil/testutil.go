// Package testutil provides git repository fixtures for integration tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// RequireGit skips the test if the git executable is not available.
func RequireGit(t *testing.T) {
	t.Helper()

	if err := exec.Command("git", "version").Run(); err != nil {
		t.Skip("git not available")
	}
}

// RunGitCommand runs a git command in the given directory
func RunGitCommand(t *testing.T, dir string, args ...string) {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to run git %v: %v\n%s", args, err, out)
	}
}

// InitGitRepo initializes a git repository with one commit on main.
func InitGitRepo(t *testing.T, dir string) {
	t.Helper()

	RunGitCommand(t, dir, "init")
	RunGitCommand(t, dir, "config", "user.name", "Test User")
	RunGitCommand(t, dir, "config", "user.email", "test@example.com")

	WriteFile(t, dir, "README.md", "# Test Project\n")
	RunGitCommand(t, dir, "add", ".")
	RunGitCommand(t, dir, "commit", "-m", "Initial commit")

	// Normalize the branch name across git versions
	RunGitCommand(t, dir, "branch", "-m", "main")
}

// InitBareRemote creates a bare repository and wires it up as the given
// repository's origin remote, with main tracking it.
func InitBareRemote(t *testing.T, repoDir string) string {
	t.Helper()

	remoteDir := t.TempDir()
	RunGitCommand(t, remoteDir, "init", "--bare")
	// Normalize the remote's default branch across git versions so clones
	// check out main.
	RunGitCommand(t, remoteDir, "symbolic-ref", "HEAD", "refs/heads/main")
	RunGitCommand(t, repoDir, "remote", "add", "origin", remoteDir)
	RunGitCommand(t, repoDir, "push", "-u", "origin", "main")
	return remoteDir
}

// WriteFile writes content to a file under dir, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to create file %s: %v", name, err)
	}
	return path
}

// CreateCommit creates a file and commits it
func CreateCommit(t *testing.T, dir, filename, content string) {
	t.Helper()

	WriteFile(t, dir, filename, content)
	RunGitCommand(t, dir, "add", filename)
	RunGitCommand(t, dir, "commit", "-m", "Add "+filename)
}

// CreateBranch creates and checks out a new git branch
func CreateBranch(t *testing.T, dir, branch string) {
	t.Helper()

	RunGitCommand(t, dir, "checkout", "-b", branch)
}

// HeadMessage returns the subject line of the repository's HEAD commit.
func HeadMessage(t *testing.T, dir string) string {
	t.Helper()

	cmd := exec.Command("git", "log", "-1", "--pretty=%s")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("Failed to read HEAD message: %v", err)
	}
	return string(out[:len(out)-1])
}
