package syncer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T, root string, patterns []string) *Watcher {
	t.Helper()
	ctrl := newTestController(t, newFakeGit(), nil)
	w, err := NewWatcher(ctrl, root, 50*time.Millisecond, patterns)
	require.NoError(t, err)
	t.Cleanup(func() { w.watcher.Close() })
	return w
}

func TestWatcherIgnored(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git", "objects"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "notes"), 0o755))

	w := newTestWatcher(t, root, []string{"build/", "*.tmp"})

	tests := []struct {
		path    string
		ignored bool
	}{
		{root, false},
		{filepath.Join(root, "notes"), false},
		{filepath.Join(root, "notes", "daily.md"), false},
		{filepath.Join(root, ".git"), true},
		{filepath.Join(root, ".git", "objects"), true},
		{filepath.Join(root, ".autosync", "state.yml"), true},
		{filepath.Join(root, "build"), true},
		{filepath.Join(root, "build", "out.bin"), true},
		{filepath.Join(root, "scratch.tmp"), true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ignored, w.ignored(tt.path), "path %s", tt.path)
	}
}

func TestWatcherRejectsBadPattern(t *testing.T) {
	ctrl := newTestController(t, newFakeGit(), nil)
	_, err := NewWatcher(ctrl, t.TempDir(), time.Second, []string{"!"})
	require.Error(t, err)
}
