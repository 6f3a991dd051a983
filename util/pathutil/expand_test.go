package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Run("tilde", func(t *testing.T) {
		got, err := Expand("~/notes")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "notes"), got)
	})

	t.Run("bare tilde", func(t *testing.T) {
		got, err := Expand("~")
		require.NoError(t, err)
		assert.Equal(t, home, got)
	})

	t.Run("env var", func(t *testing.T) {
		t.Setenv("AUTOSYNC_TEST_DIR", "/tmp/autosync-test")
		got, err := Expand("$AUTOSYNC_TEST_DIR/repo")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/autosync-test/repo", got)
	})

	t.Run("relative made absolute", func(t *testing.T) {
		got, err := Expand("notes")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
	})
}
