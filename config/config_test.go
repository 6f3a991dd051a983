package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/autosync/errors"
	"github.com/grovetools/autosync/logging"
)

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, "origin", s.Remote)
	assert.Equal(t, "backup: {{date}}", s.CommitMessageTemplate)
	assert.False(t, s.AutoSyncEnabled(), "auto sync should be disabled by default")
	require.NoError(t, s.Validate())
}

func TestLoadFromBytes(t *testing.T) {
	t.Run("absent keys keep defaults", func(t *testing.T) {
		s, err := LoadFromBytes([]byte("auto_sync_interval_minutes: 15\n"))
		require.NoError(t, err)
		assert.Equal(t, 15, s.AutoSyncIntervalMinutes)
		assert.True(t, s.AutoSyncEnabled())
		assert.Equal(t, "origin", s.Remote)
		assert.Equal(t, "%Y-%m-%d %H:%M:%S", s.CommitDateFormat)
	})

	t.Run("all fields", func(t *testing.T) {
		raw := `
remote: backup
branch: sync
commit_message_template: "sync {{numFiles}} files"
push_disabled: true
pull_on_startup: true
notifications_disabled: true
watch_debounce_seconds: 10
watch_ignore_patterns:
  - "*.tmp"
  - ".obsidian/cache/**"
`
		s, err := LoadFromBytes([]byte(raw))
		require.NoError(t, err)
		assert.Equal(t, "backup", s.Remote)
		assert.Equal(t, "sync", s.Branch)
		assert.True(t, s.PushDisabled)
		assert.True(t, s.PullOnStartup)
		assert.True(t, s.NotificationsDisabled)
		assert.Equal(t, []string{"*.tmp", ".obsidian/cache/**"}, s.WatchIgnorePatterns)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("SYNC_REMOTE", "mirror")
		s, err := LoadFromBytes([]byte("remote: ${SYNC_REMOTE}\n"))
		require.NoError(t, err)
		assert.Equal(t, "mirror", s.Remote)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := LoadFromBytes([]byte("remote: [unclosed\n"))
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeConfigInvalid, errors.GetCode(err))
	})

	t.Run("empty remote rejected", func(t *testing.T) {
		_, err := LoadFromBytes([]byte("remote: \"\"\n"))
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeConfigInvalid, errors.GetCode(err))
	})
}

func TestLoadFromAndSave(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		s, err := LoadFrom(dir)
		require.NoError(t, err)
		assert.Equal(t, Default(), s)
	})

	t.Run("save then load round-trips", func(t *testing.T) {
		s := Default()
		s.AutoSyncIntervalMinutes = 30
		s.PushDisabled = true
		require.NoError(t, Save(dir, s))

		loaded, err := LoadFrom(dir)
		require.NoError(t, err)
		assert.Equal(t, 30, loaded.AutoSyncIntervalMinutes)
		assert.True(t, loaded.PushDisabled)

		_, err = os.Stat(filepath.Join(dir, DefaultFileName))
		require.NoError(t, err)
	})
}

func TestFieldAccess(t *testing.T) {
	s := Default()

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, s.SetField("auto_sync_interval_minutes", "5"))
		assert.Equal(t, 5, s.AutoSyncIntervalMinutes)

		require.NoError(t, s.SetField("push_disabled", "true"))
		assert.True(t, s.PushDisabled)

		got, err := s.GetField("push_disabled")
		require.NoError(t, err)
		assert.Equal(t, "true", got)
	})

	t.Run("unknown key", func(t *testing.T) {
		require.Error(t, s.SetField("no_such_key", "x"))
		_, err := s.GetField("no_such_key")
		require.Error(t, err)
	})

	t.Run("bad values rejected", func(t *testing.T) {
		require.Error(t, s.SetField("auto_sync_interval_minutes", "soon"))
		require.Error(t, s.SetField("push_disabled", "maybe"))
		require.Error(t, s.SetField("remote", ""))
	})

	t.Run("ignore patterns parse as list", func(t *testing.T) {
		require.NoError(t, s.SetField("watch_ignore_patterns", "*.tmp, build/**"))
		assert.Equal(t, []string{"*.tmp", "build/**"}, s.WatchIgnorePatterns)
	})
}

func TestUnmarshalExtension(t *testing.T) {
	raw := `
extensions:
  logging:
    level: debug
    format:
      preset: json
`
	s, err := LoadFromBytes([]byte(raw))
	require.NoError(t, err)

	var logCfg logging.Config
	require.NoError(t, s.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "debug", logCfg.Level)
	assert.Equal(t, "json", logCfg.Format.Preset)

	t.Run("missing key leaves target zero-valued", func(t *testing.T) {
		var other struct {
			Value string `yaml:"value"`
		}
		require.NoError(t, s.UnmarshalExtension("unknown", &other))
		assert.Empty(t, other.Value)
	})
}
