package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DefaultFileName is the settings file autosync looks for in the repository root.
const DefaultFileName = "autosync.yml"

// Settings holds the flat configuration record. It is loaded once at startup,
// merged over defaults, and written back in full after each field change.
type Settings struct {
	// RepoPath is the working directory to synchronize. Empty means the
	// current directory.
	RepoPath string `yaml:"repo_path,omitempty" json:"repo_path,omitempty"`

	// Remote is the git remote backups are pushed to.
	Remote string `yaml:"remote" json:"remote"`

	// Branch is the branch selected for sync. Empty means the currently
	// checked-out branch.
	Branch string `yaml:"branch,omitempty" json:"branch,omitempty"`

	// CommitMessageTemplate supports the {{date}}, {{numFiles}} and {{files}}
	// placeholders.
	CommitMessageTemplate string `yaml:"commit_message_template" json:"commit_message_template"`

	// CommitDateFormat is a strftime pattern used by the {{date}} placeholder.
	CommitDateFormat string `yaml:"commit_date_format" json:"commit_date_format"`

	// AutoSyncIntervalMinutes is the backup timer interval. Zero or negative
	// disables the timer.
	AutoSyncIntervalMinutes int `yaml:"auto_sync_interval_minutes" json:"auto_sync_interval_minutes"`

	// PullOnStartup pulls remote changes before the first backup cycle.
	PullOnStartup bool `yaml:"pull_on_startup" json:"pull_on_startup"`

	// PushDisabled commits locally but never pushes.
	PushDisabled bool `yaml:"push_disabled" json:"push_disabled"`

	// NotificationsDisabled suppresses transient user-facing messages.
	NotificationsDisabled bool `yaml:"notifications_disabled" json:"notifications_disabled"`

	// WatchDebounceSeconds is how long the filesystem watcher waits after the
	// last change event before triggering a backup.
	WatchDebounceSeconds int `yaml:"watch_debounce_seconds" json:"watch_debounce_seconds"`

	// WatchIgnorePatterns lists dockerignore-style patterns the filesystem
	// watcher skips. The .git directory is always ignored.
	WatchIgnorePatterns []string `yaml:"watch_ignore_patterns,omitempty" json:"watch_ignore_patterns,omitempty"`

	// Extensions holds tool-specific sections (e.g. "logging") decoded on
	// demand via UnmarshalExtension.
	Extensions map[string]interface{} `yaml:"extensions,omitempty" json:"extensions,omitempty"`
}

// Default returns the settings used when no file exists.
func Default() *Settings {
	return &Settings{
		Remote:                  "origin",
		CommitMessageTemplate:   "backup: {{date}}",
		CommitDateFormat:        "%Y-%m-%d %H:%M:%S",
		AutoSyncIntervalMinutes: 0,
		WatchDebounceSeconds:    5,
	}
}

// Validate checks the settings for values that can never work.
func (s *Settings) Validate() error {
	if s.Remote == "" {
		return fmt.Errorf("remote must not be empty")
	}
	if s.CommitMessageTemplate == "" {
		return fmt.Errorf("commit_message_template must not be empty")
	}
	if s.WatchDebounceSeconds < 0 {
		return fmt.Errorf("watch_debounce_seconds cannot be negative (got %d)", s.WatchDebounceSeconds)
	}
	return nil
}

// AutoSyncEnabled reports whether the interval timer should run.
func (s *Settings) AutoSyncEnabled() bool {
	return s.AutoSyncIntervalMinutes > 0
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded autosync.yml into the provided target struct. The target must be a
// pointer.
func (s *Settings) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := s.Extensions[key]
	if !ok {
		// Not an error; the target struct simply stays zero-valued.
		return nil
	}

	// Decode the generic map[string]interface{} into the strongly-typed
	// target, matching on yaml tags for consistency with the file format.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
