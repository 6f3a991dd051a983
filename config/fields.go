package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// fieldAccess pairs a settable field with its read and write logic.
type fieldAccess struct {
	get func(*Settings) string
	set func(*Settings, string) error
}

// fields maps the keys exposed by `autosync config` to Settings fields.
var fields = map[string]fieldAccess{
	"repo_path": {
		get: func(s *Settings) string { return s.RepoPath },
		set: func(s *Settings, v string) error { s.RepoPath = v; return nil },
	},
	"remote": {
		get: func(s *Settings) string { return s.Remote },
		set: func(s *Settings, v string) error {
			if v == "" {
				return fmt.Errorf("remote must not be empty")
			}
			s.Remote = v
			return nil
		},
	},
	"branch": {
		get: func(s *Settings) string { return s.Branch },
		set: func(s *Settings, v string) error { s.Branch = v; return nil },
	},
	"commit_message_template": {
		get: func(s *Settings) string { return s.CommitMessageTemplate },
		set: func(s *Settings, v string) error {
			if v == "" {
				return fmt.Errorf("commit_message_template must not be empty")
			}
			s.CommitMessageTemplate = v
			return nil
		},
	},
	"commit_date_format": {
		get: func(s *Settings) string { return s.CommitDateFormat },
		set: func(s *Settings, v string) error { s.CommitDateFormat = v; return nil },
	},
	"auto_sync_interval_minutes": {
		get: func(s *Settings) string { return strconv.Itoa(s.AutoSyncIntervalMinutes) },
		set: func(s *Settings, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("auto_sync_interval_minutes must be an integer: %q", v)
			}
			s.AutoSyncIntervalMinutes = n
			return nil
		},
	},
	"pull_on_startup": {
		get: func(s *Settings) string { return strconv.FormatBool(s.PullOnStartup) },
		set: setBool(func(s *Settings, v bool) { s.PullOnStartup = v }),
	},
	"push_disabled": {
		get: func(s *Settings) string { return strconv.FormatBool(s.PushDisabled) },
		set: setBool(func(s *Settings, v bool) { s.PushDisabled = v }),
	},
	"notifications_disabled": {
		get: func(s *Settings) string { return strconv.FormatBool(s.NotificationsDisabled) },
		set: setBool(func(s *Settings, v bool) { s.NotificationsDisabled = v }),
	},
	"watch_debounce_seconds": {
		get: func(s *Settings) string { return strconv.Itoa(s.WatchDebounceSeconds) },
		set: func(s *Settings, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("watch_debounce_seconds must be a non-negative integer: %q", v)
			}
			s.WatchDebounceSeconds = n
			return nil
		},
	},
	"watch_ignore_patterns": {
		get: func(s *Settings) string { return strings.Join(s.WatchIgnorePatterns, ",") },
		set: func(s *Settings, v string) error {
			s.WatchIgnorePatterns = nil
			for _, p := range strings.Split(v, ",") {
				if p = strings.TrimSpace(p); p != "" {
					s.WatchIgnorePatterns = append(s.WatchIgnorePatterns, p)
				}
			}
			return nil
		},
	},
}

func setBool(apply func(*Settings, bool)) func(*Settings, string) error {
	return func(s *Settings, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", v)
		}
		apply(s, b)
		return nil
	}
}

// FieldNames returns the settable keys in stable order.
func FieldNames() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetField returns the string form of a settings field.
func (s *Settings) GetField(key string) (string, error) {
	access, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(FieldNames(), ", "))
	}
	return access.get(s), nil
}

// SetField mutates a single settings field from its string form.
func (s *Settings) SetField(key, value string) error {
	access, ok := fields[key]
	if !ok {
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(FieldNames(), ", "))
	}
	return access.set(s, value)
}
