package config

import (
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/grovetools/autosync/errors"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads the settings file at the given path, merged over defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes parses settings from raw yaml, merged over defaults.
// Environment variable references of the form ${VAR} are expanded first.
func LoadFromBytes(data []byte) (*Settings, error) {
	expanded := expandEnvVars(string(data))

	// Unmarshalling over the default struct leaves absent keys at their
	// default values.
	settings := Default()
	if err := yaml.Unmarshal([]byte(expanded), settings); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config file")
	}

	if err := settings.Validate(); err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}

	return settings, nil
}

// LoadFrom loads the settings file from the given directory, falling back to
// defaults when no file exists.
func LoadFrom(dir string) (*Settings, error) {
	path := filepath.Join(dir, DefaultFileName)
	settings, err := Load(path)
	if err != nil {
		if errors.Is(err, errors.ErrCodeConfigNotFound) {
			return Default(), nil
		}
		return nil, err
	}
	return settings, nil
}

// Save writes the full settings record to the given directory. Called after
// every field mutation.
func Save(dir string, settings *Settings) error {
	if err := settings.Validate(); err != nil {
		return errors.ConfigInvalid(err.Error())
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to marshal settings")
	}

	path := filepath.Join(dir, DefaultFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to write settings").
			WithDetail("path", path)
	}

	return nil
}

// expandEnvVars replaces ${VAR} references with environment values. Unknown
// variables expand to the empty string.
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		name := envVarRegex.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}
