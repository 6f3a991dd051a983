package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// stateDirName is the directory holding autosync's per-repository state.
const stateDirName = ".autosync"

// State holds the persisted controller state as generic key-value pairs.
type State map[string]interface{}

// Store reads and writes the state file for one repository.
type Store struct {
	dir string
}

// NewStore creates a store rooted at the given repository directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the location of the state file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, stateDirName, "state.yml")
}

// Load loads the state from the state file.
// Returns an empty state if the file doesn't exist.
func (s *Store) Load() (State, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return make(State), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}

	if state == nil {
		state = make(State)
	}

	return state, nil
}

// Save saves the state to the state file.
func (s *Store) Save(state State) error {
	path := s.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// Get retrieves a value from the state by key.
func (s *Store) Get(key string) (interface{}, bool, error) {
	state, err := s.Load()
	if err != nil {
		return nil, false, err
	}

	val, ok := state[key]
	return val, ok, nil
}

// GetString is a convenience function to get a string value from state.
// Returns empty string if the key doesn't exist or the value is not a string.
func (s *Store) GetString(key string) (string, error) {
	val, ok, err := s.Get(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", nil
	}

	return str, nil
}

// Set sets a value in the state.
func (s *Store) Set(key string, value interface{}) error {
	state, err := s.Load()
	if err != nil {
		return err
	}

	state[key] = value
	return s.Save(state)
}

// Delete removes a key from the state.
func (s *Store) Delete(key string) error {
	state, err := s.Load()
	if err != nil {
		return err
	}

	delete(state, key)
	return s.Save(state)
}

const lastSyncKey = "last_sync"

// LastSync returns the recorded timestamp of the last sync attempt, or the
// zero time if no sync has ever run.
func (s *Store) LastSync() (time.Time, error) {
	raw, err := s.GetString(lastSyncKey)
	if err != nil || raw == "" {
		return time.Time{}, err
	}

	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse last sync timestamp: %w", err)
	}
	return ts, nil
}

// SetLastSync records the timestamp of a sync attempt.
func (s *Store) SetLastSync(ts time.Time) error {
	return s.Set(lastSyncKey, ts.Format(time.RFC3339))
}
