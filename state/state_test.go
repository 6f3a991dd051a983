package state

import (
	"os"
	"testing"
	"time"
)

func TestStoreOperations(t *testing.T) {
	store := NewStore(t.TempDir())

	t.Run("Load empty state", func(t *testing.T) {
		state, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if state == nil {
			t.Fatal("Load() returned nil state")
		}
		if len(state) != 0 {
			t.Errorf("Load() returned non-empty state: %v", state)
		}
	})

	t.Run("Set and Get string value", func(t *testing.T) {
		key := "selected.branch"
		value := "main"

		if err := store.Set(key, value); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := store.GetString(key)
		if err != nil {
			t.Fatalf("GetString() error = %v", err)
		}
		if got != value {
			t.Errorf("GetString() = %v, want %v", got, value)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Set("temp", "x"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if err := store.Delete("temp"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		_, ok, err := store.Get("temp")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if ok {
			t.Error("Get() found deleted key")
		}
	})

	t.Run("state file created under .autosync", func(t *testing.T) {
		if _, err := os.Stat(store.Path()); err != nil {
			t.Errorf("expected state file at %s: %v", store.Path(), err)
		}
	})
}

func TestLastSync(t *testing.T) {
	store := NewStore(t.TempDir())

	t.Run("zero when never synced", func(t *testing.T) {
		ts, err := store.LastSync()
		if err != nil {
			t.Fatalf("LastSync() error = %v", err)
		}
		if !ts.IsZero() {
			t.Errorf("LastSync() = %v, want zero time", ts)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		now := time.Now().Truncate(time.Second)
		if err := store.SetLastSync(now); err != nil {
			t.Fatalf("SetLastSync() error = %v", err)
		}

		got, err := store.LastSync()
		if err != nil {
			t.Fatalf("LastSync() error = %v", err)
		}
		if !got.Equal(now) {
			t.Errorf("LastSync() = %v, want %v", got, now)
		}
	})
}
