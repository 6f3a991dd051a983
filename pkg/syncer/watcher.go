package syncer

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/moby/patternmatcher"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/autosync/errors"
	"github.com/grovetools/autosync/logging"
)

// alwaysIgnored are directories the watcher never descends into.
var alwaysIgnored = []string{".git", ".autosync"}

// Watcher triggers a backup cycle after the working tree has been quiet for
// the debounce period following a change. fsnotify does not watch
// recursively, so every non-ignored subdirectory gets its own watch, and
// newly created directories are added as they appear.
type Watcher struct {
	controller *Controller
	root       string
	debounce   time.Duration
	matcher    *patternmatcher.PatternMatcher
	watcher    *fsnotify.Watcher
	logger     *logrus.Entry
}

// NewWatcher creates a watcher over the repository root. The ignore patterns
// use dockerignore syntax, relative to the root.
func NewWatcher(controller *Controller, root string, debounce time.Duration, ignorePatterns []string) (*Watcher, error) {
	matcher, err := patternmatcher.New(ignorePatterns)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid watch ignore pattern")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create filesystem watcher")
	}

	w := &Watcher{
		controller: controller,
		root:       root,
		debounce:   debounce,
		matcher:    matcher,
		watcher:    fsw,
		logger:     logging.NewLogger("watcher"),
	}

	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// addRecursive watches dir and every non-ignored directory below it.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.WithError(err).Warnf("Failed to watch %s", path)
		}
		return nil
	})
}

// ignored reports whether a path is excluded from watching.
func (w *Watcher) ignored(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." {
		return false
	}

	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		for _, dir := range alwaysIgnored {
			if part == dir {
				return true
			}
		}
	}

	matched, err := w.matcher.MatchesOrParentMatches(filepath.ToSlash(rel))
	if err != nil {
		return false
	}
	return matched
}

// Run processes filesystem events until the context is cancelled. Each burst
// of changes schedules one backup after the debounce period elapses with no
// further events.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.ignored(event.Name) {
				continue
			}

			// Watch directories as they appear
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						w.logger.WithError(err).Warnf("Failed to watch new directory %s", event.Name)
					}
				}
			}

			w.logger.WithField("path", event.Name).Debug("Change detected")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			timer = nil
			if err := w.controller.CreateBackup(ctx); err != nil {
				if errors.Is(err, errors.ErrCodeSyncInProgress) {
					w.logger.Debug("Skipping watch-triggered backup, sync already running")
					continue
				}
				w.logger.WithError(err).Warn("Watch-triggered backup failed")
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("Filesystem watcher error")
		}
	}
}
