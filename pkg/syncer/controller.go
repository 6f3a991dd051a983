package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/autosync/config"
	"github.com/grovetools/autosync/errors"
	"github.com/grovetools/autosync/git"
	"github.com/grovetools/autosync/logging"
	"github.com/grovetools/autosync/notify"
	"github.com/grovetools/autosync/state"
)

// Options configures a Controller. Git and Settings are required.
type Options struct {
	Git      git.Service
	Settings *config.Settings
	Notifier notify.Notifier
	Store    *state.Store
	Logger   *logrus.Entry
	Now      func() time.Time
}

// Controller sequences version-control operations into backup and pull
// cycles and reports progress. All dependencies are injected; there are no
// package-level singletons.
//
// The controller is non-reentrant: while one cycle is running, further
// requests are rejected with ErrCodeSyncInProgress rather than queued.
type Controller struct {
	git      git.Service
	settings *config.Settings
	notifier notify.Notifier
	store    *state.Store
	logger   *logrus.Entry
	now      func() time.Time

	// busy serializes cycles; TryLock rejection implements the
	// non-reentrant guard.
	busy sync.Mutex

	mu       sync.Mutex
	state    State
	lastSync time.Time

	timerMu   sync.Mutex
	timerStop chan struct{}
}

// New creates a controller from the given options.
func New(opts Options) (*Controller, error) {
	if opts.Git == nil {
		return nil, fmt.Errorf("syncer: git service is required")
	}
	if opts.Settings == nil {
		return nil, fmt.Errorf("syncer: settings are required")
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Silent{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger("syncer")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &Controller{
		git:      opts.Git,
		settings: opts.Settings,
		notifier: opts.Notifier,
		store:    opts.Store,
		logger:   opts.Logger,
		now:      opts.Now,
		state:    StateIdle,
	}

	if c.store != nil {
		if last, err := c.store.LastSync(); err == nil {
			c.lastSync = last
		} else {
			c.logger.WithError(err).Warn("Failed to load last sync timestamp")
		}
	}

	return c, nil
}

// State returns the controller's current position in a sync cycle.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastSync returns the timestamp of the last sync attempt, zero if none.
func (c *Controller) LastSync() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSync
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	c.logger.WithField("state", s.String()).Debug("State changed")
}

// recordSync stamps the current time as the last sync attempt. The timestamp
// reflects "last attempt", not "last success".
func (c *Controller) recordSync() {
	ts := c.now()
	c.mu.Lock()
	c.lastSync = ts
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.SetLastSync(ts); err != nil {
			c.logger.WithError(err).Warn("Failed to persist last sync timestamp")
		}
	}
}

// CheckRepo verifies the working directory is a repository with at least one
// remote. Called once at startup; failure aborts the whole run.
func (c *Controller) CheckRepo(ctx context.Context) error {
	if !c.git.IsRepo(ctx) {
		return errors.RepoNotFound(c.settings.RepoPath)
	}

	remotes, err := c.git.Remotes(ctx)
	if err != nil {
		return err
	}
	if len(remotes) == 0 {
		return errors.NoRemote(c.settings.RepoPath)
	}
	return nil
}

// ChangedFiles queries the working-tree status and returns the changed files
// in the order git reported them. No side effects beyond the state
// transition.
func (c *Controller) ChangedFiles(ctx context.Context) ([]git.ChangeRecord, error) {
	if !c.busy.TryLock() {
		return nil, errors.SyncInProgress()
	}
	defer c.busy.Unlock()
	defer c.setState(StateIdle)

	return c.changedFiles(ctx)
}

func (c *Controller) changedFiles(ctx context.Context) ([]git.ChangeRecord, error) {
	c.setState(StateCheckingStatus)
	status, err := c.git.Status(ctx)
	if err != nil {
		return nil, err
	}
	return status.Files, nil
}

// StageAll stages every change in the working tree.
func (c *Controller) StageAll(ctx context.Context) error {
	if !c.busy.TryLock() {
		return errors.SyncInProgress()
	}
	defer c.busy.Unlock()
	defer c.setState(StateIdle)

	return c.stageAll(ctx)
}

func (c *Controller) stageAll(ctx context.Context) error {
	c.setState(StateStaging)
	if err := c.git.AddAll(ctx); err != nil {
		c.notifier.Error("Failed to stage changes", err)
		return err
	}
	return nil
}

// Commit commits the staged changes with a message formatted from the
// current settings and a fresh status snapshot.
func (c *Controller) Commit(ctx context.Context) error {
	if !c.busy.TryLock() {
		return errors.SyncInProgress()
	}
	defer c.busy.Unlock()
	defer c.setState(StateIdle)

	snapshot, err := c.changedFiles(ctx)
	if err != nil {
		return err
	}
	return c.commit(ctx, snapshot)
}

func (c *Controller) commit(ctx context.Context, snapshot []git.ChangeRecord) error {
	c.setState(StateCommitting)
	message := FormatMessage(c.settings.CommitMessageTemplate, c.settings.CommitDateFormat, snapshot, c.now())

	if err := c.git.Commit(ctx, message); err != nil {
		if err == git.ErrNothingToCommit {
			c.notifier.Warn("Nothing staged to commit")
			return err
		}
		c.notifier.Error("Failed to commit changes", err)
		return err
	}

	c.logger.WithField("message", message).Info("Created commit")
	return nil
}

// Push pushes the selected branch to the configured remote. The last sync
// timestamp is updated whether or not the push succeeds.
func (c *Controller) Push(ctx context.Context) error {
	if !c.busy.TryLock() {
		return errors.SyncInProgress()
	}
	defer c.busy.Unlock()
	defer c.setState(StateIdle)

	return c.push(ctx)
}

func (c *Controller) push(ctx context.Context) error {
	c.setState(StatePushing)
	defer c.recordSync()

	branch := c.settings.Branch
	if branch == "" {
		current, err := c.git.CurrentBranch(ctx)
		if err != nil {
			c.notifier.Error("Failed to determine current branch", err)
			return err
		}
		branch = current
	}

	if err := c.git.Push(ctx, c.settings.Remote, branch); err != nil {
		c.notifier.Error("Failed to push to "+c.settings.Remote, err)
		return err
	}
	return nil
}

// Pull fetches remote changes and reports how many files they touched. The
// last sync timestamp is updated whether or not the pull succeeds.
func (c *Controller) Pull(ctx context.Context) (int, error) {
	if !c.busy.TryLock() {
		return 0, errors.SyncInProgress()
	}
	defer c.busy.Unlock()
	defer c.setState(StateIdle)

	c.setState(StatePulling)
	defer c.recordSync()

	files, err := c.git.Pull(ctx)
	if err != nil {
		c.notifier.Error("Failed to pull from remote", err)
		return 0, err
	}

	if len(files) > 0 {
		c.notifier.Success(fmt.Sprintf("Pulled %d files from remote", len(files)))
	}
	return len(files), nil
}

// CreateBackup runs one full backup cycle: status, stage, commit, and push
// unless pushing is disabled. With nothing to back up it returns without
// committing. Operational failures inside the cycle are reported through the
// notifier; only a rejected concurrent request or a status failure surfaces
// as an error. The controller always ends the cycle idle.
func (c *Controller) CreateBackup(ctx context.Context) error {
	if !c.busy.TryLock() {
		return errors.SyncInProgress()
	}
	defer c.busy.Unlock()
	defer c.setState(StateIdle)

	files, err := c.changedFiles(ctx)
	if err != nil {
		c.notifier.Error("Failed to check repository status", err)
		return err
	}

	if len(files) == 0 {
		c.logger.Debug("No changes to back up")
		return nil
	}

	// From here on the cycle counts as a sync attempt.
	defer c.recordSync()

	if err := c.stageAll(ctx); err != nil {
		// A failed stage makes the commit meaningless; abort the cycle.
		return nil
	}

	if err := c.commit(ctx, files); err != nil {
		return nil
	}
	c.notifier.Success(fmt.Sprintf("Committed %d files", len(files)))

	if c.settings.PushDisabled {
		c.logger.Debug("Push disabled, skipping")
		return nil
	}

	if err := c.push(ctx); err != nil {
		// Already reported; the cycle still ends idle.
		return nil
	}
	c.notifier.Success(fmt.Sprintf("Pushed %d files to remote", len(files)))

	return nil
}

// StartAutoSync arms the recurring backup timer. An already-armed timer is
// cancelled first, so repeated calls re-arm rather than accumulate.
// Intervals of zero or less only stop the timer.
func (c *Controller) StartAutoSync(intervalMinutes int) {
	c.startAutoSyncEvery(time.Duration(intervalMinutes) * time.Minute)
}

func (c *Controller) startAutoSyncEvery(interval time.Duration) {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()

	c.stopTimerLocked()
	if interval <= 0 {
		return
	}

	stop := make(chan struct{})
	c.timerStop = stop
	c.logger.WithField("interval", interval.String()).Info("Auto sync armed")

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if err := c.CreateBackup(context.Background()); err != nil {
					if errors.Is(err, errors.ErrCodeSyncInProgress) {
						c.logger.Debug("Skipping scheduled backup, sync already running")
						continue
					}
					c.logger.WithError(err).Warn("Scheduled backup failed")
				}
			}
		}
	}()
}

// StopAutoSync cancels the backup timer. It reports whether a timer was
// actually cancelled.
func (c *Controller) StopAutoSync() bool {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()
	return c.stopTimerLocked()
}

func (c *Controller) stopTimerLocked() bool {
	if c.timerStop == nil {
		return false
	}
	close(c.timerStop)
	c.timerStop = nil
	c.logger.Info("Auto sync stopped")
	return true
}

// AutoSyncActive reports whether the backup timer is armed.
func (c *Controller) AutoSyncActive() bool {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()
	return c.timerStop != nil
}
