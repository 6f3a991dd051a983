package errors

import (
	"fmt"
	"os/exec"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *SyncError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *SyncError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// RepoNotFound creates an error for a directory that is not a git repository
func RepoNotFound(path string) *SyncError {
	return New(ErrCodeRepoNotFound, fmt.Sprintf("not a git repository: %s", path)).
		WithDetail("path", path)
}

// NoRemote creates an error for a repository without any configured remote
func NoRemote(path string) *SyncError {
	return New(ErrCodeNoRemote, fmt.Sprintf("repository has no configured remote: %s", path)).
		WithDetail("path", path)
}

// StageFailed creates a staging failure error
func StageFailed(err error) *SyncError {
	return Wrap(err, ErrCodeStageFailed, "failed to stage changes")
}

// CommitFailed creates a commit failure error
func CommitFailed(err error) *SyncError {
	return Wrap(err, ErrCodeCommitFailed, "failed to create commit")
}

// CheckoutFailed creates a checkout failure error
func CheckoutFailed(branch string, err error) *SyncError {
	return Wrap(err, ErrCodeCheckoutFailed, fmt.Sprintf("failed to checkout branch '%s'", branch)).
		WithDetail("branch", branch)
}

// PushFailed classifies a push failure as auth or network based on git's stderr
func PushFailed(stderr string, err error) *SyncError {
	code := ErrCodeNetworkFailed
	if isAuthFailure(stderr) {
		code = ErrCodeAuthFailed
	}
	return Wrap(err, code, "failed to push to remote").WithDetail("stderr", stderr)
}

// PullFailed classifies a pull failure as merge conflict, auth, or network
func PullFailed(stderr string, err error) *SyncError {
	code := ErrCodeNetworkFailed
	switch {
	case isMergeConflict(stderr):
		code = ErrCodeMergeConflict
	case isAuthFailure(stderr):
		code = ErrCodeAuthFailed
	}
	return Wrap(err, code, "failed to pull from remote").WithDetail("stderr", stderr)
}

// SyncInProgress creates an error for a rejected concurrent sync request
func SyncInProgress() *SyncError {
	return New(ErrCodeSyncInProgress, "a sync operation is already in progress")
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *SyncError {
	syncErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		syncErr = syncErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return syncErr
}

// CommandTimeout creates a command timeout error
func CommandTimeout(cmd string, timeout string) *SyncError {
	return New(ErrCodeCommandTimeout,
		fmt.Sprintf("command '%s' did not complete within %s", cmd, timeout)).
		WithDetail("command", cmd).
		WithDetail("timeout", timeout)
}
