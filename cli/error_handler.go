package cli

import (
	"fmt"
	"os"

	"github.com/grovetools/autosync/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeRepoNotFound:
		fmt.Fprintf(os.Stderr, "❌ Not a git repository. Run 'git init' first, or point --dir at a repository.\n")
		return err

	case errors.ErrCodeNoRemote:
		fmt.Fprintf(os.Stderr, "❌ The repository has no remote configured.\n")
		fmt.Fprintf(os.Stderr, "Add one with 'git remote add origin <url>', or set push_disabled: true in autosync.yml.\n")
		return err

	case errors.ErrCodeConfigInvalid:
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		fmt.Fprintf(os.Stderr, "Check autosync.yml, or inspect values with 'autosync config get'.\n")
		return err

	case errors.ErrCodeAuthFailed:
		fmt.Fprintf(os.Stderr, "❌ Authentication to the remote failed.\n")
		fmt.Fprintf(os.Stderr, "Check your credentials or SSH key, then retry with 'autosync sync'.\n")
		return err

	case errors.ErrCodeMergeConflict:
		fmt.Fprintf(os.Stderr, "❌ Pull produced merge conflicts that need manual resolution.\n")
		fmt.Fprintf(os.Stderr, "Resolve the conflicts in the repository, commit, then run 'autosync sync'.\n")
		return err

	case errors.ErrCodeNetworkFailed:
		fmt.Fprintf(os.Stderr, "❌ Could not reach the remote. Changes stay committed locally.\n")
		fmt.Fprintf(os.Stderr, "They will be pushed on the next successful sync.\n")
		return err

	case errors.ErrCodeSyncInProgress:
		fmt.Fprintf(os.Stderr, "❌ A sync is already running. Wait for it to finish and retry.\n")
		return err

	case errors.ErrCodeCommandNotFound:
		fmt.Fprintf(os.Stderr, "❌ The git executable was not found on PATH.\n")
		return err

	case errors.ErrCodeCommandTimeout:
		if syncErr, ok := err.(*errors.SyncError); ok {
			fmt.Fprintf(os.Stderr, "❌ Command '%s' did not complete within %s\n",
				syncErr.Details["command"], syncErr.Details["timeout"])
		} else {
			fmt.Fprintf(os.Stderr, "❌ A git command timed out.\n")
		}
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		if h.Verbose {
			if syncErr, ok := err.(*errors.SyncError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", syncErr.ToJSON())
			}
		}
		return err
	}
}
