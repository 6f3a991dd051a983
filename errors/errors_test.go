package errors

import (
	"fmt"
	"testing"
)

func TestSyncError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeRepoNotFound, "not a repository")
	if err.Code != ErrCodeRepoNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeRepoNotFound, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeCommandFailed, "command failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeCommandFailed) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeRepoNotFound) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("path", "/tmp/repo").WithDetail("attempts", 2)
	if detailed.Details["path"] != "/tmp/repo" {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	err := RepoNotFound("/tmp/not-a-repo")
	if err.Code != ErrCodeRepoNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeRepoNotFound, err.Code)
	}
	if err.Details["path"] != "/tmp/not-a-repo" {
		t.Error("RepoNotFound should include path detail")
	}

	err = CheckoutFailed("develop", fmt.Errorf("exit status 1"))
	if err.Code != ErrCodeCheckoutFailed {
		t.Errorf("expected code %s, got %s", ErrCodeCheckoutFailed, err.Code)
	}
	if err.Details["branch"] != "develop" {
		t.Error("CheckoutFailed should include branch detail")
	}
}

func TestPushPullClassification(t *testing.T) {
	cause := fmt.Errorf("exit status 128")

	tests := []struct {
		name   string
		stderr string
		pull   bool
		want   ErrorCode
	}{
		{"push auth", "fatal: Authentication failed for 'https://example.com/repo.git'", false, ErrCodeAuthFailed},
		{"push network", "fatal: unable to access 'https://example.com/repo.git': Could not resolve host", false, ErrCodeNetworkFailed},
		{"pull conflict", "CONFLICT (content): Merge conflict in notes.md\nAutomatic merge failed", true, ErrCodeMergeConflict},
		{"pull auth", "fatal: could not read Username for 'https://example.com'", true, ErrCodeAuthFailed},
		{"pull network", "fatal: Could not read from remote repository", true, ErrCodeNetworkFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err *SyncError
			if tt.pull {
				err = PullFailed(tt.stderr, cause)
			} else {
				err = PushFailed(tt.stderr, cause)
			}
			if err.Code != tt.want {
				t.Errorf("expected code %s, got %s", tt.want, err.Code)
			}
		})
	}
}
