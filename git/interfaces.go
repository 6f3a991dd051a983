package git

import "context"

// Service defines the version-control operations the sync controller needs.
// The production implementation shells out to the git CLI; tests substitute
// fakes.
type Service interface {
	// IsRepo reports whether the working directory is inside a git repository.
	IsRepo(ctx context.Context) bool

	// Remotes returns the names of the configured remotes.
	Remotes(ctx context.Context) ([]string, error)

	// Status returns the current working-tree status.
	Status(ctx context.Context) (*StatusResult, error)

	// Add stages the files matching the given pathspec.
	Add(ctx context.Context, pathspec string) error

	// AddAll stages every change in the working tree, including deletions.
	AddAll(ctx context.Context) error

	// Commit creates a commit from the staged changes.
	// Returns ErrNothingToCommit if the index is clean.
	Commit(ctx context.Context, message string) error

	// Push pushes the given branch to the given remote.
	Push(ctx context.Context, remote, branch string) error

	// Pull fetches and integrates remote changes, returning the paths of
	// files the pull modified.
	Pull(ctx context.Context) ([]string, error)

	// BranchLocal lists local branches and identifies the current one.
	BranchLocal(ctx context.Context) (*BranchInfo, error)

	// Checkout switches the working tree to the named branch.
	Checkout(ctx context.Context, name string) error

	// CurrentBranch returns the name of the checked-out branch.
	CurrentBranch(ctx context.Context) (string, error)
}
