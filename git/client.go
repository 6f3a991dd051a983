package git

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/grovetools/autosync/command"
	"github.com/grovetools/autosync/errors"
)

// ErrNothingToCommit is returned by Commit when the index is clean.
var ErrNothingToCommit = errors.New(errors.ErrCodeCommitFailed, "nothing to commit")

// Client implements Service by shelling out to the git CLI.
type Client struct {
	dir        string
	cmdBuilder *command.SafeBuilder
}

// Ensure it implements the interface
var _ Service = (*Client)(nil)

// NewClient creates a git client rooted at the given working directory.
func NewClient(dir string) *Client {
	return &Client{
		dir:        dir,
		cmdBuilder: command.NewSafeBuilder(),
	}
}

// NewClientWithExecutor creates a git client with a custom command executor.
func NewClientWithExecutor(dir string, exec command.Executor) *Client {
	return &Client{
		dir:        dir,
		cmdBuilder: command.NewSafeBuilderWithExecutor(exec),
	}
}

// Dir returns the working directory this client operates on.
func (c *Client) Dir() string {
	return c.dir
}

// run executes a git subcommand in the client directory, capturing stdout and
// stderr separately so transport failures can be classified.
func (c *Client) run(ctx context.Context, args ...string) (stdout string, stderr string, err error) {
	cmd, err := c.cmdBuilder.Build(ctx, "git", args...)
	if err != nil {
		return "", "", fmt.Errorf("failed to build command: %w", err)
	}

	execCmd := cmd.Exec()
	execCmd.Dir = c.dir

	var outBuf, errBuf bytes.Buffer
	execCmd.Stdout = &outBuf
	execCmd.Stderr = &errBuf

	err = execCmd.Run()
	return outBuf.String(), errBuf.String(), err
}

// IsRepo checks whether the client directory is inside a git work tree.
func (c *Client) IsRepo(ctx context.Context) bool {
	_, _, err := c.run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil
}

// Remotes returns the names of the configured remotes.
func (c *Client) Remotes(ctx context.Context) ([]string, error) {
	out, stderr, err := c.run(ctx, "remote")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCommandFailed, "failed to list remotes").
			WithDetail("stderr", stderr)
	}

	var remotes []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			remotes = append(remotes, line)
		}
	}
	return remotes, nil
}

// Status returns the parsed working-tree status.
func (c *Client) Status(ctx context.Context) (*StatusResult, error) {
	out, stderr, err := c.run(ctx, "status", "--porcelain=v2", "--branch")
	if err != nil {
		if strings.Contains(stderr, "not a git repository") {
			return nil, errors.RepoNotFound(c.dir)
		}
		return nil, errors.Wrap(err, errors.ErrCodeCommandFailed, "failed to get status").
			WithDetail("stderr", stderr)
	}

	return parseStatus(out), nil
}

// Add stages the files matching the given pathspec.
func (c *Client) Add(ctx context.Context, pathspec string) error {
	if err := c.cmdBuilder.Validate("pathSpec", pathspec); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid pathspec")
	}

	_, stderr, err := c.run(ctx, "add", "--", pathspec)
	if err != nil {
		return errors.StageFailed(err).WithDetail("stderr", stderr)
	}
	return nil
}

// AddAll stages every change in the working tree, including deletions.
func (c *Client) AddAll(ctx context.Context) error {
	_, stderr, err := c.run(ctx, "add", "-A")
	if err != nil {
		return errors.StageFailed(err).WithDetail("stderr", stderr)
	}
	return nil
}

// Commit creates a commit from the staged changes.
func (c *Client) Commit(ctx context.Context, message string) error {
	out, stderr, err := c.run(ctx, "commit", "-m", message)
	if err != nil {
		// git exits non-zero when the index is clean
		if strings.Contains(out, "nothing to commit") || strings.Contains(stderr, "nothing to commit") {
			return ErrNothingToCommit
		}
		return errors.CommitFailed(err).WithDetail("stderr", stderr)
	}
	return nil
}

// Push pushes the given branch to the given remote.
func (c *Client) Push(ctx context.Context, remote, branch string) error {
	if err := c.cmdBuilder.Validate("remoteName", remote); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid remote name")
	}
	if err := c.cmdBuilder.Validate("gitRef", branch); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid branch name")
	}

	_, stderr, err := c.run(ctx, "push", remote, branch)
	if err != nil {
		return errors.PushFailed(stderr, err)
	}
	return nil
}

// Pull fetches and integrates remote changes. The returned slice holds the
// paths of files the pull modified, determined by diffing HEAD before and
// after.
func (c *Client) Pull(ctx context.Context) ([]string, error) {
	before, _, _ := c.run(ctx, "rev-parse", "HEAD")
	before = strings.TrimSpace(before)

	_, stderr, err := c.run(ctx, "pull")
	if err != nil {
		return nil, errors.PullFailed(stderr, err)
	}

	after, _, _ := c.run(ctx, "rev-parse", "HEAD")
	after = strings.TrimSpace(after)

	if before == "" || after == "" || before == after {
		return nil, nil
	}

	out, _, err := c.run(ctx, "diff", "--name-only", before, after)
	if err != nil {
		// The pull itself succeeded; report it as zero known files rather
		// than failing the operation.
		return nil, nil
	}

	var files []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// BranchLocal lists local branches and identifies the current one.
func (c *Client) BranchLocal(ctx context.Context) (*BranchInfo, error) {
	out, stderr, err := c.run(ctx, "branch", "--list", "--format=%(refname:short)")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCommandFailed, "failed to list branches").
			WithDetail("stderr", stderr)
	}

	info := &BranchInfo{}
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			info.All = append(info.All, line)
		}
	}

	current, err := c.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	info.Current = current

	return info, nil
}

// Checkout switches the working tree to the named branch.
func (c *Client) Checkout(ctx context.Context, name string) error {
	if err := c.cmdBuilder.Validate("gitRef", name); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid branch name")
	}

	_, stderr, err := c.run(ctx, "checkout", name)
	if err != nil {
		return errors.CheckoutFailed(name, err).WithDetail("stderr", stderr)
	}
	return nil
}

// CurrentBranch returns the name of the checked-out branch.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	out, stderr, err := c.run(ctx, "branch", "--show-current")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeCommandFailed, "failed to get current branch").
			WithDetail("stderr", stderr)
	}
	return strings.TrimSpace(out), nil
}
