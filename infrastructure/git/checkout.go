package git

import (
	"context"
	"errors"
	"fmt"

	"asset-size-action/domain/build"
	"asset-size-action/infrastructure/logging"
	"asset-size-action/infrastructure/process"
)

// ErrEmptyRef is returned when asked to check out an empty revision
var ErrEmptyRef = errors.New("empty git ref")

// Checkout implements build.Checkout using the git executable
type Checkout struct {
	gitPath string
	remote  string
	runner  process.CommandRunner
}

// CheckoutOption is a functional option for configuring Checkout
type CheckoutOption func(*Checkout)

// WithGitPath sets a custom git executable path
func WithGitPath(path string) CheckoutOption {
	return func(c *Checkout) {
		c.gitPath = path
	}
}

// WithRemote sets the remote commits are fetched from
func WithRemote(remote string) CheckoutOption {
	return func(c *Checkout) {
		c.remote = remote
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner process.CommandRunner) CheckoutOption {
	return func(c *Checkout) {
		c.runner = runner
	}
}

// NewCheckout creates a git-backed checkout
func NewCheckout(opts ...CheckoutOption) *Checkout {
	c := &Checkout{
		gitPath: "git",
		remote:  "origin",
		runner:  &process.ExecCommandRunner{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Checkout fetches ref from the remote and forces the working tree onto it.
// Actions checkouts are shallow, so the base commit is usually not present.
func (c *Checkout) Checkout(ctx context.Context, dir, ref string) error {
	if ref == "" {
		return ErrEmptyRef
	}

	logging.Info("checking out", logging.String("ref", ref), logging.String("dir", dir))

	if err := c.runner.Run(ctx, dir, c.gitPath, "fetch", "--no-tags", "--depth=1", c.remote, ref); err != nil {
		return fmt.Errorf("git fetch %s failed: %w", ref, err)
	}
	if err := c.runner.Run(ctx, dir, c.gitPath, "checkout", "--force", ref); err != nil {
		return fmt.Errorf("git checkout %s failed: %w", ref, err)
	}
	return nil
}

// VerifyInstalled checks that git is available
func (c *Checkout) VerifyInstalled(ctx context.Context) error {
	if _, err := c.runner.Output(ctx, "", c.gitPath, "--version"); err != nil {
		return fmt.Errorf("git not found or not executable: %w", err)
	}
	return nil
}

// Ensure Checkout implements build.Checkout
var _ build.Checkout = (*Checkout)(nil)
