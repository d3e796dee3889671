// Package process runs external commands for the build and git adapters.
package process

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// CommandRunner defines the interface for running external commands in a directory.
// This allows mocking exec.Command in tests
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
	Output(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecCommandRunner is the production implementation using os/exec
type ExecCommandRunner struct {
	// Stdout receives the child's output from Run. Defaults to os.Stderr so
	// build noise never mixes with report output on stdout.
	Stdout io.Writer
}

// Run executes a command, streaming its output
func (r *ExecCommandRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = r.stdout()
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Output executes a command and returns its output
func (r *ExecCommandRunner) Output(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.Output()
}

func (r *ExecCommandRunner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stderr
}
