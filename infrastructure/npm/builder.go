package npm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"asset-size-action/domain/build"
	"asset-size-action/infrastructure/logging"
	"asset-size-action/infrastructure/process"
)

// ErrEmptyBuildCommand is returned when no build command is configured
var ErrEmptyBuildCommand = errors.New("build command is empty")

// Builder implements build.Builder by running a configured shell-free command line
type Builder struct {
	command build.Command
	runner  process.CommandRunner
}

// BuilderOption is a functional option for configuring Builder
type BuilderOption func(*Builder)

// WithBuildRunner sets a custom command runner (for testing)
func WithBuildRunner(runner process.CommandRunner) BuilderOption {
	return func(b *Builder) {
		b.runner = runner
	}
}

// NewBuilder creates a builder for a command line such as "npx ember build -prod"
func NewBuilder(commandLine string, opts ...BuilderOption) (*Builder, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, ErrEmptyBuildCommand
	}

	b := &Builder{
		command: build.Command{Name: fields[0], Args: fields[1:]},
		runner:  &process.ExecCommandRunner{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Command returns the parsed build command
func (b *Builder) Command() build.Command {
	return b.command
}

// Build implements build.Builder
func (b *Builder) Build(ctx context.Context, dir string) error {
	logging.Info("building project",
		logging.String("dir", dir),
		logging.String("command", b.command.String()))

	if err := b.runner.Run(ctx, dir, b.command.Name, b.command.Args...); err != nil {
		return fmt.Errorf("build command %q failed: %w", b.command, err)
	}
	return nil
}

// VerifyInstalled checks that the build executable is available
func (b *Builder) VerifyInstalled(ctx context.Context) error {
	if _, err := b.runner.Output(ctx, "", b.command.Name, "--version"); err != nil {
		return fmt.Errorf("%s not found or not executable: %w", b.command.Name, err)
	}
	return nil
}

// Ensure Builder implements build.Builder
var _ build.Builder = (*Builder)(nil)
