package npm

import (
	"context"
	"fmt"

	"asset-size-action/domain/build"
	"asset-size-action/infrastructure/logging"
	"asset-size-action/infrastructure/process"
)

// Installer implements build.Installer by running the planned command
type Installer struct {
	runner process.CommandRunner
}

// InstallerOption is a functional option for configuring Installer
type InstallerOption func(*Installer)

// WithInstallRunner sets a custom command runner (for testing)
func WithInstallRunner(runner process.CommandRunner) InstallerOption {
	return func(i *Installer) {
		i.runner = runner
	}
}

// NewInstaller creates a new dependency installer
func NewInstaller(opts ...InstallerOption) *Installer {
	i := &Installer{runner: &process.ExecCommandRunner{}}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Install implements build.Installer
func (i *Installer) Install(ctx context.Context, dir string, plan build.InstallPlan) error {
	if plan.Warning != "" {
		logging.Warn(plan.Warning, logging.String("dir", dir))
	}
	logging.Info("installing dependencies",
		logging.String("dir", dir),
		logging.String("command", plan.Command.String()))

	if err := i.runner.Run(ctx, dir, plan.Command.Name, plan.Command.Args...); err != nil {
		return fmt.Errorf("%s failed: %w", plan.Command, err)
	}
	return nil
}

// Ensure Installer implements build.Installer
var _ build.Installer = (*Installer)(nil)
