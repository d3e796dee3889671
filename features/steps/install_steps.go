//go:build integration

package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"asset-size-action/domain/build"
	"asset-size-action/infrastructure/npm"

	"github.com/cucumber/godog"
)

// recordingRunner implements process.CommandRunner without executing anything
type recordingRunner struct {
	commands []string
	output   string
}

func (r *recordingRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	r.commands = append(r.commands, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return nil
}

func (r *recordingRunner) Output(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	r.commands = append(r.commands, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return []byte(r.output), nil
}

type installContext struct {
	projectDir string
	runner     *recordingRunner
	toolchain  build.Toolchain
	plan       build.InstallPlan
}

var SharedInstallContext = &installContext{}

func InitializeInstallScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedInstallContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		dir, err := os.MkdirTemp("", "install-test-*")
		if err != nil {
			return c, err
		}
		testCtx.projectDir = dir
		testCtx.runner = &recordingRunner{}
		testCtx.toolchain = build.Toolchain{}
		testCtx.plan = build.InstallPlan{}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.projectDir != "" {
			os.RemoveAll(testCtx.projectDir)
		}
		return c, nil
	})

	ctx.Step(`^a project with a yarn lockfile$`, testCtx.aProjectWithAYarnLockfile)
	ctx.Step(`^a project with an npm lockfile version (\d+)$`, testCtx.aProjectWithAnNpmLockfileVersion)
	ctx.Step(`^a project without a lockfile$`, testCtx.aProjectWithoutALockfile)
	ctx.Step(`^npm reports version "([^"]*)"$`, testCtx.npmReportsVersion)
	ctx.Step(`^I install the dependencies$`, testCtx.iInstallTheDependencies)
	ctx.Step(`^the command "([^"]*)" should have run$`, testCtx.theCommandShouldHaveRun)
	ctx.Step(`^the install should (not )?warn about the missing lockfile$`, testCtx.theInstallShouldWarnAboutTheMissingLockfile)
}

func (c *installContext) aProjectWithAYarnLockfile() error {
	return os.WriteFile(filepath.Join(c.projectDir, "yarn.lock"), []byte("# yarn lockfile v1\n"), 0644)
}

func (c *installContext) aProjectWithAnNpmLockfileVersion(version int) error {
	content := fmt.Sprintf(`{"name": "app", "lockfileVersion": %d, "requires": true}`, version)
	return os.WriteFile(filepath.Join(c.projectDir, "package-lock.json"), []byte(content), 0644)
}

func (c *installContext) aProjectWithoutALockfile() error {
	return nil
}

func (c *installContext) npmReportsVersion(version string) error {
	c.runner.output = version + "\n"
	tc, err := npm.DetectToolchain(context.Background(), c.runner)
	if err != nil {
		return err
	}
	c.toolchain = tc
	c.runner.commands = nil
	return nil
}

func (c *installContext) iInstallTheDependencies() error {
	lock, err := npm.NewDetector().Detect(c.projectDir)
	if err != nil {
		return fmt.Errorf("lockfile detection failed: %w", err)
	}
	c.plan = build.PlanInstall(lock, c.toolchain)

	installer := npm.NewInstaller(npm.WithInstallRunner(c.runner))
	return installer.Install(context.Background(), c.projectDir, c.plan)
}

func (c *installContext) theCommandShouldHaveRun(expected string) error {
	if len(c.runner.commands) != 1 || c.runner.commands[0] != expected {
		return fmt.Errorf("expected only %q to run, got %v", expected, c.runner.commands)
	}
	return nil
}

func (c *installContext) theInstallShouldWarnAboutTheMissingLockfile(not string) error {
	warned := c.plan.Warning == build.NoLockfileWarning
	if not == "" && !warned {
		return fmt.Errorf("expected a missing lockfile warning")
	}
	if not != "" && warned {
		return fmt.Errorf("unexpected warning %q", c.plan.Warning)
	}
	return nil
}
