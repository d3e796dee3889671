//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"asset-size-action/cmd"
	"asset-size-action/infrastructure/config"

	"github.com/cucumber/godog"
)

type configContext struct {
	tempDir    string
	configPath string
	env        map[string]string
	cfg        *config.Config
	loadErr    error
	output     bytes.Buffer
	cmdErr     error
}

// SharedConfigContext is reset before each scenario via Before hook
var SharedConfigContext = &configContext{}

func InitializeConfigScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedConfigContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "config-test-*")
		if err != nil {
			return c, err
		}
		testCtx.tempDir = tempDir
		testCtx.configPath = filepath.Join(tempDir, config.DefaultPath)
		testCtx.env = map[string]string{}
		testCtx.cfg = nil
		testCtx.loadErr = nil
		testCtx.output.Reset()
		testCtx.cmdErr = nil
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		return c, nil
	})

	ctx.Step(`^a configuration file containing:$`, testCtx.aConfigurationFileContaining)
	ctx.Step(`^no configuration file exists$`, testCtx.noConfigurationFileExists)
	ctx.Step(`^the environment variable "([^"]*)" is "([^"]*)"$`, testCtx.theEnvironmentVariableIs)
	ctx.Step(`^I resolve the configuration$`, testCtx.iResolveTheConfiguration)
	ctx.Step(`^the build command should be "([^"]*)"$`, testCtx.theBuildCommandShouldBe)
	ctx.Step(`^the directory should be "([^"]*)"$`, testCtx.theDirectoryShouldBe)
	ctx.Step(`^the patterns should be "([^"]*)"$`, testCtx.thePatternsShouldBe)
	ctx.Step(`^the GitHub token should be "([^"]*)"$`, testCtx.theGitHubTokenShouldBe)
	ctx.Step(`^pull request comments should be (enabled|disabled)$`, testCtx.pullRequestCommentsShouldBe)
	ctx.Step(`^I show the configuration$`, testCtx.iShowTheConfiguration)
	ctx.Step(`^I validate the configuration$`, testCtx.iValidateTheConfiguration)
	ctx.Step(`^the config output should contain "([^"]*)"$`, testCtx.theConfigOutputShouldContain)
	ctx.Step(`^the config output should not contain "([^"]*)"$`, testCtx.theConfigOutputShouldNotContain)
	ctx.Step(`^validation should fail with "([^"]*)"$`, testCtx.validationShouldFailWith)
}

func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root (no go.mod found)")
		}
		dir = parent
	}
}

func (c *configContext) aConfigurationFileContaining(content *godog.DocString) error {
	return os.WriteFile(c.configPath, []byte(content.Content), 0644)
}

func (c *configContext) noConfigurationFileExists() error {
	if _, err := os.Stat(c.configPath); err == nil {
		return fmt.Errorf("config file unexpectedly exists at %s", c.configPath)
	}
	return nil
}

func (c *configContext) theEnvironmentVariableIs(key, value string) error {
	c.env[key] = value
	return nil
}

func (c *configContext) iResolveTheConfiguration() error {
	env := func(key string) string { return c.env[key] }
	c.cfg, c.loadErr = config.Resolve(c.configPath, env)
	if c.loadErr != nil {
		return fmt.Errorf("failed to resolve config: %w", c.loadErr)
	}
	return nil
}

func (c *configContext) theBuildCommandShouldBe(expected string) error {
	if c.cfg.Project.BuildCommand != expected {
		return fmt.Errorf("expected build command %q, got %q", expected, c.cfg.Project.BuildCommand)
	}
	return nil
}

func (c *configContext) theDirectoryShouldBe(expected string) error {
	if c.cfg.Project.Directory != expected {
		return fmt.Errorf("expected directory %q, got %q", expected, c.cfg.Project.Directory)
	}
	return nil
}

func (c *configContext) thePatternsShouldBe(expected string) error {
	if got := strings.Join(c.cfg.Project.Patterns, ","); got != expected {
		return fmt.Errorf("expected patterns %q, got %q", expected, got)
	}
	return nil
}

func (c *configContext) theGitHubTokenShouldBe(expected string) error {
	if c.cfg.GitHub.Token != expected {
		return fmt.Errorf("expected token %q, got %q", expected, c.cfg.GitHub.Token)
	}
	return nil
}

func (c *configContext) pullRequestCommentsShouldBe(state string) error {
	want := state == "enabled"
	if got := config.BoolValue(c.cfg.GitHub.Comment); got != want {
		return fmt.Errorf("expected comments %s, got %v", state, got)
	}
	return nil
}

func (c *configContext) iShowTheConfiguration() error {
	c.cmdErr = cmd.RunConfigShowWithDependencies(c.cfg, &c.output)
	return c.cmdErr
}

func (c *configContext) iValidateTheConfiguration() error {
	c.cmdErr = cmd.RunConfigValidateWithDependencies(c.cfg, &c.output)
	return nil
}

func (c *configContext) theConfigOutputShouldContain(expected string) error {
	if !strings.Contains(c.output.String(), expected) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", expected, c.output.String())
	}
	return nil
}

func (c *configContext) theConfigOutputShouldNotContain(unexpected string) error {
	if strings.Contains(c.output.String(), unexpected) {
		return fmt.Errorf("expected output not to contain %q, got:\n%s", unexpected, c.output.String())
	}
	return nil
}

func (c *configContext) validationShouldFailWith(expected string) error {
	if c.cmdErr == nil {
		return fmt.Errorf("expected validation to fail")
	}
	if !strings.Contains(c.cmdErr.Error(), expected) {
		return fmt.Errorf("expected error containing %q, got %q", expected, c.cmdErr.Error())
	}
	return nil
}
