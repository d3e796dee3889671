//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	appbuild "asset-size-action/application/build"
	"asset-size-action/cmd"
	"asset-size-action/domain/assets"
	"asset-size-action/domain/build"
	"asset-size-action/infrastructure/measure"
	"asset-size-action/infrastructure/npm"

	"github.com/cucumber/godog"
)

type measureContext struct {
	projectDir string
	outputPath string
	runner     *recordingRunner
	patterns   []string
	skipBuild  bool
	output     bytes.Buffer
	sizes      assets.SizeMap
	err        error
}

var SharedMeasureContext = &measureContext{}

func InitializeMeasureScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedMeasureContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		dir, err := os.MkdirTemp("", "measure-test-*")
		if err != nil {
			return c, err
		}
		testCtx.projectDir = dir
		testCtx.outputPath = filepath.Join(dir, "sizes.json")
		testCtx.runner = &recordingRunner{output: "8.19.2\n"}
		testCtx.patterns = []string{"dist/assets/**.js", "dist/assets/**.css"}
		testCtx.skipBuild = false
		testCtx.output.Reset()
		testCtx.sizes = nil
		testCtx.err = nil
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.projectDir != "" {
			os.RemoveAll(testCtx.projectDir)
		}
		return c, nil
	})

	ctx.Step(`^the build output contains "([^"]*)" with (\d+) bytes$`, testCtx.theBuildOutputContainsWithBytes)
	ctx.Step(`^the build step is skipped$`, testCtx.theBuildStepIsSkipped)
	ctx.Step(`^I measure the project$`, testCtx.iMeasureTheProject)
	ctx.Step(`^the size report should have (\d+) assets?$`, testCtx.theSizeReportShouldHaveAssets)
	ctx.Step(`^"([^"]*)" should measure (\d+) raw bytes$`, testCtx.shouldMeasureRawBytes)
	ctx.Step(`^"([^"]*)" should compress below its raw size$`, testCtx.shouldCompressBelowItsRawSize)
	ctx.Step(`^"([^"]*)" should not be measured$`, testCtx.shouldNotBeMeasured)
	ctx.Step(`^the build command should have run$`, testCtx.theBuildCommandShouldHaveRun)
	ctx.Step(`^the build command should not have run$`, testCtx.theBuildCommandShouldNotHaveRun)
	ctx.Step(`^the measure output should say "([^"]*)"$`, testCtx.theMeasureOutputShouldSay)
}

func (c *measureContext) theBuildOutputContainsWithBytes(name string, size int) error {
	path := filepath.Join(c.projectDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	// repetitive content so the gzip size is well below the raw size
	content := strings.Repeat("a", size)
	return os.WriteFile(path, []byte(content), 0644)
}

func (c *measureContext) theBuildStepIsSkipped() error {
	c.skipBuild = true
	return nil
}

func (c *measureContext) iMeasureTheProject() error {
	builder, err := npm.NewBuilder("npx ember build -prod", npm.WithBuildRunner(c.runner))
	if err != nil {
		return err
	}

	svc := appbuild.NewService(
		npm.NewDetector(),
		build.Toolchain{NPMVersion: "8.19.2"},
		npm.NewInstaller(npm.WithInstallRunner(c.runner)),
		builder,
		measure.NewMeasurer(c.patterns),
		appbuild.WithSkipBuild(c.skipBuild),
	)

	c.err = cmd.RunMeasureWithDependencies(context.Background(), svc, c.projectDir, c.outputPath, &c.output)
	if c.err != nil {
		return fmt.Errorf("measure failed: %w", c.err)
	}

	data, err := os.ReadFile(c.outputPath)
	if err != nil {
		return fmt.Errorf("failed to read size report: %w", err)
	}
	return json.Unmarshal(data, &c.sizes)
}

func (c *measureContext) theSizeReportShouldHaveAssets(count int) error {
	if len(c.sizes) != count {
		return fmt.Errorf("expected %d assets, got %d: %v", count, len(c.sizes), c.sizes.Keys())
	}
	return nil
}

func (c *measureContext) shouldMeasureRawBytes(name string, raw int) error {
	size, ok := c.sizes[name]
	if !ok {
		return fmt.Errorf("%s was not measured, got %v", name, c.sizes.Keys())
	}
	if size.Raw != int64(raw) {
		return fmt.Errorf("expected %s raw size %d, got %d", name, raw, size.Raw)
	}
	return nil
}

func (c *measureContext) shouldCompressBelowItsRawSize(name string) error {
	size, ok := c.sizes[name]
	if !ok {
		return fmt.Errorf("%s was not measured", name)
	}
	if size.Gzip <= 0 || size.Gzip >= size.Raw {
		return fmt.Errorf("expected 0 < gzip < %d for %s, got %d", size.Raw, name, size.Gzip)
	}
	return nil
}

func (c *measureContext) shouldNotBeMeasured(name string) error {
	if _, ok := c.sizes[name]; ok {
		return fmt.Errorf("%s should not have been measured", name)
	}
	return nil
}

func (c *measureContext) ranBuild() bool {
	for _, command := range c.runner.commands {
		if command == "npx ember build -prod" {
			return true
		}
	}
	return false
}

func (c *measureContext) theBuildCommandShouldHaveRun() error {
	if !c.ranBuild() {
		return fmt.Errorf("expected the build command to run, got %v", c.runner.commands)
	}
	return nil
}

func (c *measureContext) theBuildCommandShouldNotHaveRun() error {
	if c.ranBuild() {
		return fmt.Errorf("expected no build, got %v", c.runner.commands)
	}
	return nil
}

func (c *measureContext) theMeasureOutputShouldSay(expected string) error {
	got := strings.ReplaceAll(c.output.String(), c.outputPath, "<output>")
	if !strings.Contains(got, expected) {
		return fmt.Errorf("expected output to contain %q, got %q", expected, got)
	}
	return nil
}
