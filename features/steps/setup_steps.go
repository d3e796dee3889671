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

type setupContext struct {
	tempDir         string
	configPath      string
	setupCancelled  bool
	originalContent string
	output          bytes.Buffer
	err             error
}

var SharedSetupContext = &setupContext{}

// MockPrompter implements cmd.Prompter for testing
type MockPrompter struct {
	inputResponses   []string
	confirmResponses []bool
	inputIndex       int
	confirmIndex     int
}

func NewMockPrompter(inputs []string, confirms []bool) *MockPrompter {
	return &MockPrompter{
		inputResponses:   inputs,
		confirmResponses: confirms,
	}
}

func (m *MockPrompter) Input(message string, defaultValue string) (string, error) {
	if m.inputIndex >= len(m.inputResponses) {
		if defaultValue != "" {
			return defaultValue, nil
		}
		return "", fmt.Errorf("no more input responses available for message: %s", message)
	}
	response := m.inputResponses[m.inputIndex]
	m.inputIndex++
	return response, nil
}

func (m *MockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if m.confirmIndex >= len(m.confirmResponses) {
		return defaultValue, nil
	}
	response := m.confirmResponses[m.confirmIndex]
	m.confirmIndex++
	return response, nil
}

func InitializeSetupScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedSetupContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "setup-test-*")
		if err != nil {
			return c, err
		}
		testCtx.tempDir = tempDir
		testCtx.configPath = filepath.Join(tempDir, "asset-size.yaml")
		testCtx.setupCancelled = false
		testCtx.originalContent = ""
		testCtx.output.Reset()
		testCtx.err = nil
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		return c, nil
	})

	ctx.Step(`^no config file exists for setup$`, testCtx.noConfigFileExistsForSetup)
	ctx.Step(`^a config file already exists for setup$`, testCtx.aConfigFileAlreadyExistsForSetup)
	ctx.Step(`^I run the setup command with inputs:$`, testCtx.iRunTheSetupCommandWithInputs)
	ctx.Step(`^I run the setup command with confirmation "([^"]*)"$`, testCtx.iRunTheSetupCommandWithConfirmation)
	ctx.Step(`^I run the setup command with confirmation "([^"]*)" and inputs:$`, testCtx.iRunTheSetupCommandWithConfirmationAndInputs)
	ctx.Step(`^a config file should exist$`, testCtx.aConfigFileShouldExist)
	ctx.Step(`^the saved config should have build command "([^"]*)"$`, testCtx.theSavedConfigShouldHaveBuildCommand)
	ctx.Step(`^the saved config should have repository "([^"]*)"$`, testCtx.theSavedConfigShouldHaveRepository)
	ctx.Step(`^the saved config should have patterns "([^"]*)"$`, testCtx.theSavedConfigShouldHavePatterns)
	ctx.Step(`^the saved config should (not )?show totals$`, testCtx.theSavedConfigShouldShowTotals)
	ctx.Step(`^the saved config should (not )?send email$`, testCtx.theSavedConfigShouldSendEmail)
	ctx.Step(`^the saved config should have a recipient "([^"]*)"$`, testCtx.theSavedConfigShouldHaveARecipient)
	ctx.Step(`^the saved config should have a CC recipient "([^"]*)"$`, testCtx.theSavedConfigShouldHaveACCRecipient)
	ctx.Step(`^the setup should be cancelled$`, testCtx.theSetupShouldBeCancelled)
	ctx.Step(`^the existing config should be unchanged$`, testCtx.theExistingConfigShouldBeUnchanged)
}

func (s *setupContext) noConfigFileExistsForSetup() error {
	return nil
}

func (s *setupContext) aConfigFileAlreadyExistsForSetup() error {
	content := `project:
  directory: "."
  build_command: "npx ember build -prod"
github:
  repository: "original/app"
`
	s.originalContent = content
	return os.WriteFile(s.configPath, []byte(content), 0644)
}

func (s *setupContext) iRunTheSetupCommandWithInputs(table *godog.Table) error {
	inputs, confirms := parseInputTable(table)
	prompter := NewMockPrompter(inputs, confirms)

	s.err = cmd.RunSetupWithPrompter(prompter, s.configPath, &s.output)
	if s.err != nil {
		return fmt.Errorf("setup command failed: %w", s.err)
	}
	return nil
}

func (s *setupContext) iRunTheSetupCommandWithConfirmation(confirmation string) error {
	confirm := strings.ToLower(confirmation) == "y"
	prompter := NewMockPrompter([]string{}, []bool{confirm})

	s.err = cmd.RunSetupWithPrompter(prompter, s.configPath, &s.output)
	if !confirm {
		s.setupCancelled = true
	}
	return nil
}

func (s *setupContext) iRunTheSetupCommandWithConfirmationAndInputs(confirmation string, table *godog.Table) error {
	confirm := strings.ToLower(confirmation) == "y"
	inputs, confirms := parseInputTable(table)

	// Prepend the overwrite confirmation
	allConfirms := append([]bool{confirm}, confirms...)
	prompter := NewMockPrompter(inputs, allConfirms)

	s.err = cmd.RunSetupWithPrompter(prompter, s.configPath, &s.output)
	if s.err != nil {
		return fmt.Errorf("setup command failed: %w", s.err)
	}
	return nil
}

// yes/no prompts are recognised by their opening word
var confirmPrefixes = []string{"add", "post", "include", "list", "email reports"}

func parseInputTable(table *godog.Table) ([]string, []bool) {
	var inputs []string
	var confirms []bool

	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header row
		}
		prompt := strings.ToLower(row.Cells[0].Value)
		value := row.Cells[1].Value

		isConfirm := false
		for _, p := range confirmPrefixes {
			if strings.HasPrefix(prompt, p) {
				isConfirm = true
				break
			}
		}

		if isConfirm {
			confirms = append(confirms, strings.ToLower(value) == "y")
		} else {
			inputs = append(inputs, value)
		}
	}

	return inputs, confirms
}

func (s *setupContext) loadSaved() (*config.Config, error) {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func (s *setupContext) aConfigFileShouldExist() error {
	if _, err := os.Stat(s.configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file does not exist at %s", s.configPath)
	}
	return nil
}

func (s *setupContext) theSavedConfigShouldHaveBuildCommand(expected string) error {
	cfg, err := s.loadSaved()
	if err != nil {
		return err
	}
	if cfg.Project.BuildCommand != expected {
		return fmt.Errorf("expected build_command %q, got %q", expected, cfg.Project.BuildCommand)
	}
	return nil
}

func (s *setupContext) theSavedConfigShouldHaveRepository(expected string) error {
	cfg, err := s.loadSaved()
	if err != nil {
		return err
	}
	if cfg.GitHub.Repository != expected {
		return fmt.Errorf("expected repository %q, got %q", expected, cfg.GitHub.Repository)
	}
	return nil
}

func (s *setupContext) theSavedConfigShouldHavePatterns(expected string) error {
	cfg, err := s.loadSaved()
	if err != nil {
		return err
	}
	if got := strings.Join(cfg.Project.Patterns, ","); got != expected {
		return fmt.Errorf("expected patterns %q, got %q", expected, got)
	}
	return nil
}

func (s *setupContext) theSavedConfigShouldShowTotals(not string) error {
	cfg, err := s.loadSaved()
	if err != nil {
		return err
	}
	want := not == ""
	if config.BoolValue(cfg.Report.ShowTotals) != want {
		return fmt.Errorf("expected show_totals %v, got %v", want, config.BoolValue(cfg.Report.ShowTotals))
	}
	return nil
}

func (s *setupContext) theSavedConfigShouldSendEmail(not string) error {
	cfg, err := s.loadSaved()
	if err != nil {
		return err
	}
	want := not == ""
	if cfg.Email.Enabled != want {
		return fmt.Errorf("expected email.enabled %v, got %v", want, cfg.Email.Enabled)
	}
	return nil
}

func (s *setupContext) theSavedConfigShouldHaveARecipient(expectedName string) error {
	cfg, err := s.loadSaved()
	if err != nil {
		return err
	}
	for _, r := range cfg.Email.Recipients {
		if r.Name == expectedName {
			return nil
		}
	}
	return fmt.Errorf("recipient %q not found in %v", expectedName, cfg.Email.Recipients)
}

func (s *setupContext) theSavedConfigShouldHaveACCRecipient(expectedName string) error {
	cfg, err := s.loadSaved()
	if err != nil {
		return err
	}
	for _, cc := range cfg.Email.CC {
		if cc.Name == expectedName {
			return nil
		}
	}
	return fmt.Errorf("CC recipient %q not found in %v", expectedName, cfg.Email.CC)
}

func (s *setupContext) theSetupShouldBeCancelled() error {
	if !s.setupCancelled {
		return fmt.Errorf("expected setup to be cancelled")
	}
	if !strings.Contains(s.output.String(), "Setup cancelled.") {
		return fmt.Errorf("expected cancellation message, got %q", s.output.String())
	}
	return nil
}

func (s *setupContext) theExistingConfigShouldBeUnchanged() error {
	content, err := os.ReadFile(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if string(content) != s.originalContent {
		return fmt.Errorf("config content was changed")
	}
	return nil
}
