package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"asset-size-action/infrastructure/config"
	"asset-size-action/infrastructure/git"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates ` + config.DefaultPath + `.

This command guides you through the project location, build command,
report sections, pull request comments and optional email delivery.
Secrets such as the GitHub token are not stored; pass them through the
environment instead.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath
	}
	return RunSetupWithPrompter(DefaultPrompter, path, DefaultOutput)
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string, out OutputWriter) error {
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm(filepath.Base(configPath)+" already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Fprintln(out, "Setup cancelled.")
			return nil
		}
	}

	fmt.Fprintln(out, "Welcome to asset-size-action setup!")
	fmt.Fprintln(out)

	cfg := &config.Config{}

	if err := promptProject(prompter, cfg); err != nil {
		return err
	}

	if err := promptGitHub(prompter, cfg); err != nil {
		return err
	}

	if err := promptReport(prompter, cfg); err != nil {
		return err
	}

	if err := promptEmail(prompter, cfg); err != nil {
		return err
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Configuration saved to %s\n", configPath)
	return nil
}

func promptProject(prompter Prompter, cfg *config.Config) error {
	dir, err := prompter.Input("Directory of the web application?", ".")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if dir == "" {
		dir = "."
	}
	cfg.Project.Directory = dir

	buildCommand, err := prompter.Input("Production build command?", config.DefaultBuildCommand)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if strings.TrimSpace(buildCommand) == "" {
		return fmt.Errorf("build command is required")
	}
	cfg.Project.BuildCommand = buildCommand

	patterns, err := prompter.Input("Asset patterns (comma separated)?", strings.Join(config.DefaultPatterns, ","))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	for _, p := range strings.Split(patterns, ",") {
		if p = strings.TrimSpace(p); p != "" {
			cfg.Project.Patterns = append(cfg.Project.Patterns, p)
		}
	}
	if len(cfg.Project.Patterns) == 0 {
		return fmt.Errorf("at least one asset pattern is required")
	}

	return nil
}

func promptGitHub(prompter Prompter, cfg *config.Config) error {
	defaultRepo, _ := git.RepositorySlug(cfg.Project.Directory)
	repo, err := prompter.Input("GitHub repository (owner/repo)?", defaultRepo)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if repo != "" && !strings.Contains(repo, "/") {
		return fmt.Errorf("repository must be in owner/repo form")
	}
	cfg.GitHub.Repository = repo

	comment, err := prompter.Confirm("Post the report as a pull request comment?", true)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.GitHub.Comment = &comment

	return nil
}

func promptReport(prompter Prompter, cfg *config.Config) error {
	totals, err := prompter.Confirm("Include total size tables?", true)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Report.ShowTotals = &totals
	cfg.Report.ShowTotalDiffs = &totals

	removed, err := prompter.Confirm("List files that were removed?", true)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Report.ShowRemoved = &removed

	return nil
}

func promptEmail(prompter Prompter, cfg *config.Config) error {
	enabled, err := prompter.Confirm("Email reports?", false)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if !enabled {
		return nil
	}
	cfg.Email.Enabled = true

	credentials, err := prompter.Input("Path to Google service account key?", "service-account.json")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if credentials == "" {
		return fmt.Errorf("service account key is required")
	}
	cfg.Email.CredentialsFile = credentials

	fromName, err := prompter.Input("Display name for outgoing emails?", "Asset Size Bot")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Email.FromName = fromName

	fromAddress, err := prompter.Input("Address to send from?", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if fromAddress == "" {
		return fmt.Errorf("from address is required")
	}
	cfg.Email.FromAddress = fromAddress

	for {
		recipient, err := promptRecipientWithPrompter(prompter)
		if err != nil {
			return err
		}
		cfg.Email.Recipients = append(cfg.Email.Recipients, recipient)

		more, err := prompter.Confirm("Add another recipient?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !more {
			break
		}
	}

	for {
		addCC, err := prompter.Confirm("Add a CC recipient?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !addCC {
			break
		}

		recipient, err := promptRecipientWithPrompter(prompter)
		if err != nil {
			return err
		}
		cfg.Email.CC = append(cfg.Email.CC, recipient)
	}

	return nil
}

func promptRecipientWithPrompter(prompter Prompter) (config.RecipientConfig, error) {
	name, err := prompter.Input("  Full name:", "")
	if err != nil {
		return config.RecipientConfig{}, fmt.Errorf("prompt cancelled")
	}
	if name == "" {
		return config.RecipientConfig{}, fmt.Errorf("name is required")
	}

	address, err := prompter.Input("  Email:", "")
	if err != nil {
		return config.RecipientConfig{}, fmt.Errorf("prompt cancelled")
	}
	if address == "" {
		return config.RecipientConfig{}, fmt.Errorf("email is required")
	}

	return config.RecipientConfig{
		Name:    name,
		Address: address,
	}, nil
}
