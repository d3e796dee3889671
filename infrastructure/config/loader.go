package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the config file is looked up when --config is not given
const DefaultPath = "asset-size.yaml"

// Config represents the complete application configuration
type Config struct {
	Project ProjectConfig `yaml:"project"`
	GitHub  GitHubConfig  `yaml:"github"`
	Report  ReportConfig  `yaml:"report"`
	Outputs OutputsConfig `yaml:"outputs"`
	Email   EmailConfig   `yaml:"email"`
	Logging LoggingConfig `yaml:"logging"`
}

// ProjectConfig describes the web application being measured
type ProjectConfig struct {
	Directory    string   `yaml:"directory"`
	BuildCommand string   `yaml:"build_command"`
	Patterns     []string `yaml:"patterns"`
	SkipInstall  bool     `yaml:"skip_install"`
}

// GitHubConfig contains pull request and API settings
type GitHubConfig struct {
	Token         string `yaml:"token"`
	APIURL        string `yaml:"api_url"`
	EventPath     string `yaml:"event_path"`
	Repository    string `yaml:"repository"` // owner/repo
	Comment       *bool  `yaml:"comment"`
	CommentMarker string `yaml:"comment_marker"`
}

// ReportConfig toggles optional report sections
type ReportConfig struct {
	ShowTotals     *bool `yaml:"show_totals"`
	ShowTotalDiffs *bool `yaml:"show_total_diffs"`
	ShowRemoved    *bool `yaml:"show_removed"`
}

// OutputsConfig contains GitHub Actions output files
type OutputsConfig struct {
	StepSummary  string `yaml:"step_summary"`
	GitHubOutput string `yaml:"github_output"`
}

// EmailConfig contains email notification settings
type EmailConfig struct {
	Enabled         bool              `yaml:"enabled"`
	CredentialsFile string            `yaml:"credentials_file"`
	FromName        string            `yaml:"from_name"`
	FromAddress     string            `yaml:"from_address"`
	Recipients      []RecipientConfig `yaml:"recipients"`
	CC              []RecipientConfig `yaml:"cc"`
}

// RecipientConfig represents an email recipient
type RecipientConfig struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

// LoggingConfig contains structured logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the configuration from the specified YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// Resolve loads the config file if present, then applies defaults and the
// environment. A missing file is not an error: the action is usually driven
// by environment variables alone.
func Resolve(path string, env Env) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.ApplyDefaults()
	cfg.ApplyEnv(env)
	return cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Redacted returns a copy with secrets masked, for display
func (c *Config) Redacted() *Config {
	cp := *c
	if cp.GitHub.Token != "" {
		cp.GitHub.Token = "***"
	}
	return &cp
}
