package config

import (
	"os"
	"strings"
)

// Default values
const (
	DefaultBuildCommand  = "npx ember build -prod"
	DefaultAPIURL        = "https://api.github.com"
	DefaultCommentMarker = "<!-- asset-size-action -->"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
)

// DefaultPatterns are the build output globs that are measured
var DefaultPatterns = []string{"dist/assets/**.js", "dist/assets/**.css"}

// Env looks up an environment variable
type Env func(key string) string

// OSEnv reads from the process environment
func OSEnv(key string) string {
	return os.Getenv(key)
}

// ApplyDefaults fills every unset field with its default
func (c *Config) ApplyDefaults() {
	if c.Project.Directory == "" {
		c.Project.Directory = "."
	}
	if c.Project.BuildCommand == "" {
		c.Project.BuildCommand = DefaultBuildCommand
	}
	if len(c.Project.Patterns) == 0 {
		c.Project.Patterns = append([]string(nil), DefaultPatterns...)
	}
	if c.GitHub.APIURL == "" {
		c.GitHub.APIURL = DefaultAPIURL
	}
	if c.GitHub.CommentMarker == "" {
		c.GitHub.CommentMarker = DefaultCommentMarker
	}
	if c.GitHub.Comment == nil {
		c.GitHub.Comment = boolPtr(true)
	}
	if c.Report.ShowTotals == nil {
		c.Report.ShowTotals = boolPtr(true)
	}
	if c.Report.ShowTotalDiffs == nil {
		c.Report.ShowTotalDiffs = boolPtr(true)
	}
	if c.Report.ShowRemoved == nil {
		c.Report.ShowRemoved = boolPtr(true)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
}

// ApplyEnv overrides fields from GitHub Actions inputs and runner variables.
// Action inputs (INPUT_*) win over runner variables.
func (c *Config) ApplyEnv(env Env) {
	if env == nil {
		return
	}

	setIf(&c.GitHub.Token, env("GITHUB_TOKEN"))
	setIf(&c.GitHub.Token, env("INPUT_REPO-TOKEN"))
	setIf(&c.GitHub.APIURL, env("GITHUB_API_URL"))
	setIf(&c.GitHub.EventPath, env("GITHUB_EVENT_PATH"))
	setIf(&c.GitHub.Repository, env("GITHUB_REPOSITORY"))
	setIf(&c.Outputs.GitHubOutput, env("GITHUB_OUTPUT"))
	setIf(&c.Outputs.StepSummary, env("GITHUB_STEP_SUMMARY"))
	setIf(&c.Project.BuildCommand, env("INPUT_BUILD-COMMAND"))
	setIf(&c.Project.Directory, env("INPUT_WORKING-DIRECTORY"))
	setIf(&c.Logging.Level, env("INPUT_LOG-LEVEL"))

	if v := env("INPUT_COMMENT"); v != "" {
		c.GitHub.Comment = boolPtr(parseBool(v))
	}
	if v := env("INPUT_SHOW-TOTALS"); v != "" {
		c.Report.ShowTotals = boolPtr(parseBool(v))
	}
	if v := env("INPUT_SHOW-REMOVED"); v != "" {
		c.Report.ShowRemoved = boolPtr(parseBool(v))
	}
}

// BoolValue dereferences an optional flag, treating nil as false
func BoolValue(b *bool) bool {
	return b != nil && *b
}

func setIf(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1", "on":
		return true
	default:
		return false
	}
}

func boolPtr(b bool) *bool {
	return &b
}
