package config

import (
	"fmt"
	"strings"
)

// ValidationError contains details about a configuration problem with a suggestion
type ValidationError struct {
	Message    string
	Suggestion string
}

func (e *ValidationError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s\n\nTo fix this:\n  %s", e.Message, e.Suggestion)
	}
	return e.Message
}

// Validate checks the settings needed by the report workflow
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Project.BuildCommand) == "" {
		return &ValidationError{Message: "build command is empty"}
	}
	if BoolValue(c.GitHub.Comment) && c.GitHub.Token == "" {
		return &ValidationError{
			Message:    "a GitHub token is required to comment on pull requests",
			Suggestion: "pass repo-token: ${{ secrets.GITHUB_TOKEN }} to the action, or set github.comment: false",
		}
	}
	if c.GitHub.Repository != "" && !strings.Contains(c.GitHub.Repository, "/") {
		return &ValidationError{
			Message: fmt.Sprintf("repository %q must be in owner/repo form", c.GitHub.Repository),
		}
	}
	if c.Email.Enabled {
		if c.Email.CredentialsFile == "" {
			return &ValidationError{
				Message:    "email is enabled but no credentials file is configured",
				Suggestion: "set email.credentials_file to a service account key with domain-wide delegation",
			}
		}
		if c.Email.FromAddress == "" {
			return &ValidationError{Message: "email is enabled but email.from_address is empty"}
		}
		if len(c.Email.Recipients) == 0 {
			return &ValidationError{Message: "email is enabled but no recipients are configured"}
		}
	}
	return nil
}
