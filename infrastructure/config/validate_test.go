package config

import (
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.ApplyDefaults()
		cfg.GitHub.Token = "token"
		return cfg
	}

	tests := []struct {
		name        string
		modify      func(*Config)
		errContains string
	}{
		{
			name:   "valid",
			modify: func(c *Config) {},
		},
		{
			name:   "no token without comments",
			modify: func(c *Config) { c.GitHub.Token = ""; c.GitHub.Comment = boolPtr(false) },
		},
		{
			name:        "no token with comments",
			modify:      func(c *Config) { c.GitHub.Token = "" },
			errContains: "GitHub token is required",
		},
		{
			name:        "empty build command",
			modify:      func(c *Config) { c.Project.BuildCommand = "  " },
			errContains: "build command is empty",
		},
		{
			name:        "malformed repository",
			modify:      func(c *Config) { c.GitHub.Repository = "acme" },
			errContains: "owner/repo",
		},
		{
			name: "email without credentials",
			modify: func(c *Config) {
				c.Email.Enabled = true
				c.Email.FromAddress = "bot@example.com"
				c.Email.Recipients = []RecipientConfig{{Address: "a@example.com"}}
			},
			errContains: "no credentials file",
		},
		{
			name: "email without recipients",
			modify: func(c *Config) {
				c.Email.Enabled = true
				c.Email.CredentialsFile = "sa.json"
				c.Email.FromAddress = "bot@example.com"
			},
			errContains: "no recipients",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.errContains == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Validate() error = %v, want error containing %q", err, tt.errContains)
			}
		})
	}
}

func TestValidationError_Suggestion(t *testing.T) {
	err := &ValidationError{Message: "bad", Suggestion: "do this"}
	if !strings.Contains(err.Error(), "To fix this:\n  do this") {
		t.Errorf("Error() = %q", err.Error())
	}
}
