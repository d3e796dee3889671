package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "asset-size.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func envMap(m map[string]string) Env {
	return func(key string) string {
		return m[key]
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
project:
  directory: web
  build_command: yarn build
  patterns:
    - dist/assets/**.js
github:
  comment: false
report:
  show_removed: false
email:
  enabled: true
  from_address: bot@example.com
  recipients:
    - name: Jane Doe
      address: jane@example.com
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Project.Directory != "web" {
		t.Errorf("Directory = %q, want %q", cfg.Project.Directory, "web")
	}
	if cfg.Project.BuildCommand != "yarn build" {
		t.Errorf("BuildCommand = %q", cfg.Project.BuildCommand)
	}
	if len(cfg.Project.Patterns) != 1 {
		t.Errorf("Patterns = %v", cfg.Project.Patterns)
	}
	if cfg.GitHub.Comment == nil || *cfg.GitHub.Comment {
		t.Errorf("Comment = %v, want false", cfg.GitHub.Comment)
	}
	if len(cfg.Email.Recipients) != 1 || cfg.Email.Recipients[0].Address != "jane@example.com" {
		t.Errorf("Recipients = %+v", cfg.Email.Recipients)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error should wrap os.ErrNotExist, got %v", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, "project: [not, a, map")

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("Load() error = %v, want parse error", err)
	}
}

func TestResolve_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Resolve(filepath.Join(t.TempDir(), "absent.yaml"), envMap(nil))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if cfg.Project.BuildCommand != DefaultBuildCommand {
		t.Errorf("BuildCommand = %q, want %q", cfg.Project.BuildCommand, DefaultBuildCommand)
	}
	if len(cfg.Project.Patterns) != 2 {
		t.Errorf("Patterns = %v, want defaults", cfg.Project.Patterns)
	}
	if !BoolValue(cfg.GitHub.Comment) || !BoolValue(cfg.Report.ShowTotals) || !BoolValue(cfg.Report.ShowRemoved) {
		t.Error("expected boolean defaults to be true")
	}
	if cfg.GitHub.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q", cfg.GitHub.APIURL)
	}
}

func TestResolve_KeepsExplicitFalse(t *testing.T) {
	path := writeConfig(t, "report:\n  show_totals: false\n")

	cfg, err := Resolve(path, envMap(nil))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if BoolValue(cfg.Report.ShowTotals) {
		t.Error("explicit show_totals: false was overwritten by defaults")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	cfg.ApplyEnv(envMap(map[string]string{
		"GITHUB_TOKEN":            "runner-token",
		"INPUT_REPO-TOKEN":        "input-token",
		"GITHUB_EVENT_PATH":       "/tmp/event.json",
		"GITHUB_REPOSITORY":       "acme/web",
		"GITHUB_OUTPUT":           "/tmp/out",
		"GITHUB_STEP_SUMMARY":     "/tmp/summary",
		"INPUT_BUILD-COMMAND":     "  yarn build  ",
		"INPUT_WORKING-DIRECTORY": "packages/app",
		"INPUT_COMMENT":           "false",
		"INPUT_SHOW-TOTALS":       "no",
	}))

	if cfg.GitHub.Token != "input-token" {
		t.Errorf("Token = %q, want action input to win", cfg.GitHub.Token)
	}
	if cfg.GitHub.EventPath != "/tmp/event.json" || cfg.GitHub.Repository != "acme/web" {
		t.Errorf("GitHub = %+v", cfg.GitHub)
	}
	if cfg.Outputs.GitHubOutput != "/tmp/out" || cfg.Outputs.StepSummary != "/tmp/summary" {
		t.Errorf("Outputs = %+v", cfg.Outputs)
	}
	if cfg.Project.BuildCommand != "yarn build" {
		t.Errorf("BuildCommand = %q", cfg.Project.BuildCommand)
	}
	if cfg.Project.Directory != "packages/app" {
		t.Errorf("Directory = %q", cfg.Project.Directory)
	}
	if BoolValue(cfg.GitHub.Comment) {
		t.Error("INPUT_COMMENT=false should disable comments")
	}
	if BoolValue(cfg.Report.ShowTotals) {
		t.Error("INPUT_SHOW-TOTALS=no should disable totals")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asset-size.yaml")
	cfg := &Config{}
	cfg.ApplyDefaults()
	cfg.Email.FromName = "Size Bot"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Email.FromName != "Size Bot" || loaded.Project.BuildCommand != DefaultBuildCommand {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}

func TestRedacted(t *testing.T) {
	cfg := &Config{GitHub: GitHubConfig{Token: "secret"}}

	red := cfg.Redacted()

	if red.GitHub.Token != "***" {
		t.Errorf("Redacted token = %q", red.GitHub.Token)
	}
	if cfg.GitHub.Token != "secret" {
		t.Error("Redacted() modified the original")
	}
}
