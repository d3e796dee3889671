package npm

import (
	"context"
	"strings"
)

// mockRunner records invocations and returns canned results
type mockRunner struct {
	calls     []string
	dirs      []string
	output    []byte
	runErr    error
	outputErr error
}

func (m *mockRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	m.calls = append(m.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	m.dirs = append(m.dirs, dir)
	return m.runErr
}

func (m *mockRunner) Output(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	m.calls = append(m.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	m.dirs = append(m.dirs, dir)
	if m.outputErr != nil {
		return nil, m.outputErr
	}
	return m.output, nil
}

// mockFileChecker implements FileChecker for testing
type mockFileChecker struct {
	existing map[string]bool
}

func (m *mockFileChecker) Exists(path string) bool {
	return m.existing[path]
}
