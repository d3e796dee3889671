package npm

import (
	"context"
	"fmt"
	"strings"

	"asset-size-action/domain/build"
	"asset-size-action/infrastructure/process"
)

// DetectToolchain asks the installed npm for its version
func DetectToolchain(ctx context.Context, runner process.CommandRunner) (build.Toolchain, error) {
	out, err := runner.Output(ctx, "", "npm", "-v")
	if err != nil {
		return build.Toolchain{}, fmt.Errorf("npm not found or not executable: %w", err)
	}
	return build.Toolchain{NPMVersion: strings.TrimSpace(string(out))}, nil
}
