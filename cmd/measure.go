package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	appreport "asset-size-action/application/report"
	"asset-size-action/infrastructure/process"

	"github.com/spf13/cobra"
)

var (
	measureOutputPath  string
	measureSkipInstall bool
	measureSkipBuild   bool
)

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Build the current checkout and write its asset sizes as JSON",
	Long: `Install dependencies, run the production build and measure every asset
matching the configured patterns in the current working tree.

The JSON output can be fed to the compare command.

Examples:
  asset-size-action measure --output pr.json
  asset-size-action measure --skip-install --skip-build`,
	RunE: runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)
	measureCmd.Flags().StringVarP(&measureOutputPath, "output", "o", "", "Write JSON to this file instead of stdout")
	measureCmd.Flags().BoolVar(&measureSkipInstall, "skip-install", false, "Do not install dependencies")
	measureCmd.Flags().BoolVar(&measureSkipBuild, "skip-build", false, "Measure existing build output")
}

func runMeasure(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	measurer, err := newBuildService(ctx, cfg, &process.ExecCommandRunner{}, measureSkipInstall || cfg.Project.SkipInstall, measureSkipBuild)
	if err != nil {
		return err
	}

	return RunMeasureWithDependencies(ctx, measurer, cfg.Project.Directory, measureOutputPath, DefaultOutput)
}

// RunMeasureWithDependencies runs the measure command with injected dependencies (for testing)
func RunMeasureWithDependencies(ctx context.Context, measurer appreport.Measurer, dir, outputPath string, out OutputWriter) error {
	sizes, err := measurer.Measure(ctx, dir)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(sizes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sizes: %w", err)
	}
	data = append(data, '\n')

	if outputPath == "" {
		_, err := out.Write(data)
		return err
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	fmt.Fprintf(out, "Wrote %d assets to %s\n", len(sizes), outputPath)
	return nil
}
