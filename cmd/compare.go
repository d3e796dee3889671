package cmd

import (
	"fmt"

	appreport "asset-size-action/application/report"
	"asset-size-action/domain/assets"
	"asset-size-action/infrastructure/filesystem"

	"github.com/spf13/cobra"
)

var (
	compareBasePath  string
	comparePRPath    string
	compareNoTotals  bool
	compareNormalize bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Render a size report from two JSON size files",
	Long: `Compare two asset size reports without building anything. Each file maps
an asset path to its raw and gzip size, as written by the measure command:

  {"dist/assets/app-<hash>.js": {"raw": 1024, "gzip": 400}}

Example:
  asset-size-action compare --base base.json --pr pr.json`,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVar(&compareBasePath, "base", "", "Size report of the base build (required)")
	compareCmd.Flags().StringVar(&comparePRPath, "pr", "", "Size report of the pull request build (required)")
	compareCmd.Flags().BoolVar(&compareNoTotals, "no-totals", false, "Leave out the total size tables")
	compareCmd.Flags().BoolVar(&compareNormalize, "normalize", true, "Strip content hashes from dist/assets file names")

	compareCmd.MarkFlagRequired("base")
	compareCmd.MarkFlagRequired("pr")
}

func runCompare(cmd *cobra.Command, args []string) error {
	opts := appreport.DefaultOptions()
	opts.Normalize = compareNormalize
	if compareNoTotals {
		opts.ShowTotals = false
		opts.ShowTotalDiffs = false
	}

	return RunCompareWithDependencies(compareBasePath, comparePRPath, opts, DefaultOutput)
}

// RunCompareWithDependencies runs the compare command with injected dependencies (for testing)
func RunCompareWithDependencies(basePath, prPath string, opts appreport.Options, out OutputWriter) error {
	base, err := readSizeReport(basePath)
	if err != nil {
		return err
	}
	pr, err := readSizeReport(prPath)
	if err != nil {
		return err
	}

	r := appreport.Compare(base, pr, opts)
	if r.Markdown == "" {
		fmt.Fprintln(out, "No assets to compare.")
		return nil
	}
	_, err = fmt.Fprintln(out, r.Markdown)
	return err
}

func readSizeReport(path string) (assets.SizeMap, error) {
	var sizes assets.SizeMap
	if err := filesystem.ReadJSON(path, &sizes); err != nil {
		return nil, fmt.Errorf("size report: %w", err)
	}
	if sizes == nil {
		sizes = assets.SizeMap{}
	}
	return sizes, nil
}
