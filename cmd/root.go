package cmd

import (
	"fmt"
	"os"

	"asset-size-action/infrastructure/config"
	"asset-size-action/infrastructure/logging"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
	cfgErr   error
)

// OutputWriter receives human-readable command output
type OutputWriter interface {
	Write(p []byte) (n int, err error)
}

// DefaultOutput is the default output writer for commands
var DefaultOutput OutputWriter = os.Stdout

var rootCmd = &cobra.Command{
	Use:   "asset-size-action",
	Short: "Report JS and CSS asset size changes for pull requests",
	Long: `asset-size-action builds the base and head of a pull request, measures the
raw and gzip size of every JS and CSS asset, and reports what changed:

  - Files that got bigger, smaller, or stayed the same
  - Files that were removed
  - Total size changes per asset type

Reports are printed and, when configured, posted as a pull request comment,
written to the GitHub Actions step summary and outputs, and emailed.

Example:
  asset-size-action report
  asset-size-action compare --base base.json --pr pr.json`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	_ = logging.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = config.DefaultPath
	}

	cfg, cfgErr = config.Resolve(cfgFile, config.OSEnv)
	if cfgErr != nil {
		// Commands that need config check GetConfig and report the error
		cfg = nil
		logging.InitDefault()
		return
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}); err != nil {
		logging.InitDefault()
		logging.Warn("invalid logging configuration, using defaults", logging.Err(err))
	}
}

// GetConfig returns the resolved configuration or the error that prevented loading it
func GetConfig() (*config.Config, error) {
	if cfg == nil {
		if cfgErr != nil {
			return nil, fmt.Errorf("failed to load %s: %w", cfgFile, cfgErr)
		}
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}
