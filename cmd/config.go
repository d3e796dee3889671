package cmd

import (
	"fmt"

	"asset-size-action/infrastructure/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the effective configuration",
	Long: `Inspect the configuration after defaults and environment overrides.

Examples:
  asset-size-action config show
  asset-size-action config validate`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration with secrets redacted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		return RunConfigShowWithDependencies(cfg, DefaultOutput)
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration for problems",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		return RunConfigValidateWithDependencies(cfg, DefaultOutput)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}

// RunConfigShowWithDependencies prints cfg as YAML (for testing)
func RunConfigShowWithDependencies(cfg *config.Config, out OutputWriter) error {
	data, err := yaml.Marshal(cfg.Redacted())
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	_, err = out.Write(data)
	return err
}

// RunConfigValidateWithDependencies validates cfg (for testing)
func RunConfigValidateWithDependencies(cfg *config.Config, out OutputWriter) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Configuration is valid.")
	return nil
}
