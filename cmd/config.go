package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/mdinclude/internal/config"
)

const defaultConfigFile = ".mdinclude.yml"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage mdinclude configuration",
	Long: `Manage mdinclude configuration files and settings.

Examples:
  mdinclude config init                # Write a starter .mdinclude.yml
  mdinclude config validate            # Validate .mdinclude.yml
  mdinclude config show                # Show the resolved configuration`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `Write a configuration file holding the defaults and one example job.

Examples:
  mdinclude config init
  mdinclude config init --output docs/.mdinclude.yml --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate a configuration file, reporting unknown keys, malformed
patterns and job mistakes such as an output overwriting its own template.

Examples:
  mdinclude config validate
  mdinclude config validate --file ci.mdinclude.yml --strict`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the configuration after merging the file, environment
variables, flags and defaults, as YAML.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var (
	configOutput string
	configForce  bool
	configFile   string
	configStrict bool
)

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().StringVarP(&configOutput, "output", "o", defaultConfigFile, "Output configuration file")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")

	configValidateCmd.Flags().
		StringVarP(&configFile, "file", "f", "", "Configuration file to validate (default: .mdinclude.yml)")
	configValidateCmd.Flags().BoolVar(&configStrict, "strict", false, "Treat warnings as errors")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configOutput); err == nil && !configForce {
		return fmt.Errorf("configuration file %s already exists; use --force to overwrite it", configOutput)
	}

	cfg := config.Default()
	cfg.Jobs = []config.Job{{Template: "README.template.md", Output: "README.md"}}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	header := "# mdinclude configuration\n# Expand all jobs with 'mdinclude expand'.\n\n"
	if err := atomic.WriteFile(configOutput, strings.NewReader(header+string(data))); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to: %s\n", configOutput)

	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	targetFile := configFile
	if targetFile == "" {
		targetFile = defaultConfigFile
	}

	if _, err := os.Stat(targetFile); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("configuration file %s does not exist; "+
			"use --file or run 'mdinclude config init' to create one", targetFile)
	}

	fmt.Fprintf(out, "🔍 Validating configuration file: %s\n", targetFile)

	v := viper.New()
	v.SetConfigFile(targetFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read configuration file: %w", err)
	}

	cfg, err := config.LoadFrom(v)
	if err != nil {
		// LoadFrom stops at the first problem; list all of them when the
		// file can at least be decoded.
		raw := config.Default()
		if v.Unmarshal(raw) == nil {
			if validation := config.ValidateConfigWithDetails(raw); validation.HasErrors() {
				fmt.Fprint(out, validation.String())
			}
		}
		return err
	}

	validation := config.ValidateConfigWithDetails(cfg)
	if !validation.HasWarnings() {
		fmt.Fprintln(out, "✅ Configuration is valid!")
		return nil
	}

	fmt.Fprint(out, validation.String())
	if configStrict {
		return fmt.Errorf("configuration validation failed in strict mode with %d warnings",
			len(validation.Warnings))
	}

	fmt.Fprintf(out, "✅ Configuration is valid with %d warnings. Use --strict to treat warnings as errors.\n",
		len(validation.Warnings))

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "# Resolved from all sources (file, env vars, flags, defaults)")
	_, err = out.Write(data)

	return err
}
