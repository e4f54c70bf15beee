// Package cmd provides the command-line interface for mdinclude.
//
// Configuration System:
//
//	Settings are resolved from several sources, highest priority first:
//	1. Command-line flags (--config, --root, --pristine, --log-level)
//	2. MDINCLUDE_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (MDINCLUDE_ROOT, MDINCLUDE_IMAGES_REPO_USER, ...)
//	4. Configuration file (.mdinclude.yml)
//	5. Built-in defaults
//
// Environment Variables:
//
//	MDINCLUDE_CONFIG_FILE: Path to custom configuration file
//	MDINCLUDE_PRISTINE: Suppress generated marker comments
//	MDINCLUDE_LOG_LEVEL: Diagnostic log level
//	And the rest following the MDINCLUDE_<SECTION>_<OPTION> pattern
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/conneroisu/mdinclude/internal/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mdinclude",
	Short: "Expand include pragmas in markdown templates",
	Long: `mdinclude merges a markdown template and the files it cites into a
single document. A line consisting solely of

  @[label](path)

is replaced by the cited file, rendered according to the label:

  markdown     inserted and expanded recursively
  comment      wrapped in an HTML comment
  pre          wrapped in a <pre> element
  code_block   fenced code block
  page_toc     table of contents for the rest of the page
  <language>   fenced code block tagged with the language

Quick Start:
  mdinclude expand README.template.md README.md
  mdinclude check                 Fail if any configured output is stale
  mdinclude watch                 Re-expand configured jobs on change
  mdinclude config init           Write a starter .mdinclude.yml`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is .mdinclude.yml, can also use MDINCLUDE_CONFIG_FILE env var)")
	flags.StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	flags.String("root", ".", "directory relative paths are resolved against")
	flags.Bool("pristine", false, "omit generated begin/end marker comments")

	bindFlags(flags, map[string]string{
		"log-level": "log.level",
		"root":      "root",
		"pristine":  "pristine",
	})
}

// bindFlags binds each flag to its configuration key so flags take
// precedence over the file and the environment.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

// initConfig selects the configuration file and enables environment
// variable overrides.
//
// Configuration file priority (highest to lowest):
//  1. --config flag
//  2. MDINCLUDE_CONFIG_FILE environment variable
//  3. .mdinclude.yml in the current directory
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("MDINCLUDE_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mdinclude")
	}

	// MDINCLUDE_IMAGES_REPO_USER -> images.repo_user
	viper.SetEnvPrefix("MDINCLUDE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range config.KnownKeys {
		if key != "jobs" {
			_ = viper.BindEnv(key)
		}
	}

	// A missing config file is fine; every key has a default.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
