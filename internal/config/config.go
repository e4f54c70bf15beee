// Package config provides configuration management for mdinclude using
// Viper for loading from files, environment variables, and command-line
// flags.
//
// The configuration is a closed structure: every recognized key is listed
// in KnownKeys and anything else is rejected with an UnrecognizedOption
// error instead of being silently ignored.
package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/viper"

	"github.com/conneroisu/mdinclude/internal/errors"
)

// Options are the settings that change what an expansion produces.
type Options struct {
	// Pristine suppresses every generated begin/end marker comment.
	Pristine bool `mapstructure:"pristine" yaml:"pristine"`
}

// NewOptions builds Options from loose key/value pairs, as passed by
// library callers. Unknown keys are an UnrecognizedOption error.
func NewOptions(values map[string]interface{}) (Options, error) {
	var opts Options

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch key {
		case "pristine":
			b, ok := values[key].(bool)
			if !ok {
				return Options{}, fmt.Errorf("option pristine must be a bool, got %T", values[key])
			}
			opts.Pristine = b
		default:
			return Options{}, errors.NewUnrecognizedOption(key)
		}
	}

	return opts, nil
}

type Config struct {
	Root     string       `mapstructure:"root" yaml:"root"`
	Pristine bool         `mapstructure:"pristine" yaml:"pristine"`
	Jobs     []Job        `mapstructure:"jobs" yaml:"jobs"`
	Images   ImagesConfig `mapstructure:"images" yaml:"images"`
	Watch    WatchConfig  `mapstructure:"watch" yaml:"watch"`
	Log      LogConfig    `mapstructure:"log" yaml:"log"`
}

// Job pairs a template with the file its expansion is written to.
type Job struct {
	Template string `mapstructure:"template" yaml:"template"`
	Output   string `mapstructure:"output" yaml:"output"`
}

type ImagesConfig struct {
	RepoUser string `mapstructure:"repo_user" yaml:"repo_user"`
	RepoName string `mapstructure:"repo_name" yaml:"repo_name"`
	Branch   string `mapstructure:"branch" yaml:"branch"`
}

type WatchConfig struct {
	Patterns []string      `mapstructure:"patterns" yaml:"patterns"`
	Ignore   []string      `mapstructure:"ignore" yaml:"ignore"`
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// KnownKeys lists every configuration key mdinclude understands, in the
// flattened form Viper reports them.
var KnownKeys = []string{
	"root",
	"pristine",
	"jobs",
	"images.repo_user",
	"images.repo_name",
	"images.branch",
	"watch.patterns",
	"watch.ignore",
	"watch.debounce",
	"log.level",
	"log.format",
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Root: ".",
		Images: ImagesConfig{
			Branch: "main",
		},
		Watch: WatchConfig{
			Patterns: []string{"**/*.md"},
			Ignore:   []string{".git/**", "node_modules/**"},
			Debounce: 300 * time.Millisecond,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Options returns the expansion options selected by the configuration.
func (c *Config) Options() Options {
	return Options{Pristine: c.Pristine}
}

// Load reads the configuration from the global Viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration from v, applies defaults for unset keys
// and validates the result.
func LoadFrom(v *viper.Viper) (*Config, error) {
	if err := checkKeys(v.AllKeys()); err != nil {
		return nil, err
	}

	config := Default()
	if err := v.Unmarshal(config); err != nil {
		return nil, err
	}

	// Viper leaves explicitly emptied values empty; put defaults back.
	defaults := Default()
	if config.Root == "" {
		config.Root = defaults.Root
	}
	if config.Images.Branch == "" {
		config.Images.Branch = defaults.Images.Branch
	}
	if len(config.Watch.Patterns) == 0 {
		config.Watch.Patterns = defaults.Watch.Patterns
	}
	if !v.IsSet("watch.ignore") {
		config.Watch.Ignore = defaults.Watch.Ignore
	}
	if config.Watch.Debounce == 0 {
		config.Watch.Debounce = defaults.Watch.Debounce
	}
	if config.Log.Level == "" {
		config.Log.Level = defaults.Log.Level
	}
	if config.Log.Format == "" {
		config.Log.Format = defaults.Log.Format
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func checkKeys(keys []string) error {
	known := make(map[string]bool, len(KnownKeys))
	for _, key := range KnownKeys {
		known[key] = true
	}

	sort.Strings(keys)
	for _, key := range keys {
		if !known[key] {
			return errors.NewUnrecognizedOption(key)
		}
	}

	return nil
}
