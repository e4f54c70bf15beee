package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/conneroisu/mdinclude/internal/logging"
)

// ValidationError represents a configuration validation error with suggestions
type ValidationError struct {
	Field       string
	Value       interface{}
	Message     string
	Suggestions []string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the result of configuration validation
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings) > 0
}

// String returns a formatted string of all validation issues
func (vr *ValidationResult) String() string {
	var builder strings.Builder

	if len(vr.Errors) > 0 {
		builder.WriteString("❌ Validation Errors:\n")
		for _, err := range vr.Errors {
			builder.WriteString(fmt.Sprintf("  • %s: %s\n", err.Field, err.Message))
			for _, suggestion := range err.Suggestions {
				builder.WriteString(fmt.Sprintf("    💡 %s\n", suggestion))
			}
		}
		builder.WriteString("\n")
	}

	if len(vr.Warnings) > 0 {
		builder.WriteString("⚠️  Validation Warnings:\n")
		for _, warning := range vr.Warnings {
			builder.WriteString(fmt.Sprintf("  • %s: %s\n", warning.Field, warning.Message))
			for _, suggestion := range warning.Suggestions {
				builder.WriteString(fmt.Sprintf("    💡 %s\n", suggestion))
			}
		}
	}

	return builder.String()
}

// ValidateConfigWithDetails performs comprehensive validation with detailed feedback
func ValidateConfigWithDetails(config *Config) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	validateJobsDetails(config.Jobs, result)
	validateImagesDetails(&config.Images, result)
	validateWatchDetails(&config.Watch, result)
	validateLogDetails(&config.Log, result)

	result.Valid = !result.HasErrors()

	return result
}

// validateConfig returns the first validation error, if any.
func validateConfig(config *Config) error {
	result := ValidateConfigWithDetails(config)
	if result.HasErrors() {
		return &result.Errors[0]
	}

	return nil
}

func validateJobsDetails(jobs []Job, result *ValidationResult) {
	if len(jobs) == 0 {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "jobs",
			Message: "no jobs configured; expand and check need explicit paths",
			Suggestions: []string{
				"Add entries like {template: docs/README.template.md, output: README.md}",
			},
		})
		return
	}

	outputs := make(map[string]int, len(jobs))
	for i, job := range jobs {
		field := fmt.Sprintf("jobs[%d]", i)

		if job.Template == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field + ".template",
				Message: "template path is required",
			})
		}
		if job.Output == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field + ".output",
				Message: "output path is required",
			})
			continue
		}

		if job.Template != "" && filepath.Clean(job.Template) == filepath.Clean(job.Output) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field + ".output",
				Value:   job.Output,
				Message: "output would overwrite its own template",
				Suggestions: []string{
					"Keep templates under a separate name such as README.template.md",
				},
			})
		}

		clean := filepath.Clean(job.Output)
		if prev, ok := outputs[clean]; ok {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field + ".output",
				Value:   job.Output,
				Message: fmt.Sprintf("output is also written by jobs[%d]", prev),
			})
		}
		outputs[clean] = i
	}
}

func validateImagesDetails(config *ImagesConfig, result *ValidationResult) {
	if (config.RepoUser == "") != (config.RepoName == "") {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "images",
			Message: "repo_user and repo_name must both be set for image URL resolution",
		})
	}

	if strings.ContainsAny(config.Branch, " \t") {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "images.branch",
			Value:   config.Branch,
			Message: "branch name cannot contain whitespace",
		})
	}
}

func validateWatchDetails(config *WatchConfig, result *ValidationResult) {
	for _, pattern := range append(append([]string{}, config.Patterns...), config.Ignore...) {
		if !doublestar.ValidatePattern(pattern) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "watch",
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern %q", pattern),
				Suggestions: []string{
					"Patterns use doublestar syntax, e.g. docs/**/*.md",
				},
			})
		}
	}

	if config.Debounce < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "watch.debounce",
			Value:   config.Debounce,
			Message: "debounce cannot be negative",
		})
	}
}

func validateLogDetails(config *LogConfig, result *ValidationResult) {
	if _, err := logging.ParseLevel(config.Level); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log.level",
			Value:   config.Level,
			Message: err.Error(),
		})
	}

	if config.Format != "text" && config.Format != "json" {
		result.Errors = append(result.Errors, ValidationError{
			Field:       "log.format",
			Value:       config.Format,
			Message:     fmt.Sprintf("unknown log format %q", config.Format),
			Suggestions: []string{"Use 'text' or 'json'"},
		})
	}
}
