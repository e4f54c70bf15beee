// Package errors defines the closed set of failures an expansion can end
// with. Every error carries a Kind and the structured payload for that kind
// (offending path, backtrace, option name) instead of a pre-rendered
// message, so callers can branch with errors.Is or the Is* helpers and still
// print the fixed, human-readable text through Error().
package errors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind represents the category of an expansion failure.
type Kind string

const (
	KindUnreadableInput              Kind = "unreadable_input"
	KindCircularInclude              Kind = "circular_include"
	KindMissingRequiredConfiguration Kind = "missing_required_configuration"
	KindUnrecognizedOption           Kind = "unrecognized_option"
)

// Fixed message labels. Tooling matches on these, so they must not change.
const (
	LabelUnreadableTemplate = "Could not read input file."
	LabelUnreadableIncludee = "Could not read include file,"
	LabelCircularInclude    = "Includes are circular:"
)

// Error is the structured error returned by the include engine, the image
// resolver and the configuration loader.
type Error struct {
	Kind Kind

	// Path is the offending file for UnreadableInput on a template.
	Path string

	// Backtrace is set for includee read failures and circular includes.
	Backtrace Backtrace

	// Operation names what needed the configuration for
	// MissingRequiredConfiguration.
	Operation string

	// Keys lists the missing keys (MissingRequiredConfiguration) or the
	// single unknown key (UnrecognizedOption).
	Keys []string

	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindUnreadableInput:
		if e.Backtrace != nil {
			return LabelUnreadableIncludee + "\n" + e.Backtrace.String()
		}
		return LabelUnreadableTemplate + "\n  " + strconv.Quote(e.Path)
	case KindCircularInclude:
		return LabelCircularInclude + "\n" + e.Backtrace.String()
	case KindMissingRequiredConfiguration:
		return fmt.Sprintf("%s requires configuration: %s", e.Operation, strings.Join(e.Keys, ", "))
	case KindUnrecognizedOption:
		return fmt.Sprintf("unrecognized option: %s", strings.Join(e.Keys, ", "))
	default:
		return fmt.Sprintf("%s error", e.Kind)
	}
}

// Unwrap returns the underlying cause error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}

	return false
}

// Sentinels for errors.Is comparisons.
var (
	ErrUnreadableInput              = &Error{Kind: KindUnreadableInput}
	ErrCircularInclude              = &Error{Kind: KindCircularInclude}
	ErrMissingRequiredConfiguration = &Error{Kind: KindMissingRequiredConfiguration}
	ErrUnrecognizedOption           = &Error{Kind: KindUnrecognizedOption}
)

// NewUnreadableTemplate creates the error for a template that cannot be read.
func NewUnreadableTemplate(path string, cause error) *Error {
	return &Error{
		Kind:  KindUnreadableInput,
		Path:  path,
		Cause: cause,
	}
}

// NewUnreadableIncludee creates the error for an includee that cannot be
// read. The innermost frame of trace cites the missing file.
func NewUnreadableIncludee(trace Backtrace, cause error) *Error {
	var path string
	if len(trace) > 0 {
		path = trace[0].IncludeePath
	}

	return &Error{
		Kind:      KindUnreadableInput,
		Path:      path,
		Backtrace: trace,
		Cause:     cause,
	}
}

// NewCircularInclude creates a circular include error. trace must include
// the cycle-closing inclusion as its innermost frame.
func NewCircularInclude(trace Backtrace) *Error {
	return &Error{
		Kind:      KindCircularInclude,
		Backtrace: trace,
	}
}

// NewMissingConfiguration creates an error for an operation that needs
// configuration the caller did not provide.
func NewMissingConfiguration(operation string, keys ...string) *Error {
	return &Error{
		Kind:      KindMissingRequiredConfiguration,
		Operation: operation,
		Keys:      keys,
	}
}

// NewUnrecognizedOption creates an error for an unknown configuration key.
func NewUnrecognizedOption(key string) *Error {
	return &Error{
		Kind: KindUnrecognizedOption,
		Keys: []string{key},
	}
}

// KindOf returns the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return ""
}

// IsUnreadableInput checks if an error is an unreadable template or includee.
func IsUnreadableInput(err error) bool {
	return KindOf(err) == KindUnreadableInput
}

// IsCircularInclude checks if an error is a circular include.
func IsCircularInclude(err error) bool {
	return KindOf(err) == KindCircularInclude
}

// IsMissingRequiredConfiguration checks if an error reports missing configuration.
func IsMissingRequiredConfiguration(err error) bool {
	return KindOf(err) == KindMissingRequiredConfiguration
}

// IsUnrecognizedOption checks if an error reports an unknown option.
func IsUnrecognizedOption(err error) bool {
	return KindOf(err) == KindUnrecognizedOption
}

// BacktraceOf returns the backtrace carried by err, if any.
func BacktraceOf(err error) Backtrace {
	var e *Error
	if errors.As(err, &e) {
		return e.Backtrace
	}

	return nil
}
