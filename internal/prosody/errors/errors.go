// Package errors provides structured configuration errors for the prosody engine.
// Registry construction collects every violation it finds into an ErrorList so that a
// broken rule table is reported in one pass at startup, both as human-readable text and
// as JSON for tooling.
package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a unique configuration error code
type ErrorCode string

// ErrorCategory represents the registry that produced the error
type ErrorCategory string

const (
	// CategoryTafila represents tafila registry errors (TAF001-099)
	CategoryTafila ErrorCategory = "tafila"
	// CategoryRule represents transformation rule errors (RUL100-199)
	CategoryRule ErrorCategory = "rule"
	// CategoryMeter represents meter grammar errors (MTR200-299)
	CategoryMeter ErrorCategory = "meter"
	// CategoryCache represents pattern cache errors (CCH300-399)
	CategoryCache ErrorCategory = "cache"
)

// ConfigError is a single registry self-check violation.
type ConfigError struct {
	// Code is the unique error code (e.g., "TAF002", "RUL101")
	Code ErrorCode `json:"code"`
	// Type is a machine-readable error type identifier
	Type string `json:"type"`
	// Category is the error category
	Category ErrorCategory `json:"category"`
	// Message is the primary error message
	Message string `json:"message"`
	// Subject names the offending entry (tafila name, meter name, rule name)
	Subject string `json:"subject,omitempty"`
	// Position is the 1-based meter position, 0 when not applicable
	Position int `json:"position,omitempty"`
	// Expected describes what was expected (optional)
	Expected string `json:"expected,omitempty"`
	// Actual describes what was actually found (optional)
	Actual string `json:"actual,omitempty"`
	// Suggestion provides a hint for fixing the error (optional)
	Suggestion string `json:"suggestion,omitempty"`
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return FormatCompact(e)
}

// Format returns a human-readable error message for terminal output
func (e *ConfigError) Format() string {
	return FormatError(e)
}

// ToJSON returns the error as a JSON string
func (e *ConfigError) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// WithPosition sets the meter position of the error
func (e *ConfigError) WithPosition(position int) *ConfigError {
	e.Position = position
	return e
}

// WithExpected sets the expected value for the error
func (e *ConfigError) WithExpected(expected string) *ConfigError {
	e.Expected = expected
	return e
}

// WithActual sets the actual value for the error
func (e *ConfigError) WithActual(actual string) *ConfigError {
	e.Actual = actual
	return e
}

// WithSuggestion sets a suggestion for fixing the error
func (e *ConfigError) WithSuggestion(suggestion string) *ConfigError {
	e.Suggestion = suggestion
	return e
}

// ErrorList is a collection of configuration errors
type ErrorList []*ConfigError

// Error implements the error interface
func (el ErrorList) Error() string {
	if len(el) == 0 {
		return "no errors"
	}
	return FormatErrorList(el)
}

// Err returns nil for an empty list and the list itself otherwise, so callers can
// write `return reg, errs.Err()` without returning a typed nil.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}

// Has reports whether the list contains an error with the given code
func (el ErrorList) Has(code ErrorCode) bool {
	for _, err := range el {
		if err.Code == code {
			return true
		}
	}
	return false
}

// ToJSON returns all errors as a JSON array
func (el ErrorList) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(el, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CountByCategory returns the number of errors per category
func (el ErrorList) CountByCategory() map[ErrorCategory]int {
	counts := make(map[ErrorCategory]int)
	for _, err := range el {
		counts[err.Category]++
	}
	return counts
}

// newError creates a new ConfigError with the given parameters
func newError(code ErrorCode, typ string, category ErrorCategory, subject, message string) *ConfigError {
	return &ConfigError{
		Code:     code,
		Type:     typ,
		Category: category,
		Subject:  subject,
		Message:  message,
	}
}

func quote(s string) string {
	return fmt.Sprintf("'%s'", s)
}
