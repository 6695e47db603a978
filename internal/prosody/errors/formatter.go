package errors

import (
	"fmt"
	"strings"
)

// FormatError returns a human-readable error message for terminal output
func FormatError(e *ConfigError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "❌ %s [%s]\n", categoryDisplayName(e.Category), e.Code)

	if e.Position > 0 {
		fmt.Fprintf(&b, "  %s, position %d:\n", e.Subject, e.Position)
	} else if e.Subject != "" {
		fmt.Fprintf(&b, "  %s:\n", e.Subject)
	}
	fmt.Fprintf(&b, "  %s\n", e.Message)

	if e.Expected != "" || e.Actual != "" {
		b.WriteString("\n")
		if e.Expected != "" {
			fmt.Fprintf(&b, "  Expected: %s\n", e.Expected)
		}
		if e.Actual != "" {
			fmt.Fprintf(&b, "  Actual:   %s\n", e.Actual)
		}
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n💡 %s\n", e.Suggestion)
	}

	return b.String()
}

// FormatErrorList returns a formatted string of all errors
func FormatErrorList(errors ErrorList) string {
	if len(errors) == 0 {
		return "no errors"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Prosody registry self-check failed with %d error(s)\n\n", len(errors))

	for i, err := range errors {
		if i > 0 {
			b.WriteString("\n" + strings.Repeat("-", 60) + "\n\n")
		}
		b.WriteString(err.Format())
	}

	return b.String()
}

// FormatCompact returns a compact one-line error format
func FormatCompact(e *ConfigError) string {
	subject := e.Subject
	if subject == "" {
		subject = "<registry>"
	}
	if e.Position > 0 {
		return fmt.Sprintf("%s:%d: %s [%s]", subject, e.Position, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s [%s]", subject, e.Message, e.Code)
}

// categoryDisplayName returns a human-readable category name
func categoryDisplayName(category ErrorCategory) string {
	switch category {
	case CategoryTafila:
		return "Tafila Error"
	case CategoryRule:
		return "Rule Error"
	case CategoryMeter:
		return "Meter Error"
	case CategoryCache:
		return "Pattern Cache Error"
	default:
		return "Configuration Error"
	}
}
