package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Level is the severity of a message
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
)

// Message describes a user facing diagnostic
type Message struct {
	Level       Level
	Context     string
	Problem     string
	Detail      string
	Suggestions []string
	Help        []string
	NoColor     bool
}

// Format renders the message. With a context the header names it and the problem is
// repeated on its own line:
//
//	✗ METER NOT FOUND: Cannot find meter 'الطويلل'.
//	   Cannot find meter 'الطويلل'.
//
//	   Did you mean: الطويل?
//
//	   → List meters: arud meters
func (m Message) Format() string {
	var b strings.Builder

	header, body := levelColors(m.Level)
	symbol := levelSymbol(m.Level)
	if m.NoColor {
		header.DisableColor()
		body.DisableColor()
	}

	if m.Context != "" {
		header.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(m.Context), m.Problem)
		body.Fprintf(&b, "   %s\n", m.Problem)
	} else {
		header.Fprintf(&b, "%s %s\n", symbol, m.Problem)
	}

	if m.Detail != "" {
		b.WriteString("\n")
		body.Fprintf(&b, "   %s\n", m.Detail)
	}

	if len(m.Suggestions) > 0 {
		b.WriteString("\n")
		yellow := color.New(color.FgYellow)
		if m.NoColor {
			yellow.DisableColor()
		}
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(m.Suggestions, ", "))
	}

	if len(m.Help) > 0 {
		b.WriteString("\n")
		cyan := color.New(color.FgCyan)
		if m.NoColor {
			cyan.DisableColor()
		}
		for _, h := range m.Help {
			cyan.Fprintf(&b, "   → %s\n", h)
		}
	}

	return b.String()
}

func levelColors(l Level) (*color.Color, *color.Color) {
	switch l {
	case LevelWarning:
		return color.New(color.FgYellow, color.Bold), color.New(color.FgYellow)
	case LevelInfo:
		return color.New(color.FgCyan, color.Bold), color.New(color.FgCyan)
	default:
		return color.New(color.FgRed, color.Bold), color.New(color.FgRed)
	}
}

func levelSymbol(l Level) string {
	switch l {
	case LevelWarning:
		return "!"
	case LevelInfo:
		return "i"
	default:
		return "✗"
	}
}

// Write writes the formatted message
func (m Message) Write(w io.Writer) {
	fmt.Fprint(w, m.Format())
}

// FormatSuccess creates a success line
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success line
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// MeterNotFound is shown when a meter name or id does not resolve
func MeterNotFound(name string, suggestions []string, noColor bool) Message {
	return Message{
		Context:     "meter not found",
		Problem:     fmt.Sprintf("Cannot find meter '%s'.", name),
		Suggestions: suggestions,
		Help: []string{
			"List meters: arud meters",
			"Meters can also be given by id, e.g. 1 for الطويل",
		},
		NoColor: noColor,
	}
}

// TafilaNotFound is shown when a foot name does not resolve
func TafilaNotFound(name string, suggestions []string, noColor bool) Message {
	return Message{
		Context:     "tafila not found",
		Problem:     fmt.Sprintf("Cannot find tafila '%s'.", name),
		Suggestions: suggestions,
		Help:        []string{"List feet: arud tafila"},
		NoColor:     noColor,
	}
}

// InvalidPattern is shown for input outside the '/' and 'o' alphabet
func InvalidPattern(pattern string, noColor bool) Message {
	return Message{
		Context: "invalid pattern",
		Problem: fmt.Sprintf("'%s' is not a prosodic pattern.", pattern),
		Detail:  "Patterns use '/' for a moving letter and 'o' for a still one, e.g. //o/o//o/o/o.",
		Help:    []string{"Get help: arud detect --help"},
		NoColor: noColor,
	}
}

// ConfigError is shown when arud.yaml cannot be loaded
func ConfigError(message string, noColor bool) Message {
	return Message{
		Context: "configuration error",
		Problem: message,
		Help: []string{
			"View config: cat arud.yaml",
			"Get help: arud --help",
		},
		NoColor: noColor,
	}
}

// Warning creates a warning message
func Warning(message string, noColor bool) Message {
	return Message{Level: LevelWarning, Problem: message, NoColor: noColor}
}

// Info creates an informational message
func Info(message string, noColor bool) Message {
	return Message{Level: LevelInfo, Problem: message, NoColor: noColor}
}
