package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qawafi/arud/internal/analyzer"
	"github.com/qawafi/arud/internal/cli/ui"
	"github.com/qawafi/arud/internal/prosody/alphabet"
	"github.com/qawafi/arud/internal/prosody/detector"
	"github.com/qawafi/arud/internal/prosody/meter"
)

var (
	errMeterNotFound  = errors.New("meter not found")
	errTafilaNotFound = errors.New("tafila not found")
	errInvalidPattern = errors.New("invalid pattern")
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func (a *app) json() bool {
	return a.format == "json"
}

// parsePattern accepts '/' and 'o' with any surrounding whitespace
func (a *app) parsePattern(cmd *cobra.Command, s string) (alphabet.Pattern, error) {
	s = strings.Join(strings.Fields(s), "")
	p, ok := alphabet.ParsePattern(s)
	if !ok || p == "" {
		ui.InvalidPattern(s, a.noColor).Write(cmd.ErrOrStderr())
		return "", fmt.Errorf("%w: %q", errInvalidPattern, s)
	}
	return p, nil
}

// resolveMeter accepts a meter id, an Arabic name or a transliteration
func (a *app) resolveMeter(cmd *cobra.Command, name string) (*meter.Meter, error) {
	if id, err := strconv.Atoi(strings.TrimSpace(name)); err == nil {
		if m, ok := a.engine.Meters.Get(meter.ID(id)); ok {
			return m, nil
		}
	} else if m, ok := a.engine.Meters.ByName(name); ok {
		return m, nil
	} else if m, ok := a.engine.Meters.ByName(alphabet.StripDiacritics(name)); ok {
		return m, nil
	}

	candidates := a.engine.Meters.Names()
	for _, m := range a.engine.Meters.All() {
		candidates = append(candidates, m.Translit)
	}
	ui.MeterNotFound(name, ui.FindSimilar(name, candidates), a.noColor).Write(cmd.ErrOrStderr())
	return nil, fmt.Errorf("%w: %q", errMeterNotFound, name)
}

// resolveHint maps an empty flag to no hint
func (a *app) resolveHint(cmd *cobra.Command, name string) (meter.ID, error) {
	if name == "" {
		return 0, nil
	}
	m, err := a.resolveMeter(cmd, name)
	if err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (a *app) renderMatches(w io.Writer, matches []detector.MeterMatch) {
	if len(matches) == 0 {
		ui.Warning("No meter detected.", a.noColor).Write(w)
		return
	}

	table := ui.NewTable(w, a.noColor, "#", "METER", "CONFIDENCE", "QUALITY", "TRANSFORMATIONS")
	for i, m := range matches {
		table.AddRow(
			strconv.Itoa(i+1),
			fmt.Sprintf("%s (%d)", m.Name, m.MeterID),
			fmt.Sprintf("%.3f", m.Confidence),
			string(m.Quality),
			strings.Join(m.Transformations, " "),
		)
	}
	table.Render()
	fmt.Fprintln(w)
	fmt.Fprintln(w, matches[0].Explanation)
}

func (a *app) renderAnalysis(w io.Writer, analysis *analyzer.Analysis) error {
	if a.json() {
		return writeJSON(w, analysis)
	}

	kv := ui.NewKeyValueTable(w, a.noColor)
	kv.AddRow("Pattern", analysis.Pattern)
	kv.AddRow("Source", string(analysis.Source))
	if analysis.Segmented != nil {
		agreement := "agrees"
		if !analysis.Agreement {
			agreement = "disagrees"
		}
		kv.AddRow("Segmenter", fmt.Sprintf("%s (%.3f, %s)", analysis.Segmented.Name, analysis.Segmented.Confidence, agreement))
	}
	kv.Render()
	fmt.Fprintln(w)

	a.renderMatches(w, analysis.Matches)
	return nil
}
