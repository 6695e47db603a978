package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qawafi/arud/internal/cli/ui"
	"github.com/qawafi/arud/internal/prosody/meter"
	"github.com/qawafi/arud/internal/prosody/rules"
)

type meterJSON struct {
	ID          meter.ID       `json:"id"`
	Name        string         `json:"name"`
	Translit    string         `json:"translit"`
	BaseID      meter.ID       `json:"base_id,omitempty"`
	Tier        int            `json:"tier"`
	Rank        int            `json:"rank"`
	Feet        string         `json:"feet"`
	BasePattern string         `json:"base_pattern"`
	Count       int            `json:"pattern_count"`
	Positions   []positionJSON `json:"positions,omitempty"`
	Patterns    []patternJSON  `json:"patterns,omitempty"`
}

type positionJSON struct {
	Tafila  string   `json:"tafila"`
	Zihafat []string `json:"zihafat"`
	Ilal    []string `json:"ilal,omitempty"`
}

type patternJSON struct {
	Pattern         string   `json:"pattern"`
	Transformations []string `json:"transformations"`
}

func newMetersCommand(a *app) *cobra.Command {
	var patterns bool

	cmd := &cobra.Command{
		Use:   "meters [meter]",
		Short: "List the meters or show one meter's grammar",
		Example: `  arud meters
  arud meters الطويل --patterns
  arud meters kamil`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				return a.listMeters(w)
			}

			m, err := a.resolveMeter(cmd, args[0])
			if err != nil {
				return err
			}
			return a.showMeter(w, m, patterns)
		},
	}

	cmd.Flags().BoolVar(&patterns, "patterns", false, "list every licensed surface pattern")

	return cmd
}

func (a *app) meterJSON(m *meter.Meter) meterJSON {
	return meterJSON{
		ID:          m.ID,
		Name:        m.Name,
		Translit:    m.Translit,
		BaseID:      m.BaseID,
		Tier:        m.Tier,
		Rank:        m.Rank,
		Feet:        m.Feet(),
		BasePattern: m.BasePattern().String(),
		Count:       a.engine.Cache.Count(m.ID),
	}
}

func (a *app) listMeters(w io.Writer) error {
	all := a.engine.Meters.All()
	if a.json() {
		out := make([]meterJSON, len(all))
		for i, m := range all {
			out[i] = a.meterJSON(m)
		}
		return writeJSON(w, out)
	}

	table := ui.NewTable(w, a.noColor, "ID", "METER", "TRANSLIT", "TIER", "PATTERNS", "FEET")
	for _, m := range all {
		table.AddRow(
			strconv.Itoa(int(m.ID)),
			m.Name,
			m.Translit,
			strconv.Itoa(m.Tier),
			strconv.Itoa(a.engine.Cache.Count(m.ID)),
			m.Feet(),
		)
	}
	table.Render()
	return nil
}

func (a *app) showMeter(w io.Writer, m *meter.Meter, withPatterns bool) error {
	out := a.meterJSON(m)
	for _, p := range m.Positions {
		out.Positions = append(out.Positions, positionJSON{
			Tafila:  p.Tafila.Name(),
			Zihafat: ruleNames(p.Zihafat),
			Ilal:    ruleNames(p.Ilal),
		})
	}
	if withPatterns {
		for _, e := range a.engine.Cache.Patterns(m.ID) {
			out.Patterns = append(out.Patterns, patternJSON{Pattern: e.Pattern.String(), Transformations: e.Labels()})
		}
	}

	if a.json() {
		return writeJSON(w, out)
	}

	ui.Header(w, fmt.Sprintf("%s (%s)", m.Name, m.Translit), a.noColor)
	kv := ui.NewKeyValueTable(w, a.noColor)
	kv.AddRow("ID", strconv.Itoa(int(m.ID)))
	if m.IsVariant() {
		if base, ok := a.engine.Meters.Get(m.BaseID); ok {
			kv.AddRow("Shortened from", base.Name)
		}
	}
	kv.AddRow("Tier", fmt.Sprintf("%d (rank %d)", m.Tier, m.Rank))
	kv.AddRow("Base pattern", out.BasePattern)
	kv.AddRow("Patterns", strconv.Itoa(out.Count))
	kv.Render()
	fmt.Fprintln(w)

	table := ui.NewTable(w, a.noColor, "#", "TAFILA", "ZIHAFAT", "ILAL")
	for i, p := range out.Positions {
		table.AddRow(strconv.Itoa(i+1), p.Tafila, joinOrDash(p.Zihafat), joinOrDash(p.Ilal))
	}
	table.Render()

	if withPatterns {
		fmt.Fprintln(w)
		table := ui.NewTable(w, a.noColor, "PATTERN", "TRANSFORMATIONS")
		for _, p := range out.Patterns {
			table.AddRow(p.Pattern, strings.Join(p.Transformations, " "))
		}
		table.Render()
	}
	return nil
}

func ruleNames(rs []rules.Rule) []string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.String()
	}
	return names
}

func joinOrDash(s []string) string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, ", ")
}
