package commands

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/qawafi/arud/internal/cli/ui"
	"github.com/qawafi/arud/internal/prosody/alphabet"
	"github.com/qawafi/arud/internal/prosody/segmenter"
)

type tafilaJSON struct {
	Name       string  `json:"name"`
	Pattern    string  `json:"pattern"`
	Base       string  `json:"base,omitempty"`
	Provenance string  `json:"provenance,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Syllables  int     `json:"syllables,omitempty"`
	Form       string  `json:"form,omitempty"`
	Similarity float64 `json:"similarity,omitempty"`
	Exact      bool    `json:"exact,omitempty"`
}

func newTafilaCommand(a *app) *cobra.Command {
	var match string

	cmd := &cobra.Command{
		Use:   "tafila [name]",
		Short: "List the feet, a foot's derived variants, or the feet closest to a pattern",
		Example: `  arud tafila
  arud tafila مستفعلن
  arud tafila متفعلن
  arud tafila --match //o//o`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch {
			case match != "":
				p, err := a.parsePattern(cmd, match)
				if err != nil {
					return err
				}
				return a.matchTafilas(w, p)
			case len(args) == 1:
				return a.showTafila(cmd, args[0])
			default:
				return a.listTafilas(w)
			}
		},
	}

	cmd.Flags().StringVar(&match, "match", "", "rank the feet against this pattern")

	return cmd
}

func (a *app) listTafilas(w io.Writer) error {
	all := a.engine.Tafilas.All()
	out := make([]tafilaJSON, len(all))
	for i, t := range all {
		out[i] = tafilaJSON{
			Name:      t.Name(),
			Pattern:   t.Pattern().String(),
			Syllables: t.SyllableCount(),
			Form:      t.Form().String(),
		}
	}
	if a.json() {
		return writeJSON(w, out)
	}

	table := ui.NewTable(w, a.noColor, "TAFILA", "PATTERN", "SYLLABLES", "FORM", "VARIANTS")
	for _, t := range out {
		table.AddRow(t.Name, t.Pattern, strconv.Itoa(t.Syllables), t.Form,
			strconv.Itoa(len(a.engine.Library.Variants(t.Name))))
	}
	table.Render()
	return nil
}

// showTafila prints the variants of a registered foot, or the derivations of a
// variant name such as متفعلن
func (a *app) showTafila(cmd *cobra.Command, name string) error {
	var entries []segmenter.LibraryEntry
	if t, ok := a.engine.Tafilas.Get(name); ok {
		entries = a.engine.Library.Variants(t.Name())
	} else {
		entries = a.engine.Library.LookupName(name)
	}
	if len(entries) == 0 {
		ui.TafilaNotFound(name, ui.FindSimilar(name, a.tafilaNames()), a.noColor).Write(cmd.ErrOrStderr())
		return fmt.Errorf("%w: %q", errTafilaNotFound, name)
	}

	out := make([]tafilaJSON, len(entries))
	for i, e := range entries {
		out[i] = tafilaJSON{
			Name:       e.Tafila.Name(),
			Pattern:    e.Tafila.Pattern().String(),
			Base:       e.Base,
			Provenance: e.Provenance(),
			Confidence: e.Confidence(),
		}
	}

	w := cmd.OutOrStdout()
	if a.json() {
		return writeJSON(w, out)
	}

	table := ui.NewTable(w, a.noColor, "TAFILA", "PATTERN", "FROM", "RULES", "CONFIDENCE")
	for _, e := range out {
		table.AddRow(e.Name, e.Pattern, e.Base, e.Provenance, fmt.Sprintf("%.2f", e.Confidence))
	}
	table.Render()
	return nil
}

// matchTafilas ranks the registered feet by positional similarity to p and lists the
// derived feet that spell p exactly
func (a *app) matchTafilas(w io.Writer, p alphabet.Pattern) error {
	var out []tafilaJSON
	for _, t := range a.engine.Tafilas.All() {
		out = append(out, tafilaJSON{
			Name:       t.Name(),
			Pattern:    t.Pattern().String(),
			Similarity: t.Similarity(p.String()),
			Exact:      t.MatchesPattern(p.String()),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })

	for _, e := range a.engine.Library.Lookup(p) {
		if e.Transform.IsBase() {
			continue
		}
		out = append(out, tafilaJSON{
			Name:       e.Tafila.Name(),
			Pattern:    e.Tafila.Pattern().String(),
			Base:       e.Base,
			Provenance: e.Provenance(),
			Confidence: e.Confidence(),
			Similarity: 1,
			Exact:      true,
		})
	}

	if a.json() {
		return writeJSON(w, out)
	}

	table := ui.NewTable(w, a.noColor, "TAFILA", "PATTERN", "SIMILARITY", "EXACT", "FROM")
	for _, e := range out {
		exact := ""
		if e.Exact {
			exact = "yes"
		}
		from := e.Base
		if from != "" {
			from += " (" + e.Provenance + ")"
		}
		table.AddRow(e.Name, e.Pattern, fmt.Sprintf("%.2f", e.Similarity), exact, from)
	}
	table.Render()
	return nil
}
