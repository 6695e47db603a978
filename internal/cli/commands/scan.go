package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qawafi/arud/internal/analyzer"
	"github.com/qawafi/arud/internal/cli/ui"
)

func newScanCommand(a *app) *cobra.Command {
	var (
		top  int
		hint string
	)

	cmd := &cobra.Command{
		Use:   "scan <tafila names...>",
		Short: "Detect the meter of a scansion written as tafila names",
		Long: `Scan maps each tafila name to its pattern and detects the meter of the
whole line. Derived names such as متفعلن or مفاعلن are understood, as are
split spellings like "مستفع لن". Diacritics are ignored.`,
		Example: `  arud scan فعولن مفاعيلن فعولن مفاعلن
  arud scan "مستفعلن فاعلن مستفعلن فعلن" --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scansion := strings.Join(args, " ")
			hintID, err := a.resolveHint(cmd, hint)
			if err != nil {
				return err
			}

			az := a.newAnalyzer(top)
			pattern, err := az.PatternFromScansion(scansion)
			if err != nil {
				var footErr *analyzer.FootError
				if errors.As(err, &footErr) {
					ui.TafilaNotFound(footErr.Name, ui.FindSimilar(footErr.Name, a.tafilaNames()), a.noColor).
						Write(cmd.ErrOrStderr())
				}
				return err
			}

			analysis, err := az.AnalyzePattern(cmd.Context(), pattern.String(), hintID)
			if err != nil {
				return err
			}
			analysis.Source = analyzer.SourceScansion
			analysis.Text = scansion
			return a.renderAnalysis(cmd.OutOrStdout(), analysis)
		},
	}

	cmd.Flags().IntVarP(&top, "top", "k", 0, "number of meters to report (default from config)")
	cmd.Flags().StringVar(&hint, "hint", "", "meter name or id preferred on ties")

	return cmd
}

func (a *app) tafilaNames() []string {
	all := a.engine.Tafilas.All()
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = t.Name()
	}
	return names
}
