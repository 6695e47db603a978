package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qawafi/arud/internal/cli/ui"
)

var errNotLicensed = errors.New("pattern is not a licensed form of the meter")

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <pattern> <meter>",
		Short: "Check that a pattern is a licensed form of a meter",
		Long: `Validate succeeds only when the pattern is exactly one of the meter's forms
after its permitted zihafat and ilal. No fuzzy scoring is involved; the exit
status is non-zero otherwise.`,
		Example: `  arud validate //o/o//o/o/o//o/o//o//o الطويل
  arud validate /o/o//o/o/o//o/o/o//o 7`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, err := a.parsePattern(cmd, args[0])
			if err != nil {
				return err
			}
			m, err := a.resolveMeter(cmd, args[1])
			if err != nil {
				return err
			}

			valid := a.engine.Detector.ValidatePattern(pattern.String(), m.ID)
			w := cmd.OutOrStdout()

			if a.json() {
				out := map[string]any{
					"pattern":  pattern.String(),
					"meter_id": m.ID,
					"meter":    m.Name,
					"valid":    valid,
				}
				if entry, ok := a.engine.Cache.Lookup(m.ID, pattern); ok {
					out["transformations"] = entry.Labels()
				}
				if err := writeJSON(w, out); err != nil {
					return err
				}
			} else if valid {
				ui.WriteSuccess(w, fmt.Sprintf("%s is a licensed form of %s", pattern, m.Name), a.noColor)
				if entry, ok := a.engine.Cache.Lookup(m.ID, pattern); ok {
					kv := ui.NewKeyValueTable(w, a.noColor)
					kv.AddRow("Transformations", strings.Join(entry.Labels(), " "))
					kv.Render()
				}
			} else {
				ui.Warning(fmt.Sprintf("%s is not a licensed form of %s", pattern, m.Name), a.noColor).Write(w)
			}

			if !valid {
				return errNotLicensed
			}
			return nil
		},
	}
}
