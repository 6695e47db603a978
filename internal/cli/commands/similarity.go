package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qawafi/arud/internal/cli/ui"
	"github.com/qawafi/arud/internal/prosody/similarity"
)

func newSimilarityCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "similarity <pattern> <pattern>",
		Short: "Score how close two prosodic patterns are",
		Long: `Similarity prints the weighted edit distance between two patterns and the
derived score in [0, 1]. An insertion or deletion costs 1, turning a moving
letter into a still one costs 2, and each symbol of length difference adds 0.5.`,
		Example: `  arud similarity //o/o //o/`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := a.parsePattern(cmd, args[0])
			if err != nil {
				return err
			}
			right, err := a.parsePattern(cmd, args[1])
			if err != nil {
				return err
			}

			distance := similarity.Distance(left.String(), right.String())
			score := similarity.Calculate(left.String(), right.String())

			w := cmd.OutOrStdout()
			if a.json() {
				return writeJSON(w, map[string]any{
					"a":          left.String(),
					"b":          right.String(),
					"distance":   distance,
					"similarity": score,
				})
			}

			kv := ui.NewKeyValueTable(w, a.noColor)
			kv.AddRow("Distance", fmt.Sprintf("%.2f", distance))
			kv.AddRow("Similarity", fmt.Sprintf("%.4f", score))
			kv.Render()
			return nil
		},
	}
}
