package commands

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/qawafi/arud/internal/prosody/alphabet"
)

const noHint = "(no hint)"

// prompter asks for detect input interactively
type prompter interface {
	Pattern() (string, error)
	Hint(meters []string) (string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Pattern() (string, error) {
	var pattern string
	prompt := &survey.Input{
		Message: "Pattern ('/' moving, 'o' still):",
	}
	validate := func(ans interface{}) error {
		s, _ := ans.(string)
		if _, ok := alphabet.ParsePattern(s); !ok {
			return errors.New("use only '/' and 'o'")
		}
		return nil
	}
	if err := survey.AskOne(prompt, &pattern, survey.WithValidator(survey.ComposeValidators(survey.Required, validate))); err != nil {
		return "", err
	}
	return pattern, nil
}

func (surveyPrompter) Hint(meters []string) (string, error) {
	var hint string
	prompt := &survey.Select{
		Message: "Meter hint:",
		Options: append([]string{noHint}, meters...),
		Default: noHint,
	}
	if err := survey.AskOne(prompt, &hint); err != nil {
		return "", err
	}
	if hint == noHint {
		return "", nil
	}
	return hint, nil
}

func newDetectCommand(a *app) *cobra.Command {
	var (
		top         int
		hint        string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "detect [pattern]",
		Short: "Detect the meter of a prosodic pattern",
		Long: `Detect ranks the meters that best explain a pattern of '/' (moving) and
'o' (still) letters. Exact forms score 1.0; other meters are scored by weighted
edit distance against their licensed forms.

A hint only decides between meters that are otherwise tied.`,
		Example: `  arud detect //o/o//o/o/o//o/o//o/o/o
  arud detect --top 5 --hint الطويل "//o/o //o/o/o //o/o //o//o"
  arud detect --interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			switch {
			case len(args) == 1:
				input = args[0]
			case interactive:
				var err error
				if input, err = a.prompter.Pattern(); err != nil {
					return err
				}
				if hint == "" {
					if hint, err = a.prompter.Hint(a.engine.Meters.Names()); err != nil {
						return err
					}
				}
			default:
				return fmt.Errorf("a pattern is required (or use --interactive)")
			}

			pattern, err := a.parsePattern(cmd, input)
			if err != nil {
				return err
			}
			hintID, err := a.resolveHint(cmd, hint)
			if err != nil {
				return err
			}

			analysis, err := a.newAnalyzer(top).AnalyzePattern(cmd.Context(), pattern.String(), hintID)
			if err != nil {
				return err
			}
			return a.renderAnalysis(cmd.OutOrStdout(), analysis)
		},
	}

	cmd.Flags().IntVarP(&top, "top", "k", 0, "number of meters to report (default from config)")
	cmd.Flags().StringVar(&hint, "hint", "", "meter name or id preferred on ties")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for the pattern and hint")

	return cmd
}
