package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qawafi/arud/internal/analyzer"
	"github.com/qawafi/arud/internal/prosody/alphabet"
	"github.com/qawafi/arud/internal/prosody/segmenter"
)

type segmentJSON struct {
	Start   int      `json:"start"`
	End     int      `json:"end"`
	Pattern string   `json:"pattern"`
	Feet    []string `json:"feet"`
}

func newSegmentCommand(a *app) *cobra.Command {
	var (
		file  string
		top   int
		hint  string
		paths int
	)

	cmd := &cobra.Command{
		Use:   "segment [phonemes...]",
		Short: "Detect a meter from phonemes and cross-check it by foot segmentation",
		Long: `Segment converts phonemes to a pattern, detects its meter, and independently
splits the phonemes into known feet to confirm the result.

Phonemes are given inline as letter:vowel tokens (vowels: a, i, u, an, un, in,
long, sukun; flags: +shadda, +wasl) or as a YAML/JSON list with --phonemes.`,
		Example: `  arud segment "ق:a ف:a ا:long ن:i+shadda"
  arud segment --phonemes verse.yaml --paths 5
  cat verse.json | arud segment --phonemes -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			phonemes, err := readPhonemes(cmd, file, args)
			if err != nil {
				return err
			}
			hintID, err := a.resolveHint(cmd, hint)
			if err != nil {
				return err
			}

			analysis, err := a.newAnalyzer(top, analyzer.WithCrossCheck(true)).AnalyzePhonemes(cmd.Context(), phonemes, hintID)
			if err != nil {
				return err
			}

			var segs []segmenter.Segmentation
			if paths > 0 {
				segs = a.engine.Segmenter.Segment(phonemes)
				if len(segs) > paths {
					segs = segs[:paths]
				}
			}

			w := cmd.OutOrStdout()
			if a.json() {
				out := struct {
					*analyzer.Analysis
					Segmentations [][]segmentJSON `json:"segmentations,omitempty"`
				}{Analysis: analysis}
				for _, seg := range segs {
					out.Segmentations = append(out.Segmentations, segmentationJSON(seg))
				}
				return writeJSON(w, out)
			}

			if err := a.renderAnalysis(w, analysis); err != nil {
				return err
			}
			if len(segs) > 0 {
				fmt.Fprintln(w)
				for i, seg := range segs {
					fmt.Fprintf(w, "%d. %s\n", i+1, describeSegmentation(seg))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "phonemes", "p", "", "YAML or JSON phoneme file, - for stdin")
	cmd.Flags().IntVarP(&top, "top", "k", 0, "number of meters to report (default from config)")
	cmd.Flags().StringVar(&hint, "hint", "", "meter name or id preferred on ties")
	cmd.Flags().IntVar(&paths, "paths", 0, "also list up to this many foot segmentations")

	return cmd
}

func readPhonemes(cmd *cobra.Command, file string, args []string) ([]alphabet.Phoneme, error) {
	switch {
	case file != "" && len(args) > 0:
		return nil, fmt.Errorf("give phonemes inline or with --phonemes, not both")
	case file == "-":
		return alphabet.LoadPhonemes(cmd.InOrStdin())
	case file != "":
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("opening phoneme file: %w", err)
		}
		defer f.Close()
		return alphabet.LoadPhonemes(f)
	case len(args) > 0:
		return alphabet.ParsePhonemes(strings.Join(args, " "))
	default:
		return nil, fmt.Errorf("no phonemes given")
	}
}

func segmentationJSON(seg segmenter.Segmentation) []segmentJSON {
	out := make([]segmentJSON, len(seg))
	for i, s := range seg {
		feet := make([]string, len(s.Entries))
		for j, e := range s.Entries {
			feet[j] = e.Tafila.Name()
		}
		out[i] = segmentJSON{Start: s.Start, End: s.End, Pattern: s.Pattern.String(), Feet: feet}
	}
	return out
}

func describeSegmentation(seg segmenter.Segmentation) string {
	parts := make([]string, len(seg))
	for i, s := range seg {
		name := s.Pattern.String()
		if len(s.Entries) > 0 {
			name = s.Entries[0].Tafila.Name()
		}
		parts[i] = fmt.Sprintf("%s [%s]", name, s.Pattern)
	}
	return strings.Join(parts, " | ")
}
