package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/qawafi/arud/internal/analyzer"
	"github.com/qawafi/arud/internal/cli/ui"
	"github.com/qawafi/arud/internal/prosody/alphabet"
)

type batchLine struct {
	Line  int    `json:"line"`
	Input string `json:"input"`
}

type batchResult struct {
	batchLine
	Analysis *analyzer.Analysis `json:"analysis,omitempty"`
	Error    string             `json:"error,omitempty"`
}

func newBatchCommand(a *app) *cobra.Command {
	var (
		workers  int
		scansion bool
		progress bool
		top      int
	)

	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Detect the meter of every line of a file",
		Long: `Batch reads one pattern per line (or one scansion per line with --scansion)
from a file or stdin and detects each concurrently. Blank lines and lines
starting with # are skipped. A line that fails is reported and does not stop
the batch.`,
		Example: `  arud batch verses.txt
  arud batch --scansion --workers 8 --format json < scansions.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening batch file: %w", err)
				}
				defer f.Close()
				in = f
			}

			lines, err := readBatch(in)
			if err != nil {
				return err
			}

			var bar *ui.Progress
			if progress {
				bar = ui.NewProgress(cmd.ErrOrStderr(), len(lines), "lines", a.noColor)
				defer bar.Finish()
			}

			results, err := a.runBatch(cmd.Context(), lines, top, workers, scansion, bar)
			if err != nil {
				return err
			}
			return a.renderBatch(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "concurrent detections")
	cmd.Flags().BoolVar(&scansion, "scansion", false, "lines are tafila names instead of patterns")
	cmd.Flags().BoolVar(&progress, "progress", false, "draw a progress bar on stderr")
	cmd.Flags().IntVarP(&top, "top", "k", 0, "number of meters to keep per line (default from config)")

	return cmd
}

func readBatch(r io.Reader) ([]batchLine, error) {
	var lines []batchLine
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, batchLine{Line: n, Input: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading batch input: %w", err)
	}
	return lines, nil
}

// runBatch analyzes every line with at most workers goroutines. Results keep the
// input order.
func (a *app) runBatch(ctx context.Context, lines []batchLine, top, workers int, scansion bool, bar *ui.Progress) ([]batchResult, error) {
	az := a.newAnalyzer(top)
	results := make([]batchResult, len(lines))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = a.analyzeLine(ctx, az, line, scansion)
			if bar != nil {
				bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	a.logger.Debug("batch finished", zap.Int("lines", len(lines)), zap.Int("failed", failed))
	return results, nil
}

func (a *app) analyzeLine(ctx context.Context, az *analyzer.Analyzer, line batchLine, scansion bool) batchResult {
	result := batchResult{batchLine: line}

	var pattern string
	if scansion {
		p, err := az.PatternFromScansion(line.Input)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		pattern = p.String()
	} else {
		p, ok := alphabet.ParsePattern(strings.Join(strings.Fields(line.Input), ""))
		if !ok {
			result.Error = fmt.Sprintf("%s: %q", errInvalidPattern, line.Input)
			return result
		}
		pattern = p.String()
	}

	analysis, err := az.AnalyzePattern(ctx, pattern, 0)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if scansion {
		analysis.Source = analyzer.SourceScansion
		analysis.Text = line.Input
	}
	result.Analysis = analysis
	return result
}

func (a *app) renderBatch(w io.Writer, results []batchResult) error {
	if a.json() {
		return writeJSON(w, results)
	}

	table := ui.NewTable(w, a.noColor, "LINE", "METER", "CONFIDENCE", "QUALITY", "INPUT")
	for _, r := range results {
		meterName, confidence, quality := "-", "-", "-"
		switch {
		case r.Error != "":
			meterName, quality = "error", r.Error
		case r.Analysis != nil:
			if best, ok := r.Analysis.Best(); ok {
				meterName = best.Name
				confidence = fmt.Sprintf("%.3f", best.Confidence)
				quality = string(best.Quality)
			}
		}
		table.AddRow(strconv.Itoa(r.Line), meterName, confidence, quality, r.Input)
	}
	table.Render()
	return nil
}
