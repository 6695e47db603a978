package commands

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/qawafi/arud/internal/cli/ui"
	"github.com/qawafi/arud/internal/prosody/detector"
)

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show grammar and pattern cache statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := a.engine.Detector.Statistics()
			w := cmd.OutOrStdout()

			if a.json() {
				return writeJSON(w, struct {
					detector.Statistics
					Tafilas         int    `json:"tafilas"`
					LibraryEntries  int    `json:"library_entries"`
					LibraryPatterns int    `json:"library_patterns"`
					CacheBackend    string `json:"cache_backend"`
				}{
					Statistics:      stats,
					Tafilas:         a.engine.Tafilas.Len(),
					LibraryEntries:  a.engine.Library.Len(),
					LibraryPatterns: a.engine.Library.Patterns(),
					CacheBackend:    a.cacheBackend(),
				})
			}

			kv := ui.NewKeyValueTable(w, a.noColor)
			kv.AddRow("Meters", strconv.Itoa(stats.TotalMeters))
			kv.AddRow("Base meters", strconv.Itoa(stats.BaseMeters))
			kv.AddRow("Patterns", strconv.Itoa(stats.TotalPatterns))
			kv.AddRow("Tafilas", strconv.Itoa(a.engine.Tafilas.Len()))
			kv.AddRow("Foot variants", strconv.Itoa(a.engine.Library.Len()))
			kv.AddRow("Result cache", a.cacheBackend())
			kv.Render()

			tiers := make([]int, 0, len(stats.MetersByTier))
			for tier := range stats.MetersByTier {
				tiers = append(tiers, tier)
			}
			sort.Ints(tiers)

			table := ui.NewTable(w, a.noColor, "TIER", "METERS", "PATTERNS")
			for _, tier := range tiers {
				table.AddRow(strconv.Itoa(tier), strconv.Itoa(stats.MetersByTier[tier]), strconv.Itoa(stats.PatternsByTier[tier]))
			}
			fmt.Fprintln(w)
			table.Render()
			return nil
		},
	}
}

func (a *app) cacheBackend() string {
	if a.cache == nil {
		return "none"
	}
	return a.cfg.Cache.Backend
}
