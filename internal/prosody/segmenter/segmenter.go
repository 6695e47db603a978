// Package segmenter splits a phoneme sequence into known feet and aligns the
// resulting foot sequence with the meter grammars. It is an alternative to the
// whole-pattern detector that works from the letter-level view of a verse.
package segmenter

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/qawafi/arud/internal/prosody/alphabet"
	"github.com/qawafi/arud/internal/prosody/detector"
	"github.com/qawafi/arud/internal/prosody/meter"
)

// Options bounds the search
type Options struct {
	// MinPhonemes and MaxPhonemes bound the phoneme length of one foot
	MinPhonemes int
	MaxPhonemes int
	// MaxPaths caps the partial segmentations kept per position; 0 means no cap
	MaxPaths int
	Logger   *zap.Logger
}

// DefaultOptions returns the standard bounds
func DefaultOptions() Options {
	return Options{MinPhonemes: 3, MaxPhonemes: 7, MaxPaths: 1024}
}

// Segment is one foot candidate covering phonemes[Start:End]
type Segment struct {
	Start   int
	End     int
	Pattern alphabet.Pattern
	Entries []LibraryEntry
}

// Segmentation is a full cover of the input by consecutive segments
type Segmentation []Segment

// Pattern concatenates the segment patterns
func (s Segmentation) Pattern() alphabet.Pattern {
	parts := make([]alphabet.Pattern, len(s))
	for i, seg := range s {
		parts[i] = seg.Pattern
	}
	return alphabet.Concat(parts...)
}

// Segmenter is safe for concurrent use
type Segmenter struct {
	meters  *meter.Registry
	library *Library
	opts    Options
	logger  *zap.Logger
}

// New creates a segmenter. Non-positive bounds fall back to the defaults.
func New(meters *meter.Registry, library *Library, opts Options) *Segmenter {
	def := DefaultOptions()
	if opts.MinPhonemes <= 0 {
		opts.MinPhonemes = def.MinPhonemes
	}
	if opts.MaxPhonemes <= 0 {
		opts.MaxPhonemes = def.MaxPhonemes
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Segmenter{meters: meters, library: library, opts: opts, logger: logger}
}

// Library returns the foot library
func (s *Segmenter) Library() *Library {
	return s.library
}

// Segment enumerates every way to cover phonemes with library feet. Segmentations are
// produced in order of increasing first-segment length, recursively.
func (s *Segmenter) Segment(phonemes []alphabet.Phoneme) []Segmentation {
	n := len(phonemes)
	if n == 0 {
		return nil
	}

	paths := make([][]Segmentation, n+1)
	paths[0] = []Segmentation{{}}
	truncated := false

	for i := 0; i < n; i++ {
		if len(paths[i]) == 0 {
			continue
		}
		for l := s.opts.MinPhonemes; l <= s.opts.MaxPhonemes && i+l <= n; l++ {
			p := alphabet.PatternOf(phonemes, i, i+l)
			if p == "" {
				continue
			}
			entries := s.library.Lookup(p)
			if len(entries) == 0 {
				continue
			}
			seg := Segment{Start: i, End: i + l, Pattern: p, Entries: entries}
			for _, prefix := range paths[i] {
				if s.opts.MaxPaths > 0 && len(paths[i+l]) >= s.opts.MaxPaths {
					truncated = true
					break
				}
				next := make(Segmentation, len(prefix), len(prefix)+1)
				copy(next, prefix)
				paths[i+l] = append(paths[i+l], append(next, seg))
			}
		}
		paths[i] = nil
	}

	if truncated {
		s.logger.Debug("segmentation paths truncated", zap.Int("phonemes", n), zap.Int("max_paths", s.opts.MaxPaths))
	}
	return paths[n]
}

// alignment is one meter matched against one segmentation
type alignment struct {
	meter      *meter.Meter
	seg        Segmentation
	entries    []LibraryEntry
	confidence float64
}

// align picks, for each position, the most confident entry derived from the
// position's base foot by a licensed transform.
func align(m *meter.Meter, seg Segmentation) (alignment, bool) {
	if len(seg) != len(m.Positions) {
		return alignment{}, false
	}
	a := alignment{meter: m, seg: seg, entries: make([]LibraryEntry, len(seg))}
	total := 0.0
	for i, pos := range m.Positions {
		found := false
		for _, e := range seg[i].Entries {
			if e.Base != pos.Tafila.Name() || !pos.Licenses(e.Transform) {
				continue
			}
			if !found || e.Confidence() > a.entries[i].Confidence() {
				a.entries[i] = e
				found = true
			}
		}
		if !found {
			return alignment{}, false
		}
		total += a.entries[i].Confidence()
	}
	a.confidence = total / float64(len(seg))
	return a, true
}

func better(a, b alignment) bool {
	if a.confidence != b.confidence {
		return a.confidence > b.confidence
	}
	if a.meter.Rank != b.meter.Rank {
		return a.meter.Rank < b.meter.Rank
	}
	return a.meter.ID < b.meter.ID
}

// MatchAll aligns every segmentation with every meter and returns up to topK meters,
// best first. Each meter appears once with its best alignment.
func (s *Segmenter) MatchAll(phonemes []alphabet.Phoneme, topK int) []detector.MeterMatch {
	if topK < 1 {
		return nil
	}
	segs := s.Segment(phonemes)
	if len(segs) == 0 {
		return nil
	}

	best := make(map[meter.ID]alignment)
	for _, seg := range segs {
		for _, m := range s.meters.All() {
			a, ok := align(m, seg)
			if !ok {
				continue
			}
			if cur, seen := best[m.ID]; !seen || a.confidence > cur.confidence {
				best[m.ID] = a
			}
		}
	}

	ranked := make([]alignment, 0, len(best))
	for _, a := range best {
		ranked = append(ranked, a)
	}
	sort.Slice(ranked, func(i, j int) bool { return better(ranked[i], ranked[j]) })
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	matches := make([]detector.MeterMatch, len(ranked))
	for i, a := range ranked {
		matches[i] = a.match()
	}
	s.logger.Debug("segment match",
		zap.Int("phonemes", len(phonemes)),
		zap.Int("segmentations", len(segs)),
		zap.Int("meters", len(matches)))
	return matches
}

// Match returns the single best alignment
func (s *Segmenter) Match(phonemes []alphabet.Phoneme) (detector.MeterMatch, bool) {
	matches := s.MatchAll(phonemes, 1)
	if len(matches) == 0 {
		return detector.MeterMatch{}, false
	}
	return matches[0], true
}

func (a alignment) match() detector.MeterMatch {
	labels := make([]string, len(a.entries))
	feet := make([]string, len(a.entries))
	for i, e := range a.entries {
		labels[i] = e.Provenance()
		if e.Transform.IsBase() {
			feet[i] = e.Tafila.Name()
		} else {
			feet[i] = fmt.Sprintf("%s(%s)", e.Tafila.Name(), e.Provenance())
		}
	}
	m := a.meter
	return detector.MeterMatch{
		MeterID:         m.ID,
		Name:            m.Name,
		BaseMeterID:     m.CanonicalID(),
		Tier:            m.Tier,
		Rank:            m.Rank,
		Confidence:      a.confidence,
		Similarity:      1.0,
		Quality:         detector.QualityFor(a.confidence),
		Pattern:         string(a.seg.Pattern()),
		Transformations: labels,
		Explanation:     fmt.Sprintf("%s, segmented as %s", m.Name, strings.Join(feet, " ")),
		Exact:           true,
	}
}
