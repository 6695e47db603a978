// Package detector classifies a prosodic pattern against the meter grammars.
//
// Detection runs in two tiers. A pattern found in a meter's cached surface forms is an
// exact hit with confidence 1.0. Every other meter is scored by the best weighted
// similarity between the input and its cached forms. Candidates are ranked by
// confidence; ties prefer exact hits with fewer transformations, then the more
// frequent meter.
package detector

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/qawafi/arud/internal/prosody/alphabet"
	"github.com/qawafi/arud/internal/prosody/meter"
	"github.com/qawafi/arud/internal/prosody/patterncache"
	"github.com/qawafi/arud/internal/prosody/similarity"
)

const (
	// DefaultLengthBoost is the maximum relative confidence boost for long input
	DefaultLengthBoost = 0.05
	// boostSaturation is the pattern length at which the boost is fully applied
	boostSaturation = 24
	// tieEpsilon bounds float noise when comparing confidences
	tieEpsilon = 1e-9
)

// Recorder receives one observation per Detect call. quality is the top match's
// quality or "none".
type Recorder interface {
	ObserveDetection(quality string, elapsed time.Duration)
}

// Options configures a Detector
type Options struct {
	// LengthBoost scales confidence up for longer patterns, capped at 1.0
	LengthBoost float64
	// MinSimilarity drops fuzzy candidates scoring below it
	MinSimilarity float64
	Logger        *zap.Logger
	Recorder      Recorder
}

// DefaultOptions returns the standard detector settings
func DefaultOptions() Options {
	return Options{LengthBoost: DefaultLengthBoost}
}

// Detector is safe for concurrent use; it only reads its registry and cache.
type Detector struct {
	meters *meter.Registry
	cache  *patterncache.Cache
	opts   Options
	logger *zap.Logger
}

// New creates a detector over a built pattern cache
func New(meters *meter.Registry, cache *patterncache.Cache, opts Options) *Detector {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{meters: meters, cache: cache, opts: opts, logger: logger}
}

type candidate struct {
	meter      *meter.Meter
	entry      patterncache.Entry
	similarity float64
	confidence float64
	exact      bool
}

// Detect returns up to topK meters for pattern, best first. Invalid or empty patterns
// and topK < 1 yield nil. hint only breaks genuine confidence ties.
func (d *Detector) Detect(pattern string, topK int, hint meter.ID) []MeterMatch {
	start := time.Now()
	matches := d.detect(pattern, topK, hint)

	if d.opts.Recorder != nil {
		quality := "none"
		if len(matches) > 0 {
			quality = string(matches[0].Quality)
		}
		d.opts.Recorder.ObserveDetection(quality, time.Since(start))
	}
	if ce := d.logger.Check(zap.DebugLevel, "detect"); ce != nil {
		fields := []zap.Field{
			zap.String("pattern", pattern),
			zap.Int("matches", len(matches)),
			zap.Duration("elapsed", time.Since(start)),
		}
		if len(matches) > 0 {
			fields = append(fields, zap.String("meter", matches[0].Name), zap.Float64("confidence", matches[0].Confidence))
		}
		ce.Write(fields...)
	}
	return matches
}

func (d *Detector) detect(pattern string, topK int, hint meter.ID) []MeterMatch {
	p, ok := alphabet.ParsePattern(pattern)
	if !ok || topK < 1 {
		return nil
	}

	candidates := make([]candidate, 0, d.meters.Len())
	for _, m := range d.meters.All() {
		if entry, ok := d.cache.Lookup(m.ID, p); ok {
			candidates = append(candidates, candidate{meter: m, entry: entry, similarity: 1.0, confidence: 1.0, exact: true})
			continue
		}
		c, ok := d.closest(m, p)
		if !ok {
			continue
		}
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return less(candidates[i], candidates[j])
	})
	d.promoteHint(candidates, hint)

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	matches := make([]MeterMatch, len(candidates))
	for i, c := range candidates {
		matches[i] = newMatch(c)
	}
	return matches
}

// closest finds the meter's cached form most similar to p. Equal similarities keep
// the form with fewer transformations, then the first enumerated.
func (d *Detector) closest(m *meter.Meter, p alphabet.Pattern) (candidate, bool) {
	best := candidate{meter: m, similarity: -1}
	for _, e := range d.cache.Patterns(m.ID) {
		sim := similarity.Calculate(string(p), string(e.Pattern))
		switch {
		case sim > best.similarity:
		case sim == best.similarity && e.TransformCount() < best.entry.TransformCount():
		default:
			continue
		}
		best.entry = e
		best.similarity = sim
	}
	if best.similarity <= 0 || best.similarity < d.opts.MinSimilarity {
		return candidate{}, false
	}
	best.confidence = d.confidence(best.similarity, p.Len())
	return best, true
}

// confidence boosts similarity by up to LengthBoost for longer patterns, capped at 1
func (d *Detector) confidence(sim float64, length int) float64 {
	boost := 1 + d.opts.LengthBoost*float64(min(length, boostSaturation))/boostSaturation
	return math.Min(1.0, sim*boost)
}

func sameConfidence(a, b float64) bool {
	return math.Abs(a-b) < tieEpsilon
}

func less(a, b candidate) bool {
	if !sameConfidence(a.confidence, b.confidence) {
		return a.confidence > b.confidence
	}
	if a.exact != b.exact {
		return a.exact
	}
	if a.exact {
		if ca, cb := a.entry.TransformCount(), b.entry.TransformCount(); ca != cb {
			return ca < cb
		}
	}
	if a.meter.Rank != b.meter.Rank {
		return a.meter.Rank < b.meter.Rank
	}
	return a.meter.ID < b.meter.ID
}

// promoteHint moves the hinted meter, or failing that a variant equivalent to it, to
// the front when it is tied with the leader on confidence and exactness. A fuzzy
// candidate clamped to 1.0 never overtakes an exact one.
func (d *Detector) promoteHint(candidates []candidate, hint meter.ID) {
	if hint == 0 || len(candidates) < 2 {
		return
	}
	hinted, ok := d.meters.Get(hint)
	if !ok {
		return
	}

	leader := candidates[0]
	pick := -1
	for i, c := range candidates {
		if !sameConfidence(c.confidence, leader.confidence) || c.exact != leader.exact {
			break
		}
		if c.meter.ID == hint {
			pick = i
			break
		}
		if pick < 0 && c.meter.Equivalent(hinted) {
			pick = i
		}
	}
	if pick <= 0 {
		return
	}
	promoted := candidates[pick]
	copy(candidates[1:pick+1], candidates[:pick])
	candidates[0] = promoted
}

func newMatch(c candidate) MeterMatch {
	return MeterMatch{
		MeterID:         c.meter.ID,
		Name:            c.meter.Name,
		BaseMeterID:     c.meter.CanonicalID(),
		Tier:            c.meter.Tier,
		Rank:            c.meter.Rank,
		Confidence:      c.confidence,
		Similarity:      c.similarity,
		Quality:         QualityFor(c.confidence),
		Pattern:         string(c.entry.Pattern),
		Transformations: c.entry.Labels(),
		Explanation:     explain(c),
		Exact:           c.exact,
	}
}

func explain(c candidate) string {
	feet := make([]string, len(c.entry.Transforms))
	for i, t := range c.entry.Transforms {
		name := c.meter.Positions[i].Tafila.Name()
		if t.IsBase() {
			feet[i] = name
		} else {
			feet[i] = fmt.Sprintf("%s(%s)", name, t)
		}
	}

	var b strings.Builder
	if c.exact {
		fmt.Fprintf(&b, "%s, exact form", c.meter.Name)
	} else {
		fmt.Fprintf(&b, "%s, closest form %s at similarity %.3f", c.meter.Name, c.entry.Pattern, c.similarity)
	}
	switch n := c.entry.TransformCount(); n {
	case 0:
		b.WriteString(" with no transformations")
	case 1:
		b.WriteString(" with 1 transformation")
	default:
		fmt.Fprintf(&b, " with %d transformations", n)
	}
	b.WriteString(": ")
	b.WriteString(strings.Join(feet, " "))
	return b.String()
}

// DetectBest returns the top match, if any
func (d *Detector) DetectBest(pattern string, hint meter.ID) (MeterMatch, bool) {
	matches := d.Detect(pattern, 1, hint)
	if len(matches) == 0 {
		return MeterMatch{}, false
	}
	return matches[0], true
}

// ValidatePattern reports whether pattern is one of the meter's licensed forms.
// It ignores fuzzy scoring entirely.
func (d *Detector) ValidatePattern(pattern string, id meter.ID) bool {
	p, ok := alphabet.ParsePattern(pattern)
	if !ok {
		return false
	}
	return d.cache.Contains(id, p)
}

// Statistics summarizes the registry and cache
func (d *Detector) Statistics() Statistics {
	stats := Statistics{
		TotalPatterns:  d.cache.Total(),
		PatternsByTier: make(map[int]int),
		MetersByTier:   make(map[int]int),
	}
	for _, m := range d.meters.All() {
		stats.TotalMeters++
		if !m.IsVariant() {
			stats.BaseMeters++
		}
		stats.MetersByTier[m.Tier]++
		stats.PatternsByTier[m.Tier] += d.cache.Count(m.ID)
	}
	return stats
}
