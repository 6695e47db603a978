// Package analyzer runs a verse through the prosody engine. It converts the phonemes
// handed over by an external extractor into a pattern, detects the meter, falls back
// to a tafila-name scansion when the phonetic path gives nothing, and optionally
// cross-checks the result with the forward segmenter.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qawafi/arud/internal/prosody/alphabet"
	"github.com/qawafi/arud/internal/prosody/detector"
	"github.com/qawafi/arud/internal/prosody/engine"
	"github.com/qawafi/arud/internal/prosody/meter"
	"github.com/qawafi/arud/internal/resultcache"
)

var (
	// ErrNoPhonemes is returned when the input carries no prosodic material
	ErrNoPhonemes = errors.New("no prosodic material in input")
	// ErrUnknownFoot is returned when a scansion names a foot the engine does not know
	ErrUnknownFoot = errors.New("unknown tafila")
	// ErrNoCollaborator is returned by AnalyzeText without an extractor or fallback
	ErrNoCollaborator = errors.New("no phoneme extractor or scansion fallback configured")
)

// Normalizer prepares raw Arabic text for phoneme extraction
type Normalizer interface {
	Normalize(text string) string
	HasDiacritics(text string) bool
}

// PhonemeExtractor turns normalized text into phonemes
type PhonemeExtractor interface {
	Extract(text string, hasDiacritics bool) ([]alphabet.Phoneme, error)
}

// ScansionFallback scans text into space separated tafila names
type ScansionFallback interface {
	Scan(text string) (string, error)
}

// FootError names the scansion token that matched no foot
type FootError struct {
	Name string
}

func (e *FootError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownFoot, e.Name)
}

func (e *FootError) Unwrap() error {
	return ErrUnknownFoot
}

// Source tells which path produced an Analysis
type Source string

const (
	SourcePattern  Source = "pattern"
	SourcePhonetic Source = "phonetic"
	SourceScansion Source = "scansion"
)

// Analysis is the outcome of one analyzer call. An empty Matches slice means no
// meter was detected; it is not an error.
type Analysis struct {
	ID        uuid.UUID             `json:"id"`
	Source    Source                `json:"source"`
	Text      string                `json:"text,omitempty"`
	Pattern   string                `json:"pattern"`
	Matches   []detector.MeterMatch `json:"matches"`
	Segmented *detector.MeterMatch  `json:"segmented,omitempty"`
	Agreement bool                  `json:"agreement"`
	Elapsed   time.Duration         `json:"elapsed"`
}

// Best returns the top match, if any
func (a *Analysis) Best() (detector.MeterMatch, bool) {
	if len(a.Matches) == 0 {
		return detector.MeterMatch{}, false
	}
	return a.Matches[0], true
}

// Analyzer is safe for concurrent use when its collaborators are
type Analyzer struct {
	engine     *engine.Context
	normalizer Normalizer
	extractor  PhonemeExtractor
	fallback   ScansionFallback
	results    *resultcache.ReadThrough[[]detector.MeterMatch]
	topK       int
	crossCheck bool
	logger     *zap.Logger
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithNormalizer replaces the built-in diacritic-preserving normalizer
func WithNormalizer(n Normalizer) Option {
	return func(a *Analyzer) { a.normalizer = n }
}

// WithPhonemeExtractor enables AnalyzeText's phonetic path
func WithPhonemeExtractor(e PhonemeExtractor) Option {
	return func(a *Analyzer) { a.extractor = e }
}

// WithScansionFallback enables AnalyzeText's scansion path
func WithScansionFallback(f ScansionFallback) Option {
	return func(a *Analyzer) { a.fallback = f }
}

// WithResultCache memoizes detections in c. A nil c disables memoization.
func WithResultCache(c resultcache.Cache, ttl time.Duration, observer resultcache.Observer) Option {
	return func(a *Analyzer) {
		a.results = resultcache.NewReadThrough[[]detector.MeterMatch](c, ttl, a.logger, observer)
	}
}

// WithTopK sets how many meters each analysis reports
func WithTopK(k int) Option {
	return func(a *Analyzer) {
		if k > 0 {
			a.topK = k
		}
	}
}

// WithCrossCheck runs the forward segmenter on phoneme input
func WithCrossCheck(enabled bool) Option {
	return func(a *Analyzer) { a.crossCheck = enabled }
}

// WithLogger sets the logger. Apply it before WithResultCache so the cache logs too.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates an analyzer over an engine context
func New(ctx *engine.Context, opts ...Option) *Analyzer {
	a := &Analyzer{
		engine:     ctx,
		normalizer: diacriticNormalizer{},
		topK:       3,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.results == nil {
		a.results = resultcache.NewReadThrough[[]detector.MeterMatch](nil, 0, a.logger, nil)
	}
	return a
}

// AnalyzePattern detects the meter of a ready-made pattern
func (a *Analyzer) AnalyzePattern(ctx context.Context, pattern string, hint meter.ID) (*Analysis, error) {
	start := time.Now()
	matches, err := a.detect(ctx, pattern, hint)
	if err != nil {
		return nil, err
	}
	return &Analysis{
		ID:      uuid.New(),
		Source:  SourcePattern,
		Pattern: pattern,
		Matches: matches,
		Elapsed: time.Since(start),
	}, nil
}

// AnalyzePhonemes converts phonemes to a pattern and detects its meter
func (a *Analyzer) AnalyzePhonemes(ctx context.Context, phonemes []alphabet.Phoneme, hint meter.ID) (*Analysis, error) {
	start := time.Now()
	pattern := alphabet.ToPattern(phonemes)
	if pattern == "" {
		return nil, ErrNoPhonemes
	}

	matches, err := a.detect(ctx, string(pattern), hint)
	if err != nil {
		return nil, err
	}
	analysis := &Analysis{
		ID:      uuid.New(),
		Source:  SourcePhonetic,
		Pattern: string(pattern),
		Matches: matches,
	}
	if a.crossCheck {
		a.segment(analysis, phonemes)
	}
	analysis.Elapsed = time.Since(start)
	return analysis, nil
}

func (a *Analyzer) segment(analysis *Analysis, phonemes []alphabet.Phoneme) {
	seg, ok := a.engine.Segmenter.Match(phonemes)
	if !ok {
		return
	}
	analysis.Segmented = &seg
	if best, ok := analysis.Best(); ok {
		analysis.Agreement = best.BaseMeterID == seg.BaseMeterID
	}
}

// AnalyzeText runs the phonetic path and, when it yields no pattern or no meter,
// the scansion fallback.
func (a *Analyzer) AnalyzeText(ctx context.Context, text string, hint meter.ID) (*Analysis, error) {
	if a.extractor == nil && a.fallback == nil {
		return nil, ErrNoCollaborator
	}

	var phonetic *Analysis
	if a.extractor != nil {
		normalized := a.normalizer.Normalize(text)
		phonemes, err := a.extractor.Extract(normalized, a.normalizer.HasDiacritics(normalized))
		if err != nil {
			return nil, fmt.Errorf("extracting phonemes: %w", err)
		}
		phonetic, err = a.AnalyzePhonemes(ctx, phonemes, hint)
		switch {
		case err == nil && len(phonetic.Matches) > 0:
			phonetic.Text = text
			return phonetic, nil
		case err != nil && !errors.Is(err, ErrNoPhonemes):
			return nil, err
		}
	}

	if a.fallback == nil {
		if phonetic == nil {
			return nil, ErrNoPhonemes
		}
		phonetic.Text = text
		return phonetic, nil
	}

	a.logger.Info("phonetic path gave no meter, using scansion fallback", zap.Int("text_len", len(text)))
	scansion, err := a.fallback.Scan(text)
	if err != nil {
		return nil, fmt.Errorf("scansion fallback: %w", err)
	}
	pattern, err := a.PatternFromScansion(scansion)
	if err != nil {
		return nil, err
	}
	analysis, err := a.AnalyzePattern(ctx, string(pattern), hint)
	if err != nil {
		return nil, err
	}
	analysis.Source = SourceScansion
	analysis.Text = text
	return analysis, nil
}

// PatternFromScansion maps space separated tafila names to a pattern. Names are
// resolved against the registered feet first, then against the derived variants of
// the segmenter library; split spellings such as "مستفع لن" are recognised across
// two tokens.
func (a *Analyzer) PatternFromScansion(scansion string) (alphabet.Pattern, error) {
	tokens := strings.Fields(scansion)
	if len(tokens) == 0 {
		return "", ErrNoPhonemes
	}

	var parts []alphabet.Pattern
	for i := 0; i < len(tokens); i++ {
		if i+1 < len(tokens) {
			if p, ok := a.footPattern(tokens[i] + " " + tokens[i+1]); ok {
				parts = append(parts, p)
				i++
				continue
			}
		}
		p, ok := a.footPattern(tokens[i])
		if !ok {
			return "", &FootError{Name: tokens[i]}
		}
		parts = append(parts, p)
	}
	return alphabet.Concat(parts...), nil
}

func (a *Analyzer) footPattern(name string) (alphabet.Pattern, bool) {
	if t, ok := a.engine.Tafilas.Get(name); ok {
		return t.Pattern(), true
	}
	if entries := a.engine.Library.LookupName(name); len(entries) > 0 {
		return entries[0].Tafila.Pattern(), true
	}
	return "", false
}

func (a *Analyzer) detect(ctx context.Context, pattern string, hint meter.ID) ([]detector.MeterMatch, error) {
	key := resultcache.DetectKey(pattern, a.topK, int(hint))
	return a.results.Get(ctx, key, func() ([]detector.MeterMatch, error) {
		return a.engine.Detector.Detect(pattern, a.topK, hint), nil
	})
}

// diacriticNormalizer keeps the text as is and reports vowel marks
type diacriticNormalizer struct{}

func (diacriticNormalizer) Normalize(text string) string {
	return strings.TrimSpace(text)
}

func (diacriticNormalizer) HasDiacritics(text string) bool {
	return alphabet.HasDiacritics(text)
}
