package analyzer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qawafi/arud/internal/prosody/alphabet"
	"github.com/qawafi/arud/internal/prosody/engine"
	"github.com/qawafi/arud/internal/prosody/meter"
	"github.com/qawafi/arud/internal/resultcache"
)

const tawilBase = "//o/o//o/o/o//o/o//o/o/o"

type stubExtractor struct {
	phonemes   []alphabet.Phoneme
	err        error
	diacritics bool
}

func (s *stubExtractor) Extract(_ string, hasDiacritics bool) ([]alphabet.Phoneme, error) {
	s.diacritics = hasDiacritics
	return s.phonemes, s.err
}

type stubFallback struct {
	scansion string
	err      error
	calls    int
}

func (s *stubFallback) Scan(string) (string, error) {
	s.calls++
	return s.scansion, s.err
}

type counts struct {
	hits, misses atomic.Int64
}

func (c *counts) CacheHit()   { c.hits.Add(1) }
func (c *counts) CacheMiss()  { c.misses.Add(1) }
func (c *counts) CacheError() {}

func tawilPhonemes() []alphabet.Phoneme {
	return alphabet.PhonemesFromPattern(alphabet.MustPattern(tawilBase))
}

func TestAnalyzePattern(t *testing.T) {
	a := New(engine.Default())

	analysis, err := a.AnalyzePattern(context.Background(), tawilBase, 0)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, analysis.ID)
	assert.Equal(t, SourcePattern, analysis.Source)
	require.Len(t, analysis.Matches, 3)

	best, ok := analysis.Best()
	require.True(t, ok)
	assert.Equal(t, "الطويل", best.Name)

	analysis, err = a.AnalyzePattern(context.Background(), "//x", 0)
	require.NoError(t, err)
	assert.Empty(t, analysis.Matches)
	_, ok = analysis.Best()
	assert.False(t, ok)
}

func TestAnalyzePatternTopK(t *testing.T) {
	a := New(engine.Default(), WithTopK(1), WithTopK(0))

	analysis, err := a.AnalyzePattern(context.Background(), tawilBase, 0)
	require.NoError(t, err)
	assert.Len(t, analysis.Matches, 1)
}

func TestAnalyzePhonemes(t *testing.T) {
	a := New(engine.Default(), WithCrossCheck(true))

	analysis, err := a.AnalyzePhonemes(context.Background(), tawilPhonemes(), 0)
	require.NoError(t, err)
	assert.Equal(t, SourcePhonetic, analysis.Source)
	assert.Equal(t, tawilBase, analysis.Pattern)
	require.NotNil(t, analysis.Segmented)
	assert.Equal(t, meter.ID(1), analysis.Segmented.MeterID)
	assert.True(t, analysis.Agreement)

	_, err = a.AnalyzePhonemes(context.Background(), nil, 0)
	assert.ErrorIs(t, err, ErrNoPhonemes)
}

func TestAnalyzeText(t *testing.T) {
	t.Run("phonetic", func(t *testing.T) {
		extractor := &stubExtractor{phonemes: tawilPhonemes()}
		fallback := &stubFallback{}
		a := New(engine.Default(), WithPhonemeExtractor(extractor), WithScansionFallback(fallback))

		analysis, err := a.AnalyzeText(context.Background(), "  قِفَا نَبْكِ  ", 0)
		require.NoError(t, err)
		assert.Equal(t, SourcePhonetic, analysis.Source)
		assert.Equal(t, "  قِفَا نَبْكِ  ", analysis.Text)
		assert.True(t, extractor.diacritics)
		assert.Zero(t, fallback.calls)
	})

	t.Run("fallback on empty phonemes", func(t *testing.T) {
		fallback := &stubFallback{scansion: "فعولن مفاعيلن فعولن مفاعيلن"}
		a := New(engine.Default(), WithPhonemeExtractor(&stubExtractor{}), WithScansionFallback(fallback))

		analysis, err := a.AnalyzeText(context.Background(), "نص", 0)
		require.NoError(t, err)
		assert.Equal(t, SourceScansion, analysis.Source)
		assert.Equal(t, tawilBase, analysis.Pattern)
		assert.Equal(t, 1, fallback.calls)

		best, ok := analysis.Best()
		require.True(t, ok)
		assert.Equal(t, meter.ID(1), best.MeterID)
	})

	t.Run("fallback only", func(t *testing.T) {
		a := New(engine.Default(), WithScansionFallback(&stubFallback{scansion: "مستفعلن مستفعلن مستفعلن"}))

		analysis, err := a.AnalyzeText(context.Background(), "نص", 0)
		require.NoError(t, err)
		best, ok := analysis.Best()
		require.True(t, ok)
		assert.Equal(t, meter.ID(7), best.MeterID)
	})

	t.Run("no collaborators", func(t *testing.T) {
		_, err := New(engine.Default()).AnalyzeText(context.Background(), "نص", 0)
		assert.ErrorIs(t, err, ErrNoCollaborator)
	})

	t.Run("no fallback", func(t *testing.T) {
		a := New(engine.Default(), WithPhonemeExtractor(&stubExtractor{}))
		_, err := a.AnalyzeText(context.Background(), "نص", 0)
		assert.ErrorIs(t, err, ErrNoPhonemes)
	})

	t.Run("extractor error", func(t *testing.T) {
		boom := errors.New("boom")
		a := New(engine.Default(), WithPhonemeExtractor(&stubExtractor{err: boom}))
		_, err := a.AnalyzeText(context.Background(), "نص", 0)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("fallback error", func(t *testing.T) {
		boom := errors.New("boom")
		a := New(engine.Default(), WithScansionFallback(&stubFallback{err: boom}))
		_, err := a.AnalyzeText(context.Background(), "نص", 0)
		assert.ErrorIs(t, err, boom)
	})
}

func TestPatternFromScansion(t *testing.T) {
	a := New(engine.Default())

	tests := []struct {
		name     string
		scansion string
		expected alphabet.Pattern
		err      error
	}{
		{"base feet", "فعولن مفاعيلن", "//o/o//o/o/o", nil},
		{"khabn variant", "متفعلن فاعلن", "//o//o/o//o", nil},
		{"split spelling", "فاعلاتن مستفع لن", "/o//o/o/o/o//o", nil},
		{"diacritics", "فَعُولُنْ", "//o/o", nil},
		{"unknown", "فعولن كلام", "", ErrUnknownFoot},
		{"empty", "  ", "", ErrNoPhonemes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := a.PatternFromScansion(tt.scansion)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestFootError(t *testing.T) {
	a := New(engine.Default())

	_, err := a.PatternFromScansion("فعولن مفاعيلن كلام")
	var footErr *FootError
	require.ErrorAs(t, err, &footErr)
	assert.Equal(t, "كلام", footErr.Name)
	assert.Contains(t, err.Error(), "unknown tafila")
}

func TestResultCache(t *testing.T) {
	cache := resultcache.NewMemoryCache(resultcache.DefaultConfig())
	defer cache.Close()
	obs := &counts{}
	a := New(engine.Default(), WithResultCache(cache, time.Minute, obs))

	first, err := a.AnalyzePattern(context.Background(), tawilBase, 0)
	require.NoError(t, err)
	second, err := a.AnalyzePattern(context.Background(), tawilBase, 0)
	require.NoError(t, err)

	assert.Equal(t, first.Matches, second.Matches)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, int64(1), obs.hits.Load())
	assert.Equal(t, int64(1), obs.misses.Load())

	_, err = a.AnalyzePattern(context.Background(), tawilBase, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), obs.misses.Load())
}
