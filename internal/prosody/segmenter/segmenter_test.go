package segmenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qawafi/arud/internal/prosody/alphabet"
	"github.com/qawafi/arud/internal/prosody/detector"
	"github.com/qawafi/arud/internal/prosody/meter"
	"github.com/qawafi/arud/internal/prosody/patterncache"
	"github.com/qawafi/arud/internal/prosody/rules"
	"github.com/qawafi/arud/internal/prosody/tafila"
)

type fixture struct {
	meters    *meter.Registry
	detector  *detector.Detector
	segmenter *Segmenter
}

func newFixture(t testing.TB) fixture {
	t.Helper()
	tafilas, err := tafila.NewRegistry(tafila.Definitions())
	require.NoError(t, err)
	meters, err := meter.NewRegistry(tafilas, meter.Definitions())
	require.NoError(t, err)
	cache, err := patterncache.Build(meters)
	require.NoError(t, err)
	return fixture{
		meters:    meters,
		detector:  detector.New(meters, cache, detector.DefaultOptions()),
		segmenter: New(meters, NewLibrary(tafilas), DefaultOptions()),
	}
}

// فَعُولُنْ مَفَاعِيلُنْ
func tawilHemistich() []alphabet.Phoneme {
	fauulun := []alphabet.Phoneme{
		{Letter: "ف", Vowel: alphabet.VowelA},
		{Letter: "ع", Vowel: alphabet.VowelLong},
		{Letter: "ل", Vowel: alphabet.VowelU},
		{Letter: "ن", Vowel: alphabet.VowelSukun},
	}
	mafaiilun := []alphabet.Phoneme{
		{Letter: "م", Vowel: alphabet.VowelA},
		{Letter: "ف", Vowel: alphabet.VowelLong},
		{Letter: "ع", Vowel: alphabet.VowelLong},
		{Letter: "ل", Vowel: alphabet.VowelU},
		{Letter: "ن", Vowel: alphabet.VowelSukun},
	}
	var out []alphabet.Phoneme
	for i := 0; i < 2; i++ {
		out = append(out, fauulun...)
		out = append(out, mafaiilun...)
	}
	return out
}

func TestLibrary(t *testing.T) {
	tafilas, err := tafila.NewRegistry(tafila.Definitions())
	require.NoError(t, err)
	lib := NewLibrary(tafilas)

	assert.Greater(t, lib.Len(), tafilas.Len())
	assert.LessOrEqual(t, lib.Patterns(), lib.Len())

	t.Run("base feet", func(t *testing.T) {
		for _, tf := range tafilas.All() {
			entries := lib.Lookup(tf.Pattern())
			require.NotEmpty(t, entries, tf.Name())
			found := false
			for _, e := range entries {
				if e.Base == tf.Name() && e.Transform.IsBase() {
					found = true
					assert.Equal(t, "base", e.Provenance())
					assert.Equal(t, 1.0, e.Confidence())
				}
			}
			assert.True(t, found, tf.Name())
		}
	})

	t.Run("khabn by name", func(t *testing.T) {
		entries := lib.LookupName("متفعلن")
		require.NotEmpty(t, entries)
		assert.Equal(t, "مستفعلن", entries[0].Base)
		assert.Equal(t, rules.Khabn, entries[0].Transform.Zahaf)
		assert.Equal(t, alphabet.Pattern("//o//o"), entries[0].Tafila.Pattern())
		assert.Equal(t, 0.9, entries[0].Confidence())
	})

	t.Run("every entry reproduces its pattern", func(t *testing.T) {
		for _, tf := range tafilas.All() {
			for _, e := range lib.LookupName(tf.Name()) {
				if e.Base != tf.Name() {
					continue
				}
				assert.Equal(t, e.Transform.Apply(tf).Pattern(), e.Tafila.Pattern())
			}
		}
	})

	t.Run("variants", func(t *testing.T) {
		variants := lib.Variants("فعولن")
		require.NotEmpty(t, variants)
		assert.True(t, variants[0].Transform.IsBase())
		for _, v := range variants {
			assert.Equal(t, "فعولن", v.Base)
		}
		assert.Empty(t, lib.Variants("nothing"))
	})

	assert.Empty(t, lib.Lookup("oooo"))
	assert.Empty(t, lib.LookupName("nothing"))
}

func TestEntryConfidence(t *testing.T) {
	tests := []struct {
		transform meter.Transform
		expected  float64
	}{
		{meter.Transform{}, 1.0},
		{meter.Transform{Zahaf: rules.Qabd}, 0.9},
		{meter.Transform{Ilah: rules.Hadhf}, 0.85},
		{meter.Transform{Zahaf: rules.Qabd, Ilah: rules.Hadhf}, 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.transform.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, LibraryEntry{Transform: tt.transform}.Confidence())
		})
	}
}

func TestSegment(t *testing.T) {
	f := newFixture(t)

	segs := f.segmenter.Segment(tawilHemistich())
	require.NotEmpty(t, segs)

	want := alphabet.MustPattern("//o/o//o/o/o//o/o//o/o/o")
	feetCover := false
	for _, seg := range segs {
		assert.Equal(t, want, seg.Pattern())
		assert.Equal(t, 0, seg[0].Start)
		assert.Equal(t, 18, seg[len(seg)-1].End)
		for i := 1; i < len(seg); i++ {
			assert.Equal(t, seg[i-1].End, seg[i].Start)
		}
		if len(seg) == 4 && seg[0].End == 4 && seg[1].End == 9 && seg[2].End == 13 {
			feetCover = true
		}
	}
	assert.True(t, feetCover, "the word-per-foot cover must be among the segmentations")

	assert.Empty(t, f.segmenter.Segment(nil))
	assert.Empty(t, f.segmenter.Segment(tawilHemistich()[:2]))
}

func TestSegmentMaxPaths(t *testing.T) {
	f := newFixture(t)
	opts := DefaultOptions()
	opts.MaxPaths = 1
	capped := New(f.meters, f.segmenter.Library(), opts)

	segs := capped.Segment(tawilHemistich())
	assert.LessOrEqual(t, len(segs), 1)
}

func TestMatchTawil(t *testing.T) {
	f := newFixture(t)

	m, ok := f.segmenter.Match(tawilHemistich())
	require.True(t, ok)
	assert.Equal(t, meter.ID(1), m.MeterID)
	assert.Equal(t, 1.0, m.Confidence)
	assert.Equal(t, detector.QualityExact, m.Quality)
	assert.Equal(t, []string{"base", "base", "base", "base"}, m.Transformations)
	assert.Contains(t, m.Explanation, "فعولن مفاعيلن فعولن مفاعيلن")
}

func TestMatchWithZahaf(t *testing.T) {
	f := newFixture(t)

	// qabd on the first foot
	p := alphabet.MustPattern("//o///o/o/o//o/o//o/o/o")
	m, ok := f.segmenter.Match(alphabet.PhonemesFromPattern(p))
	require.True(t, ok)
	assert.Equal(t, meter.ID(1), m.MeterID)
	assert.InDelta(t, 0.975, m.Confidence, 1e-9)
	assert.Equal(t, "قبض", m.Transformations[0])
	assert.Equal(t, string(p), m.Pattern)
	assert.Contains(t, m.Explanation, "(قبض)")
}

func TestMatchAgreesWithDetector(t *testing.T) {
	f := newFixture(t)

	for _, m := range f.meters.All() {
		t.Run(m.Name, func(t *testing.T) {
			pattern := m.BasePattern()
			want, ok := f.detector.DetectBest(pattern.String(), 0)
			require.True(t, ok)

			got, ok := f.segmenter.Match(alphabet.PhonemesFromPattern(pattern))
			require.True(t, ok)
			assert.Equal(t, want.MeterID, got.MeterID)
			assert.Equal(t, 1.0, got.Confidence)
		})
	}
}

func TestMatchAllOrdering(t *testing.T) {
	f := newFixture(t)

	// al-Rajaz base also aligns with al-Kamil through idmar
	p := alphabet.MustPattern("/o/o//o/o/o//o/o/o//o")
	matches := f.segmenter.MatchAll(alphabet.PhonemesFromPattern(p), 23)
	require.GreaterOrEqual(t, len(matches), 2)
	assert.Equal(t, meter.ID(7), matches[0].MeterID)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Confidence, matches[i].Confidence)
	}

	var kamil *detector.MeterMatch
	for i := range matches {
		if matches[i].MeterID == 5 {
			kamil = &matches[i]
		}
	}
	require.NotNil(t, kamil)
	assert.InDelta(t, 0.9, kamil.Confidence, 1e-9)

	assert.Empty(t, f.segmenter.MatchAll(alphabet.PhonemesFromPattern(p), 0))
}

func TestMatchNoSegmentation(t *testing.T) {
	f := newFixture(t)

	_, ok := f.segmenter.Match(nil)
	assert.False(t, ok)

	_, ok = f.segmenter.Match([]alphabet.Phoneme{{Letter: "ب", Vowel: "x"}, {Letter: "ب", Vowel: "x"}, {Letter: "ب", Vowel: "x"}})
	assert.False(t, ok)
}

func BenchmarkMatch(b *testing.B) {
	f := newFixture(b)
	phonemes := tawilHemistich()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.segmenter.Match(phonemes)
	}
}

func TestLookupNameIgnoresDiacritics(t *testing.T) {
	tafilas, err := tafila.NewRegistry(tafila.Definitions())
	require.NoError(t, err)
	lib := NewLibrary(tafilas)

	entries := lib.LookupName("فَعُولُنْ")
	require.NotEmpty(t, entries)
	assert.Equal(t, "فعولن", entries[0].Base)
	assert.True(t, entries[0].Transform.IsBase())
}
