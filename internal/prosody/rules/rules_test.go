package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qawafi/arud/internal/prosody/alphabet"
	"github.com/qawafi/arud/internal/prosody/tafila"
)

func registry(t *testing.T) *tafila.Registry {
	t.Helper()
	reg, err := tafila.NewRegistry(tafila.Definitions())
	require.NoError(t, err)
	return reg
}

// corpus returns every registered foot plus every single-rule derivative,
// covering both lettered and simple forms.
func corpus(t *testing.T) []tafila.Tafila {
	t.Helper()
	base := registry(t).All()
	out := append([]tafila.Tafila{}, base...)
	for _, tf := range base {
		for _, r := range All() {
			if r.Applies(tf) {
				out = append(out, r.Apply(tf))
			}
		}
	}
	return out
}

func get(t *testing.T, name string) tafila.Tafila {
	t.Helper()
	tf, ok := registry(t).Get(name)
	require.True(t, ok, name)
	return tf
}

func TestRuleExamples(t *testing.T) {
	tests := []struct {
		rule    Rule
		tafila  string
		pattern string
		name    string
	}{
		{Khabn, "مستفعلن", "//o//o", "متفعلن"},
		{Khabn, "فاعلن", "///o", "فعلن"},
		{Tayy, "مستفعلن", "/o///o", "مستعلن"},
		{Qabd, "مفاعيلن", "//o//o", "مفاعلن"},
		{Qabd, "فعولن", "//o/", "فعول"},
		{Kaff, "فاعلاتن", "/o//o/", "فاعلات"},
		{Idmar, "متفاعلن", "/o/o//o", "متْفاعلن"},
		{Waqs, "متفاعلن", "//o//o", "مفاعلن"},
		{Asb, "مفاعلتن", "//o/o/o", "مفاعلْتن"},
		{Aql, "مفاعلتن", "//o//o", "مفاعتن"},
		{Khazl, "متفاعلن", "/o///o", "متْفعلن"},
		{Khabl, "مستفعلن", "////o", "متعلن"},
		{Shakl, "فاعلاتن", "///o/", "فعلات"},
		{Naqs, "مفاعلتن", "//o/o/", "مفاعلْت"},
		{Kharm, "فعولن", "/o/o", "عولن"},
		{Tharm, "فعولن", "/o/", "عول"},
		{Hadhf, "مفاعيلن", "//o/o", "مفاعي"},
		{Qat, "فاعلن", "/o/o", "فاعلْ"},
		{Qasr, "مفعولات", "/o/o/oo", "مفعولاتْ"},
		{Kashf, "فعولن", "//o/", "فعول"},
		{Batr, "متفاعلن", "///oo", "متفاعْ"},
		{Hadhdhah, "متفاعلن", "///o//", "متفاعل"},
	}

	for _, tt := range tests {
		t.Run(tt.rule.Translit()+"/"+tt.tafila, func(t *testing.T) {
			src := get(t, tt.tafila)
			require.True(t, tt.rule.Applies(src))

			got := tt.rule.Apply(src)
			assert.Equal(t, tt.pattern, got.Pattern().String())
			assert.Equal(t, tt.name, got.Name())
			assert.Equal(t, tafila.FormLettered, got.Form())
			assert.Equal(t, src.LetterCount()+tt.rule.Delta(), got.LetterCount())

			assert.Equal(t, get(t, tt.tafila), src, "input must not change")
		})
	}
}

func TestPreconditionFailureIsIdentity(t *testing.T) {
	tests := []struct {
		rule   Rule
		tafila string
	}{
		{Khabn, "فعولن"},
		{Qabd, "متفاعلن"},
		{Kaff, "فعولن"},
		{Idmar, "مستفعلن"},
		{Asb, "مفاعيلن"},
		{Kharm, "فاعلن"},
		{Hadhf, "مفعولات"},
		{Qat, "فعولن"},
		{Qasr, "فاعلاتن"},
		{Kashf, "مفعولات"},
		{Hadhdhah, "فاعلاتن"},
		{Rule(0), "فعولن"},
		{Rule(200), "فعولن"},
	}

	for _, tt := range tests {
		t.Run(tt.rule.String()+"/"+tt.tafila, func(t *testing.T) {
			src := get(t, tt.tafila)
			assert.False(t, tt.rule.Applies(src))

			got := tt.rule.Apply(src)
			assert.Equal(t, src, got)
		})
	}
}

func TestRulesKeepPatternAndLettersConsistent(t *testing.T) {
	for _, tf := range corpus(t) {
		for _, r := range All() {
			got := r.Apply(tf)
			assert.True(t, got.Pattern().IsValid(), "%s on %s", r, tf)

			if letters, ok := got.Letters(); ok {
				assert.Equal(t, letters.Pattern(), got.Pattern(), "%s on %s", r, tf)
			}
			assert.Equal(t, tf.Form(), got.Form())
		}
	}
}

func TestDeclaredDelta(t *testing.T) {
	for _, tf := range corpus(t) {
		for _, r := range All() {
			got := r.Apply(tf)
			if r.Applies(tf) {
				assert.Equal(t, tf.LetterCount()+r.Delta(), got.LetterCount(), "%s on %s", r, tf)
			} else if !r.IsCompound() {
				assert.Equal(t, tf, got, "%s on %s", r, tf)
			}
		}
	}
}

func TestCompoundRulesAreSequential(t *testing.T) {
	for _, tf := range corpus(t) {
		assert.Equal(t, Qasr.Apply(Hadhf.Apply(tf)).Pattern(), Batr.Apply(tf).Pattern(), tf.String())
		assert.Equal(t, Qasr.Apply(Hadhf.Apply(tf)).LetterCount(), Batr.Apply(tf).LetterCount())

		for _, r := range All() {
			if !r.IsCompound() {
				continue
			}
			seq := Sequence(r.Steps())
			assert.Equal(t, seq.Apply(tf), r.Apply(tf), "%s on %s", r, tf)
			assert.Equal(t, seq.Applies(tf), r.Applies(tf), "%s on %s", r, tf)
		}
	}
}

func TestPatternLevelFallback(t *testing.T) {
	simple := tafila.New("فعِلن", alphabet.MustPattern("///o"))
	lettered, ok := tafila.Spell("فعلن", alphabet.MustPattern("///o"))
	require.True(t, ok)
	withLetters := tafila.NewWithLetters("فعلن", lettered)

	for _, r := range All() {
		a, b := r.Apply(simple), r.Apply(withLetters)
		assert.Equal(t, a.Pattern(), b.Pattern(), r.String())
		assert.Equal(t, r.Applies(simple), r.Applies(withLetters), r.String())
	}

	got := Idmar.Apply(simple)
	assert.Equal(t, "/o/o", got.Pattern().String())
	assert.Equal(t, "فعِلن", got.Name())
	assert.Equal(t, tafila.FormSimple, got.Form())
}

func TestFamilies(t *testing.T) {
	assert.Len(t, All(), 20)
	assert.Len(t, Zihafat(), 14)
	assert.Len(t, Ilal(), 6)

	for _, r := range Zihafat() {
		assert.Equal(t, Zahaf, r.Family())
	}
	for _, r := range Ilal() {
		assert.Equal(t, Ilah, r.Family())
	}
	assert.Equal(t, []Rule{Hadhf, Qasr}, Batr.Steps())
	assert.Nil(t, Khabn.Steps())
}

func TestParseRule(t *testing.T) {
	for _, r := range All() {
		got, ok := ParseRule(r.String())
		require.True(t, ok, r.String())
		assert.Equal(t, r, got)

		got, ok = ParseRule(r.Translit())
		require.True(t, ok, r.Translit())
		assert.Equal(t, r, got)
	}

	r, ok := ParseRule("  QABD ")
	assert.True(t, ok)
	assert.Equal(t, Qabd, r)

	r, ok = ParseRule("اضمار")
	assert.True(t, ok)
	assert.Equal(t, Idmar, r)

	_, ok = ParseRule("tasbigh")
	assert.False(t, ok)
}

func TestSequenceString(t *testing.T) {
	assert.Equal(t, "قبض+حذف", Sequence{Qabd, Hadhf}.String())
}
