// Package tafila models prosodic feet (tafāʿīl) and their registry.
package tafila

import (
	"strings"

	"github.com/qawafi/arud/internal/prosody/alphabet"
)

// Letter is one letter of a foot's spelling with its prosodic symbol
type Letter struct {
	Char   string
	Symbol alphabet.Symbol
}

// LetterStructure is the ordered letter-level spelling of a foot
type LetterStructure []Letter

// Pattern derives the prosodic pattern of the letters
func (ls LetterStructure) Pattern() alphabet.Pattern {
	symbols := make([]alphabet.Symbol, len(ls))
	for i, l := range ls {
		symbols[i] = l.Symbol
	}
	return alphabet.FromSymbols(symbols)
}

// Text joins the letters into the foot's written form
func (ls LetterStructure) Text() string {
	var b strings.Builder
	for _, l := range ls {
		b.WriteString(l.Char)
	}
	return b.String()
}

// Spell pairs the letters of text with the symbols of pattern one to one.
// It returns false when the counts differ.
func Spell(text string, pattern alphabet.Pattern) (LetterStructure, bool) {
	chars := []rune(text)
	if len(chars) != pattern.Len() {
		return nil, false
	}
	ls := make(LetterStructure, len(chars))
	for i, c := range chars {
		ls[i] = Letter{Char: string(c), Symbol: pattern.At(i)}
	}
	return ls, true
}

// Form tells whether a foot carries a letter-level structure
type Form int

const (
	// FormSimple feet only carry a pattern
	FormSimple Form = iota
	// FormLettered feet carry letters whose symbols derive the pattern
	FormLettered
)

func (f Form) String() string {
	if f == FormLettered {
		return "lettered"
	}
	return "simple"
}

// Tafila is an immutable prosodic foot. Equality is defined by pattern only.
type Tafila struct {
	name    string
	pattern alphabet.Pattern
	letters LetterStructure
}

// New creates a simple-form foot
func New(name string, pattern alphabet.Pattern) Tafila {
	return Tafila{name: name, pattern: pattern}
}

// NewWithLetters creates a lettered foot; its pattern is derived from the letters
func NewWithLetters(name string, letters LetterStructure) Tafila {
	cp := make(LetterStructure, len(letters))
	copy(cp, letters)
	return Tafila{name: name, pattern: cp.Pattern(), letters: cp}
}

// Name returns the canonical name
func (t Tafila) Name() string { return t.name }

// Pattern returns the prosodic pattern
func (t Tafila) Pattern() alphabet.Pattern { return t.pattern }

// Form returns the variant of the foot
func (t Tafila) Form() Form {
	if t.letters != nil {
		return FormLettered
	}
	return FormSimple
}

// Letters returns a copy of the letter structure, if any
func (t Tafila) Letters() (LetterStructure, bool) {
	if t.letters == nil {
		return nil, false
	}
	cp := make(LetterStructure, len(t.letters))
	copy(cp, t.letters)
	return cp, true
}

// LetterCount is the number of prosodic letters
func (t Tafila) LetterCount() int { return t.pattern.Len() }

// SyllableCount is the number of moving letters
func (t Tafila) SyllableCount() int { return t.pattern.Syllables() }

// IsZero reports whether t is the zero foot
func (t Tafila) IsZero() bool { return t.pattern == "" }

// Equal compares feet by pattern
func (t Tafila) Equal(other Tafila) bool {
	return t.pattern == other.pattern
}

// MatchesPattern reports whether pattern is exactly this foot's pattern
func (t Tafila) MatchesPattern(pattern string) bool {
	return string(t.pattern) == pattern
}

// Similarity is the ratio of positions where the two patterns agree, taken over the
// longer length. Empty input scores 0.
func (t Tafila) Similarity(pattern string) float64 {
	a, b := string(t.pattern), pattern
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	longer := max(len(a), len(b))
	agree := 0
	for i := 0; i < min(len(a), len(b)); i++ {
		if a[i] == b[i] {
			agree++
		}
	}
	return float64(agree) / float64(longer)
}

func (t Tafila) String() string {
	return t.name + " " + string(t.pattern)
}
