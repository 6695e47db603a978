// Package alphabet defines the two-symbol prosodic alphabet and the phoneme adapter
// that turns externally extracted phonemes into prosodic patterns.
package alphabet

import "strings"

// Symbol is one prosodic unit.
type Symbol byte

const (
	// Haraka is a moving letter (consonant carrying a short vowel)
	Haraka Symbol = '/'
	// Sakin is a still letter (sukūn or the second half of a long vowel)
	Sakin Symbol = 'o'
)

// Valid reports whether s is one of the two prosodic symbols
func (s Symbol) Valid() bool {
	return s == Haraka || s == Sakin
}

// String returns the canonical rendering of the symbol
func (s Symbol) String() string {
	return string(s)
}

// Pattern is a non-empty sequence of symbols rendered with '/' and 'o'.
// The zero value is the empty (invalid) pattern.
type Pattern string

// ParsePattern validates s and returns it as a Pattern.
func ParsePattern(s string) (Pattern, bool) {
	p := Pattern(s)
	if !p.IsValid() {
		return "", false
	}
	return p, true
}

// MustPattern is like ParsePattern but panics on invalid input.
// It is intended for static tables.
func MustPattern(s string) Pattern {
	p, ok := ParsePattern(s)
	if !ok {
		panic("alphabet: invalid pattern " + s)
	}
	return p
}

// IsValid reports whether p is non-empty and contains only '/' and 'o'
func (p Pattern) IsValid() bool {
	if len(p) == 0 {
		return false
	}
	for i := 0; i < len(p); i++ {
		if !Symbol(p[i]).Valid() {
			return false
		}
	}
	return true
}

// Len returns the number of symbols (letters) in the pattern
func (p Pattern) Len() int {
	return len(p)
}

// At returns the i-th symbol
func (p Pattern) At(i int) Symbol {
	return Symbol(p[i])
}

// Symbols returns a fresh slice of the pattern's symbols
func (p Pattern) Symbols() []Symbol {
	out := make([]Symbol, len(p))
	for i := 0; i < len(p); i++ {
		out[i] = Symbol(p[i])
	}
	return out
}

// Syllables counts the moving letters, the prosodic syllable count of the pattern
func (p Pattern) Syllables() int {
	return strings.Count(string(p), string(Haraka))
}

// String implements fmt.Stringer
func (p Pattern) String() string {
	return string(p)
}

// FromSymbols builds a pattern from symbols. The result may be empty.
func FromSymbols(symbols []Symbol) Pattern {
	var b strings.Builder
	b.Grow(len(symbols))
	for _, s := range symbols {
		b.WriteByte(byte(s))
	}
	return Pattern(b.String())
}

// Concat joins patterns in order
func Concat(parts ...Pattern) Pattern {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(string(p))
	}
	return Pattern(b.String())
}
