package alphabet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidVowel is returned when a phoneme carries an unknown vowel category
var ErrInvalidVowel = errors.New("invalid vowel category")

// Vowel is the vowel category attached to a consonant by the phoneme extractor
type Vowel string

const (
	VowelA     Vowel = "a"
	VowelU     Vowel = "u"
	VowelI     Vowel = "i"
	VowelAn    Vowel = "an"
	VowelUn    Vowel = "un"
	VowelIn    Vowel = "in"
	VowelSukun Vowel = "sukun"
	VowelLong  Vowel = "long"
)

var vowelAliases = map[string]Vowel{
	"a":     VowelA,
	"u":     VowelU,
	"i":     VowelI,
	"an":    VowelAn,
	"un":    VowelUn,
	"in":    VowelIn,
	"sukun": VowelSukun,
	"sukūn": VowelSukun,
	"long":  VowelLong,
	"fatha": VowelA,
	"damma": VowelU,
	"kasra": VowelI,
}

// ParseVowel resolves a vowel category name
func ParseVowel(s string) (Vowel, error) {
	v, ok := vowelAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidVowel, s)
	}
	return v, nil
}

// Valid reports whether v is a known category
func (v Vowel) Valid() bool {
	_, err := ParseVowel(string(v))
	return err == nil
}

// UnmarshalYAML accepts any alias understood by ParseVowel
func (v *Vowel) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseVowel(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*v = parsed
	return nil
}

// Phoneme is one consonant unit handed over by the phoneme extractor
type Phoneme struct {
	Letter    string `yaml:"letter" json:"letter"`
	Vowel     Vowel  `yaml:"vowel" json:"vowel"`
	Shadda    bool   `yaml:"shadda,omitempty" json:"shadda,omitempty"`
	HamzaWasl bool   `yaml:"hamza_wasl,omitempty" json:"hamza_wasl,omitempty"`
}

// Symbols returns the prosodic symbols contributed by the phoneme.
// initial marks the first phoneme of the utterance: a hamzat al-waṣl is only
// pronounced there and contributes nothing elsewhere.
func (p Phoneme) Symbols(initial bool) []Symbol {
	if p.HamzaWasl && !initial {
		return nil
	}

	var out []Symbol
	if p.Shadda {
		out = append(out, Sakin)
	}
	switch p.Vowel {
	case VowelA, VowelU, VowelI:
		out = append(out, Haraka)
	case VowelSukun:
		out = append(out, Sakin)
	case VowelLong, VowelAn, VowelUn, VowelIn:
		out = append(out, Haraka, Sakin)
	default:
		return nil
	}
	return out
}

// PatternOf converts phonemes[start:end] to a pattern. Indices are positions in
// the whole utterance so that hamzat al-waṣl elision stays consistent across slices.
func PatternOf(phonemes []Phoneme, start, end int) Pattern {
	var symbols []Symbol
	for i := start; i < end && i < len(phonemes); i++ {
		symbols = append(symbols, phonemes[i].Symbols(i == 0)...)
	}
	return FromSymbols(symbols)
}

// ToPattern converts a whole phoneme sequence to its prosodic pattern.
// An empty result means the sequence carried no prosodic material.
func ToPattern(phonemes []Phoneme) Pattern {
	return PatternOf(phonemes, 0, len(phonemes))
}

type phonemeDocument struct {
	Phonemes []Phoneme `yaml:"phonemes"`
}

// LoadPhonemes decodes a phoneme list from YAML (or JSON). The document is either a
// bare sequence of phonemes or a mapping with a "phonemes" key.
func LoadPhonemes(r io.Reader) ([]Phoneme, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding phonemes: %w", err)
	}

	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	var phonemes []Phoneme
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&phonemes); err != nil {
			return nil, fmt.Errorf("decoding phonemes: %w", err)
		}
	case yaml.MappingNode:
		var doc phonemeDocument
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding phonemes: %w", err)
		}
		phonemes = doc.Phonemes
	default:
		return nil, fmt.Errorf("decoding phonemes: line %d: expected a list or a mapping", node.Line)
	}

	for i, p := range phonemes {
		if !p.Vowel.Valid() {
			return nil, fmt.Errorf("phoneme %d (%s): %w", i+1, p.Letter, ErrInvalidVowel)
		}
	}
	return phonemes, nil
}

// ParsePhonemes reads the compact inline notation used on the command line:
// whitespace separated tokens of the form letter:vowel[+shadda][+wasl],
// e.g. "ق:a ف:a ا:sukun ن:i+shadda".
func ParsePhonemes(s string) ([]Phoneme, error) {
	fields := strings.Fields(s)
	phonemes := make([]Phoneme, 0, len(fields))
	for i, field := range fields {
		letter, rest, ok := strings.Cut(field, ":")
		if !ok || letter == "" {
			return nil, fmt.Errorf("token %d %q: expected letter:vowel", i+1, field)
		}
		parts := strings.Split(rest, "+")
		vowel, err := ParseVowel(parts[0])
		if err != nil {
			return nil, fmt.Errorf("token %d %q: %w", i+1, field, err)
		}
		p := Phoneme{Letter: letter, Vowel: vowel}
		for _, flag := range parts[1:] {
			switch strings.ToLower(flag) {
			case "shadda":
				p.Shadda = true
			case "wasl":
				p.HamzaWasl = true
			default:
				return nil, fmt.Errorf("token %d %q: unknown flag %q", i+1, field, flag)
			}
		}
		phonemes = append(phonemes, p)
	}
	return phonemes, nil
}

// placeholder is the letter used for phonemes synthesized from a bare pattern
const placeholder = "ـ"

// PhonemesFromPattern synthesizes one phoneme per symbol: a short vowel for every
// moving letter and a sukūn for every still one. ToPattern of the result is p.
func PhonemesFromPattern(p Pattern) []Phoneme {
	phonemes := make([]Phoneme, p.Len())
	for i := range phonemes {
		vowel := VowelA
		if p.At(i) == Sakin {
			vowel = VowelSukun
		}
		phonemes[i] = Phoneme{Letter: placeholder, Vowel: vowel}
	}
	return phonemes
}
