// Package rules implements the ziḥāfāt and ʿilal that rewrite prosodic feet.
//
// Every rule is a pure function from one tafila to another. A rule whose precondition
// does not hold returns its input unchanged. Rules operate on letters when the foot has
// a letter structure and on the bare pattern otherwise; both paths run the same
// positional operation, so the net effect on the pattern is identical.
package rules

import (
	"fmt"
	"strings"

	"github.com/qawafi/arud/internal/prosody/alphabet"
	"github.com/qawafi/arud/internal/prosody/tafila"
)

// Family separates mid-verse variations from verse-final ones
type Family int

const (
	// Zahaf rules may apply to any position that licenses them
	Zahaf Family = iota + 1
	// Ilah rules apply to the final position only
	Ilah
)

func (f Family) String() string {
	switch f {
	case Zahaf:
		return "zahaf"
	case Ilah:
		return "ilah"
	default:
		return "unknown"
	}
}

// Rule identifies a transformation. The zero value is not a rule.
type Rule uint8

const (
	Khabn Rule = iota + 1
	Tayy
	Qabd
	Kaff
	Idmar
	Waqs
	Asb
	Aql
	Khazl
	Khabl
	Shakl
	Naqs
	Kharm
	Tharm
	Hadhf
	Qat
	Qasr
	Kashf
	Batr
	Hadhdhah
)

// op is a positional operation on a letter sequence. It returns the rewritten
// sequence and whether the precondition held.
type op func(seq []unit) ([]unit, bool)

type definition struct {
	arabic   string
	translit string
	family   Family
	delta    int
	steps    []Rule
	apply    op
}

var definitions = map[Rule]definition{
	Khabn:    {arabic: "خبن", translit: "khabn", family: Zahaf, delta: -1, apply: deleteIf(1, alphabet.Sakin)},
	Tayy:     {arabic: "طي", translit: "tayy", family: Zahaf, delta: -1, apply: deleteIf(3, alphabet.Sakin)},
	Qabd:     {arabic: "قبض", translit: "qabd", family: Zahaf, delta: -1, apply: deleteIf(4, alphabet.Sakin)},
	Kaff:     {arabic: "كف", translit: "kaff", family: Zahaf, delta: -1, apply: deleteIf(6, alphabet.Sakin)},
	Idmar:    {arabic: "إضمار", translit: "idmar", family: Zahaf, delta: 0, apply: stillHeavy(0)},
	Waqs:     {arabic: "وقص", translit: "waqs", family: Zahaf, delta: -1, apply: dropHeavy(0)},
	Asb:      {arabic: "عصب", translit: "asb", family: Zahaf, delta: 0, apply: stillHeavy(3)},
	Aql:      {arabic: "عقل", translit: "aql", family: Zahaf, delta: -1, apply: dropHeavy(3)},
	Khazl:    {arabic: "خزل", translit: "khazl", family: Zahaf, delta: -1, steps: []Rule{Tayy, Idmar}},
	Khabl:    {arabic: "خبل", translit: "khabl", family: Zahaf, delta: -2, steps: []Rule{Tayy, Khabn}},
	Shakl:    {arabic: "شكل", translit: "shakl", family: Zahaf, delta: -2, steps: []Rule{Kaff, Khabn}},
	Naqs:     {arabic: "نقص", translit: "naqs", family: Zahaf, delta: -1, steps: []Rule{Kaff, Asb}},
	Kharm:    {arabic: "خرم", translit: "kharm", family: Zahaf, delta: -1, apply: dropWatadHead},
	Tharm:    {arabic: "ثرم", translit: "tharm", family: Zahaf, delta: -2, steps: []Rule{Qabd, Kharm}},
	Hadhf:    {arabic: "حذف", translit: "hadhf", family: Ilah, delta: -2, apply: dropLightSabab},
	Qat:      {arabic: "قطع", translit: "qat", family: Ilah, delta: -1, apply: cutWatad},
	Qasr:     {arabic: "قصر", translit: "qasr", family: Ilah, delta: 0, apply: stillFinal},
	Kashf:    {arabic: "كشف", translit: "kashf", family: Ilah, delta: -1, apply: dropFinalSakin},
	Batr:     {arabic: "بتر", translit: "batr", family: Ilah, delta: -2, steps: []Rule{Hadhf, Qasr}},
	Hadhdhah: {arabic: "حذذ", translit: "hadhdhah", family: Ilah, delta: -1, apply: dropWatadTail},
}

// All returns every rule, ziḥāfāt first
func All() []Rule {
	out := make([]Rule, 0, Hadhdhah)
	for r := Khabn; r <= Hadhdhah; r++ {
		out = append(out, r)
	}
	return out
}

// Zihafat returns the Zahaf-family rules
func Zihafat() []Rule {
	return byFamily(Zahaf)
}

// Ilal returns the Ilah-family rules
func Ilal() []Rule {
	return byFamily(Ilah)
}

func byFamily(f Family) []Rule {
	var out []Rule
	for _, r := range All() {
		if r.Family() == f {
			out = append(out, r)
		}
	}
	return out
}

// Valid reports whether r names a defined rule
func (r Rule) Valid() bool {
	_, ok := definitions[r]
	return ok
}

// String returns the Arabic name of the rule
func (r Rule) String() string {
	if d, ok := definitions[r]; ok {
		return d.arabic
	}
	return fmt.Sprintf("Rule(%d)", uint8(r))
}

// Translit returns the ASCII transliteration used on the command line
func (r Rule) Translit() string {
	if d, ok := definitions[r]; ok {
		return d.translit
	}
	return ""
}

// Family returns the family of the rule, 0 for undefined rules
func (r Rule) Family() Family {
	return definitions[r].family
}

// Delta is the change in letter count produced when the rule applies
func (r Rule) Delta() int {
	return definitions[r].delta
}

// Steps returns the ordered components of a compound rule, nil for simple rules
func (r Rule) Steps() []Rule {
	steps := definitions[r].steps
	if steps == nil {
		return nil
	}
	out := make([]Rule, len(steps))
	copy(out, steps)
	return out
}

// IsCompound reports whether the rule is an ordered composition of other rules
func (r Rule) IsCompound() bool {
	return len(definitions[r].steps) > 0
}

// Apply rewrites t. The input is never modified; an unmet precondition yields t.
func (r Rule) Apply(t tafila.Tafila) tafila.Tafila {
	orig := units(t)
	seq, _ := r.run(orig)
	if sameSymbols(seq, orig) {
		return t
	}
	return rebuild(t, seq)
}

// Applies reports whether the rule's precondition holds for t. For compound rules
// every step must apply in sequence.
func (r Rule) Applies(t tafila.Tafila) bool {
	_, ok := r.run(units(t))
	return ok
}

func (r Rule) run(seq []unit) ([]unit, bool) {
	d, ok := definitions[r]
	if !ok {
		return seq, false
	}
	if d.apply != nil {
		return d.apply(seq)
	}
	all := true
	for _, step := range d.steps {
		var applied bool
		seq, applied = step.run(seq)
		all = all && applied
	}
	return seq, all
}

// ParseRule resolves an Arabic name or a transliteration
func ParseRule(name string) (Rule, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	for r, d := range definitions {
		if d.arabic == key || d.translit == key {
			return r, true
		}
	}
	return 0, false
}

var aliases = map[string]string{
	"اضمار": "إضمار",
	"qat'":  "qat",
	"qatʿ":  "qat",
	"tay":   "tayy",
}

// Sequence is an ad-hoc ordered composition of rules
type Sequence []Rule

// Apply runs the rules in order
func (s Sequence) Apply(t tafila.Tafila) tafila.Tafila {
	for _, r := range s {
		t = r.Apply(t)
	}
	return t
}

// Applies reports whether every rule applies in sequence
func (s Sequence) Applies(t tafila.Tafila) bool {
	for _, r := range s {
		if !r.Applies(t) {
			return false
		}
		t = r.Apply(t)
	}
	return true
}

func (s Sequence) String() string {
	names := make([]string, len(s))
	for i, r := range s {
		names[i] = r.String()
	}
	return strings.Join(names, "+")
}
