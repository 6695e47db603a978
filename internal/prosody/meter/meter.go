// Package meter holds the grammar of the sixteen classical meters and their shortened
// variants: ordered tafila positions with the ziḥāfāt and ʿilal each position licenses.
package meter

import (
	"strings"

	"github.com/qawafi/arud/internal/prosody/alphabet"
	"github.com/qawafi/arud/internal/prosody/rules"
	"github.com/qawafi/arud/internal/prosody/tafila"
)

// ID identifies a meter. Base meters use 1-16, variants follow.
type ID int

// Transform is the rule combination applied to one position: at most one zahaf and,
// on the final position, at most one ilah applied after it. The zero value is the
// unchanged base foot.
type Transform struct {
	Zahaf rules.Rule `json:"zahaf,omitempty"`
	Ilah  rules.Rule `json:"ilah,omitempty"`
}

// IsBase reports whether no rule is applied
func (t Transform) IsBase() bool {
	return t.Zahaf == 0 && t.Ilah == 0
}

// Count is the number of rules involved
func (t Transform) Count() int {
	n := 0
	if t.Zahaf != 0 {
		n++
	}
	if t.Ilah != 0 {
		n++
	}
	return n
}

// Apply runs the zahaf then the ilah on tf
func (t Transform) Apply(tf tafila.Tafila) tafila.Tafila {
	if t.Zahaf != 0 {
		tf = t.Zahaf.Apply(tf)
	}
	if t.Ilah != 0 {
		tf = t.Ilah.Apply(tf)
	}
	return tf
}

// String is the label used in explanations: "base", a rule name, or "zahaf+ilah"
func (t Transform) String() string {
	switch {
	case t.IsBase():
		return "base"
	case t.Zahaf == 0:
		return t.Ilah.String()
	case t.Ilah == 0:
		return t.Zahaf.String()
	default:
		return t.Zahaf.String() + "+" + t.Ilah.String()
	}
}

// Position is one slot of a meter's grammar
type Position struct {
	Tafila  tafila.Tafila
	Zihafat []rules.Rule
	Final   bool
	Ilal    []rules.Rule
}

// Transforms enumerates the licensed combinations in a fixed order: the base foot,
// each zahaf, then (final position only) each ilah on the base followed by each
// ilah on every zahaf.
func (p Position) Transforms() []Transform {
	out := []Transform{{}}
	for _, z := range p.Zihafat {
		out = append(out, Transform{Zahaf: z})
	}
	if !p.Final {
		return out
	}
	for _, i := range p.Ilal {
		out = append(out, Transform{Ilah: i})
	}
	for _, z := range p.Zihafat {
		for _, i := range p.Ilal {
			out = append(out, Transform{Zahaf: z, Ilah: i})
		}
	}
	return out
}

// Licenses reports whether t is allowed at this position
func (p Position) Licenses(t Transform) bool {
	if t.Zahaf != 0 && !contains(p.Zihafat, t.Zahaf) {
		return false
	}
	if t.Ilah != 0 && (!p.Final || !contains(p.Ilal, t.Ilah)) {
		return false
	}
	return true
}

func contains(rs []rules.Rule, r rules.Rule) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}

// Meter is an immutable meter grammar
type Meter struct {
	ID        ID
	Name      string
	Translit  string
	Tier      int
	Rank      int
	BaseID    ID
	Positions []Position
}

// BasePattern concatenates the base patterns of every position
func (m *Meter) BasePattern() alphabet.Pattern {
	parts := make([]alphabet.Pattern, len(m.Positions))
	for i, p := range m.Positions {
		parts[i] = p.Tafila.Pattern()
	}
	return alphabet.Concat(parts...)
}

// IsVariant reports whether m is a shortened form of another meter
func (m *Meter) IsVariant() bool {
	return m.BaseID != 0
}

// CanonicalID is the id of the base meter, or m's own id for base meters
func (m *Meter) CanonicalID() ID {
	if m.BaseID != 0 {
		return m.BaseID
	}
	return m.ID
}

// Equivalent reports whether other scores as the same meter as m
func (m *Meter) Equivalent(other *Meter) bool {
	return other != nil && m.CanonicalID() == other.CanonicalID()
}

// Feet returns the base tafila names joined by spaces
func (m *Meter) Feet() string {
	names := make([]string, len(m.Positions))
	for i, p := range m.Positions {
		names[i] = p.Tafila.Name()
	}
	return strings.Join(names, " ")
}

// TierOf maps a frequency rank to its tier
func TierOf(rank int) int {
	switch {
	case rank <= 5:
		return 1
	case rank <= 11:
		return 2
	default:
		return 3
	}
}
