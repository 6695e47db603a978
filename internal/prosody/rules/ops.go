package rules

import (
	"github.com/qawafi/arud/internal/prosody/alphabet"
	"github.com/qawafi/arud/internal/prosody/tafila"
)

// unit is a letter for lettered feet and a bare symbol (empty Char) for simple ones
type unit = tafila.Letter

const (
	haraka = alphabet.Haraka
	sakin  = alphabet.Sakin

	// sukun marks a letter silenced by a rule in the derived spelling
	sukun = "\u0652"
)

func units(t tafila.Tafila) []unit {
	if letters, ok := t.Letters(); ok {
		return letters
	}
	p := t.Pattern()
	seq := make([]unit, p.Len())
	for i := range seq {
		seq[i] = unit{Symbol: p.At(i)}
	}
	return seq
}

// rebuild returns a new foot of the same form as t. Lettered results are named after
// their spelling; simple results keep the source name.
func rebuild(t tafila.Tafila, seq []unit) tafila.Tafila {
	if t.Form() == tafila.FormLettered {
		ls := tafila.LetterStructure(seq)
		return tafila.NewWithLetters(ls.Text(), ls)
	}
	symbols := make([]alphabet.Symbol, len(seq))
	for i, u := range seq {
		symbols[i] = u.Symbol
	}
	return tafila.New(t.Name(), alphabet.FromSymbols(symbols))
}

func sameSymbols(a, b []unit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Symbol != b[i].Symbol {
			return false
		}
	}
	return true
}

func remove(seq []unit, i int) []unit {
	out := make([]unit, 0, len(seq)-1)
	out = append(out, seq[:i]...)
	return append(out, seq[i+1:]...)
}

func still(seq []unit, i int) []unit {
	out := make([]unit, len(seq))
	copy(out, seq)
	out[i].Symbol = sakin
	if out[i].Char != "" {
		out[i].Char += sukun
	}
	return out
}

func hasAt(seq []unit, i int, sym alphabet.Symbol) bool {
	return i >= 0 && i < len(seq) && seq[i].Symbol == sym
}

func endsWith(seq []unit, syms ...alphabet.Symbol) bool {
	off := len(seq) - len(syms)
	if off < 0 {
		return false
	}
	for i, s := range syms {
		if seq[off+i].Symbol != s {
			return false
		}
	}
	return true
}

// deleteIf removes letter i when it carries sym (khabn, tayy, qabd, kaff)
func deleteIf(i int, sym alphabet.Symbol) op {
	return func(seq []unit) ([]unit, bool) {
		if !hasAt(seq, i, sym) {
			return seq, false
		}
		return remove(seq, i), true
	}
}

// heavy reports a heavy sabab (two moving letters) starting at letter i
func heavy(seq []unit, i int) bool {
	return hasAt(seq, i, haraka) && hasAt(seq, i+1, haraka)
}

// stillHeavy silences the second letter of the heavy sabab at i (idmar, asb)
func stillHeavy(i int) op {
	return func(seq []unit) ([]unit, bool) {
		if !heavy(seq, i) {
			return seq, false
		}
		return still(seq, i+1), true
	}
}

// dropHeavy removes the second letter of the heavy sabab at i (waqs, aql)
func dropHeavy(i int) op {
	return func(seq []unit) ([]unit, bool) {
		if !heavy(seq, i) {
			return seq, false
		}
		return remove(seq, i+1), true
	}
}

// dropWatadHead removes the first letter of an opening watad majmūʿ
func dropWatadHead(seq []unit) ([]unit, bool) {
	if !(hasAt(seq, 0, haraka) && hasAt(seq, 1, haraka) && hasAt(seq, 2, sakin)) {
		return seq, false
	}
	return remove(seq, 0), true
}

// dropLightSabab removes a final light sabab
func dropLightSabab(seq []unit) ([]unit, bool) {
	if len(seq) <= 2 || !endsWith(seq, haraka, sakin) {
		return seq, false
	}
	out := make([]unit, len(seq)-2)
	copy(out, seq)
	return out, true
}

// cutWatad removes the still letter of a final watad majmūʿ and silences the letter before it
func cutWatad(seq []unit) ([]unit, bool) {
	if len(seq) <= 2 || !endsWith(seq, haraka, haraka, sakin) {
		return seq, false
	}
	return still(seq[:len(seq)-1], len(seq)-2), true
}

// stillFinal silences a final moving letter
func stillFinal(seq []unit) ([]unit, bool) {
	if len(seq) <= 1 || !endsWith(seq, haraka) {
		return seq, false
	}
	return still(seq, len(seq)-1), true
}

// dropFinalSakin removes a final still letter
func dropFinalSakin(seq []unit) ([]unit, bool) {
	if len(seq) <= 2 || !endsWith(seq, sakin) {
		return seq, false
	}
	return remove(seq, len(seq)-1), true
}

// dropWatadTail removes the last letter of a final watad majmūʿ
func dropWatadTail(seq []unit) ([]unit, bool) {
	if len(seq) <= 2 || !endsWith(seq, haraka, haraka, sakin) {
		return seq, false
	}
	return remove(seq, len(seq)-1), true
}
