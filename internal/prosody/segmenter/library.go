package segmenter

import (
	"github.com/qawafi/arud/internal/prosody/alphabet"
	"github.com/qawafi/arud/internal/prosody/meter"
	"github.com/qawafi/arud/internal/prosody/rules"
	"github.com/qawafi/arud/internal/prosody/tafila"
)

// LibraryEntry is one known surface foot: a base tafila, optionally rewritten by a
// zahaf, an ilah, or a zahaf followed by an ilah.
type LibraryEntry struct {
	Tafila    tafila.Tafila
	Base      string
	Transform meter.Transform
}

// Provenance is "base" or the applied rule names
func (e LibraryEntry) Provenance() string {
	return e.Transform.String()
}

// Confidence of a position matched through this entry
func (e LibraryEntry) Confidence() float64 {
	switch {
	case e.Transform.IsBase():
		return 1.0
	case e.Transform.Ilah == 0:
		return 0.9
	case e.Transform.Zahaf == 0:
		return 0.85
	default:
		return 0.8
	}
}

// Library indexes every derivable foot by pattern and by name. It is read-only after
// NewLibrary.
type Library struct {
	entries   []LibraryEntry
	byPattern map[alphabet.Pattern][]int
	byName    map[string][]int
	byBare    map[string][]int
	byBase    map[string][]int
}

// NewLibrary derives the foot library from the registered tafāʿīl: each base foot,
// each zahaf and ilah whose precondition holds, and each ilah applicable after a zahaf.
func NewLibrary(tafilas *tafila.Registry) *Library {
	lib := &Library{
		byPattern: make(map[alphabet.Pattern][]int),
		byName:    make(map[string][]int),
		byBare:    make(map[string][]int),
		byBase:    make(map[string][]int),
	}

	for _, t := range tafilas.All() {
		lib.add(t, meter.Transform{})
		for _, z := range rules.Zihafat() {
			if !z.Applies(t) {
				continue
			}
			lib.add(t, meter.Transform{Zahaf: z})
		}
		for _, i := range rules.Ilal() {
			if i.Applies(t) {
				lib.add(t, meter.Transform{Ilah: i})
			}
		}
		for _, z := range rules.Zihafat() {
			if !z.Applies(t) {
				continue
			}
			shortened := z.Apply(t)
			for _, i := range rules.Ilal() {
				if i.Applies(shortened) {
					lib.add(t, meter.Transform{Zahaf: z, Ilah: i})
				}
			}
		}
	}
	return lib
}

func (l *Library) add(base tafila.Tafila, tr meter.Transform) {
	derived := tr.Apply(base)
	if derived.IsZero() {
		return
	}
	idx := len(l.entries)
	l.entries = append(l.entries, LibraryEntry{Tafila: derived, Base: base.Name(), Transform: tr})
	l.byPattern[derived.Pattern()] = append(l.byPattern[derived.Pattern()], idx)
	l.byName[derived.Name()] = append(l.byName[derived.Name()], idx)
	bare := alphabet.StripDiacritics(derived.Name())
	l.byBare[bare] = append(l.byBare[bare], idx)
	l.byBase[base.Name()] = append(l.byBase[base.Name()], idx)
}

func (l *Library) collect(idx []int) []LibraryEntry {
	if len(idx) == 0 {
		return nil
	}
	out := make([]LibraryEntry, len(idx))
	for i, n := range idx {
		out[i] = l.entries[n]
	}
	return out
}

// Lookup returns every entry whose surface pattern equals p
func (l *Library) Lookup(p alphabet.Pattern) []LibraryEntry {
	return l.collect(l.byPattern[p])
}

// LookupName returns the entries whose derived foot carries name, e.g. "متفعلن" for
// مستفعلن with khabn. Names that match nothing exactly are retried without
// diacritics on either side.
func (l *Library) LookupName(name string) []LibraryEntry {
	if idx, ok := l.byName[name]; ok {
		return l.collect(idx)
	}
	return l.collect(l.byBare[alphabet.StripDiacritics(name)])
}

// Variants returns every entry derived from the registered foot base, the base
// foot itself first
func (l *Library) Variants(base string) []LibraryEntry {
	return l.collect(l.byBase[base])
}

// Len is the number of entries
func (l *Library) Len() int {
	return len(l.entries)
}

// Patterns is the number of distinct surface patterns
func (l *Library) Patterns() int {
	return len(l.byPattern)
}
