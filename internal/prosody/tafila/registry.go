package tafila

import (
	"github.com/qawafi/arud/internal/prosody/alphabet"
	perrors "github.com/qawafi/arud/internal/prosody/errors"
)

// Definition is the static description of a foot.
// Letters is the spelling used for letter-level transformations; leave it empty for
// simple-form feet.
type Definition struct {
	Name      string
	Letters   string
	Pattern   string
	Syllables int
}

// Definitions returns the canonical feet of the Khalīlian system. The split spellings
// مستفع لن and فاع لاتن keep their own names because meters reference them separately.
func Definitions() []Definition {
	return []Definition{
		{Name: "فعولن", Letters: "فعولن", Pattern: "//o/o", Syllables: 3},
		{Name: "فاعلن", Letters: "فاعلن", Pattern: "/o//o", Syllables: 3},
		{Name: "مفاعيلن", Letters: "مفاعيلن", Pattern: "//o/o/o", Syllables: 4},
		{Name: "مستفعلن", Letters: "مستفعلن", Pattern: "/o/o//o", Syllables: 4},
		{Name: "فاعلاتن", Letters: "فاعلاتن", Pattern: "/o//o/o", Syllables: 4},
		{Name: "متفاعلن", Letters: "متفاعلن", Pattern: "///o//o", Syllables: 5},
		{Name: "مفاعلتن", Letters: "مفاعلتن", Pattern: "//o///o", Syllables: 5},
		{Name: "مفعولات", Letters: "مفعولات", Pattern: "/o/o/o/", Syllables: 4},
		{Name: "مستفع لن", Letters: "مستفعلن", Pattern: "/o/o//o", Syllables: 4},
		{Name: "فاع لاتن", Letters: "فاعلاتن", Pattern: "/o//o/o", Syllables: 4},
		{Name: "فعْلن", Pattern: "/o/o", Syllables: 2},
		{Name: "فعِلن", Pattern: "///o", Syllables: 3},
	}
}

// Registry holds the validated feet
type Registry struct {
	tafilas   []Tafila
	byName    map[string]int
	byPattern map[alphabet.Pattern]int
}

// NewRegistry validates every definition and builds the registry. All violations
// are reported together as an errors.ErrorList.
func NewRegistry(defs []Definition) (*Registry, error) {
	r := &Registry{
		byName:    make(map[string]int, len(defs)),
		byPattern: make(map[alphabet.Pattern]int, len(defs)),
	}

	var errs perrors.ErrorList
	for _, def := range defs {
		t, defErrs := build(def)
		if len(defErrs) > 0 {
			errs = append(errs, defErrs...)
			continue
		}
		if _, exists := r.byName[def.Name]; exists {
			errs = append(errs, perrors.NewDuplicateTafila(def.Name))
			continue
		}

		r.byName[def.Name] = len(r.tafilas)
		if _, exists := r.byPattern[t.Pattern()]; !exists {
			r.byPattern[t.Pattern()] = len(r.tafilas)
		}
		r.tafilas = append(r.tafilas, t)
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

func build(def Definition) (Tafila, perrors.ErrorList) {
	var errs perrors.ErrorList
	if def.Name == "" {
		errs = append(errs, perrors.NewEmptyTafilaName(def.Pattern))
	}

	pattern, ok := alphabet.ParsePattern(def.Pattern)
	if !ok {
		return Tafila{}, append(errs, perrors.NewInvalidTafilaPattern(def.Name, def.Pattern))
	}
	if derived := pattern.Syllables(); def.Syllables < 1 || def.Syllables != derived {
		errs = append(errs, perrors.NewInvalidSyllableCount(def.Name, def.Syllables, derived))
	}

	if def.Letters == "" {
		return New(def.Name, pattern), errs
	}
	letters, ok := Spell(def.Letters, pattern)
	if !ok {
		return Tafila{}, append(errs, perrors.NewLetterMismatch(def.Name, len([]rune(def.Letters)), pattern.Len()))
	}
	return NewWithLetters(def.Name, letters), errs
}

// Get returns the foot registered under name
func (r *Registry) Get(name string) (Tafila, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Tafila{}, false
	}
	return r.tafilas[i], true
}

// GetByPattern returns the first registered foot with the given pattern
func (r *Registry) GetByPattern(pattern string) (Tafila, bool) {
	i, ok := r.byPattern[alphabet.Pattern(pattern)]
	if !ok {
		return Tafila{}, false
	}
	return r.tafilas[i], true
}

// All returns the feet in registration order
func (r *Registry) All() []Tafila {
	out := make([]Tafila, len(r.tafilas))
	copy(out, r.tafilas)
	return out
}

// Len returns the number of registered feet
func (r *Registry) Len() int {
	return len(r.tafilas)
}
