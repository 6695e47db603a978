package meter

import (
	"sort"
	"strings"

	perrors "github.com/qawafi/arud/internal/prosody/errors"
	"github.com/qawafi/arud/internal/prosody/rules"
	"github.com/qawafi/arud/internal/prosody/tafila"
)

// Registry holds the validated meters
type Registry struct {
	meters []*Meter
	byID   map[ID]*Meter
	byName map[string]*Meter
}

// NewRegistry resolves every definition against the tafila registry and runs the
// grammar self-check. All violations are returned together as an errors.ErrorList.
func NewRegistry(tafilas *tafila.Registry, defs []Definition) (*Registry, error) {
	r := &Registry{
		byID:   make(map[ID]*Meter, len(defs)),
		byName: make(map[string]*Meter, 2*len(defs)),
	}

	var errs perrors.ErrorList
	for _, def := range defs {
		if _, dup := r.byID[def.ID]; dup {
			errs = append(errs, perrors.NewDuplicateMeter(def.Name, int(def.ID)))
			continue
		}
		if _, dup := r.byName[def.Name]; dup {
			errs = append(errs, perrors.NewDuplicateMeter(def.Name, int(def.ID)))
			continue
		}

		m, defErrs := resolve(tafilas, def)
		if len(defErrs) > 0 {
			errs = append(errs, defErrs...)
			continue
		}
		r.meters = append(r.meters, m)
		r.byID[m.ID] = m
		r.byName[m.Name] = m
		if m.Translit != "" {
			r.byName[strings.ToLower(m.Translit)] = m
		}
	}

	// variants inherit ranking from their base meter
	for _, m := range r.meters {
		if !m.IsVariant() {
			continue
		}
		base, ok := r.byID[m.BaseID]
		if !ok || base.IsVariant() {
			errs = append(errs, perrors.NewUnknownBaseMeter(m.Name, int(m.BaseID)))
			continue
		}
		m.Rank = base.Rank
		m.Tier = base.Tier
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	sort.Slice(r.meters, func(i, j int) bool { return r.meters[i].ID < r.meters[j].ID })
	return r, nil
}

func resolve(tafilas *tafila.Registry, def Definition) (*Meter, perrors.ErrorList) {
	var errs perrors.ErrorList
	if len(def.Positions) == 0 {
		return nil, append(errs, perrors.NewEmptyMeter(def.Name))
	}
	if def.BaseID == 0 && def.Rank < 1 {
		errs = append(errs, perrors.NewInvalidRank(def.Name, def.Rank))
	}

	m := &Meter{
		ID:       def.ID,
		Name:     def.Name,
		Translit: def.Translit,
		Rank:     def.Rank,
		Tier:     TierOf(def.Rank),
		BaseID:   def.BaseID,
	}

	last := len(def.Positions) - 1
	for i, pd := range def.Positions {
		number := i + 1
		tf, ok := tafilas.Get(pd.Tafila)
		if !ok {
			errs = append(errs, perrors.NewUnknownTafila(def.Name, number, pd.Tafila))
			continue
		}

		p := Position{Tafila: tf, Final: i == last}
		p.Zihafat, errs = resolveRules(def.Name, number, pd.Zihafat, rules.Zahaf, errs)
		p.Ilal, errs = resolveRules(def.Name, number, pd.Ilal, rules.Ilah, errs)
		if !p.Final && len(p.Ilal) > 0 {
			for _, ilah := range p.Ilal {
				errs = append(errs, perrors.NewRuleFamilyMismatch(def.Name, number, ilah.String(), "no ilah before the final position"))
			}
		}

		errs = append(errs, checkPosition(def.Name, number, p)...)
		m.Positions = append(m.Positions, p)
	}
	return m, errs
}

func resolveRules(meterName string, number int, names []string, family rules.Family, errs perrors.ErrorList) ([]rules.Rule, perrors.ErrorList) {
	var out []rules.Rule
	for _, name := range names {
		r, ok := rules.ParseRule(name)
		if !ok {
			errs = append(errs, perrors.NewUndefinedRule(meterName, number, name))
			continue
		}
		if r.Family() != family {
			errs = append(errs, perrors.NewRuleFamilyMismatch(meterName, number, r.String(), family.String()))
			continue
		}
		out = append(out, r)
	}
	return out, errs
}

// checkPosition verifies that every licensed rule actually fires: a zahaf on the base
// foot, an ilah on the base foot or on one of the zahaf variants.
func checkPosition(meterName string, number int, p Position) perrors.ErrorList {
	var errs perrors.ErrorList
	for _, z := range p.Zihafat {
		if !z.Applies(p.Tafila) {
			errs = append(errs, perrors.NewRuleNotApplicable(meterName, number, z.String(), p.Tafila.Name()))
		}
	}
	for _, ilah := range p.Ilal {
		applies := ilah.Applies(p.Tafila)
		for _, z := range p.Zihafat {
			applies = applies || ilah.Applies(z.Apply(p.Tafila))
		}
		if !applies {
			errs = append(errs, perrors.NewRuleNotApplicable(meterName, number, ilah.String(), p.Tafila.Name()))
		}
	}
	for _, t := range p.Transforms() {
		if out := t.Apply(p.Tafila).Pattern(); !out.IsValid() {
			errs = append(errs, perrors.NewInvalidRuleOutput(meterName, number, t.String(), string(out)))
		}
	}
	return errs
}

// Get returns the meter with the given id
func (r *Registry) Get(id ID) (*Meter, bool) {
	m, ok := r.byID[id]
	return m, ok
}

// ByName resolves an Arabic name or a transliteration
func (r *Registry) ByName(name string) (*Meter, bool) {
	name = strings.TrimSpace(name)
	if m, ok := r.byName[name]; ok {
		return m, true
	}
	m, ok := r.byName[strings.ToLower(name)]
	return m, ok
}

// All returns the meters ordered by id
func (r *Registry) All() []*Meter {
	out := make([]*Meter, len(r.meters))
	copy(out, r.meters)
	return out
}

// Names returns every Arabic meter name ordered by id
func (r *Registry) Names() []string {
	names := make([]string, len(r.meters))
	for i, m := range r.meters {
		names[i] = m.Name
	}
	return names
}

// Len returns the number of meters, variants included
func (r *Registry) Len() int {
	return len(r.meters)
}

// BaseCount returns the number of non-variant meters
func (r *Registry) BaseCount() int {
	n := 0
	for _, m := range r.meters {
		if !m.IsVariant() {
			n++
		}
	}
	return n
}
