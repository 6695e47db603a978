// Package patterncache expands every meter grammar into the set of surface patterns it
// licenses. The cache is built once and is read-only afterwards, so it is safe for
// concurrent readers without locking.
package patterncache

import (
	"sort"

	"github.com/qawafi/arud/internal/prosody/alphabet"
	perrors "github.com/qawafi/arud/internal/prosody/errors"
	"github.com/qawafi/arud/internal/prosody/meter"
)

// Entry is one cached surface pattern with the rule combination that produced it
type Entry struct {
	Pattern    alphabet.Pattern
	Transforms []meter.Transform
}

// TransformCount is the number of rules applied across all positions
func (e Entry) TransformCount() int {
	n := 0
	for _, t := range e.Transforms {
		n += t.Count()
	}
	return n
}

// Labels returns the per-position transformation labels ("base" or rule names)
func (e Entry) Labels() []string {
	labels := make([]string, len(e.Transforms))
	for i, t := range e.Transforms {
		labels[i] = t.String()
	}
	return labels
}

type meterPatterns struct {
	entries []Entry
	index   map[alphabet.Pattern]int
}

// Cache maps meter ids to their licensed patterns
type Cache struct {
	meters    map[meter.ID]*meterPatterns
	byPattern map[alphabet.Pattern][]meter.ID
	ids       []meter.ID
	total     int
}

// option is one candidate surface form of a single position
type option struct {
	pattern   alphabet.Pattern
	transform meter.Transform
}

// Build computes the Cartesian product of every meter's position options. When
// several combinations produce the same pattern, the one with the fewest rules wins;
// on equal counts the first in enumeration order is kept. Build is deterministic for
// a fixed registry.
func Build(reg *meter.Registry) (*Cache, error) {
	c := &Cache{
		meters:    make(map[meter.ID]*meterPatterns, reg.Len()),
		byPattern: make(map[alphabet.Pattern][]meter.ID),
	}

	var errs perrors.ErrorList
	for _, m := range reg.All() {
		mp := expand(m)
		if len(mp.entries) == 0 {
			errs = append(errs, perrors.NewEmptyMeterCache(m.Name))
			continue
		}
		c.meters[m.ID] = mp
		c.ids = append(c.ids, m.ID)
		c.total += len(mp.entries)
		for _, e := range mp.entries {
			c.byPattern[e.Pattern] = append(c.byPattern[e.Pattern], m.ID)
		}
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	sort.Slice(c.ids, func(i, j int) bool { return c.ids[i] < c.ids[j] })
	return c, nil
}

func expand(m *meter.Meter) *meterPatterns {
	partials := []Entry{{}}
	for _, pos := range m.Positions {
		opts := positionOptions(pos)
		next := make([]Entry, 0, len(partials)*len(opts))
		for _, partial := range partials {
			for _, opt := range opts {
				transforms := make([]meter.Transform, len(partial.Transforms), len(partial.Transforms)+1)
				copy(transforms, partial.Transforms)
				next = append(next, Entry{
					Pattern:    partial.Pattern + opt.pattern,
					Transforms: append(transforms, opt.transform),
				})
			}
		}
		partials = next
	}

	mp := &meterPatterns{index: make(map[alphabet.Pattern]int)}
	for _, e := range partials {
		if !e.Pattern.IsValid() {
			continue
		}
		if i, seen := mp.index[e.Pattern]; seen {
			if e.TransformCount() < mp.entries[i].TransformCount() {
				mp.entries[i] = e
			}
			continue
		}
		mp.index[e.Pattern] = len(mp.entries)
		mp.entries = append(mp.entries, e)
	}
	return mp
}

// positionOptions lists the distinct surface forms of a position
func positionOptions(pos meter.Position) []option {
	var opts []option
	seen := make(map[alphabet.Pattern]int)
	for _, t := range pos.Transforms() {
		p := t.Apply(pos.Tafila).Pattern()
		if i, ok := seen[p]; ok {
			if t.Count() < opts[i].transform.Count() {
				opts[i].transform = t
			}
			continue
		}
		seen[p] = len(opts)
		opts = append(opts, option{pattern: p, transform: t})
	}
	return opts
}

// Patterns returns the entries of a meter in enumeration order
func (c *Cache) Patterns(id meter.ID) []Entry {
	mp, ok := c.meters[id]
	if !ok {
		return nil
	}
	out := make([]Entry, len(mp.entries))
	copy(out, mp.entries)
	return out
}

// Lookup returns the entry of pattern in the given meter
func (c *Cache) Lookup(id meter.ID, pattern alphabet.Pattern) (Entry, bool) {
	mp, ok := c.meters[id]
	if !ok {
		return Entry{}, false
	}
	i, ok := mp.index[pattern]
	if !ok {
		return Entry{}, false
	}
	return mp.entries[i], true
}

// Contains reports whether pattern is licensed by the meter
func (c *Cache) Contains(id meter.ID, pattern alphabet.Pattern) bool {
	_, ok := c.Lookup(id, pattern)
	return ok
}

// MetersFor returns the ids of every meter licensing pattern, ascending
func (c *Cache) MetersFor(pattern alphabet.Pattern) []meter.ID {
	ids := c.byPattern[pattern]
	out := make([]meter.ID, len(ids))
	copy(out, ids)
	return out
}

// Count returns the number of patterns cached for a meter
func (c *Cache) Count(id meter.ID) int {
	if mp, ok := c.meters[id]; ok {
		return len(mp.entries)
	}
	return 0
}

// Total returns the number of cached (meter, pattern) pairs
func (c *Cache) Total() int {
	return c.total
}

// MeterIDs returns the cached meter ids, ascending
func (c *Cache) MeterIDs() []meter.ID {
	out := make([]meter.ID, len(c.ids))
	copy(out, c.ids)
	return out
}
