package ui

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/qawafi/arud/internal/prosody/alphabet"
)

const (
	// DefaultMaxDistance caps the edit distance offered as a suggestion; shorter
	// targets get a tighter limit, see MaxDistance
	DefaultMaxDistance = 3
	// DefaultMaxSuggestions caps the number of suggestions
	DefaultMaxSuggestions = 3
)

// FindSimilar returns up to DefaultMaxSuggestions candidates within MaxDistance
// edits of target, closest first. Comparison ignores case and Arabic diacritics, so
// "الطَّوِيل" suggests "الطويل".
func FindSimilar(target string, candidates []string) []string {
	type scored struct {
		value    string
		distance int
	}

	key := normalize(target)
	limit := MaxDistance(key)
	var found []scored
	for _, c := range candidates {
		d := Distance(key, normalize(c))
		if d <= limit {
			found = append(found, scored{c, d})
		}
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].distance < found[j].distance })

	out := make([]string, 0, DefaultMaxSuggestions)
	for i := 0; i < len(found) && i < DefaultMaxSuggestions; i++ {
		out = append(out, found[i].value)
	}
	return out
}

// MaxDistance allows one edit per three runes of target, at least one and at most
// DefaultMaxDistance
func MaxDistance(target string) int {
	return min(DefaultMaxDistance, max(1, utf8.RuneCountInString(target)/3))
}

func normalize(s string) string {
	return strings.ToLower(alphabet.StripDiacritics(strings.TrimSpace(s)))
}

// Distance is the Levenshtein distance between a and b counted in runes
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
