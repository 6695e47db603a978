// Package similarity scores prosodic patterns with a weighted edit distance.
package similarity

import "sort"

const (
	// SubstitutionCost is charged for turning a moving letter into a still one or back,
	// which changes the syllabic weight
	SubstitutionCost = 2.0
	// IndelCost is charged for each inserted or deleted symbol
	IndelCost = 1.0
	// LengthPenalty is charged per symbol of length difference on top of the edit distance
	LengthPenalty = 0.5
)

// Distance returns the weighted edit distance between a and b plus the length penalty.
//
// Example:
//
//	Distance("//o/o", "//o/o")  // 0
//	Distance("//o/o", "/o/o")   // 1.5 (one deletion + 0.5 length penalty)
func Distance(a, b string) float64 {
	n, m := len(a), len(b)

	matrix := make([][]float64, n+1)
	for i := range matrix {
		matrix[i] = make([]float64, m+1)
		matrix[i][0] = float64(i) * IndelCost
	}
	for j := 0; j <= m; j++ {
		matrix[0][j] = float64(j) * IndelCost
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			cost := SubstitutionCost
			if a[i-1] == b[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+IndelCost, // deletion
				matrix[i][j-1]+IndelCost, // insertion
				matrix[i-1][j-1]+cost,    // substitution
			)
		}
	}

	diff := n - m
	if diff < 0 {
		diff = -diff
	}
	return matrix[n][m] + LengthPenalty*float64(diff)
}

// Calculate returns 1 - distance / (longer length × SubstitutionCost), clamped to
// [0, 1]. It is symmetric. Empty input on either side, including both sides, scores 0:
// no rhythmic evidence means no confidence.
func Calculate(a, b string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	if a == b {
		return 1.0
	}
	longer := max(len(a), len(b))
	score := 1 - Distance(a, b)/(float64(longer)*SubstitutionCost)
	return max(0, min(1, score))
}

// Match is a scored candidate
type Match struct {
	Candidate string
	Index     int
	Score     float64
}

// FindBestMatches scores every candidate against input, drops those below
// minSimilarity and returns at most topK results sorted by descending score.
// Equal scores keep their input order. topK <= 0 means no limit.
func FindBestMatches(input string, candidates []string, minSimilarity float64, topK int) []Match {
	var matches []Match
	for i, c := range candidates {
		score := Calculate(input, c)
		if score < minSimilarity {
			continue
		}
		matches = append(matches, Match{Candidate: c, Index: i, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}
