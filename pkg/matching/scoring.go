package matching

import (
	"strings"

	"github.com/formweave/aster/pkg/normalize"
)

// Similarity tiers. A canonical-equal pair scores 1.0 and a substring
// containment 0.85; everything else falls back to edit distance, with weak
// matches discarded entirely (precision over recall).
const (
	scoreExact    = 1.0
	scoreContains = 0.85
	fuzzyFloor    = 0.5
)

// Scorer provides string comparison for field/phrase matching
type Scorer struct{}

// NewScorer creates a new Scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Similarity returns a 0..1 similarity between two strings. Both sides are
// canonicalized first; either side normalizing to empty scores 0.
func (s *Scorer) Similarity(a, b string) float64 {
	a = normalize.Normalize(a)
	b = normalize.Normalize(b)

	if a == "" || b == "" {
		return 0.0
	}
	if a == b {
		return scoreExact
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return scoreContains
	}

	maxLen := max(len(a), len(b))
	similarity := 1.0 - float64(s.EditDistance(a, b))/float64(maxLen)
	if similarity <= fuzzyFloor {
		return 0.0
	}
	return similarity
}

// EditDistance calculates the minimum edit distance between two strings
// (insert, delete, and substitute each cost 1).
func (s *Scorer) EditDistance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Two rows for dynamic programming
	row := make([]int, len(b)+1)
	prevRow := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prevRow[j] = j
	}

	for i := 1; i <= len(a); i++ {
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			row[j] = min(min(row[j-1]+1, prevRow[j]+1), prevRow[j-1]+cost)
		}
		row, prevRow = prevRow, row
	}

	return prevRow[len(b)]
}
