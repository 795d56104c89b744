package pokeapi

import (
	"math"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	// PerfectMatch is the score of two names that normalize identically.
	PerfectMatch = 100
	// similarThreshold is the score a candidate must exceed to be kept.
	similarThreshold = 60
)

// normalizeName folds case and treats hyphens as spaces.
func normalizeName(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", " ")
}

// Similarity scores two names from 0 to 100 with difflib's quick ratio over
// their normalized characters. The ratio is an upper bound on the matching
// block ratio and depends only on the shared character multiset.
func Similarity(a, b string) int {
	ra := splitRunes(normalizeName(a))
	rb := splitRunes(normalizeName(b))

	m := difflib.NewMatcher(ra, rb)
	return int(math.RoundToEven(100 * m.QuickRatio()))
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
