package match

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Distance is the rune-wise edit distance between a and b.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Similarity maps the edit distance to [0, 1]; 1 means identical.
// The score is 1 - distance / max(runes(a), runes(b)).
func Similarity(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 && lb == 0 {
		return 1.0
	}

	return 1.0 - float64(Distance(a, b))/float64(max(la, lb))
}

// NormalizedSimilarity compares a and b after NormalizeIdent.
func NormalizedSimilarity(a, b string) float64 {
	return Similarity(NormalizeIdent(a), NormalizeIdent(b))
}
