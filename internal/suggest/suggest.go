// Package suggest finds "did you mean" candidates for misspelled names.
package suggest

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Closest returns the candidate nearest to name by edit distance, or "" when
// nothing is close enough to be a plausible typo. Ties keep the earlier
// candidate.
func Closest(name string, candidates []string) string {
	best := ""
	bestDist := -1
	for _, c := range candidates {
		if c == name {
			return c
		}
		d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > threshold(name) {
		return ""
	}
	return best
}

// Hint formats a suggestion suffix such as ` (did you mean "Post"?)`.
func Hint(name string, candidates []string) string {
	if s := Closest(name, candidates); s != "" && s != name {
		return ` (did you mean "` + s + `"?)`
	}
	return ""
}

func threshold(name string) int {
	n := len(name) / 3
	if n < 2 {
		return 2
	}
	return n
}
