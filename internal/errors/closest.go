package errors

import (
	"github.com/agext/levenshtein"
)

// maxSuggestDistance is the largest edit distance still worth a suggestion.
const maxSuggestDistance = 2

// Closest returns the choice nearest to word, or an empty string
// if no choice is close enough. Ties go to the first choice.
func Closest(word string, choices []string) string {
	if word == "" || len(choices) == 0 {
		return ""
	}

	best := ""
	bestDist := -1

	for _, choice := range choices {
		dist := levenshtein.Distance(word, choice, nil)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = choice, dist
		}
	}

	if bestDist > maxSuggestDistance {
		return ""
	}

	return best
}
