package query

import (
	"github.com/hbollon/go-edlib"
	"github.com/standardbeagle/textdex/internal/index"
)

// suggestThreshold is the minimum Jaro-Winkler similarity for a stem
// to be offered as a "did you mean" correction.
const suggestThreshold = 0.80

// Suggest looks for indexed stems similar to an unmatched query stem
// and returns up to one candidate per input stem, in input order. It
// is used when a search returns no groups, to help a typo-prone query
// find the term the corpus actually contains.
func Suggest(idx *index.Index, queryStems []string) []string {
	candidates := make([]string, len(idx.Words))
	for i, w := range idx.Words {
		candidates[i] = w.Stem
	}
	if len(candidates) == 0 {
		return nil
	}

	var suggestions []string
	for _, stem := range queryStems {
		best, ok := closest(stem, candidates)
		if ok {
			suggestions = append(suggestions, best)
		}
	}
	return suggestions
}

func closest(stem string, candidates []string) (string, bool) {
	var best string
	var bestScore float64
	for _, c := range candidates {
		if c == stem {
			return "", false // exact match already in the index, nothing to suggest
		}
		score, err := edlib.StringsSimilarity(stem, c, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if float64(score) > bestScore {
			bestScore = float64(score)
			best = c
		}
	}
	if bestScore < suggestThreshold {
		return "", false
	}
	return best, true
}
