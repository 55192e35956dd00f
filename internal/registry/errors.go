package registry

import (
	"fmt"
	"strings"
)

// UnknownClusterError reports a selector token that matched no registered
// cluster context. It aborts a command before any dispatch happens.
type UnknownClusterError struct {
	Selector   string
	Suggestion string
}

func (e *UnknownClusterError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown cluster %q (did you mean %q?)", e.Selector, e.Suggestion)
	}
	return fmt.Sprintf("unknown cluster %q", e.Selector)
}

// suggestionThreshold is the minimum bigram similarity for a name to be
// offered as a "did you mean" candidate.
const suggestionThreshold = 0.5

// closestMatch returns the candidate most similar to name, or "" when
// nothing clears the threshold.
func closestMatch(name string, candidates []string) string {
	best := ""
	bestScore := 0.0
	for _, c := range candidates {
		score := similarity(strings.ToLower(name), strings.ToLower(c))
		if score > bestScore && score >= suggestionThreshold {
			bestScore = score
			best = c
		}
	}
	return best
}

// similarity is a Sørensen–Dice coefficient over character bigrams.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) < 2 || len(b) < 2 {
		return 0.0
	}

	bigrams := func(s string) map[string]int {
		m := make(map[string]int, len(s))
		for i := 0; i < len(s)-1; i++ {
			m[s[i:i+2]]++
		}
		return m
	}

	aGrams := bigrams(a)
	bGrams := bigrams(b)

	overlap := 0
	for g, n := range aGrams {
		if m := bGrams[g]; m < n {
			overlap += m
		} else {
			overlap += n
		}
	}

	return 2.0 * float64(overlap) / float64(len(a)-1+len(b)-1)
}
