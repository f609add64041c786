package catalog

import (
	"sort"
	"strings"
)

const (
	maxSuggestionDistance = 3
	maxSuggestions        = 3
)

// suggest returns up to maxSuggestions candidates within
// maxSuggestionDistance edits of target, closest first. Comparison ignores
// case.
func suggest(target string, candidates []string) []string {
	type match struct {
		value string
		dist  int
	}

	want := strings.ToLower(target)
	var matches []match
	for _, c := range candidates {
		if d := editDistance(want, strings.ToLower(c)); d <= maxSuggestionDistance {
			matches = append(matches, match{c, d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].dist < matches[j].dist })

	out := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, m.value)
	}
	return out
}

// editDistance is the Levenshtein distance between a and b, in runes.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)

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
