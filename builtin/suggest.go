// Completion: 100% - Utility module complete
package builtin

import "sort"

// Suggest returns up to max registered names close to name, closest first.
//
// Names within an edit distance of half the length of name (at most 3) are
// considered, so short typos of short names are not matched against
// everything.
func (r *Registry) Suggest(name string, max int) []string {
	type suggestion struct {
		name     string
		distance int
	}

	threshold := len(name) / 2
	if threshold > 3 {
		threshold = 3
	}

	var suggestions []suggestion

	for known := range r.byName {
		dist := levenshtein(name, known)
		if dist <= threshold && dist > 0 {
			suggestions = append(suggestions, suggestion{known, dist})
		}
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].distance == suggestions[j].distance {
			return suggestions[i].name < suggestions[j].name
		}
		return suggestions[i].distance < suggestions[j].distance
	})

	res := make([]string, 0, max)
	for i := 0; i < len(suggestions) && i < max; i++ {
		res = append(res, suggestions[i].name)
	}

	return res
}

// levenshtein is the edit distance between a and b, in bytes.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur[0] = i

		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			cur[j] = min(
				prev[j]+1,      // deletion
				cur[j-1]+1,     // insertion
				prev[j-1]+cost, // substitution
			)
		}

		prev, cur = cur, prev
	}

	return prev[len(b)]
}
