package search

// MaxResults caps the number of results returned by a search.
const MaxResults = 10

// Rank moves title matches ahead of body-only matches. Relative order inside
// each group is preserved.
func Rank(matches []Match) []Match {
	ranked := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.TitleMatched {
			ranked = append(ranked, m)
		}
	}
	for _, m := range matches {
		if !m.TitleMatched {
			ranked = append(ranked, m)
		}
	}
	return ranked
}

// Cap returns at most the first n entries.
func Cap[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}
