package insights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npatel/wayfinder/internal/models"
)

// historyToText renders a saved route query as one retrievable line.
func historyToText(q models.RouteQuery) string {
	return fmt.Sprintf("Route from %s to %s, distance %g km (%g miles), recorded at %s",
		q.Source, q.Destination, q.DistanceKM, q.DistanceMiles,
		q.CreatedAt.Format("2006-01-02 15:04"))
}

// tokenize lowercases and splits a string into terms, dropping punctuation.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
}

// retrieve scores each history line by term overlap with the question and
// returns the top k, best first. Ties keep history order, so with a
// non-matching question the most recent routes win.
func retrieve(question string, lines []string, k int) []string {
	terms := make(map[string]bool)
	for _, t := range tokenize(question) {
		terms[t] = true
	}

	type scored struct {
		line  string
		score int
		idx   int
	}
	ranked := make([]scored, 0, len(lines))
	for i, line := range lines {
		score := 0
		for _, t := range tokenize(line) {
			if terms[t] {
				score++
			}
		}
		ranked = append(ranked, scored{line: line, score: score, idx: i})
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	out := make([]string, 0, k)
	for _, r := range ranked[:k] {
		out = append(out, r.line)
	}
	return out
}
