// Package search implements the fuzzy, scored lookup over decrypted
// entries described in spec §4.5.
package search

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/latchvault/latch-core/internal/entry"
)

// MinQueryLength is the minimum query length that yields any results.
const MinQueryLength = 2

// MaxResults caps the number of previews returned.
const MaxResults = 50

type scored struct {
	preview entry.Preview
	score   int
	foldKey string
}

// Search scores entries against query and returns an ordered list of
// EntryPreview, highest score first, ties broken by ascending
// case-folded title, capped at MaxResults.
func Search(entries []entry.Entry, query string) []entry.Preview {
	if len([]rune(query)) < MinQueryLength {
		return []entry.Preview{}
	}

	q := fold(query)

	results := make([]scored, 0, len(entries))

	for _, e := range entries {
		title := fold(e.Title)
		username := fold(e.Username)

		score := scoreOf(title, username, q)
		if score == 0 {
			continue
		}

		results = append(results, scored{preview: e.ToPreview(), score: score, foldKey: title})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}

		return results[i].foldKey < results[j].foldKey
	})

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}

	out := make([]entry.Preview, len(results))
	for i, r := range results {
		out[i] = r.preview
	}

	return out
}

func scoreOf(title, username, q string) int {
	switch {
	case strings.HasPrefix(title, q):
		return 3
	case strings.Contains(title, q):
		return 2
	case strings.Contains(username, q):
		return 1
	default:
		return 0
	}
}

// fold applies NFC normalization then case-folds for comparison.
func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
