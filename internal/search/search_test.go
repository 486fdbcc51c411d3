package search_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/latchvault/latch-core/internal/entry"
	"github.com/latchvault/latch-core/internal/search"
)

func ent(id, title, username string) entry.Entry {
	return entry.Entry{ID: id, Title: title, Username: username}
}

func TestSearchBelowMinLengthReturnsEmpty(t *testing.T) {
	entries := []entry.Entry{ent("1", "GitHub", "alice")}

	got := search.Search(entries, "g")
	if len(got) != 0 {
		t.Fatalf("got %d results, want 0", len(got))
	}
}

func TestSearchScoresPrefixAboveSubstring(t *testing.T) {
	entries := []entry.Entry{
		ent("1", "My GitHub Account", "alice"),
		ent("2", "GitHub", "bob"),
	}

	got := search.Search(entries, "git")
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}

	if got[0].ID != "2" {
		t.Fatalf("expected prefix match first, got %+v", got)
	}
}

func TestSearchMatchesUsernameSubstring(t *testing.T) {
	entries := []entry.Entry{ent("1", "Mail", "alice@example.com")}

	got := search.Search(entries, "alice")
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
}

func TestSearchDiscardsZeroScore(t *testing.T) {
	entries := []entry.Entry{ent("1", "Mail", "bob")}

	got := search.Search(entries, "zz")
	if len(got) != 0 {
		t.Fatalf("got %d results, want 0", len(got))
	}
}

func TestSearchIsCaseAndUnicodeNormalizationInsensitive(t *testing.T) {
	entries := []entry.Entry{ent("1", "Café Wifi", "bob")}

	got := search.Search(entries, "CAFÉ")
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1 (NFC/casefold match)", len(got))
	}
}

func TestSearchStableSecondaryOrderByFoldedTitle(t *testing.T) {
	entries := []entry.Entry{
		ent("1", "Zebra Mail", "x"),
		ent("2", "apple Mail", "y"),
		ent("3", "Mango Mail", "z"),
	}

	got := search.Search(entries, "mail")
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}

	if got[0].ID != "2" || got[1].ID != "3" || got[2].ID != "1" {
		t.Fatalf("expected alphabetical folded order, got %+v", got)
	}
}

func TestSearchReturnsFullPreviewFields(t *testing.T) {
	entries := []entry.Entry{
		{ID: "1", Title: "GitHub", Username: "octocat", IconURL: "https://github.com/favicon.ico"},
	}

	got := search.Search(entries, "git")

	want := []entry.Preview{
		{ID: "1", Title: "GitHub", Username: "octocat", IconURL: "https://github.com/favicon.ico"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("preview mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchCapsAtMaxResults(t *testing.T) {
	entries := make([]entry.Entry, 0, 60)
	for i := 0; i < 60; i++ {
		entries = append(entries, ent(string(rune('a'+i%26))+"-id", "Login Item", "user"))
	}

	got := search.Search(entries, "login")
	if len(got) != search.MaxResults {
		t.Fatalf("got %d results, want %d", len(got), search.MaxResults)
	}
}
