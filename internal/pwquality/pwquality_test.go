package pwquality_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/latchvault/latch-core/internal/entry"
	"github.com/latchvault/latch-core/internal/pwquality"
)

func TestAnalyzeShortPasswordCapsScoreAtZero(t *testing.T) {
	a := pwquality.Analyze("Ab1!")
	if a.Score != 0 {
		t.Fatalf("got score %d, want 0 for length < 8", a.Score)
	}
}

func TestAnalyzeBucketsIncreaseWithComplexity(t *testing.T) {
	weak := pwquality.Analyze("lowercaseonly")
	strong := pwquality.Analyze("C0mpl3x!Passphrase#2026")

	if strong.Score <= weak.Score {
		t.Fatalf("expected strong.Score > weak.Score, got %d <= %d", strong.Score, weak.Score)
	}
}

func TestReusedGroupsDuplicatePasswords(t *testing.T) {
	entries := []entry.Entry{
		{ID: "1", Title: "A", Password: "shared"},
		{ID: "2", Title: "B", Password: "shared"},
		{ID: "3", Title: "C", Password: "unique"},
		{ID: "4", Title: "D", Password: ""},
	}

	groups := pwquality.Reused(entries)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}

	if groups[0].Count != 2 {
		t.Fatalf("got count %d, want 2", groups[0].Count)
	}
}

func TestWeakFiltersLowScoreEntries(t *testing.T) {
	entries := []entry.Entry{
		{ID: "1", Title: "weak", Password: "abc"},
		{ID: "2", Title: "strong", Password: "C0mpl3x!Passphrase#2026"},
	}

	weak := pwquality.Weak(entries)
	if len(weak) != 1 || weak[0].ID != "1" {
		t.Fatalf("got %+v, want only entry 1", weak)
	}
}

func TestBreachCheckerFindsMatchViaKAnonymity(t *testing.T) {
	// SHA-1("password") = 5BAA61E4C9B93F3F0682250B6CF8331B7EE68FD8
	// prefix "5BAA6", suffix "1E4C9B93F3F0682250B6CF8331B7EE68FD8"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("1E4C9B93F3F0682250B6CF8331B7EE68FD8:3730471\r\nOTHERSUFFIX00000000000000000000000:1\r\n"))
	}))
	defer srv.Close()

	checker := pwquality.BreachChecker{Endpoint: srv.URL + "/range/%s"}

	entries := []entry.Entry{{ID: "1", Title: "Example", Password: "password"}}

	results := checker.Check(context.Background(), entries)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	if results[0].Status != pwquality.BreachStatusFound {
		t.Fatalf("got status %v, want Found", results[0].Status)
	}

	if results[0].BreachCount != 3730471 {
		t.Fatalf("got count %d, want 3730471", results[0].BreachCount)
	}
}

func TestBreachCheckerCleanWhenSuffixAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("DEADBEEF00000000000000000000000000:9\r\n"))
	}))
	defer srv.Close()

	checker := pwquality.BreachChecker{Endpoint: srv.URL + "/range/%s"}

	entries := []entry.Entry{{ID: "1", Title: "Example", Password: "password"}}

	results := checker.Check(context.Background(), entries)
	if results[0].Status != pwquality.BreachStatusClean {
		t.Fatalf("got status %v, want Clean", results[0].Status)
	}
}

func TestBreachCheckerUnreachableEndpointIsUnknownNotError(t *testing.T) {
	checker := pwquality.BreachChecker{Endpoint: "http://127.0.0.1:1/range/%s"}

	entries := []entry.Entry{{ID: "1", Title: "Example", Password: "password"}}

	results := checker.Check(context.Background(), entries)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	if results[0].Status != pwquality.BreachStatusUnknown {
		t.Fatalf("got status %v, want Unknown", results[0].Status)
	}
}

func TestBuildReportOverallScoreIsZeroToHundred(t *testing.T) {
	entries := []entry.Entry{
		{ID: "1", Title: "A", Password: "C0mpl3x!Passphrase#2026"},
		{ID: "2", Title: "B", Password: "weak"},
	}

	report := pwquality.BuildReport(context.Background(), entries, nil)
	if report.OverallScore < 0 || report.OverallScore > 100 {
		t.Fatalf("overall score out of range: %d", report.OverallScore)
	}
}
