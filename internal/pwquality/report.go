package pwquality

import (
	"context"
	"math"

	"github.com/latchvault/latch-core/internal/entry"
)

// Report is the aggregate health report returned by `check_vault_health`.
type Report struct {
	Reused       []ReusedGroup   `json:"reused"`
	Weak         []entry.Preview `json:"weak"`
	Breached     []BreachResult  `json:"breached"`
	OverallScore int             `json:"overall_score"`
}

// BuildReport runs reuse/weak/breach analysis over entries and computes
// the aggregate 0-100 score from spec §4.6:
// strong_frac*70 + (1-reused_frac)*15 + (1-breached_frac)*15, rounded.
// checker may be nil, in which case breach status is Unknown for every
// entry with a non-empty password (offline mode) and no network request
// is made; entries with an empty password get no breach result.
func BuildReport(ctx context.Context, entries []entry.Entry, checker *BreachChecker) Report {
	reused := Reused(entries)
	weak := Weak(entries)

	var breached []BreachResult
	if checker != nil {
		breached = checker.Check(ctx, entries)
	} else {
		breached = make([]BreachResult, 0, len(entries))
		for _, e := range entries {
			if e.Password == "" {
				continue
			}

			breached = append(breached, BreachResult{Entry: e.ToPreview(), Status: BreachStatusUnknown})
		}
	}

	total := len(entries)

	strongFrac := fracNotIn(entries, weak, total)
	reusedFrac := fracReused(entries, reused, total)
	breachedFrac := fracBreached(breached, total)

	score := strongFrac*70 + (1-reusedFrac)*15 + (1-breachedFrac)*15

	return Report{
		Reused:       reused,
		Weak:         weak,
		Breached:     breached,
		OverallScore: int(math.Round(score)),
	}
}

func fracNotIn(entries []entry.Entry, weak []entry.Preview, total int) float64 {
	if total == 0 {
		return 1
	}

	weakIDs := make(map[string]struct{}, len(weak))
	for _, w := range weak {
		weakIDs[w.ID] = struct{}{}
	}

	strong := 0

	for _, e := range entries {
		if _, isWeak := weakIDs[e.ID]; !isWeak {
			strong++
		}
	}

	return float64(strong) / float64(total)
}

func fracReused(entries []entry.Entry, groups []ReusedGroup, total int) float64 {
	if total == 0 {
		return 0
	}

	reusedCount := 0
	for _, g := range groups {
		reusedCount += g.Count
	}

	return float64(reusedCount) / float64(total)
}

func fracBreached(breached []BreachResult, total int) float64 {
	if total == 0 {
		return 0
	}

	count := 0

	for _, b := range breached {
		if b.Status == BreachStatusFound {
			count++
		}
	}

	return float64(count) / float64(total)
}
