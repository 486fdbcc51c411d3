package pwquality

import (
	"sort"

	"github.com/latchvault/latch-core/internal/entry"
)

// ReusedGroup is a set of entries sharing a single plaintext password.
type ReusedGroup struct {
	Password string          `json:"-"`
	Entries  []entry.Preview `json:"entries"`
	Count    int             `json:"count"`
}

// Reused groups entries by identical plaintext password, keeping only
// groups with 2 or more members. Empty passwords are excluded. Groups
// are ordered by descending count, then ascending first-entry title, for
// a deterministic report.
func Reused(entries []entry.Entry) []ReusedGroup {
	byPassword := make(map[string][]entry.Entry)

	for _, e := range entries {
		if e.Password == "" {
			continue
		}

		byPassword[e.Password] = append(byPassword[e.Password], e)
	}

	groups := make([]ReusedGroup, 0, len(byPassword))

	for pw, members := range byPassword {
		if len(members) < 2 {
			continue
		}

		previews := make([]entry.Preview, len(members))
		for i, m := range members {
			previews[i] = m.ToPreview()
		}

		groups = append(groups, ReusedGroup{Password: pw, Entries: previews, Count: len(members)})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}

		return groups[i].Entries[0].Title < groups[j].Entries[0].Title
	})

	return groups
}

// Weak returns entries whose Analyze(password).Score is at most 1.
func Weak(entries []entry.Entry) []entry.Preview {
	out := make([]entry.Preview, 0)

	for _, e := range entries {
		if Analyze(e.Password).Score <= 1 {
			out = append(out, e.ToPreview())
		}
	}

	return out
}
