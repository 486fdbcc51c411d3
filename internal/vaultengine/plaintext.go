package vaultengine

import (
	"encoding/json"

	"github.com/latchvault/latch-core/internal/entry"
)

// plaintextVault is the decrypted shape stored under an envelope's
// ciphertext: {"entries": [Entry...]} (spec §3).
type plaintextVault struct {
	Entries []entry.Entry `json:"entries"`
}

func encodePlaintext(entries []entry.Entry) ([]byte, error) {
	if entries == nil {
		entries = []entry.Entry{}
	}

	return json.Marshal(plaintextVault{Entries: entries})
}

func decodePlaintext(raw []byte) ([]entry.Entry, error) {
	var v plaintextVault
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}

	if v.Entries == nil {
		v.Entries = []entry.Entry{}
	}

	return v.Entries, nil
}
