package vaultengine

import "encoding/hex"

func hexEncodeLocal(b []byte) string {
	return hex.EncodeToString(b)
}
