// Package oauthverifier defines the interface the oauth auth method uses
// to turn a presented ID token into a verified subject identifier (spec
// §4.3). Token verification itself (signature, issuer, audience, expiry)
// is external to this core; the core only consumes the verified result.
package oauthverifier

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned when the presented ID token fails
// verification for any reason. Per spec §7 this collapses into AuthFailed
// at the auth-method layer, never a distinguishable reason.
var ErrInvalidToken = errors.New("oauthverifier: invalid id token")

// Verifier verifies an OAuth ID token and extracts its subject.
type Verifier interface {
	// Verify checks idToken and returns the verified subject ("sub")
	// claim. Returns ErrInvalidToken on any verification failure.
	Verify(ctx context.Context, idToken string) (subject string, err error)
}
