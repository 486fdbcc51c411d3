// Package generator implements the password generator of spec §4.7,
// grounded on the teacher's randstring package: the same crypto/rand
// rejection-sampling character draw and Fisher-Yates shuffle, retargeted
// at the spec's character-class option set.
package generator

import (
	"crypto/rand"
	"math/big"

	"github.com/latchvault/latch-core/internal/latcherrors"
)

const (
	lower   = "abcdefghijklmnopqrstuvwxyz"
	upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"
	symbols = "~`!@#$%^&*()_-+={[}]|\\:;\"'<,>.?/"

	ambiguous = "0O1lI"

	// MinLength and MaxLength bound the clamped output length.
	MinLength = 8
	MaxLength = 128
)

// Options configures a single generate_password call.
type Options struct {
	Length           int
	Uppercase        bool
	Lowercase        bool
	Numbers          bool
	Symbols          bool
	ExcludeAmbiguous bool
}

// Generate draws a password per opts: pool formed from the enabled
// character classes (lowercase forced on if no class is enabled),
// ambiguous characters removed when requested, length clamped to
// [MinLength, MaxLength], drawn uniformly via OS CSPRNG rejection
// sampling to avoid modulo bias.
func Generate(opts Options) (string, error) {
	pool := buildPool(opts)
	if pool == "" {
		return "", latcherrors.ErrInvalid
	}

	length := clamp(opts.Length)

	out := make([]byte, length)

	for i := range out {
		idx, err := randIndex(len(pool))
		if err != nil {
			return "", err
		}

		out[i] = pool[idx]
	}

	if err := shuffle(out); err != nil {
		return "", err
	}

	return string(out), nil
}

func buildPool(opts Options) string {
	pool := ""

	if opts.Lowercase {
		pool += lower
	}

	if opts.Uppercase {
		pool += upper
	}

	if opts.Numbers {
		pool += digits
	}

	if opts.Symbols {
		pool += symbols
	}

	if pool == "" {
		pool = lower
	}

	if opts.ExcludeAmbiguous {
		pool = removeChars(pool, ambiguous)
	}

	return pool
}

func removeChars(s, remove string) string {
	out := make([]byte, 0, len(s))

	for i := 0; i < len(s); i++ {
		if !containsByte(remove, s[i]) {
			out = append(out, s[i])
		}
	}

	return string(out)
}

func containsByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}

	return false
}

func clamp(length int) int {
	switch {
	case length < MinLength:
		return MinLength
	case length > MaxLength:
		return MaxLength
	default:
		return length
	}
}

func randIndex(n int) (int, error) {
	num, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}

	return int(num.Int64()), nil
}

// shuffle applies a Fisher-Yates shuffle using the OS CSPRNG.
func shuffle(bs []byte) error {
	for i := range bs {
		j, err := randIndex(i + 1)
		if err != nil {
			return err
		}

		bs[i], bs[j] = bs[j], bs[i]
	}

	return nil
}
