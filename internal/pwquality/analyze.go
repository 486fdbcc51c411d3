// Package pwquality implements the password-quality analysis of spec
// §4.6: entropy scoring, password reuse detection, weak-password
// flagging, k-anonymity breach lookup, and the aggregate health report.
package pwquality

import "math"

// Label names a Score bucket.
type Label string

const (
	LabelVeryWeak   Label = "Very Weak"
	LabelWeak       Label = "Weak"
	LabelFair       Label = "Fair"
	LabelStrong     Label = "Strong"
	LabelVeryStrong Label = "Very Strong"
)

// Analysis is the result of analyzing a single password.
type Analysis struct {
	Score       int     `json:"score"`
	EntropyBits float64 `json:"entropy"`
	Label       Label   `json:"label"`
}

const (
	lowerAlphabet  = 26
	upperAlphabet  = 26
	digitAlphabet  = 10
	symbolAlphabet = 32
)

// Analyze scores a password per spec §4.6: entropy_bits = length *
// log2(alphabet_estimate), where alphabet_estimate sums the character
// classes actually present in password. Length below 8 caps the score
// at 0 regardless of entropy.
func Analyze(password string) Analysis {
	var hasLower, hasUpper, hasDigit, hasSymbol bool

	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	alphabet := 0
	if hasLower {
		alphabet += lowerAlphabet
	}
	if hasUpper {
		alphabet += upperAlphabet
	}
	if hasDigit {
		alphabet += digitAlphabet
	}
	if hasSymbol {
		alphabet += symbolAlphabet
	}

	length := len([]rune(password))

	var entropy float64
	if alphabet > 1 && length > 0 {
		entropy = float64(length) * math.Log2(float64(alphabet))
	}

	score := bucket(entropy)
	if length < 8 {
		score = 0
	}

	return Analysis{Score: score, EntropyBits: entropy, Label: labelFor(score)}
}

func bucket(entropy float64) int {
	switch {
	case entropy < 28:
		return 0
	case entropy < 36:
		return 1
	case entropy < 60:
		return 2
	case entropy < 80:
		return 3
	default:
		return 4
	}
}

func labelFor(score int) Label {
	switch score {
	case 0:
		return LabelVeryWeak
	case 1:
		return LabelWeak
	case 2:
		return LabelFair
	case 3:
		return LabelStrong
	default:
		return LabelVeryStrong
	}
}
