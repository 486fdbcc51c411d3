package generator_test

import (
	"strings"
	"testing"

	"github.com/latchvault/latch-core/internal/generator"
)

func TestGenerateRespectsRequestedLength(t *testing.T) {
	pw, err := generator.Generate(generator.Options{Length: 20, Lowercase: true, Numbers: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(pw) != 20 {
		t.Fatalf("got length %d, want 20", len(pw))
	}
}

func TestGenerateClampsLength(t *testing.T) {
	pw, err := generator.Generate(generator.Options{Length: 3, Lowercase: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(pw) != generator.MinLength {
		t.Fatalf("got length %d, want clamped %d", len(pw), generator.MinLength)
	}

	pw2, err := generator.Generate(generator.Options{Length: 1000, Lowercase: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(pw2) != generator.MaxLength {
		t.Fatalf("got length %d, want clamped %d", len(pw2), generator.MaxLength)
	}
}

func TestGenerateForcesLowercaseWhenNoClassEnabled(t *testing.T) {
	pw, err := generator.Generate(generator.Options{Length: 12})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	for _, r := range pw {
		if r < 'a' || r > 'z' {
			t.Fatalf("expected only lowercase, got %q in %q", r, pw)
		}
	}
}

func TestGenerateExcludeAmbiguousOmitsAmbiguousChars(t *testing.T) {
	const ambiguous = "0O1lI"

	for i := 0; i < 20; i++ {
		pw, err := generator.Generate(generator.Options{
			Length: 64, Uppercase: true, Lowercase: true, Numbers: true, ExcludeAmbiguous: true,
		})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}

		if strings.ContainsAny(pw, ambiguous) {
			t.Fatalf("password contains ambiguous character: %q", pw)
		}
	}
}

func TestGenerateNeverYieldsEmptyPoolWithNoClassAndExcludeAmbiguous(t *testing.T) {
	// Numbers-only pool with exclude_ambiguous still leaves 2,3,4,...9, so
	// force an impossible pool a different way: this is a guard test that
	// buildPool never returns empty because lowercase is always the
	// fallback; included here to document that invariant explicitly.
	pw, err := generator.Generate(generator.Options{Length: 10, ExcludeAmbiguous: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(pw) != 10 {
		t.Fatalf("got length %d, want 10", len(pw))
	}
}

func TestGenerateProducesDifferentOutputsEachCall(t *testing.T) {
	a, err := generator.Generate(generator.Options{Length: 32, Lowercase: true, Uppercase: true, Numbers: true, Symbols: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	b, err := generator.Generate(generator.Options{Length: 32, Lowercase: true, Uppercase: true, Numbers: true, Symbols: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if a == b {
		t.Fatalf("expected two independent generations to differ")
	}
}

