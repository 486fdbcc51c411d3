package latchcli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, vaultPath string, args ...string) string {
	t.Helper()

	var out bytes.Buffer

	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs(append([]string{"--vault", vaultPath}, args...))

	if err := root.Execute(); err != nil {
		t.Fatalf("command %v failed: %v\noutput: %s", args, err, out.String())
	}

	return out.String()
}

func TestStatusBeforeInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.enc")

	out := runCLI(t, path, "status")
	if !strings.Contains(out, "vault present: false") {
		t.Fatalf("unexpected status output: %s", out)
	}
}

func TestInitWithKeyThenAddAndSearch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.enc")
	keyHex := strings.Repeat("ab", 32)

	out := runCLI(t, path, "init", "--with-key", keyHex)
	if !strings.Contains(out, "vault created") {
		t.Fatalf("unexpected init output: %s", out)
	}

	// A fresh process invocation always starts locked: no session daemon
	// carries state between separate runs of the CLI.
	out = runCLI(t, path, "status")
	if !strings.Contains(out, "vault present: true") || !strings.Contains(out, "unlocked: false") {
		t.Fatalf("unexpected status after init: %s", out)
	}

	out = runCLI(t, path, "--key-hex", keyHex, "add", "--title", "GitHub", "--username", "octocat", "--password", "hunter2")
	if !strings.Contains(out, "added entry") {
		t.Fatalf("unexpected add output: %s", out)
	}

	out = runCLI(t, path, "--key-hex", keyHex, "search", "git")
	if !strings.Contains(out, "GitHub") {
		t.Fatalf("unexpected search output: %s", out)
	}
}

func TestGenerateAndAnalyzeRequireNoVault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.enc")

	out := runCLI(t, path, "generate", "--length", "16")
	if len(strings.TrimSpace(out)) != 16 {
		t.Fatalf("expected 16-character password, got %q", out)
	}

	out = runCLI(t, path, "analyze", "--password", "abc")
	if !strings.Contains(out, "score: 0") {
		t.Fatalf("unexpected analyze output: %s", out)
	}
}

