package command_test

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/latchvault/latch-core/internal/command"
	"github.com/latchvault/latch-core/internal/vaultengine"
	"github.com/latchvault/latch-core/internal/vaultfile"
)

type statusResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	HasVault   bool   `json:"has_vault"`
	IsUnlocked bool   `json:"is_unlocked"`
}

func newDispatcher(t *testing.T, now func() time.Time) *command.Dispatcher {
	t.Helper()

	path := filepath.Join(t.TempDir(), vaultfile.FileName)
	file := vaultfile.New(path)
	engine := vaultengine.New(file, vaultengine.WithClock(now))

	return &command.Dispatcher{Engine: engine}
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	return v
}

func TestVaultStatusBeforeInit(t *testing.T) {
	d := newDispatcher(t, time.Now)

	resp := d.Dispatch(command.VaultStatus, nil)

	got := decode[statusResponse](t, resp)
	if got.Status != "success" || got.HasVault || got.IsUnlocked {
		t.Fatalf("unexpected status response: %+v", got)
	}
}

func TestInitAddSearchGoldenPath(t *testing.T) {
	d := newDispatcher(t, time.Now)

	initResp := d.Dispatch(command.InitVault, mustJSON(map[string]any{"password": "correct horse battery staple"}))
	assertSuccess(t, initResp)

	addResp := d.Dispatch(command.AddEntry, mustJSON(map[string]any{
		"title": "GitHub", "username": "octocat", "password": "hunter2",
	}))

	add := decode[struct {
		Status string `json:"status"`
		ID     string `json:"id"`
	}](t, addResp)

	if add.Status != "success" || add.ID == "" {
		t.Fatalf("add_entry failed: %+v", add)
	}

	searchResp := d.Dispatch(command.SearchEntries, mustJSON(map[string]any{"query": "git"}))

	var previews []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}

	if err := json.Unmarshal(searchResp, &previews); err != nil {
		t.Fatalf("search_entries did not return a bare array: %v (%s)", err, searchResp)
	}

	if len(previews) != 1 || previews[0].ID != add.ID {
		t.Fatalf("unexpected search results: %+v", previews)
	}
}

func TestInitTwiceFailsAlreadyExists(t *testing.T) {
	d := newDispatcher(t, time.Now)

	assertSuccess(t, d.Dispatch(command.InitVault, mustJSON(map[string]any{"password": "pw-one-two-three"})))

	resp := d.Dispatch(command.InitVault, mustJSON(map[string]any{"password": "pw-one-two-three"}))

	got := decode[struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}](t, resp)

	if got.Status != "error" {
		t.Fatalf("expected error status, got %+v", got)
	}

	if got.Message != "vault already exists" {
		t.Fatalf("expected AlreadyExists message, got %+v", got)
	}
}

func TestUnlockWrongPasswordIsAuthFailed(t *testing.T) {
	d := newDispatcher(t, time.Now)

	assertSuccess(t, d.Dispatch(command.InitVault, mustJSON(map[string]any{"password": "right-password-here"})))
	d.Dispatch(command.LockVault, nil)

	resp := d.Dispatch(command.UnlockVault, mustJSON(map[string]any{"password": "wrong-password-here"}))

	got := decode[struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}](t, resp)

	if got.Status != "error" {
		t.Fatalf("expected error, got %+v", got)
	}

	if got.Message != "authentication failed" {
		t.Fatalf("expected AuthFailed message, got %+v", got)
	}
}

func TestAddEntryWhileLockedReturnsLocked(t *testing.T) {
	d := newDispatcher(t, time.Now)

	assertSuccess(t, d.Dispatch(command.InitVault, mustJSON(map[string]any{"password": "another-password-12"})))
	d.Dispatch(command.LockVault, nil)

	resp := d.Dispatch(command.AddEntry, mustJSON(map[string]any{"title": "x", "username": "y", "password": "z"}))

	got := decode[struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}](t, resp)

	if got.Status != "error" {
		t.Fatalf("expected error, got %+v", got)
	}

	if got.Message != "vault is locked" {
		t.Fatalf("expected Locked message, got %+v", got)
	}
}

func TestSessionExpiresAfterTimeout(t *testing.T) {
	current := time.Now()
	clock := func() time.Time { return current }

	d := newDispatcher(t, clock)

	assertSuccess(t, d.Dispatch(command.InitVault, mustJSON(map[string]any{"password": "session-timeout-test"})))

	current = current.Add(31 * time.Minute)

	resp := d.Dispatch(command.AddEntry, mustJSON(map[string]any{"title": "x", "username": "y", "password": "z"}))

	got := decode[struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}](t, resp)

	if got.Status != "error" {
		t.Fatalf("expected session-timeout error, got %+v", got)
	}
}

func TestGeneratePasswordRequiresNoAuth(t *testing.T) {
	d := newDispatcher(t, time.Now)

	resp := d.Dispatch(command.GeneratePassword, mustJSON(map[string]any{"length": 16, "lowercase": true, "numbers": true}))

	got := decode[struct {
		Status   string `json:"status"`
		Password string `json:"password"`
	}](t, resp)

	if got.Status != "success" || len(got.Password) != 16 {
		t.Fatalf("unexpected generate_password response: %+v", got)
	}
}

func TestAnalyzePasswordStrengthRequiresNoAuth(t *testing.T) {
	d := newDispatcher(t, time.Now)

	resp := d.Dispatch(command.AnalyzePasswordStrength, mustJSON(map[string]any{"password": "abc"}))

	got := decode[struct {
		Status string `json:"status"`
		Score  int    `json:"score"`
	}](t, resp)

	if got.Status != "success" {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	return b
}

func assertSuccess(t *testing.T, resp json.RawMessage) {
	t.Helper()

	got := decode[struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}](t, resp)

	if got.Status != "success" {
		t.Fatalf("expected success, got %+v (%s)", got, resp)
	}
}
