// Package command implements the stable JSON command surface of spec §6:
// one entry point per command, a uniform {status, message} error shape,
// and the check_session-guard-then-refresh pattern for every
// authenticated command.
package command

import (
	"encoding/json"
	"fmt"

	"github.com/latchvault/latch-core/internal/keychain"
	"github.com/latchvault/latch-core/internal/latcherrors"
	"github.com/latchvault/latch-core/internal/oauthverifier"
	"github.com/latchvault/latch-core/internal/pwquality"
	"github.com/latchvault/latch-core/internal/vaultengine"
)

// Name enumerates the commands of spec §6's table.
type Name string

const (
	VaultStatus             Name = "vault_status"
	InitVault               Name = "init_vault"
	InitVaultWithKey        Name = "init_vault_with_key"
	InitVaultOAuth          Name = "init_vault_oauth"
	UnlockVault             Name = "unlock_vault"
	UnlockVaultWithKey      Name = "unlock_vault_with_key"
	UnlockVaultOAuth        Name = "unlock_vault_oauth"
	LockVault               Name = "lock_vault"
	GetVaultAuthMethod      Name = "get_vault_auth_method"
	GetAuthPreferences      Name = "get_auth_preferences"
	ReencryptVault          Name = "reencrypt_vault"
	ReencryptVaultToOAuth   Name = "reencrypt_vault_to_oauth"
	AddEntry                Name = "add_entry"
	UpdateEntry             Name = "update_entry"
	DeleteEntry             Name = "delete_entry"
	GetFullEntry            Name = "get_full_entry"
	SearchEntries           Name = "search_entries"
	RequestSecret           Name = "request_secret"
	AnalyzePasswordStrength Name = "analyze_password_strength"
	GeneratePassword        Name = "generate_password"
	CheckVaultHealth        Name = "check_vault_health"
)

// Dispatcher wires an Engine and its auth dependencies to the command
// surface.
type Dispatcher struct {
	Engine        *vaultengine.Engine
	Verifier      oauthverifier.Verifier
	Keychain      keychain.Store
	OAuthPepper   []byte
	BreachChecker *pwquality.BreachChecker
}

// errorResponse is the uniform shape for any failed command.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Dispatch routes one command by name, decoding req into the command's
// typed request (if any) and returning the raw JSON response: either a
// command-specific success object (status:"success" plus fields) or
// {status:"error", message}. search_entries is the one exception: its
// success shape is a bare top-level JSON array, per spec §6.
func (d *Dispatcher) Dispatch(name Name, req json.RawMessage) json.RawMessage {
	result, err := d.route(name, req)
	if err != nil {
		return mustMarshal(errorResponse{Status: "error", Message: errorMessage(err)})
	}

	return result
}

func (d *Dispatcher) route(name Name, req json.RawMessage) (json.RawMessage, error) {
	switch name {
	case VaultStatus:
		return d.handleVaultStatus()
	case InitVault:
		return d.handleInitVault(req)
	case InitVaultWithKey:
		return d.handleInitVaultWithKey(req)
	case InitVaultOAuth:
		return d.handleInitVaultOAuth(req)
	case UnlockVault:
		return d.handleUnlockVault(req)
	case UnlockVaultWithKey:
		return d.handleUnlockVaultWithKey(req)
	case UnlockVaultOAuth:
		return d.handleUnlockVaultOAuth(req)
	case LockVault:
		return d.handleLockVault()
	case GetVaultAuthMethod:
		return d.handleGetVaultAuthMethod()
	case GetAuthPreferences:
		return d.handleGetAuthPreferences()
	case ReencryptVault:
		return d.handleReencryptVault(req)
	case ReencryptVaultToOAuth:
		return d.handleReencryptVaultToOAuth(req)
	case AddEntry:
		return d.handleAddEntry(req)
	case UpdateEntry:
		return d.handleUpdateEntry(req)
	case DeleteEntry:
		return d.handleDeleteEntry(req)
	case GetFullEntry:
		return d.handleGetFullEntry(req)
	case SearchEntries:
		return d.handleSearchEntries(req)
	case RequestSecret:
		return d.handleRequestSecret(req)
	case AnalyzePasswordStrength:
		return d.handleAnalyzePasswordStrength(req)
	case GeneratePassword:
		return d.handleGeneratePassword(req)
	case CheckVaultHealth:
		return d.handleCheckVaultHealth()
	default:
		return nil, fmt.Errorf("%w: unknown command %q", latcherrors.ErrInvalid, name)
	}
}

func errorMessage(err error) string {
	if kind := latcherrors.Kind(err); kind != nil {
		return kind.Error()
	}

	return err.Error()
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		// Every success/error shape in this package is a plain struct of
		// strings, numbers, and slices thereof; Marshal cannot fail on it.
		panic(fmt.Sprintf("command: marshal invariant violated: %v", err))
	}

	return b
}

func decodeReq[T any](req json.RawMessage) (T, error) {
	var v T

	if len(req) == 0 {
		return v, nil
	}

	if err := json.Unmarshal(req, &v); err != nil {
		return v, fmt.Errorf("%w: malformed request: %v", latcherrors.ErrInvalid, err)
	}

	return v, nil
}

func withSuccess(v any) (json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}

	if m == nil {
		m = map[string]any{}
	}

	m["status"] = "success"

	return mustMarshal(m), nil
}

