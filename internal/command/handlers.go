package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/latchvault/latch-core/internal/authmethod"
	"github.com/latchvault/latch-core/internal/entry"
	"github.com/latchvault/latch-core/internal/generator"
	"github.com/latchvault/latch-core/internal/latcherrors"
	"github.com/latchvault/latch-core/internal/pwquality"
	"github.com/latchvault/latch-core/internal/vaultfile"
)

func (d *Dispatcher) handleVaultStatus() (json.RawMessage, error) {
	hasVault, isUnlocked := d.Engine.Status()

	return withSuccess(struct {
		HasVault   bool `json:"has_vault"`
		IsUnlocked bool `json:"is_unlocked"`
	}{hasVault, isUnlocked})
}

type initVaultRequest struct {
	Password string `json:"password"`
}

func (d *Dispatcher) handleInitVault(req json.RawMessage) (json.RawMessage, error) {
	r, err := decodeReq[initVaultRequest](req)
	if err != nil {
		return nil, err
	}

	if err := d.Engine.Init(authmethod.Password{}, authmethod.Credentials{Password: r.Password}); err != nil {
		return nil, err
	}

	return withSuccess(struct{}{})
}

type initVaultWithKeyRequest struct {
	KeyHex string `json:"key_hex"`
	KDF    string `json:"kdf"`
}

func (d *Dispatcher) handleInitVaultWithKey(req json.RawMessage) (json.RawMessage, error) {
	r, err := decodeReq[initVaultWithKeyRequest](req)
	if err != nil {
		return nil, err
	}

	var k authmethod.Keyed

	derived, err := k.FromHex(r.KeyHex, r.KDF)
	if err != nil {
		return nil, err
	}

	if err := d.Engine.InitWithDerived(derived); err != nil {
		return nil, err
	}

	return withSuccess(struct{}{})
}

type oauthRequest struct {
	IDToken string `json:"id_token"`
}

func (d *Dispatcher) oauthMethod() (authmethod.OAuth, error) {
	if d.Verifier == nil || len(d.OAuthPepper) == 0 {
		return authmethod.OAuth{}, fmt.Errorf("%w: oauth is not configured", latcherrors.ErrInvalid)
	}

	return authmethod.OAuth{Verifier: d.Verifier, Pepper: d.OAuthPepper}, nil
}

func (d *Dispatcher) handleInitVaultOAuth(req json.RawMessage) (json.RawMessage, error) {
	r, err := decodeReq[oauthRequest](req)
	if err != nil {
		return nil, err
	}

	m, err := d.oauthMethod()
	if err != nil {
		return nil, err
	}

	if err := d.Engine.Init(m, authmethod.Credentials{IDToken: r.IDToken}); err != nil {
		return nil, err
	}

	return withSuccess(struct{}{})
}

func (d *Dispatcher) handleUnlockVault(req json.RawMessage) (json.RawMessage, error) {
	r, err := decodeReq[initVaultRequest](req)
	if err != nil {
		return nil, err
	}

	if err := d.Engine.Unlock(authmethod.Password{}, authmethod.Credentials{Password: r.Password}); err != nil {
		return nil, err
	}

	return withSuccess(struct{}{})
}

type unlockWithKeyRequest struct {
	KeyHex string `json:"key_hex"`
}

func (d *Dispatcher) handleUnlockVaultWithKey(req json.RawMessage) (json.RawMessage, error) {
	r, err := decodeReq[unlockWithKeyRequest](req)
	if err != nil {
		return nil, err
	}

	var k authmethod.Keyed

	derived, err := k.FromHex(r.KeyHex, string(vaultfile.KDFNone))
	if err != nil {
		return nil, err
	}

	if err := d.Engine.UnlockWithDerived(derived); err != nil {
		return nil, err
	}

	return withSuccess(struct{}{})
}

func (d *Dispatcher) handleUnlockVaultOAuth(req json.RawMessage) (json.RawMessage, error) {
	r, err := decodeReq[oauthRequest](req)
	if err != nil {
		return nil, err
	}

	m, err := d.oauthMethod()
	if err != nil {
		return nil, err
	}

	if err := d.Engine.Unlock(m, authmethod.Credentials{IDToken: r.IDToken}); err != nil {
		return nil, err
	}

	return withSuccess(struct{}{})
}

func (d *Dispatcher) handleLockVault() (json.RawMessage, error) {
	d.Engine.Lock()
	return withSuccess(struct{}{})
}

func (d *Dispatcher) handleGetVaultAuthMethod() (json.RawMessage, error) {
	m, err := d.Engine.AuthMethod()
	if err != nil {
		return nil, err
	}

	return withSuccess(struct {
		AuthMethod vaultfile.AuthMethod `json:"auth_method"`
	}{m})
}

func (d *Dispatcher) handleGetAuthPreferences() (json.RawMessage, error) {
	m, valid, remaining, err := d.Engine.AuthPreferences()
	if err != nil {
		return nil, err
	}

	remainingSeconds := 0
	if valid {
		remainingSeconds = int(remaining.Seconds())
	}

	return withSuccess(struct {
		AuthMethod              vaultfile.AuthMethod `json:"auth_method"`
		SessionValid            bool                 `json:"session_valid"`
		SessionRemainingSeconds int                  `json:"session_remaining_seconds"`
	}{m, valid, remainingSeconds})
}

type reencryptRequest struct {
	NewKeyHex string `json:"new_key_hex"`
	NewKDF    string `json:"new_kdf"`
	NewSalt   string `json:"new_salt"`
}

func (d *Dispatcher) handleReencryptVault(req json.RawMessage) (json.RawMessage, error) {
	r, err := decodeReq[reencryptRequest](req)
	if err != nil {
		return nil, err
	}

	var k authmethod.Keyed

	derived, err := k.FromHex(r.NewKeyHex, r.NewKDF)
	if err != nil {
		return nil, err
	}

	derived.Salt = r.NewSalt

	if err := d.Engine.ReencryptToWithDerived(derived, d.Keychain); err != nil {
		return nil, err
	}

	return withSuccess(struct{}{})
}

func (d *Dispatcher) handleReencryptVaultToOAuth(req json.RawMessage) (json.RawMessage, error) {
	r, err := decodeReq[oauthRequest](req)
	if err != nil {
		return nil, err
	}

	m, err := d.oauthMethod()
	if err != nil {
		return nil, err
	}

	if err := d.Engine.ReencryptTo(m, authmethod.Credentials{IDToken: r.IDToken}, d.Keychain); err != nil {
		return nil, err
	}

	return withSuccess(struct{}{})
}

type entryFieldsRequest struct {
	Title    string `json:"title"`
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url,omitempty"`
	IconURL  string `json:"iconUrl,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

func (r entryFieldsRequest) toFields() entry.Fields {
	return entry.Fields{
		Title:    r.Title,
		Username: r.Username,
		Password: r.Password,
		URL:      r.URL,
		IconURL:  r.IconURL,
		Notes:    r.Notes,
	}
}

func (d *Dispatcher) handleAddEntry(req json.RawMessage) (json.RawMessage, error) {
	r, err := decodeReq[entryFieldsRequest](req)
	if err != nil {
		return nil, err
	}

	id, err := d.Engine.AddEntry(r.toFields())
	if err != nil {
		return nil, err
	}

	return withSuccess(struct {
		ID string `json:"id"`
	}{id})
}

type updateEntryRequest struct {
	ID string `json:"id"`
	entryFieldsRequest
}

func (d *Dispatcher) handleUpdateEntry(req json.RawMessage) (json.RawMessage, error) {
	r, err := decodeReq[updateEntryRequest](req)
	if err != nil {
		return nil, err
	}

	if err := d.Engine.UpdateEntry(r.ID, r.toFields()); err != nil {
		return nil, err
	}

	return withSuccess(struct{}{})
}

type entryIDRequest struct {
	EntryID string `json:"entryId"`
}

func (d *Dispatcher) handleDeleteEntry(req json.RawMessage) (json.RawMessage, error) {
	r, err := decodeReq[entryIDRequest](req)
	if err != nil {
		return nil, err
	}

	if err := d.Engine.DeleteEntry(r.EntryID); err != nil {
		return nil, err
	}

	return withSuccess(struct{}{})
}

func (d *Dispatcher) handleGetFullEntry(req json.RawMessage) (json.RawMessage, error) {
	r, err := decodeReq[entryIDRequest](req)
	if err != nil {
		return nil, err
	}

	e, err := d.Engine.GetFullEntry(r.EntryID)
	if err != nil {
		return nil, err
	}

	return withSuccess(e)
}

type searchRequest struct {
	Query string `json:"query"`
}

func (d *Dispatcher) handleSearchEntries(req json.RawMessage) (json.RawMessage, error) {
	r, err := decodeReq[searchRequest](req)
	if err != nil {
		return nil, err
	}

	previews, err := d.Engine.Search(r.Query)
	if err != nil {
		return nil, err
	}

	return mustMarshal(previews), nil
}

type requestSecretRequest struct {
	EntryID string      `json:"entryId"`
	Field   entry.Field `json:"field"`
}

func (d *Dispatcher) handleRequestSecret(req json.RawMessage) (json.RawMessage, error) {
	r, err := decodeReq[requestSecretRequest](req)
	if err != nil {
		return nil, err
	}

	v, err := d.Engine.RequestSecret(r.EntryID, r.Field)
	if err != nil {
		return nil, err
	}

	return withSuccess(struct {
		Value string `json:"value"`
	}{v})
}

type analyzeRequest struct {
	Password string `json:"password"`
}

func (d *Dispatcher) handleAnalyzePasswordStrength(req json.RawMessage) (json.RawMessage, error) {
	r, err := decodeReq[analyzeRequest](req)
	if err != nil {
		return nil, err
	}

	return withSuccess(pwquality.Analyze(r.Password))
}

type generateRequest struct {
	Length           int  `json:"length"`
	Uppercase        bool `json:"uppercase"`
	Lowercase        bool `json:"lowercase"`
	Numbers          bool `json:"numbers"`
	Symbols          bool `json:"symbols"`
	ExcludeAmbiguous bool `json:"exclude_ambiguous"`
}

func (d *Dispatcher) handleGeneratePassword(req json.RawMessage) (json.RawMessage, error) {
	r, err := decodeReq[generateRequest](req)
	if err != nil {
		return nil, err
	}

	pw, err := generator.Generate(generator.Options{
		Length:           r.Length,
		Uppercase:        r.Uppercase,
		Lowercase:        r.Lowercase,
		Numbers:          r.Numbers,
		Symbols:          r.Symbols,
		ExcludeAmbiguous: r.ExcludeAmbiguous,
	})
	if err != nil {
		return nil, err
	}

	return withSuccess(struct {
		Password string `json:"password"`
	}{pw})
}

func (d *Dispatcher) handleCheckVaultHealth() (json.RawMessage, error) {
	entries, err := d.Engine.Snapshot()
	if err != nil {
		return nil, err
	}

	report := pwquality.BuildReport(context.Background(), entries, d.BreachChecker)

	return withSuccess(struct {
		Report pwquality.Report `json:"report"`
	}{report})
}
