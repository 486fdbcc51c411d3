package latchcli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/latchvault/latch-core/internal/applog"
	"github.com/latchvault/latch-core/internal/cliprompt"
	"github.com/latchvault/latch-core/internal/command"
	"github.com/latchvault/latch-core/internal/config"
	"github.com/latchvault/latch-core/internal/keychain"
	"github.com/latchvault/latch-core/internal/pwquality"
	"github.com/latchvault/latch-core/internal/vaultengine"
	"github.com/latchvault/latch-core/internal/vaultfile"
)

// app holds the wiring a running CLI invocation needs: the dispatcher over
// the command surface, and the I/O streams commands read/write through.
type app struct {
	dispatcher *command.Dispatcher
	streams    IOStreams
	vaultPath  string
}

func newApp(streams IOStreams, vaultPathFlag string, verbose bool) (*app, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	resolved := cfg.Resolve()
	if verbose {
		resolved.LogLevel = "debug"
	}

	applog.Init(resolved.LogLevel)

	path := vaultPathFlag
	if len(path) == 0 {
		path = resolved.VaultPath
	}

	if len(path) == 0 {
		path, err = vaultfile.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve vault path: %w", err)
		}
	}

	file := vaultfile.New(path)
	engine := vaultengine.New(file)
	store := keychain.NewMemory()

	dispatcher := &command.Dispatcher{
		Engine:        engine,
		Keychain:      store,
		BreachChecker: &pwquality.BreachChecker{Endpoint: resolved.BreachEndpoint, Log: applog.Logger()},
	}

	if pepper, err := resolved.RequireOAuthPepper(); err == nil {
		dispatcher.OAuthPepper = pepper
	}

	return &app{dispatcher: dispatcher, streams: streams, vaultPath: path}, nil
}

// dispatch sends req to the named command and decodes its success payload
// into out (which may be nil when the command has no payload fields beyond
// status). Errors are reported via clierror so every CLI subcommand maps
// the same taxonomy onto the same exit behavior.
func (a *app) dispatch(name command.Name, req any, out any) error {
	var raw json.RawMessage

	if req != nil {
		b, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}

		raw = b
	}

	resp := a.dispatcher.Dispatch(name, raw)

	var envelope struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}

	if err := json.Unmarshal(resp, &envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if envelope.Status != "success" {
		return fmt.Errorf("%s", envelope.Message)
	}

	if out != nil {
		if err := json.Unmarshal(resp, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

// ensureUnlocked unlocks the vault for this invocation if it isn't already,
// using --key-hex or --master-password if given, else prompting for the password.
// Every CLI process is one-shot (see DESIGN.md's dropped session-daemon
// decision), so data commands need this to work without a prior "unlock"
// call in a separate process.
func (a *app) ensureUnlocked() error {
	var status struct {
		HasVault   bool `json:"has_vault"`
		IsUnlocked bool `json:"is_unlocked"`
	}

	if err := a.dispatch(command.VaultStatus, nil, &status); err != nil {
		return err
	}

	if status.IsUnlocked {
		return nil
	}

	if !status.HasVault {
		return fmt.Errorf("no vault at %s: run init first", a.vaultPath)
	}

	switch {
	case len(flagKeyHex) > 0:
		return a.dispatch(command.UnlockVaultWithKey, struct {
			KeyHex string `json:"key_hex"`
		}{flagKeyHex}, nil)
	case len(flagPassword) > 0:
		return a.dispatch(command.UnlockVault, struct {
			Password string `json:"password"`
		}{flagPassword}, nil)
	default:
		pass, err := cliprompt.PromptPassword(a.streams.Out, int(os.Stdin.Fd()))
		if err != nil {
			return err
		}

		return a.dispatch(command.UnlockVault, struct {
			Password string `json:"password"`
		}{string(pass)}, nil)
	}
}
