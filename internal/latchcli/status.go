package latchcli

import (
	"github.com/spf13/cobra"

	"github.com/latchvault/latch-core/internal/clierror"
	"github.com/latchvault/latch-core/internal/command"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a vault exists and is unlocked",
		Run: func(_ *cobra.Command, _ []string) {
			var out struct {
				HasVault   bool `json:"has_vault"`
				IsUnlocked bool `json:"is_unlocked"`
			}

			if err := clierror.Check(theApp.dispatch(command.VaultStatus, nil, &out)); err != nil {
				return
			}

			theApp.streams.Printf("vault present: %v\nunlocked: %v\n", out.HasVault, out.IsUnlocked)
		},
	}
}

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Show the vault's configured auth method and session state",
		Run: func(_ *cobra.Command, _ []string) {
			var out struct {
				AuthMethod              string `json:"auth_method"`
				SessionValid            bool   `json:"session_valid"`
				SessionRemainingSeconds int    `json:"session_remaining_seconds"`
			}

			if err := clierror.Check(theApp.dispatch(command.GetAuthPreferences, nil, &out)); err != nil {
				return
			}

			theApp.streams.Printf("auth method: %s\nsession valid: %v\nsession remaining: %ds\n",
				out.AuthMethod, out.SessionValid, out.SessionRemainingSeconds)
		},
	}

	return cmd
}
