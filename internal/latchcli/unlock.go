package latchcli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/latchvault/latch-core/internal/clierror"
	"github.com/latchvault/latch-core/internal/cliprompt"
	"github.com/latchvault/latch-core/internal/command"
)

func newUnlockCmd() *cobra.Command {
	var keyHex string

	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Unlock the vault",
		Run: func(_ *cobra.Command, _ []string) {
			var err error

			switch {
			case len(keyHex) > 0:
				err = clierror.Check(theApp.dispatch(command.UnlockVaultWithKey, struct {
					KeyHex string `json:"key_hex"`
				}{keyHex}, nil))
			default:
				pass, perr := cliprompt.PromptPassword(theApp.streams.Out, int(os.Stdin.Fd()))
				if perr != nil {
					err = clierror.Check(perr)
					break
				}

				err = clierror.Check(theApp.dispatch(command.UnlockVault, struct {
					Password string `json:"password"`
				}{string(pass)}, nil))
			}

			if err != nil {
				return
			}

			theApp.streams.Printf("vault unlocked\n")
		},
	}

	cmd.Flags().StringVar(&keyHex, "with-key", "", "unlock with a hex-encoded externally-supplied key instead of a password")

	return cmd
}

func newLockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lock",
		Short: "Lock the vault",
		Run: func(_ *cobra.Command, _ []string) {
			if err := clierror.Check(theApp.dispatch(command.LockVault, nil, nil)); err != nil {
				return
			}

			theApp.streams.Printf("vault locked\n")
		},
	}
}

func newReencryptCmd() *cobra.Command {
	var (
		newKeyHex string
		newKDF    string
		newSalt   string
	)

	cmd := &cobra.Command{
		Use:   "reencrypt",
		Short: "Re-key the vault under a new externally-supplied key",
		Run: func(_ *cobra.Command, _ []string) {
			if err := clierror.Check(theApp.ensureUnlocked()); err != nil {
				return
			}

			err := clierror.Check(theApp.dispatch(command.ReencryptVault, struct {
				NewKeyHex string `json:"new_key_hex"`
				NewKDF    string `json:"new_kdf"`
				NewSalt   string `json:"new_salt"`
			}{newKeyHex, newKDF, newSalt}, nil))
			if err != nil {
				return
			}

			theApp.streams.Printf("vault re-keyed\n")
		},
	}

	cmd.Flags().StringVar(&newKeyHex, "new-key-hex", "", "new hex-encoded key material (required)")
	cmd.Flags().StringVar(&newKDF, "new-kdf", "none", "kdf tag to record for the new key")
	cmd.Flags().StringVar(&newSalt, "new-salt", "", "salt to record for the new key")
	_ = cmd.MarkFlagRequired("new-key-hex")

	return cmd
}
