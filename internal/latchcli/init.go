package latchcli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/latchvault/latch-core/internal/clierror"
	"github.com/latchvault/latch-core/internal/cliprompt"
	"github.com/latchvault/latch-core/internal/command"
)

const minPromptPasswordLen = 8

func newInitCmd() *cobra.Command {
	var (
		keyHex string
		kdf    string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new vault",
		Run: func(_ *cobra.Command, _ []string) {
			var err error

			switch {
			case len(keyHex) > 0:
				err = clierror.Check(theApp.dispatch(command.InitVaultWithKey, struct {
					KeyHex string `json:"key_hex"`
					KDF    string `json:"kdf"`
				}{keyHex, kdf}, nil))
			default:
				pass, perr := cliprompt.PromptNewPassword(theApp.streams.Out, int(os.Stdin.Fd()), minPromptPasswordLen)
				if perr != nil {
					err = clierror.Check(perr)
					break
				}

				err = clierror.Check(theApp.dispatch(command.InitVault, struct {
					Password string `json:"password"`
				}{string(pass)}, nil))
			}

			if err != nil {
				return
			}

			theApp.streams.Printf("vault created at %s\n", theApp.vaultPath)
		},
	}

	cmd.Flags().StringVar(&keyHex, "with-key", "", "initialize with a hex-encoded externally-supplied key instead of a password")
	cmd.Flags().StringVar(&kdf, "kdf", "none", "kdf tag to record for --with-key (default: none)")

	return cmd
}
