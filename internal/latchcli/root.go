// Package latchcli implements the reference CLI harness over the Latch
// command surface (internal/command), grounded on the teacher's cobra
// command-tree shape (cmd/vlt + internal/cmd): a thin root command wiring
// persistent flags, one cobra.Command per vault operation, and clierror for
// uniform error reporting.
package latchcli

import (
	"github.com/spf13/cobra"

	"github.com/latchvault/latch-core/internal/clierror"
)

var (
	flagVaultPath string
	flagVerbose   bool
	flagPassword  string
	flagKeyHex    string

	theApp *app
)

// Execute builds and runs the latch-core root command with args (normally
// os.Args[1:]).
func Execute(args []string) error {
	root := newRootCmd()
	root.SetArgs(args)

	return root.Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "latch-core",
		Short: "Reference CLI for the Latch credential vault core",
		Long:  "latch-core is a thin command-line client over Latch's stable JSON command surface.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			clierror.DebugMode(flagVerbose)

			streams := NewDefaultIOStreams()
			streams.Out = cmd.OutOrStdout()
			streams.ErrOut = cmd.ErrOrStderr()
			streams.Verbose = flagVerbose

			a, err := newApp(streams, flagVaultPath, flagVerbose)
			if err != nil {
				return err
			}

			theApp = a

			return nil
		},
	}

	root.PersistentFlags().StringVarP(&flagVaultPath, "vault", "f", "", "path to the vault file (default: OS-specific location)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose/debug logging")
	root.PersistentFlags().StringVar(&flagPassword, "master-password", "", "master password, used to auto-unlock for this invocation if the vault isn't already unlocked")
	root.PersistentFlags().StringVar(&flagKeyHex, "key-hex", "", "hex-encoded externally-supplied key, used to auto-unlock for this invocation instead of --master-password")

	root.AddCommand(
		newStatusCmd(),
		newInitCmd(),
		newUnlockCmd(),
		newLockCmd(),
		newAuthCmd(),
		newReencryptCmd(),
		newAddCmd(),
		newGetCmd(),
		newUpdateCmd(),
		newDeleteCmd(),
		newSearchCmd(),
		newSecretCmd(),
		newAnalyzeCmd(),
		newGenerateCmd(),
		newHealthCmd(),
	)

	return root
}
