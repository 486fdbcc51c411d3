package latchcli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/latchvault/latch-core/internal/clierror"
	"github.com/latchvault/latch-core/internal/cliprompt"
	"github.com/latchvault/latch-core/internal/command"
)

func newAnalyzeCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a password's strength (no vault required)",
		Run: func(_ *cobra.Command, _ []string) {
			pw := password

			if len(pw) == 0 {
				b, err := cliprompt.PromptReadSecure(theApp.streams.Out, int(os.Stdin.Fd()), "Enter password to analyze: ")
				if err != nil {
					clierror.Check(err)
					return
				}

				pw = string(b)
			}

			var out struct {
				Score       int     `json:"score"`
				EntropyBits float64 `json:"entropy"`
				Label       string  `json:"label"`
			}

			req := struct {
				Password string `json:"password"`
			}{pw}

			if err := clierror.Check(theApp.dispatch(command.AnalyzePasswordStrength, req, &out)); err != nil {
				return
			}

			theApp.streams.Printf("score: %d (%s)\nentropy: %.1f bits\n", out.Score, out.Label, out.EntropyBits)
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password to analyze (prompted securely if omitted)")

	return cmd
}
