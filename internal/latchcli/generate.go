package latchcli

import (
	"github.com/spf13/cobra"

	"github.com/latchvault/latch-core/internal/clierror"
	"github.com/latchvault/latch-core/internal/command"
)

func newGenerateCmd() *cobra.Command {
	var (
		length           int
		uppercase        bool
		lowercase        bool
		numbers          bool
		symbols          bool
		excludeAmbiguous bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random password (no vault required)",
		Run: func(_ *cobra.Command, _ []string) {
			req := struct {
				Length           int  `json:"length"`
				Uppercase        bool `json:"uppercase"`
				Lowercase        bool `json:"lowercase"`
				Numbers          bool `json:"numbers"`
				Symbols          bool `json:"symbols"`
				ExcludeAmbiguous bool `json:"exclude_ambiguous"`
			}{length, uppercase, lowercase, numbers, symbols, excludeAmbiguous}

			var out struct {
				Password string `json:"password"`
			}

			if err := clierror.Check(theApp.dispatch(command.GeneratePassword, req, &out)); err != nil {
				return
			}

			theApp.streams.Printf("%s\n", out.Password)
		},
	}

	cmd.Flags().IntVar(&length, "length", 20, "password length")
	cmd.Flags().BoolVar(&uppercase, "uppercase", true, "include uppercase letters")
	cmd.Flags().BoolVar(&lowercase, "lowercase", true, "include lowercase letters")
	cmd.Flags().BoolVar(&numbers, "numbers", true, "include digits")
	cmd.Flags().BoolVar(&symbols, "symbols", true, "include symbols")
	cmd.Flags().BoolVar(&excludeAmbiguous, "exclude-ambiguous", true, "exclude visually ambiguous characters")

	return cmd
}
