package latchcli

import (
	"github.com/spf13/cobra"

	"github.com/latchvault/latch-core/internal/clierror"
	"github.com/latchvault/latch-core/internal/command"
	"github.com/latchvault/latch-core/internal/pwquality"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check vault health: reused passwords, weak passwords, and known breaches",
		Run: func(_ *cobra.Command, _ []string) {
			if err := clierror.Check(theApp.ensureUnlocked()); err != nil {
				return
			}

			var out struct {
				Report pwquality.Report `json:"report"`
			}

			if err := clierror.Check(theApp.dispatch(command.CheckVaultHealth, nil, &out)); err != nil {
				return
			}

			r := out.Report

			theApp.streams.Printf("overall score: %d/100\n", r.OverallScore)
			theApp.streams.Printf("reused password groups: %d\n", len(r.Reused))
			theApp.streams.Printf("weak entries: %d\n", len(r.Weak))

			var breached int

			for _, b := range r.Breached {
				if b.Status == pwquality.BreachStatusFound {
					breached++
				}
			}

			theApp.streams.Printf("breached entries: %d\n", breached)
		},
	}
}
