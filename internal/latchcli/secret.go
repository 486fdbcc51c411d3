package latchcli

import (
	"github.com/spf13/cobra"

	"github.com/latchvault/latch-core/internal/clierror"
	"github.com/latchvault/latch-core/internal/command"
	"github.com/latchvault/latch-core/internal/entry"
)

func newSecretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "secret <entry-id> <field>",
		Short: "Reveal a single secret field of an entry (password, username, url, or notes)",
		Args:  cobra.ExactArgs(2),
		Run: func(_ *cobra.Command, args []string) {
			if err := clierror.Check(theApp.ensureUnlocked()); err != nil {
				return
			}

			req := struct {
				EntryID string      `json:"entryId"`
				Field   entry.Field `json:"field"`
			}{args[0], entry.Field(args[1])}

			var out struct {
				Value string `json:"value"`
			}

			if err := clierror.Check(theApp.dispatch(command.RequestSecret, req, &out)); err != nil {
				return
			}

			theApp.streams.Printf("%s\n", out.Value)
		},
	}
}
