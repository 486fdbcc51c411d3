package latchcli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/latchvault/latch-core/internal/clierror"
	"github.com/latchvault/latch-core/internal/command"
	"github.com/latchvault/latch-core/internal/entry"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy-search entries by title or username",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			if err := clierror.Check(theApp.ensureUnlocked()); err != nil {
				return
			}

			req, err := json.Marshal(struct {
				Query string `json:"query"`
			}{args[0]})
			if err != nil {
				clierror.Check(err)
				return
			}

			resp := theApp.dispatcher.Dispatch(command.SearchEntries, req)

			var errResp struct {
				Status  string `json:"status"`
				Message string `json:"message"`
			}
			if json.Unmarshal(resp, &errResp) == nil && errResp.Status == "error" {
				clierror.Check(errors.New(errResp.Message))
				return
			}

			var previews []entry.Preview
			if err := json.Unmarshal(resp, &previews); err != nil {
				clierror.Check(err)
				return
			}

			if len(previews) == 0 {
				theApp.streams.Printf("no matches\n")
				return
			}

			for _, p := range previews {
				theApp.streams.Printf("%s  %-24s  %s\n", p.ID, p.Title, p.Username)
			}
		},
	}
}
