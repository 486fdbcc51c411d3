// Command latch-core is a reference CLI harness over the Latch command
// surface (internal/command), the same thin-main-over-a-library shape the
// teacher uses for cmd/vlt.
package main

import (
	"os"

	"github.com/latchvault/latch-core/internal/latchcli"
)

func main() {
	if err := latchcli.Execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
