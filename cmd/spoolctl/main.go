// spoolctl is the SpoolScan maintenance CLI.
// Seeds the catalog database and resolves barcodes from the terminal.
package main

import (
	"os"

	"github.com/spoolscan/backend/cmd/spoolctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
