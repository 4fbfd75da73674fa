package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/spoolscan/backend/internal/domain"
	"github.com/spoolscan/backend/internal/infrastructure/sqlite"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "spoolctl",
	Short: "SpoolScan catalog maintenance",
	Long:  "Seed the filament catalog database and resolve barcodes from the terminal.",
}

// openStore opens the catalog database and runs schema setup
func openStore(cmd *cobra.Command) (*sqlite.Store, error) {
	store, err := sqlite.Open(dbPath, domain.Clock(time.Now))
	if err != nil {
		return nil, err
	}
	if err := store.EnsureReady(cmd.Context()); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "spoolscan.db", "path to the catalog database")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(mappingsCmd)
}
