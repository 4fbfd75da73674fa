package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	seedManufacturersFile string
	seedMaterialsFile     string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import catalog seed files",
	Long:  "Import a manufacturer JSON file and/or a filament JSONL feed into the catalog database.",
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	if seedManufacturersFile == "" && seedMaterialsFile == "" {
		return fmt.Errorf("nothing to do: pass --manufacturers and/or --materials")
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if seedManufacturersFile != "" {
		f, err := os.Open(seedManufacturersFile)
		if err != nil {
			return err
		}
		n, err := store.SeedManufacturers(cmd.Context(), f)
		f.Close()
		if err != nil {
			return fmt.Errorf("seed manufacturers: %w", err)
		}
		fmt.Printf("Imported %d manufacturers\n", n)
	}

	if seedMaterialsFile != "" {
		f, err := os.Open(seedMaterialsFile)
		if err != nil {
			return err
		}
		n, err := store.SeedMaterials(cmd.Context(), f)
		f.Close()
		if err != nil {
			return fmt.Errorf("seed materials: %w", err)
		}
		fmt.Printf("Imported %d materials\n", n)
	}

	return nil
}

func init() {
	seedCmd.Flags().StringVar(&seedManufacturersFile, "manufacturers", "", "manufacturer seed file (JSON array)")
	seedCmd.Flags().StringVar(&seedMaterialsFile, "materials", "", "filament feed file (JSONL)")
}
