package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mappingsLimit int

var mappingsCmd = &cobra.Command{
	Use:   "mappings",
	Short: "List stored barcode mappings",
	Long:  "Print stored barcode mappings, newest first.",
	RunE:  runMappings,
}

var mappingsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a barcode mapping",
	Args:  cobra.ExactArgs(1),
	RunE:  runMappingsDelete,
}

func runMappings(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	mappings, err := store.ListSpools(cmd.Context(), 0, mappingsLimit)
	if err != nil {
		return err
	}

	if len(mappings) == 0 {
		fmt.Println("No mappings stored.")
		return nil
	}

	for _, m := range mappings {
		material := "?"
		if m.Material != nil && m.Material.Name != "" {
			material = m.Material.Name
		}
		fmt.Printf("%s  %s  %-14s %-6s %-24s %s\n",
			m.ID,
			m.LastUpdatedAt.Format("2006-01-02 15:04"),
			m.Barcode, m.BarcodeKind, m.Manufacturer, material)
	}
	return nil
}

func runMappingsDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteSpool(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

func init() {
	mappingsCmd.Flags().IntVar(&mappingsLimit, "limit", 50, "maximum mappings to print")
	mappingsCmd.AddCommand(mappingsDeleteCmd)
}
