package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spoolscan/backend/internal/domain"
	"github.com/spoolscan/backend/internal/infrastructure/provider"
	"github.com/spoolscan/backend/internal/usecase"
)

var (
	lookupProvider  string
	lookupUserAgent string
	lookupDebug     bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <barcode>",
	Short: "Resolve a barcode against the catalog",
	Long:  "Fetch the barcode's product page, extract its fields, and match them against the local catalog, storing a mapping on success.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	baseURL := provider.EANSearchBaseURL
	if lookupProvider == "goupc" {
		baseURL = provider.GoUPCBaseURL
	}

	client := provider.NewClient(provider.ClientConfig{
		BaseURL:        baseURL,
		UserAgent:      lookupUserAgent,
		Timeout:        30 * time.Second,
		RequestsPerSec: 1,
		Burst:          1,
	})
	client.SetDebug(lookupDebug)

	service := usecase.NewLookupService(store, client, newExtractor(lookupProvider), usecase.LookupConfig{
		Matcher:            usecase.MatcherConfig{EnableDebugLogging: lookupDebug},
		EnableDebugLogging: lookupDebug,
	})

	result := service.LookupAndMap(cmd.Context(), args[0])

	fmt.Printf("Barcode:  %s (%s)\n", result.Barcode, result.Kind)
	if result.ProductName != "" {
		fmt.Printf("Product:  %s\n", result.ProductName)
	}
	if result.Brand != "" {
		fmt.Printf("Brand:    %s\n", result.Brand)
	}
	if result.Category != "" {
		fmt.Printf("Category: %s\n", result.Category)
	}
	if result.Material != nil {
		fmt.Printf("Material: %s (%s)\n", result.Material.Name, result.Material.ID)
	}
	if result.AddedMapping {
		fmt.Println("Stored a new barcode mapping.")
	}
	if result.ErrorMessage != "" {
		fmt.Printf("Error:    %s\n", result.ErrorMessage)
	}

	return nil
}

// newExtractor picks the field extractor for a provider name
func newExtractor(name string) domain.FieldExtractor {
	if name == "goupc" {
		return provider.NewGoUPCExtractor()
	}
	return provider.NewEANSearchExtractor()
}

func init() {
	lookupCmd.Flags().StringVar(&lookupProvider, "provider", "eansearch", "page provider: eansearch or goupc")
	lookupCmd.Flags().StringVar(&lookupUserAgent, "user-agent", "spoolscan/1.0", "User-Agent header for page fetches")
	lookupCmd.Flags().BoolVar(&lookupDebug, "debug", false, "log lookup steps")
}
