package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spoolscan/backend/config"
	httpDelivery "github.com/spoolscan/backend/internal/delivery/http"
	"github.com/spoolscan/backend/internal/domain"
	"github.com/spoolscan/backend/internal/infrastructure/provider"
	"github.com/spoolscan/backend/internal/infrastructure/sqlite"
	"github.com/spoolscan/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting SpoolScan Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Provider: %s", cfg.Provider.Name)

	// Initialize infrastructure dependencies
	store, err := sqlite.Open(cfg.Store.Path, domain.Clock(time.Now))
	if err != nil {
		log.Fatalf("Failed to open catalog store at %s: %v", cfg.Store.Path, err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.EnsureReady(ctx); err != nil {
		log.Fatalf("Failed to initialize catalog store: %v", err)
	}
	log.Printf("Catalog store ready: %s", cfg.Store.Path)

	if err := seedCatalog(ctx, store, cfg); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	baseURL := cfg.Provider.BaseURL
	if baseURL == "" {
		baseURL = providerBaseURL(cfg.Provider.Name)
	}

	client := provider.NewClient(provider.ClientConfig{
		BaseURL:        baseURL,
		UserAgent:      cfg.Provider.UserAgent,
		Timeout:        cfg.Provider.Timeout,
		RequestsPerSec: cfg.Provider.RequestsPerSec,
		Burst:          cfg.Provider.Burst,
	})

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		client.SetDebug(true)
		log.Printf("Provider client debug mode enabled")
	}

	extractor := newExtractor(cfg.Provider.Name)

	// Initialize usecase layer
	lookupService := usecase.NewLookupService(store, client, extractor, usecase.LookupConfig{
		Matcher: usecase.MatcherConfig{
			EarlyExitScore:     cfg.Matcher.EarlyExitScore,
			MinScore:           cfg.Matcher.MinScore,
			CandidatePageSize:  cfg.Matcher.CandidatePageSize,
			EnableDebugLogging: cfg.Matcher.EnableDebugLogging,
		},
		EnableDebugLogging: cfg.Matcher.EnableDebugLogging,
	})

	log.Printf("Matcher: early_exit=%d, min_score=%d, page=%d, debug=%v",
		cfg.Matcher.EarlyExitScore,
		cfg.Matcher.MinScore,
		cfg.Matcher.CandidatePageSize,
		cfg.Matcher.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(lookupService, store)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// providerBaseURL returns the default search URL for a known provider
func providerBaseURL(name string) string {
	if name == "goupc" {
		return provider.GoUPCBaseURL
	}
	return provider.EANSearchBaseURL
}

// newExtractor picks the field extractor matching the configured
// provider page shape
func newExtractor(name string) domain.FieldExtractor {
	if name == "goupc" {
		return provider.NewGoUPCExtractor()
	}
	return provider.NewEANSearchExtractor()
}

// seedCatalog imports the configured seed files into an empty catalog.
// A populated catalog is never reseeded on startup.
func seedCatalog(ctx context.Context, store *sqlite.Store, cfg *config.Config) error {
	if cfg.Store.ManufacturerSeedFile == "" && cfg.Store.FilamentFeedFile == "" {
		return nil
	}

	count, err := store.CountMaterials(ctx, "")
	if err != nil {
		return err
	}
	if count > 0 {
		log.Printf("Catalog already populated (%d materials), skipping seed", count)
		return nil
	}

	if cfg.Store.ManufacturerSeedFile != "" {
		f, err := os.Open(cfg.Store.ManufacturerSeedFile)
		if err != nil {
			return fmt.Errorf("open manufacturer seed: %w", err)
		}
		n, err := store.SeedManufacturers(ctx, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("seed manufacturers: %w", err)
		}
		log.Printf("Seeded %d manufacturers from %s", n, cfg.Store.ManufacturerSeedFile)
	}

	if cfg.Store.FilamentFeedFile != "" {
		f, err := os.Open(cfg.Store.FilamentFeedFile)
		if err != nil {
			return fmt.Errorf("open filament feed: %w", err)
		}
		n, err := store.SeedMaterials(ctx, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("seed materials: %w", err)
		}
		log.Printf("Seeded %d materials from %s", n, cfg.Store.FilamentFeedFile)
	}

	return nil
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
