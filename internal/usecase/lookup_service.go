package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/spoolscan/backend/internal/domain"
)

// LookupConfig holds configuration for the lookup service
type LookupConfig struct {
	Matcher            MatcherConfig
	EnableDebugLogging bool
}

// LookupService resolves a scanned barcode into a catalog record.
// Flow: normalize -> existing-mapping short circuit -> fetch -> extract
// -> match -> persist mapping.
type LookupService struct {
	store     domain.CatalogStore
	fetcher   domain.PageFetcher
	extractor domain.FieldExtractor
	matcher   *CatalogMatcher
	debug     bool
}

// NewLookupService creates a lookup service with its collaborators
func NewLookupService(
	store domain.CatalogStore,
	fetcher domain.PageFetcher,
	extractor domain.FieldExtractor,
	config LookupConfig,
) *LookupService {
	return &LookupService{
		store:     store,
		fetcher:   fetcher,
		extractor: extractor,
		matcher:   NewCatalogMatcher(store, config.Matcher),
		debug:     config.EnableDebugLogging,
	}
}

// LookupAndMap resolves a raw scanned string. Every terminal condition is
// reported through the structured result, never as an error; partial
// extraction info stays on the result when matching fails so a caller can
// offer manual entry.
func (s *LookupService) LookupAndMap(ctx context.Context, raw string) *domain.LookupResult {
	barcode, err := domain.NormalizeBarcode(raw)
	if err != nil {
		return &domain.LookupResult{
			Barcode:      raw,
			Kind:         domain.BarcodeUnknown,
			ErrorMessage: domain.ErrInvalidBarcode.Error(),
		}
	}

	result := &domain.LookupResult{Barcode: barcode.Digits, Kind: barcode.Kind}

	// Cannot trigger after normalization except on overflow; kept as a
	// guard rather than a real path.
	if _, err := barcode.NumericValue(); err != nil {
		result.ErrorMessage = domain.ErrNonNumericBarcode.Error()
		return result
	}

	existing, err := s.store.FindSpoolByBarcode(ctx, barcode.Digits)
	if err == nil {
		if s.debug {
			log.Printf("[LOOKUP] %s already mapped, skipping fetch", barcode.Digits)
		}
		result.Kind = existing.BarcodeKind
		result.Brand = existing.Manufacturer
		if existing.Material != nil {
			result.Material = existing.Material
			result.ProductName = existing.Material.Name
		}
		return result
	}
	if !errors.Is(err, domain.ErrMappingNotFound) {
		result.ErrorMessage = err.Error()
		return result
	}

	html, err := s.fetcher.FetchPage(ctx, barcode.Digits)
	if err != nil {
		if s.debug {
			log.Printf("[LOOKUP] fetch failed for %s: %v", barcode.Digits, err)
		}
		result.ErrorMessage = err.Error()
		return result
	}

	info := s.extractor.Extract(html, barcode)
	if info == nil {
		result.ErrorMessage = domain.ErrNoExtraction.Error()
		return result
	}

	result.ProductName = info.ProductName
	result.Brand = info.Brand
	result.Category = info.Category

	material, err := s.matcher.FindBestMatch(ctx, info)
	if err != nil {
		if errors.Is(err, domain.ErrNoCatalogMatch) {
			result.ErrorMessage = domain.ErrNoCatalogMatch.Error()
		} else {
			result.ErrorMessage = err.Error()
		}
		return result
	}

	mapping := &domain.SpoolMapping{
		ID:           uuid.NewString(),
		Barcode:      barcode.Digits,
		BarcodeKind:  barcode.Kind,
		Material:     material,
		MaterialID:   material.ID,
		Manufacturer: mappingManufacturer(info, material),
	}

	if err := s.store.SaveSpool(ctx, mapping); err != nil {
		result.ErrorMessage = err.Error()
		return result
	}

	if s.debug {
		log.Printf("[LOOKUP] mapped %s -> %s", barcode.Digits, material.ID)
	}

	result.Material = material
	result.AddedMapping = true
	return result
}

// mappingManufacturer picks the display string for a new mapping:
// extracted brand, then candidate manufacturer, then candidate name
func mappingManufacturer(info *domain.ExtractedInfo, material *domain.Material) string {
	if info.Brand != "" {
		return info.Brand
	}
	if material.Manufacturer != "" {
		return material.Manufacturer
	}
	return material.Name
}
