package domain

import (
	"context"
	"time"
)

// Clock supplies timestamps to store writes so they stay deterministic
// under test
type Clock func() time.Time

// PageFetcher fetches the raw HTML of a product page for a digit string
type PageFetcher interface {
	FetchPage(ctx context.Context, digits string) (string, error)
}

// FieldExtractor derives structured product fields from raw HTML.
// Returns nil only when the HTML is empty or whitespace.
type FieldExtractor interface {
	Extract(html string, barcode Barcode) *ExtractedInfo
}

// Cursor pulls pages from a store query one at a time. Next returns the
// next page of rows; done is true once the stream is exhausted, after
// which further calls keep returning done. Cancellation is observed at
// page boundaries via ctx.
type Cursor[T any] interface {
	Next(ctx context.Context) (items []T, done bool, err error)
}

// CatalogStore is the embedded local store over the four catalog tables.
// Every operation awaits initialization via EnsureReady before touching
// the tables. List reads are ordered by a stable sort key so repeated
// pagination yields each row exactly once absent concurrent writes.
type CatalogStore interface {
	// EnsureReady initializes the schema once; concurrent first callers
	// block until one completes and the rest observe it as done.
	EnsureReady(ctx context.Context) error

	SaveManufacturer(ctx context.Context, m *Manufacturer) error
	SaveMaterial(ctx context.Context, m *Material) error
	SaveCarrier(ctx context.Context, c *Carrier) error

	// SaveSpool upserts a mapping by primary key. Embedded material and
	// carrier records are upserted first so the mapping never references
	// a row that does not exist, and LastUpdatedAt is refreshed from the
	// injected clock.
	SaveSpool(ctx context.Context, s *SpoolMapping) error
	DeleteSpool(ctx context.Context, id string) error

	// FindSpoolByBarcode treats the barcode digits as a natural key.
	// Returns ErrMappingNotFound when no mapping exists.
	FindSpoolByBarcode(ctx context.Context, digits string) (*SpoolMapping, error)

	ListManufacturers(ctx context.Context, query string, offset, limit int) ([]Manufacturer, error)
	ListMaterials(ctx context.Context, query string, offset, limit int) ([]Material, error)
	ListCarriers(ctx context.Context, query string, offset, limit int) ([]Carrier, error)
	ListSpools(ctx context.Context, offset, limit int) ([]SpoolMapping, error)

	CountManufacturers(ctx context.Context, query string) (int, error)
	CountMaterials(ctx context.Context, query string) (int, error)
	CountCarriers(ctx context.Context, query string) (int, error)
	CountSpools(ctx context.Context) (int, error)

	StreamManufacturers(query string, pageSize int) Cursor[Manufacturer]
	StreamMaterials(query string, pageSize int) Cursor[Material]
	StreamCarriers(query string, pageSize int) Cursor[Carrier]
	StreamSpools(pageSize int) Cursor[SpoolMapping]
}
