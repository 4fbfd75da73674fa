package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/spoolscan/backend/internal/domain"
)

// fakeStore is an in-memory CatalogStore for usecase tests. Rows list in
// insertion order; material filtering mirrors the store's coarse
// substring pre-filter.
type fakeStore struct {
	mu            sync.Mutex
	manufacturers []domain.Manufacturer
	materials     []domain.Material
	carriers      []domain.Carrier
	spools        map[string]*domain.SpoolMapping

	saveSpoolCalls    int
	listMaterialCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{spools: make(map[string]*domain.SpoolMapping)}
}

func (f *fakeStore) EnsureReady(ctx context.Context) error { return nil }

func (f *fakeStore) SaveManufacturer(ctx context.Context, m *domain.Manufacturer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.manufacturers = append(f.manufacturers, *m)
	return nil
}

func (f *fakeStore) SaveMaterial(ctx context.Context, m *domain.Material) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.materials = append(f.materials, *m)
	return nil
}

func (f *fakeStore) SaveCarrier(ctx context.Context, c *domain.Carrier) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.carriers = append(f.carriers, *c)
	return nil
}

func (f *fakeStore) SaveSpool(ctx context.Context, s *domain.SpoolMapping) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveSpoolCalls++
	s.LastUpdatedAt = time.Now().UTC()
	copied := *s
	f.spools[s.Barcode] = &copied
	return nil
}

func (f *fakeStore) DeleteSpool(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for barcode, mapping := range f.spools {
		if mapping.ID == id {
			delete(f.spools, barcode)
			return nil
		}
	}
	return domain.ErrMappingNotFound
}

func (f *fakeStore) FindSpoolByBarcode(ctx context.Context, digits string) (*domain.SpoolMapping, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	mapping, ok := f.spools[digits]
	if !ok {
		return nil, domain.ErrMappingNotFound
	}
	copied := *mapping
	return &copied, nil
}

func matchesFold(query string, fields ...string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	lower := strings.ToLower(query)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), lower) {
			return true
		}
	}
	return false
}

func (f *fakeStore) filteredMaterials(query string) []domain.Material {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Material
	for _, m := range f.materials {
		if matchesFold(query, m.Name, m.Manufacturer, m.Notes) {
			result = append(result, m)
		}
	}
	return result
}

func (f *fakeStore) filteredManufacturers(query string) []domain.Manufacturer {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Manufacturer
	for _, m := range f.manufacturers {
		if matchesFold(query, m.Name) {
			result = append(result, m)
		}
	}
	return result
}

func (f *fakeStore) filteredCarriers(query string) []domain.Carrier {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Carrier
	for _, c := range f.carriers {
		if matchesFold(query, c.SpoolType, c.Manufacturer) {
			result = append(result, c)
		}
	}
	return result
}

func pageOf[T any](rows []T, offset, limit int) []T {
	if offset >= len(rows) {
		return nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func (f *fakeStore) ListManufacturers(ctx context.Context, query string, offset, limit int) ([]domain.Manufacturer, error) {
	return pageOf(f.filteredManufacturers(query), offset, limit), nil
}

func (f *fakeStore) ListMaterials(ctx context.Context, query string, offset, limit int) ([]domain.Material, error) {
	f.mu.Lock()
	f.listMaterialCalls++
	f.mu.Unlock()
	return pageOf(f.filteredMaterials(query), offset, limit), nil
}

func (f *fakeStore) ListCarriers(ctx context.Context, query string, offset, limit int) ([]domain.Carrier, error) {
	return pageOf(f.filteredCarriers(query), offset, limit), nil
}

func (f *fakeStore) ListSpools(ctx context.Context, offset, limit int) ([]domain.SpoolMapping, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []domain.SpoolMapping
	for _, mapping := range f.spools {
		all = append(all, *mapping)
	}
	return pageOf(all, offset, limit), nil
}

func (f *fakeStore) CountManufacturers(ctx context.Context, query string) (int, error) {
	return len(f.filteredManufacturers(query)), nil
}

func (f *fakeStore) CountMaterials(ctx context.Context, query string) (int, error) {
	return len(f.filteredMaterials(query)), nil
}

func (f *fakeStore) CountCarriers(ctx context.Context, query string) (int, error) {
	return len(f.filteredCarriers(query)), nil
}

func (f *fakeStore) CountSpools(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.spools), nil
}

// fakeCursor pages over a fixed snapshot
type fakeCursor[T any] struct {
	rows     []T
	pageSize int
	offset   int
	done     bool
}

func (c *fakeCursor[T]) Next(ctx context.Context) ([]T, bool, error) {
	if c.done {
		return nil, true, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	page := pageOf(c.rows, c.offset, c.pageSize)
	c.offset += len(page)
	if len(page) < c.pageSize {
		c.done = true
	}
	return page, c.done, nil
}

func (f *fakeStore) StreamManufacturers(query string, pageSize int) domain.Cursor[domain.Manufacturer] {
	return &fakeCursor[domain.Manufacturer]{rows: f.filteredManufacturers(query), pageSize: pageSize}
}

func (f *fakeStore) StreamMaterials(query string, pageSize int) domain.Cursor[domain.Material] {
	return &fakeCursor[domain.Material]{rows: f.filteredMaterials(query), pageSize: pageSize}
}

func (f *fakeStore) StreamCarriers(query string, pageSize int) domain.Cursor[domain.Carrier] {
	return &fakeCursor[domain.Carrier]{rows: f.filteredCarriers(query), pageSize: pageSize}
}

func (f *fakeStore) StreamSpools(pageSize int) domain.Cursor[domain.SpoolMapping] {
	f.mu.Lock()
	var all []domain.SpoolMapping
	for _, mapping := range f.spools {
		all = append(all, *mapping)
	}
	f.mu.Unlock()
	return &fakeCursor[domain.SpoolMapping]{rows: all, pageSize: pageSize}
}
