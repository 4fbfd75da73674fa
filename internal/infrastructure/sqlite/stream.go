package sqlite

import (
	"context"

	"github.com/spoolscan/backend/internal/domain"
)

// defaultPageSize bounds cursors created without an explicit page size
const defaultPageSize = 50

// fetchPage loads one ordered page for a cursor
type fetchPage[T any] func(ctx context.Context, offset, limit int) ([]T, error)

// pageCursor advances an offset monotonically over a fixed query. The
// stream ends when a page comes back shorter than the page size.
// Cancellation is observed between page fetches, never mid-row. A cursor
// belongs to one browsing session and is not safe for concurrent use.
type pageCursor[T any] struct {
	fetch    fetchPage[T]
	pageSize int
	offset   int
	done     bool
}

func newPageCursor[T any](pageSize int, fetch fetchPage[T]) *pageCursor[T] {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &pageCursor[T]{fetch: fetch, pageSize: pageSize}
}

// Next returns the next page. The final page may carry rows and done
// together; once done, further calls return immediately.
func (c *pageCursor[T]) Next(ctx context.Context) ([]T, bool, error) {
	if c.done {
		return nil, true, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	items, err := c.fetch(ctx, c.offset, c.pageSize)
	if err != nil {
		return nil, false, err
	}

	c.offset += len(items)
	if len(items) < c.pageSize {
		c.done = true
	}
	return items, c.done, nil
}

// StreamManufacturers streams manufacturers ordered by name
func (s *Store) StreamManufacturers(query string, pageSize int) domain.Cursor[domain.Manufacturer] {
	return newPageCursor(pageSize, func(ctx context.Context, offset, limit int) ([]domain.Manufacturer, error) {
		return s.ListManufacturers(ctx, query, offset, limit)
	})
}

// StreamMaterials streams materials ordered by manufacturer then name
func (s *Store) StreamMaterials(query string, pageSize int) domain.Cursor[domain.Material] {
	return newPageCursor(pageSize, func(ctx context.Context, offset, limit int) ([]domain.Material, error) {
		return s.ListMaterials(ctx, query, offset, limit)
	})
}

// StreamCarriers streams carriers ordered by manufacturer then spool type
func (s *Store) StreamCarriers(query string, pageSize int) domain.Cursor[domain.Carrier] {
	return newPageCursor(pageSize, func(ctx context.Context, offset, limit int) ([]domain.Carrier, error) {
		return s.ListCarriers(ctx, query, offset, limit)
	})
}

// StreamSpools streams hydrated mappings by recency
func (s *Store) StreamSpools(pageSize int) domain.Cursor[domain.SpoolMapping] {
	return newPageCursor(pageSize, func(ctx context.Context, offset, limit int) ([]domain.SpoolMapping, error) {
		return s.ListSpools(ctx, offset, limit)
	})
}
