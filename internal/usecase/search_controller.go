package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/spoolscan/backend/internal/domain"
)

// SearchSection identifies which catalog table a browsing session reads
type SearchSection string

const (
	SectionManufacturers SearchSection = "manufacturers"
	SectionMaterials     SearchSection = "materials"
	SectionCarriers      SearchSection = "carriers"
)

// SearchUpdate is delivered to the listener for every page the controller
// fetches. Append distinguishes a load-more page from a fresh result set.
type SearchUpdate struct {
	Section SearchSection
	Query   string
	Items   []domain.CatalogItem
	Append  bool
	Done    bool
	Err     error
}

// SearchControllerConfig holds configuration for the search controller
type SearchControllerConfig struct {
	Debounce time.Duration
	PageSize int
}

const (
	defaultDebounce       = 250 * time.Millisecond
	defaultSearchPageSize = 50
)

// itemFetch pulls the next page of the open stream as tagged items
type itemFetch func(ctx context.Context) ([]domain.CatalogItem, bool, error)

// SearchController debounces query changes over one active stream. Each
// update cancels the pending debounce timer and any in-flight stream
// before opening a new cursor; load-more advances the open cursor and is
// a no-op when no stream is open or the stream already ended. Switching
// sections resets all state.
type SearchController struct {
	store    domain.CatalogStore
	debounce time.Duration
	pageSize int
	listener func(SearchUpdate)

	mu         sync.Mutex
	section    SearchSection
	query      string
	timer      *time.Timer
	cancel     context.CancelFunc
	streamCtx  context.Context
	next       itemFetch
	ended      bool
	fetching   bool
	generation int
}

// NewSearchController creates a controller delivering pages to listener
func NewSearchController(store domain.CatalogStore, config SearchControllerConfig, listener func(SearchUpdate)) *SearchController {
	debounce := config.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	pageSize := config.PageSize
	if pageSize <= 0 {
		pageSize = defaultSearchPageSize
	}

	return &SearchController{
		store:    store,
		debounce: debounce,
		pageSize: pageSize,
		listener: listener,
	}
}

// SetSection switches the browsed section, cancelling the timer and any
// open stream and clearing the query before starting a fresh stream
func (c *SearchController) SetSection(section SearchSection) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.section = section
	c.query = ""
	c.stopTimerLocked()
	c.startStreamLocked("")
}

// SetQuery registers a keystroke-level query update. The stream restarts
// only after the debounce delay passes without another update.
func (c *SearchController) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.section == "" {
		return
	}

	c.query = query
	c.stopTimerLocked()

	// The stream for the old query is stale as soon as the keystroke
	// lands; closing it here keeps load-more from advancing it during
	// the debounce window
	c.cancelStreamLocked()
	c.next = nil
	c.generation++

	generation := c.generation
	c.timer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// A newer stream or section switch supersedes this timer
		if generation != c.generation || query != c.query {
			return
		}
		c.startStreamLocked(query)
	})
}

// LoadMore advances the open stream by one page. No-op when no stream is
// open, a fetch is already in flight, or the stream has ended.
func (c *SearchController) LoadMore() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.next == nil || c.ended || c.fetching {
		return
	}

	c.fetching = true
	go c.fetchPage(c.streamCtx, c.generation, c.next, c.query, true)
}

// Close cancels the timer and any open stream
func (c *SearchController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimerLocked()
	c.cancelStreamLocked()
	c.next = nil
}

func (c *SearchController) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *SearchController) cancelStreamLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// startStreamLocked cancels the previous cursor, opens a new one for the
// current section, and kicks off the first page fetch
func (c *SearchController) startStreamLocked(query string) {
	c.cancelStreamLocked()
	c.generation++

	ctx, cancel := context.WithCancel(context.Background())
	c.streamCtx = ctx
	c.cancel = cancel
	c.next = c.openCursor(c.section, query)
	c.ended = false
	c.fetching = true

	go c.fetchPage(ctx, c.generation, c.next, query, false)
}

// fetchPage pulls one page and delivers it unless a newer stream has
// superseded this one in the meantime
func (c *SearchController) fetchPage(ctx context.Context, generation int, next itemFetch, query string, appendPage bool) {
	items, done, err := next(ctx)

	c.mu.Lock()
	if generation != c.generation {
		c.mu.Unlock()
		return
	}
	c.ended = done
	c.fetching = false
	section := c.section
	listener := c.listener
	c.mu.Unlock()

	if listener != nil {
		listener(SearchUpdate{
			Section: section,
			Query:   query,
			Items:   items,
			Append:  appendPage,
			Done:    done,
			Err:     err,
		})
	}
}

// openCursor builds the tagged-union page fetcher for a section
func (c *SearchController) openCursor(section SearchSection, query string) itemFetch {
	switch section {
	case SectionManufacturers:
		cursor := c.store.StreamManufacturers(query, c.pageSize)
		return func(ctx context.Context) ([]domain.CatalogItem, bool, error) {
			page, done, err := cursor.Next(ctx)
			items := make([]domain.CatalogItem, len(page))
			for i := range page {
				items[i] = domain.ManufacturerItem(&page[i])
			}
			return items, done, err
		}
	case SectionCarriers:
		cursor := c.store.StreamCarriers(query, c.pageSize)
		return func(ctx context.Context) ([]domain.CatalogItem, bool, error) {
			page, done, err := cursor.Next(ctx)
			items := make([]domain.CatalogItem, len(page))
			for i := range page {
				items[i] = domain.CarrierItem(&page[i])
			}
			return items, done, err
		}
	default:
		cursor := c.store.StreamMaterials(query, c.pageSize)
		return func(ctx context.Context) ([]domain.CatalogItem, bool, error) {
			page, done, err := cursor.Next(ctx)
			items := make([]domain.CatalogItem, len(page))
			for i := range page {
				items[i] = domain.MaterialItem(&page[i])
			}
			return items, done, err
		}
	}
}
