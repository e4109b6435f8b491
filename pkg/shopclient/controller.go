package shopclient

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounceWindow is the quiescence period after the last filter
// change before a refetch fires.
const DefaultDebounceWindow = 300 * time.Millisecond

// FetchFunc fetches products for a filter state. Client.Products
// satisfies it.
type FetchFunc func(ctx context.Context, f Filters) ([]Product, error)

// Controller drives the storefront's catalog view. Every filter change
// restarts a trailing-edge debounce timer; when the window elapses the
// current filter state is fetched. Each fetch carries a monotonically
// increasing id and only the latest id may deliver, so a slow earlier
// request can never overwrite results from a newer one.
type Controller struct {
	mu        sync.Mutex
	window    time.Duration
	fetch     FetchFunc
	onResults func([]Product)
	onError   func(error)

	filters Filters
	timer   *time.Timer
	seq     uint64
	cancel  context.CancelFunc
	closed  bool
}

// NewController creates a controller with the default filter state and
// debounce window. onError may be nil; fetch failures are then dropped
// (the spec surfaces them as a transient notification, never a retry).
func NewController(fetch FetchFunc, onResults func([]Product), onError func(error)) *Controller {
	return &Controller{
		window:    DefaultDebounceWindow,
		fetch:     fetch,
		onResults: onResults,
		onError:   onError,
		filters:   DefaultFilters(),
	}
}

// SetWindow overrides the debounce window. Intended for construction
// time; it does not reschedule a pending fetch.
func (c *Controller) SetWindow(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.window = d
}

// Filters returns a snapshot of the current filter state.
func (c *Controller) Filters() Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// SetSearch updates the search text and schedules a refetch.
func (c *Controller) SetSearch(search string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters.Search = search
	c.schedule()
}

// SetCategory updates the category filter and schedules a refetch.
func (c *Controller) SetCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters.Category = category
	c.schedule()
}

// SetPriceRange updates both price bounds and schedules a refetch.
func (c *Controller) SetPriceRange(minPrice, maxPrice float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters.MinPrice = minPrice
	c.filters.MaxPrice = maxPrice
	c.schedule()
}

// SetStockStatus updates the stock filter and schedules a refetch.
func (c *Controller) SetStockStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters.StockStatus = status
	c.schedule()
}

// SetSortBy updates the sort order and schedules a refetch.
func (c *Controller) SetSortBy(sortBy string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters.SortBy = sortBy
	c.schedule()
}

// Reset atomically restores every filter to its default and schedules
// exactly one refetch.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = DefaultFilters()
	c.schedule()
}

// Close cancels any pending timer and in-flight fetch. No callback
// fires after Close returns.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	// Invalidate any fetch still running.
	c.seq++
}

// schedule restarts the debounce timer. Caller holds mu.
func (c *Controller) schedule() {
	if c.closed {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.window, c.fire)
}

// fire runs when the debounce window elapses with no further changes.
func (c *Controller) fire() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	// A newer fetch supersedes any prior in-flight one.
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.seq++
	id := c.seq
	snapshot := c.filters
	c.mu.Unlock()

	products, err := c.fetch(ctx, snapshot)

	c.mu.Lock()
	stale := id != c.seq || c.closed
	c.mu.Unlock()
	if stale {
		return
	}

	if err != nil {
		if c.onError != nil {
			c.onError(err)
		}
		return
	}
	if c.onResults != nil {
		c.onResults(products)
	}
}
