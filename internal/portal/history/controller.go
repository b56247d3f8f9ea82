// Package history implements the listing-page controller: server-side
// pagination with an optional verdict filter and filename search, local
// state for the current page/filter/search, and last-write-wins protection
// against stale fetches.
package history

import (
	"context"
	"sync"

	"github.com/veridoc/portal/internal/logging"
	"github.com/veridoc/portal/internal/portal/api"
	"github.com/veridoc/portal/internal/portal/models"
)

// DefaultPerPage matches the backend's default page size.
const DefaultPerPage = 10

// Fetch loads one page of items for the query. The same controller backs
// the validation-history, document-list and institution-records pages via
// their respective fetch functions.
type Fetch[T any] func(ctx context.Context, q api.HistoryQuery) ([]T, models.Pagination, error)

// Controller holds the page/filter/search state of one listing page.
// Changing filter or search resets to page 1; changing only the page does
// not. Every state change triggers a refetch.
type Controller[T any] struct {
	fetch Fetch[T]
	log   logging.Logger

	mu      sync.Mutex
	gen     uint64
	page    int
	perPage int
	verdict models.Verdict
	search  string

	items   []T
	pag     models.Pagination
	loading bool
	errMsg  string
}

func NewController[T any](fetch Fetch[T], log logging.Logger) *Controller[T] {
	if log == nil {
		log = logging.Noop()
	}
	return &Controller[T]{fetch: fetch, log: log, page: 1, perPage: DefaultPerPage}
}

// Load performs the initial fetch with the current state.
func (c *Controller[T]) Load(ctx context.Context) error {
	return c.reload(ctx)
}

// SetPage navigates to page p (1-based) and refetches. Filter and search
// stay as they are.
func (c *Controller[T]) SetPage(ctx context.Context, p int) error {
	if p < 1 {
		p = 1
	}
	c.mu.Lock()
	c.page = p
	c.mu.Unlock()
	return c.reload(ctx)
}

// SetVerdict applies a verdict filter ("" means all) and resets to page 1.
func (c *Controller[T]) SetVerdict(ctx context.Context, v models.Verdict) error {
	c.mu.Lock()
	c.verdict = v
	c.page = 1
	c.mu.Unlock()
	return c.reload(ctx)
}

// SetSearch applies a filename search term and resets to page 1.
func (c *Controller[T]) SetSearch(ctx context.Context, term string) error {
	c.mu.Lock()
	c.search = term
	c.page = 1
	c.mu.Unlock()
	return c.reload(ctx)
}

func (c *Controller[T]) reload(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.loading = true
	c.errMsg = ""
	q := api.HistoryQuery{Page: c.page, PerPage: c.perPage, Verdict: c.verdict, Search: c.search}
	c.mu.Unlock()

	items, pag, err := c.fetch(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// A later page/filter change already refetched; drop this result.
		c.log.Debug(ctx, "dropping stale listing response", "gen", gen, "current", c.gen)
		return err
	}
	c.loading = false
	if err != nil {
		c.errMsg = api.UserMessage(err)
		return err
	}
	c.items = items
	c.pag = pag
	return nil
}

// Items returns the current page of items.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items
}

// Pagination returns the paging block of the last successful fetch.
func (c *Controller[T]) Pagination() models.Pagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pag
}

// Page returns the current 1-based page number.
func (c *Controller[T]) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Verdict returns the active verdict filter ("" for all).
func (c *Controller[T]) Verdict() models.Verdict {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verdict
}

// Search returns the active search term.
func (c *Controller[T]) Search() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search
}

// Loading reports whether a fetch is in flight.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the user-facing message of the last failed fetch, or "".
func (c *Controller[T]) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// EmptyMessage is the copy for an empty result set; it distinguishes "you
// have nothing yet" from "nothing matches your filter/search".
func (c *Controller[T]) EmptyMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.verdict != "" || c.search != "" {
		return "No results match your current filter"
	}
	return "Upload a document to get started"
}
