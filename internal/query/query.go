// Package query owns list state for one admin view: pagination, filters,
// debounced search, and the reload-after-mutation policy. The server is the
// source of truth; every load replaces the local list wholesale and no
// mutation ever patches local state.
package query

import (
	"context"
	"sync"

	"shopctl/internal/api"
	"shopctl/internal/logging"
	"shopctl/internal/types"
)

// Loader issues the parameterized list request for a controller.
type Loader[T any] func(ctx context.Context, p api.ListParams) (api.ListResponse[T], error)

// Controller owns the list/pagination state of a single view instance.
// All state is mutated only through its own methods.
type Controller[T any] struct {
	mu         sync.Mutex
	loader     Loader[T]
	params     api.ListParams
	items      []T
	pagination types.Pagination
	debouncer  *Debouncer

	// onChange fires after every state replacement; onError receives
	// failures from debounced background loads, which have no caller to
	// return to.
	onChange func()
	onError  func(error)
}

// Option customizes a Controller.
type Option[T any] func(*Controller[T])

// WithOnChange registers a callback fired after each successful load.
func WithOnChange[T any](fn func()) Option[T] {
	return func(c *Controller[T]) { c.onChange = fn }
}

// WithOnError registers a callback for background load failures.
func WithOnError[T any](fn func(error)) Option[T] {
	return func(c *Controller[T]) { c.onError = fn }
}

// WithSearchDelay overrides the debounce delay (tests use a short one).
func WithSearchDelay[T any](d *Debouncer) Option[T] {
	return func(c *Controller[T]) { c.debouncer = d }
}

// New creates a controller starting at page 1 with the given page size.
func New[T any](loader Loader[T], limit int, opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{
		loader:    loader,
		params:    api.ListParams{Page: 1, Limit: limit},
		debouncer: NewDebouncer(DefaultSearchDelay),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load issues the list request with the current params and replaces the
// local list and paging summary with the response. It never merges.
//
// TODO: a slow response can overwrite the state produced by a newer request
// issued meanwhile (no request-generation guard). Needs a monotonic
// generation counter checked before the swap.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	params := c.params.Clone()
	c.mu.Unlock()

	resp, err := c.loader(ctx, params)
	if err != nil {
		logging.Get(logging.CategoryQuery).Warn("load failed (page=%d search=%q): %v",
			params.Page, params.Search, err)
		return err
	}

	c.mu.Lock()
	c.items = resp.Items
	c.pagination = resp.Pagination
	c.mu.Unlock()

	logging.QueryDebug("loaded page %d/%d (%d items, search=%q)",
		resp.Pagination.Page, resp.Pagination.TotalPages, len(resp.Items), params.Search)
	c.notify()
	return nil
}

// SetSearch updates the search term, resets the page to 1, and reloads after
// the debounce delay. A value equal to the current term is a no-op.
func (c *Controller[T]) SetSearch(ctx context.Context, search string) {
	c.mu.Lock()
	if c.params.Search == search {
		c.mu.Unlock()
		return
	}
	c.params.Search = search
	c.params.Page = 1
	c.mu.Unlock()

	c.debouncer.Debounce(func() {
		if err := c.Load(ctx); err != nil {
			c.fail(err)
		}
	})
}

// SetFilter sets (or clears, with v == "") a named filter, resets the page
// to 1, and reloads immediately.
func (c *Controller[T]) SetFilter(ctx context.Context, key, value string) error {
	c.mu.Lock()
	if c.params.Filters == nil {
		c.params.Filters = make(map[string]string)
	}
	if value == "" {
		delete(c.params.Filters, key)
	} else {
		c.params.Filters[key] = value
	}
	c.params.Page = 1
	c.mu.Unlock()
	return c.Load(ctx)
}

// SetSort changes the sort column/direction, resets the page to 1, and
// reloads immediately.
func (c *Controller[T]) SetSort(ctx context.Context, sortBy string, order api.SortOrder) error {
	c.mu.Lock()
	c.params.SortBy = sortBy
	c.params.SortOrder = order
	c.params.Page = 1
	c.mu.Unlock()
	return c.Load(ctx)
}

// GoToPage moves to page n and reloads. Out-of-range targets are a guarded
// no-op: state stays untouched and no request is issued.
func (c *Controller[T]) GoToPage(ctx context.Context, n int) error {
	c.mu.Lock()
	if n < 1 || n > c.pagination.TotalPages || n == c.params.Page {
		c.mu.Unlock()
		return nil
	}
	c.params.Page = n
	c.mu.Unlock()
	return c.Load(ctx)
}

// NextPage advances one page (guarded).
func (c *Controller[T]) NextPage(ctx context.Context) error {
	c.mu.Lock()
	n := c.params.Page + 1
	c.mu.Unlock()
	return c.GoToPage(ctx, n)
}

// PrevPage goes back one page (guarded).
func (c *Controller[T]) PrevPage(ctx context.Context) error {
	c.mu.Lock()
	n := c.params.Page - 1
	c.mu.Unlock()
	return c.GoToPage(ctx, n)
}

// Mutate runs a mutation (status toggle, delete, duplicate, ...) and then
// unconditionally reloads, whether or not the mutation succeeded. The server
// stays the single source of truth even under concurrent edits by other
// operators.
func (c *Controller[T]) Mutate(ctx context.Context, fn func(context.Context) error) error {
	mutErr := fn(ctx)
	if err := c.Load(ctx); err != nil && mutErr == nil {
		return err
	}
	return mutErr
}

// Items returns a copy of the current item slice.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Pagination returns the current paging summary.
func (c *Controller[T]) Pagination() types.Pagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pagination
}

// Params returns a copy of the current request params.
func (c *Controller[T]) Params() api.ListParams {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params.Clone()
}

// Close cancels any pending debounced load.
func (c *Controller[T]) Close() {
	c.debouncer.Cancel()
}

func (c *Controller[T]) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}

func (c *Controller[T]) fail(err error) {
	if c.onError != nil {
		c.onError(err)
	}
}
