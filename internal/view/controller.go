package view

import (
	"context"
	"sync"
	"time"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateError   State = "error"
)

// Query is the effect-dependency key of a list view: committed search
// term, page window, and filter dimensions. Any change to it triggers a
// refetch.
type Query struct {
	Search   string
	Page     int
	PageSize int
	Filters  map[string]string
}

func (q Query) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.PageSize
}

// clone detaches the filter map so a captured query can be read by a
// fetch goroutine while the controller keeps mutating its own copy.
func (q Query) clone() Query {
	filters := make(map[string]string, len(q.Filters))
	for k, v := range q.Filters {
		filters[k] = v
	}
	q.Filters = filters
	return q
}

type Page[T any] struct {
	Items []T
	Total int
}

type FetchFunc[T any] func(ctx context.Context, q Query) (Page[T], error)

type Options struct {
	PageSize int
	Debounce time.Duration
	// Format converts a fetch error into the display message kept on
	// the snapshot.
	Format func(error) string
}

func (o Options) withDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = 10
	}
	if o.Debounce <= 0 {
		o.Debounce = 500 * time.Millisecond
	}
	if o.Format == nil {
		o.Format = func(err error) string { return err.Error() }
	}
	return o
}

// Controller drives one paginated, searchable list view. Raw search
// input is buffered and committed after a quiet interval; committing
// resets to the first page. Every fetch carries a generation number and
// only the latest generation's response is applied, so a slow stale
// response can never overwrite newer data.
type Controller[T any] struct {
	mu    sync.Mutex
	fetch FetchFunc[T]
	opts  Options

	state         State
	query         Query
	pendingSearch string
	searchTimer   *time.Timer
	generation    uint64

	items      []T
	total      int
	message    string
	actionBusy bool
}

func NewController[T any](fetch FetchFunc[T], opts Options) *Controller[T] {
	opts = opts.withDefaults()
	return &Controller[T]{
		fetch: fetch,
		opts:  opts,
		state: StateIdle,
		query: Query{Page: 1, PageSize: opts.PageSize, Filters: map[string]string{}},
		items: []T{},
	}
}

// Snapshot is what a view endpoint returns to the browser.
type Snapshot[T any] struct {
	State      State             `json:"state"`
	Items      []T               `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	Search     string            `json:"search"`
	Filters    map[string]string `json:"filters"`
	Message    string            `json:"message,omitempty"`
	ActionBusy bool              `json:"actionBusy"`
}

func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]T, len(c.items))
	copy(items, c.items)
	filters := make(map[string]string, len(c.query.Filters))
	for k, v := range c.query.Filters {
		filters[k] = v
	}

	return Snapshot[T]{
		State:      c.state,
		Items:      items,
		Total:      c.total,
		Page:       c.query.Page,
		PageSize:   c.query.PageSize,
		Search:     c.query.Search,
		Filters:    filters,
		Message:    c.message,
		ActionBusy: c.actionBusy,
	}
}

// Refresh fetches the current query synchronously. Used for the initial
// load and after any write so the page reflects the upstream again.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	q := c.query.clone()
	c.state = StateLoading
	c.mu.Unlock()

	page, err := c.fetch(ctx, q)
	c.apply(gen, page, err)
	return err
}

// SetSearch buffers raw input. The committed term only changes after
// the debounce interval passes without another call.
func (c *Controller[T]) SetSearch(raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pendingSearch = raw
	if c.searchTimer != nil {
		c.searchTimer.Stop()
	}
	c.searchTimer = time.AfterFunc(c.opts.Debounce, c.commitSearch)
}

func (c *Controller[T]) commitSearch() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pendingSearch == c.query.Search {
		return
	}
	c.query.Search = c.pendingSearch
	c.query.Page = 1
	c.startLocked()
}

func (c *Controller[T]) SetPage(page, pageSize int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if page < 1 {
		page = 1
	}
	if pageSize > 0 {
		c.query.PageSize = pageSize
	}
	c.query.Page = page
	c.startLocked()
}

// SetFilter replaces one filter dimension and resets to the first page.
// An empty value clears the dimension.
func (c *Controller[T]) SetFilter(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if value == "" {
		delete(c.query.Filters, key)
	} else {
		c.query.Filters[key] = value
	}
	c.query.Page = 1
	c.startLocked()
}

// SetActionBusy flags a row-level action in flight so the browser can
// disable just that affordance while the table stays interactive.
func (c *Controller[T]) SetActionBusy(busy bool) {
	c.mu.Lock()
	c.actionBusy = busy
	c.mu.Unlock()
}

// Stop cancels any pending debounce timer. In-flight fetches are not
// aborted; their responses are discarded by the generation check.
func (c *Controller[T]) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.searchTimer != nil {
		c.searchTimer.Stop()
		c.searchTimer = nil
	}
	c.generation++
}

// startLocked kicks off an asynchronous fetch for the current query.
// Callers must hold mu.
func (c *Controller[T]) startLocked() {
	c.generation++
	gen := c.generation
	q := c.query.clone()
	c.state = StateLoading

	go func() {
		page, err := c.fetch(context.Background(), q)
		c.apply(gen, page, err)
	}()
}

func (c *Controller[T]) apply(gen uint64, page Page[T], err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return
	}

	if err != nil {
		// previous data stays on screen
		c.state = StateError
		c.message = c.opts.Format(err)
		return
	}

	c.items = page.Items
	c.total = page.Total
	c.state = StateLoaded
	c.message = ""
}
