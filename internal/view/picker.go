package view

import (
	"context"
	"sync"
	"time"
)

// Picker backs the incremental user selector in the payment form:
// pages are appended as the list scrolls, and typing replaces the list
// after the debounce interval.
type Picker[T any] struct {
	mu    sync.Mutex
	fetch FetchFunc[T]
	opts  Options

	search        string
	pendingSearch string
	searchTimer   *time.Timer
	page          int
	generation    uint64

	items   []T
	total   int
	loading bool
	message string
}

func NewPicker[T any](fetch FetchFunc[T], opts Options) *Picker[T] {
	return &Picker[T]{
		fetch: fetch,
		opts:  opts.withDefaults(),
		page:  0,
		items: []T{},
	}
}

type PickerSnapshot[T any] struct {
	Items   []T    `json:"items"`
	Total   int    `json:"total"`
	Page    int    `json:"page"`
	Search  string `json:"search"`
	Loading bool   `json:"loading"`
	HasMore bool   `json:"hasMore"`
	Message string `json:"message,omitempty"`
}

func (p *Picker[T]) Snapshot() PickerSnapshot[T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	items := make([]T, len(p.items))
	copy(items, p.items)
	return PickerSnapshot[T]{
		Items:   items,
		Total:   p.total,
		Page:    p.page,
		Search:  p.search,
		Loading: p.loading,
		HasMore: len(p.items) < p.total,
		Message: p.message,
	}
}

// Load fetches the first page, replacing whatever is shown.
func (p *Picker[T]) Load(ctx context.Context) error {
	return p.load(ctx, 1, false)
}

// LoadMore appends the next page. A no-op once everything is loaded.
func (p *Picker[T]) LoadMore(ctx context.Context) error {
	p.mu.Lock()
	if p.page > 0 && len(p.items) >= p.total {
		p.mu.Unlock()
		return nil
	}
	next := p.page + 1
	p.mu.Unlock()
	return p.load(ctx, next, true)
}

func (p *Picker[T]) SetSearch(raw string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pendingSearch = raw
	if p.searchTimer != nil {
		p.searchTimer.Stop()
	}
	p.searchTimer = time.AfterFunc(p.opts.Debounce, func() {
		p.mu.Lock()
		if p.pendingSearch == p.search {
			p.mu.Unlock()
			return
		}
		p.search = p.pendingSearch
		p.mu.Unlock()
		_ = p.load(context.Background(), 1, false)
	})
}

func (p *Picker[T]) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.searchTimer != nil {
		p.searchTimer.Stop()
		p.searchTimer = nil
	}
	p.generation++
}

func (p *Picker[T]) load(ctx context.Context, page int, appendItems bool) error {
	p.mu.Lock()
	p.generation++
	gen := p.generation
	q := Query{Search: p.search, Page: page, PageSize: p.opts.PageSize}
	p.loading = true
	p.mu.Unlock()

	result, err := p.fetch(ctx, q)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.generation {
		return err
	}
	p.loading = false
	if err != nil {
		p.message = p.opts.Format(err)
		return err
	}

	p.message = ""
	p.page = page
	p.total = result.Total
	if appendItems {
		p.items = append(p.items, result.Items...)
	} else {
		p.items = result.Items
	}
	return nil
}
