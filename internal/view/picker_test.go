package view

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func pagedPickerFetch(total int) FetchFunc[string] {
	return func(_ context.Context, q Query) (Page[string], error) {
		start := q.Offset()
		items := []string{}
		for i := start; i < start+q.PageSize && i < total; i++ {
			items = append(items, fmt.Sprintf("%s-user-%d", q.Search, i))
		}
		return Page[string]{Items: items, Total: total}, nil
	}
}

func TestPickerLoadAndLoadMore(t *testing.T) {
	p := NewPicker(pagedPickerFetch(25), Options{PageSize: 10})

	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	snap := p.Snapshot()
	if len(snap.Items) != 10 || snap.Total != 25 || !snap.HasMore {
		t.Fatalf("unexpected first page: %+v", snap)
	}

	if err := p.LoadMore(context.Background()); err != nil {
		t.Fatalf("load more: %v", err)
	}
	snap = p.Snapshot()
	if len(snap.Items) != 20 || snap.Page != 2 || !snap.HasMore {
		t.Fatalf("unexpected second page: %+v", snap)
	}
	if snap.Items[10] != "-user-10" {
		t.Fatalf("pages not appended in order: %q", snap.Items[10])
	}

	if err := p.LoadMore(context.Background()); err != nil {
		t.Fatalf("load more: %v", err)
	}
	snap = p.Snapshot()
	if len(snap.Items) != 25 || snap.HasMore {
		t.Fatalf("expected final page to exhaust the list: %+v", snap)
	}

	// everything is loaded, so this must not fetch again
	if err := p.LoadMore(context.Background()); err != nil {
		t.Fatalf("load more: %v", err)
	}
	if snap = p.Snapshot(); len(snap.Items) != 25 {
		t.Fatalf("exhausted picker fetched again: %+v", snap)
	}
}

func TestPickerSearchReplacesList(t *testing.T) {
	p := NewPicker(pagedPickerFetch(25), Options{PageSize: 10, Debounce: 10 * time.Millisecond})

	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := p.LoadMore(context.Background()); err != nil {
		t.Fatalf("load more: %v", err)
	}

	p.SetSearch("ann")
	waitFor(t, func() bool {
		snap := p.Snapshot()
		return snap.Search == "ann" && !snap.Loading && len(snap.Items) == 10
	})

	snap := p.Snapshot()
	if snap.Page != 1 {
		t.Fatalf("expected search to restart at page 1, got %d", snap.Page)
	}
	if snap.Items[0] != "ann-user-0" {
		t.Fatalf("expected searched results, got %q", snap.Items[0])
	}
}
