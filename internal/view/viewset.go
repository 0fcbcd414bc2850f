package view

import (
	"context"
	"strings"
	"sync"

	"ctlfx/console/internal/models"
	"ctlfx/console/internal/upstream"
)

// ViewSet holds one session's list-view state: the controllers mirror
// what that staff member's browser currently shows. All state here is
// discardable; it is rebuilt from the upstream on the next load.
type ViewSet struct {
	Users      *Controller[models.User]
	Payments   *Controller[models.Payment]
	Otps       *Controller[models.Otp]
	UserPicker *Picker[models.User]

	mu           sync.Mutex
	userPayments map[int]*Controller[models.Payment]
	client       *upstream.Client
	opts         Options
}

func NewViewSet(client *upstream.Client, opts Options) *ViewSet {
	if opts.Format == nil {
		opts.Format = upstream.Message
	}
	opts = opts.withDefaults()

	vs := &ViewSet{
		client:       client,
		opts:         opts,
		userPayments: map[int]*Controller[models.Payment]{},
	}

	vs.Users = NewController(func(ctx context.Context, q Query) (Page[models.User], error) {
		col, err := client.Users(ctx, listQuery(q))
		return Page[models.User]{Items: col.Items, Total: col.Total}, err
	}, opts)

	vs.Payments = NewController(func(ctx context.Context, q Query) (Page[models.Payment], error) {
		lq := listQuery(q)
		lq.Type = q.Filters["type"]
		col, err := client.Payments(ctx, lq)
		return Page[models.Payment]{Items: col.Items, Total: col.Total}, err
	}, opts)

	// The OTP log endpoint is not paginated upstream; search and paging
	// happen over the full result, matching the table's client-side
	// filtering.
	vs.Otps = NewController(func(ctx context.Context, q Query) (Page[models.Otp], error) {
		all, err := client.Otps(ctx)
		if err != nil {
			return Page[models.Otp]{Items: []models.Otp{}}, err
		}
		filtered := all
		if q.Search != "" {
			needle := strings.ToLower(q.Search)
			filtered = filtered[:0:0]
			for _, otp := range all {
				if strings.Contains(strings.ToLower(otp.Email), needle) {
					filtered = append(filtered, otp)
				}
			}
		}
		return Page[models.Otp]{Items: window(filtered, q), Total: len(filtered)}, nil
	}, opts)

	vs.UserPicker = NewPicker(func(ctx context.Context, q Query) (Page[models.User], error) {
		col, err := client.Users(ctx, listQuery(q))
		return Page[models.User]{Items: col.Items, Total: col.Total}, err
	}, opts)

	return vs
}

// UserPayments returns the controller for one user-detail payments tab,
// creating it on first use.
func (vs *ViewSet) UserPayments(userID int) *Controller[models.Payment] {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	if ctrl, ok := vs.userPayments[userID]; ok {
		return ctrl
	}

	client := vs.client
	ctrl := NewController(func(ctx context.Context, q Query) (Page[models.Payment], error) {
		col, err := client.PaymentsByUser(ctx, userID, listQuery(q))
		return Page[models.Payment]{Items: col.Items, Total: col.Total}, err
	}, vs.opts)
	vs.userPayments[userID] = ctrl
	return ctrl
}

func (vs *ViewSet) Stop() {
	vs.Users.Stop()
	vs.Payments.Stop()
	vs.Otps.Stop()
	vs.UserPicker.Stop()

	vs.mu.Lock()
	defer vs.mu.Unlock()
	for _, ctrl := range vs.userPayments {
		ctrl.Stop()
	}
	vs.userPayments = map[int]*Controller[models.Payment]{}
}

func listQuery(q Query) upstream.ListQuery {
	return upstream.ListQuery{
		Search: q.Search,
		Limit:  q.PageSize,
		Offset: q.Offset(),
	}
}

func window[T any](items []T, q Query) []T {
	lo := q.Offset()
	if lo >= len(items) {
		return []T{}
	}
	hi := lo + q.PageSize
	if hi > len(items) {
		hi = len(items)
	}
	out := make([]T, hi-lo)
	copy(out, items[lo:hi])
	return out
}
