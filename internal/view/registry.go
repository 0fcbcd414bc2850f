package view

import (
	"sync"

	"ctlfx/console/internal/upstream"
)

// Registry maps session ids to their view sets. Sets are created lazily
// on first use and dropped when the session is destroyed.
type Registry struct {
	mu   sync.Mutex
	sets map[string]*ViewSet
	opts Options
}

func NewRegistry(opts Options) *Registry {
	return &Registry{
		sets: make(map[string]*ViewSet),
		opts: opts,
	}
}

func (r *Registry) For(sessionID string, client *upstream.Client) *ViewSet {
	r.mu.Lock()
	defer r.mu.Unlock()

	if vs, ok := r.sets[sessionID]; ok {
		return vs
	}
	vs := NewViewSet(client, r.opts)
	r.sets[sessionID] = vs
	return vs
}

func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	vs, ok := r.sets[sessionID]
	delete(r.sets, sessionID)
	r.mu.Unlock()

	if ok {
		vs.Stop()
	}
}
