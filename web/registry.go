package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"shopping-dashboard/dashboard"
)

// entry serializes every update of one session.
type entry struct {
	mu      sync.Mutex
	session *dashboard.Session
	seen    time.Time
}

// registry maps session ids to live dashboard sessions. Sessions never share state.
type registry struct {
	mu      sync.Mutex
	dash    *dashboard.Dashboard
	entries map[string]*entry
	now     func() time.Time
}

func newRegistry(dash *dashboard.Dashboard) *registry {
	return &registry{dash: dash, entries: make(map[string]*entry), now: time.Now}
}

func (r *registry) get(id string) (*entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if ok {
		e.seen = r.now()
	}
	return e, ok
}

func (r *registry) create() (string, *entry) {
	id := uuid.NewString()
	e := &entry{session: r.dash.NewSession(), seen: r.now()}

	r.mu.Lock()
	r.entries[id] = e
	r.mu.Unlock()
	return id, e
}

// sweep drops sessions idle for longer than ttl and returns how many were removed.
func (r *registry) sweep(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.entries {
		if e.seen.Before(cutoff) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
