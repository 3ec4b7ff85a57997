package host

import (
	"context"

	"github.com/gisht/gisht/internal/gist"
)

// DefaultHostID names the registry's default host (§3): GitHub, since a
// bare "owner/name" URI with no host prefix is gisht's most common case.
const DefaultHostID = "gh"

// Registry is the process-wide, immutable host_id -> Host mapping built
// once at startup (§3, §5). Registry is read-only after construction, so
// no locking is required to read it concurrently.
type Registry struct {
	hosts map[string]Host
}

// NewRegistry builds a Registry from hosts, keyed by each Host's ID().
// Later entries with a duplicate ID overwrite earlier ones — callers are
// expected to pass a set with unique ids.
func NewRegistry(hosts ...Host) *Registry {
	m := make(map[string]Host, len(hosts))
	for _, h := range hosts {
		m[h.ID()] = h
	}
	return &Registry{hosts: m}
}

// Get returns the Host registered under id, or (nil, false).
func (r *Registry) Get(id string) (Host, bool) {
	h, ok := r.hosts[id]
	return h, ok
}

// IsRegistered reports whether id names a registered host. It implements
// uri.HostResolver.
func (r *Registry) IsRegistered(id string) bool {
	_, ok := r.hosts[id]
	return ok
}

// DefaultHostID implements uri.HostResolver.
func (r *Registry) DefaultHostID() string { return DefaultHostID }

// All returns every registered host, for the bare hosts listing (§6).
func (r *Registry) All() []Host {
	out := make([]Host, 0, len(r.hosts))
	for _, h := range r.hosts {
		out = append(out, h)
	}
	return out
}

// ResolveURL tries each registered host's ResolveURL in turn and returns
// the first non-nil result (§4.3's "process's resolve any URL procedure").
// Iteration order is unspecified; at most one host is expected to
// recognize a given URL in practice.
func (r *Registry) ResolveURL(ctx context.Context, url string) (*gist.Gist, error) {
	for _, h := range r.hosts {
		g, err := h.ResolveURL(ctx, url)
		if g != nil || err != nil {
			return g, err
		}
	}
	return nil, nil
}
