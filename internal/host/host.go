// Package host defines the Host contract (§4.3, component C6), the
// process-wide host registry (§3, §4.1, component C5), and the FetchMode
// enum (§3).
package host

import (
	"context"

	"github.com/gisht/gisht/internal/gist"
)

// FetchMode governs whether fetch_gist re-downloads a gist (§3).
type FetchMode int

const (
	// Auto defers to the host's own staleness policy.
	Auto FetchMode = iota
	// Always forces a round-trip regardless of local state.
	Always
	// New skips the network entirely if the gist is already local.
	New
)

// Host is the capability set every paste-service adapter implements
// (§4.3). Implementations must be safe for concurrent use (§5) — the
// registry shares them across goroutines, and test harnesses may drive
// multiple hosts in parallel.
type Host interface {
	// ID returns the host's stable identifier, e.g. "gh", "pb".
	ID() string
	// Name returns the host's human-readable label, e.g. "GitHub Gist".
	Name() string
	// FetchGist idempotently ensures gist is present on disk: after
	// success, its tree and binary symlink exist and the symlink target
	// is executable.
	FetchGist(ctx context.Context, g gist.Gist, mode FetchMode) error
	// GistURL returns a browser URL for gist.
	GistURL(ctx context.Context, g gist.Gist) (string, error)
	// GistInfo returns the gist's metadata, or (nil, nil) if the host
	// exposes none.
	GistInfo(ctx context.Context, g gist.Gist) (*gist.Info, error)
	// ResolveURL attempts to recognize url as one of this host's gist
	// URLs. It returns (nil, nil) if url is not recognized by this host at
	// all, (nil, err) if it is recognized but resolution failed, and
	// (g, nil) with g.URI.Host populated on success.
	ResolveURL(ctx context.Context, url string) (*gist.Gist, error)
}
