// Package gist defines the immutable Gist aggregate and its Info metadata
// (§3, §4.2, components C3/C4).
package gist

import "github.com/gisht/gisht/internal/uri"

// Gist is the immutable aggregate {uri, id, info} from §3. ID is host
// specific and opaque (a GitHub gist id, a pastebin id, ...); it is unset
// for a Gist freshly produced by URI parsing, and is populated once a host
// resolves it.
type Gist struct {
	URI  uri.URI
	ID   string // "" means unset
	Info *Info  // nil means unset
}

// New creates a Gist with no id and no info, the state produced by parsing
// a URI alone (§3's Lifecycle).
func New(u uri.URI) Gist {
	return Gist{URI: u}
}

// WithID returns a copy of g with ID set to id.
func (g Gist) WithID(id string) Gist {
	g.ID = id
	return g
}

// WithInfo returns a copy of g with Info set to info.
func (g Gist) WithInfo(info *Info) Gist {
	g.Info = info
	return g
}

// HasID reports whether g.ID has been populated.
func (g Gist) HasID() bool { return g.ID != "" }

// Equal reports whether g and other compare equal: same URI, and — when
// both have an id — the same id (§3).
func (g Gist) Equal(other Gist) bool {
	if g.URI != other.URI {
		return false
	}
	if g.HasID() && other.HasID() {
		return g.ID == other.ID
	}
	return true
}
