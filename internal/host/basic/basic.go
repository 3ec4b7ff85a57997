// Package basic implements the "Basic" host (§4.5, component C8): raw-URL
// download over the snippet handler, for single-file pastebins with no
// metadata API.
package basic

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gisht/gisht/internal/config"
	"github.com/gisht/gisht/internal/gist"
	"github.com/gisht/gisht/internal/host"
	"github.com/gisht/gisht/internal/host/snippet"
)

// Host is a single-file paste service addressed by an opaque id, fetched
// via a raw-content URL and browsed via a separate HTML URL.
type Host struct {
	id, name string
	rawURL   string // e.g. "http://pastebin.com/raw/${id}"
	handler  *snippet.Handler

	client *http.Client
}

// New constructs a Basic host. rawURLPattern and htmlURLPattern must both
// contain the "${id}" placeholder and begin with http(s)://; gistIDRe is
// the character class an id must match (§4.5).
func New(id, name, rawURLPattern, htmlURLPattern, gistIDRe string) *Host {
	return &Host{
		id:      id,
		name:    name,
		rawURL:  rawURLPattern,
		handler: snippet.NewHandler(id, htmlURLPattern, gistIDRe),
		client:  http.DefaultClient,
	}
}

func (h *Host) ID() string   { return h.id }
func (h *Host) Name() string { return h.name }

func (h *Host) idURL(pattern, id string) string {
	return strings.Replace(pattern, "${id}", id, 1)
}

// FetchGist downloads the gist's raw content when NeedFetch says to, and
// hands the response body to store_gist (§4.5).
func (h *Host) FetchGist(ctx context.Context, g gist.Gist, mode host.FetchMode) error {
	if !h.handler.NeedFetch(g, mode) {
		return nil
	}
	id := snippet.ResolveID(g)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.idURL(h.rawURL, id), nil)
	if err != nil {
		return fmt.Errorf("basic: build request for gist %s: %w", g.URI, err)
	}
	req.Header.Set("User-Agent", config.UserAgent())
	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("basic: fetch gist %s: %w", g.URI, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("basic: fetch gist %s: unexpected status %s", g.URI, resp.Status)
	}
	return h.handler.StoreGist(g, resp.Body)
}

// GistURL substitutes the gist's id into the HTML URL pattern held by the
// snippet handler.
func (h *Host) GistURL(ctx context.Context, g gist.Gist) (string, error) {
	return h.idURL(h.handler.HTMLURLPattern(), snippet.ResolveID(g)), nil
}

// GistInfo returns no metadata: Basic hosts expose no API (§4.5).
func (h *Host) GistInfo(ctx context.Context, g gist.Gist) (*gist.Info, error) {
	return nil, nil
}

// ResolveURL canonicalizes url and matches it against the synthesized
// regex; the captured id becomes both the gist's id and URI name (§4.5).
func (h *Host) ResolveURL(ctx context.Context, url string) (*gist.Gist, error) {
	id, ok := h.handler.MatchID(h.handler.Canonicalize(url))
	if !ok {
		return nil, nil
	}
	g := gist.New(snippet.MakeURI(h.id, id)).WithID(id)
	return &g, nil
}
