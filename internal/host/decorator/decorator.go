// Package decorator wraps a base Host to carry extra URL information
// (an id-attached extension, a query-string language, or a path-segment
// language) through resolve_url/gist_url round-trips (§4.9, component
// C12).
package decorator

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/gisht/gisht/internal/gist"
	"github.com/gisht/gisht/internal/host"
)

// hastebinExtRe matches a trailing "${id}.${ext}" path segment.
var hastebinExtRe = regexp.MustCompile(`^(.*/)?([^./]+)\.([A-Za-z0-9]+)$`)

// HastebinExtension wraps a base host whose id may carry a file extension
// in its last path segment, e.g. "xkcdab.py" (§4.9).
type HastebinExtension struct {
	base host.Host
}

// NewHastebinExtension wraps base.
func NewHastebinExtension(base host.Host) *HastebinExtension {
	return &HastebinExtension{base: base}
}

func (d *HastebinExtension) ID() string   { return d.base.ID() }
func (d *HastebinExtension) Name() string { return d.base.Name() }

func (d *HastebinExtension) FetchGist(ctx context.Context, g gist.Gist, mode host.FetchMode) error {
	return d.base.FetchGist(ctx, g, mode)
}

func (d *HastebinExtension) GistInfo(ctx context.Context, g gist.Gist) (*gist.Info, error) {
	return d.base.GistInfo(ctx, g)
}

// GistURL substitutes the full id — including the extension carried in
// Info[Id] — back into the last path segment (§4.9).
func (d *HastebinExtension) GistURL(ctx context.Context, g gist.Gist) (string, error) {
	inner, err := d.base.GistURL(ctx, g)
	if err != nil {
		return "", err
	}
	if g.Info == nil || !g.Info.Has(gist.Id) {
		return inner, nil
	}
	fullID := g.Info.Get(gist.Id)
	idx := strings.LastIndex(inner, "/")
	if idx < 0 {
		return inner, nil
	}
	return inner[:idx+1] + fullID, nil
}

// ResolveURL strips a trailing ".ext" from the last path segment, forwards
// the bare id to the base host, and stores the full id (with extension)
// in Info[Id] (§4.9).
func (d *HastebinExtension) ResolveURL(ctx context.Context, rawURL string) (*gist.Gist, error) {
	m := hastebinExtRe.FindStringSubmatch(rawURL)
	if m == nil {
		return d.base.ResolveURL(ctx, rawURL)
	}
	prefix, name, ext := m[1], m[2], m[3]
	stripped := prefix + name
	if idx := strings.LastIndex(rawURL, "/"+name+"."+ext); idx >= 0 {
		stripped = rawURL[:idx+1] + name
	}

	g, err := d.base.ResolveURL(ctx, stripped)
	if g == nil || err != nil {
		return g, err
	}
	fullID := name + "." + ext
	info := g.Info
	if info == nil {
		info = gist.NewInfo()
	}
	info.Set(gist.Id, fullID)
	out := g.WithInfo(info)
	return &out, nil
}

// sprungeLangRe matches a trailing "?lang" query string carrying no "=".
var sprungeLangRe = regexp.MustCompile(`^[A-Za-z0-9_+-]+$`)

// Sprunge wraps a base host whose browser URL encodes a language as a bare
// query string, e.g. "http://sprunge.us/aB12?py" (§4.9).
//
// Sprunge does no URL canonicalization of its own: the wrapped host's
// snippet handler aligns the scheme to its HTML pattern's, so with the
// "http://" pattern cmd/gisht registers, an "https://" sprunge URL is
// rewritten to "http://" before matching (§9's open question).
type Sprunge struct {
	base host.Host
}

// NewSprunge wraps base.
func NewSprunge(base host.Host) *Sprunge {
	return &Sprunge{base: base}
}

func (d *Sprunge) ID() string   { return d.base.ID() }
func (d *Sprunge) Name() string { return d.base.Name() }

func (d *Sprunge) FetchGist(ctx context.Context, g gist.Gist, mode host.FetchMode) error {
	return d.base.FetchGist(ctx, g, mode)
}

func (d *Sprunge) GistInfo(ctx context.Context, g gist.Gist) (*gist.Info, error) {
	return d.base.GistInfo(ctx, g)
}

// GistURL re-appends "?language" if the inner URL carries no query string
// of its own (§4.9).
func (d *Sprunge) GistURL(ctx context.Context, g gist.Gist) (string, error) {
	inner, err := d.base.GistURL(ctx, g)
	if err != nil {
		return "", err
	}
	if g.Info == nil || !g.Info.Has(gist.Language) {
		return inner, nil
	}
	if strings.Contains(inner, "?") {
		return inner, nil
	}
	return inner + "?" + g.Info.Get(gist.Language), nil
}

// ResolveURL strips a bare "?lang" query, forwards to the base host, and
// stores the language in Info[Language].
func (d *Sprunge) ResolveURL(ctx context.Context, rawURL string) (*gist.Gist, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("sprunge: parse %q: %w", rawURL, err)
	}
	query := u.RawQuery
	if query == "" || !sprungeLangRe.MatchString(query) {
		return d.base.ResolveURL(ctx, rawURL)
	}
	u.RawQuery = ""
	g, err := d.base.ResolveURL(ctx, u.String())
	if g == nil || err != nil {
		return g, err
	}
	info := g.Info
	if info == nil {
		info = gist.NewInfo()
	}
	info.Set(gist.Language, query)
	out := g.WithInfo(info)
	return &out, nil
}

// ixIOHyphenRe matches a trailing "-$lang" suffix on the id itself (§4.9).
var ixIOHyphenRe = regexp.MustCompile(`^(.*/[^/-]+)-([A-Za-z0-9+_-]+)$`)

// IxIO wraps a base host whose browser URL encodes a language as either an
// extra path segment or a hyphen suffix on the id (§4.9).
type IxIO struct {
	base host.Host
}

// NewIxIO wraps base.
func NewIxIO(base host.Host) *IxIO {
	return &IxIO{base: base}
}

func (d *IxIO) ID() string   { return d.base.ID() }
func (d *IxIO) Name() string { return d.base.Name() }

func (d *IxIO) FetchGist(ctx context.Context, g gist.Gist, mode host.FetchMode) error {
	return d.base.FetchGist(ctx, g, mode)
}

func (d *IxIO) GistInfo(ctx context.Context, g gist.Gist) (*gist.Info, error) {
	return d.base.GistInfo(ctx, g)
}

// GistURL re-appends "/$lang/" to the inner URL (§4.9).
func (d *IxIO) GistURL(ctx context.Context, g gist.Gist) (string, error) {
	inner, err := d.base.GistURL(ctx, g)
	if err != nil {
		return "", err
	}
	if g.Info == nil || !g.Info.Has(gist.Language) {
		return inner, nil
	}
	return strings.TrimRight(inner, "/") + "/" + g.Info.Get(gist.Language) + "/", nil
}

// ResolveURL strips a "/$lang/" or "-$lang" suffix to the canonical
// "/$id/" form, forwards to the base host, and stores the language. Which
// variant applies is decided by whether the base host recognizes the
// stripped form, not by the shape of rawURL alone — an id and a language
// are both bare path segments, so there is no way to tell them apart
// without asking the base host (§4.9).
func (d *IxIO) ResolveURL(ctx context.Context, rawURL string) (*gist.Gist, error) {
	trimmed := strings.TrimSuffix(rawURL, "/")

	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		stem, lang := trimmed[:idx+1], trimmed[idx+1:]
		if lang != "" {
			if g, err := d.base.ResolveURL(ctx, stem); g != nil && err == nil {
				return withIxIOLanguage(g, lang), nil
			}
		}
	}

	if m := ixIOHyphenRe.FindStringSubmatch(trimmed); m != nil {
		stem, lang := m[1], m[2]
		if g, err := d.base.ResolveURL(ctx, stem+"/"); g != nil && err == nil {
			return withIxIOLanguage(g, lang), nil
		}
	}

	return d.base.ResolveURL(ctx, rawURL)
}

func withIxIOLanguage(g *gist.Gist, lang string) *gist.Gist {
	info := g.Info
	if info == nil {
		info = gist.NewInfo()
	}
	info.Set(gist.Language, lang)
	out := g.WithInfo(info)
	return &out
}
