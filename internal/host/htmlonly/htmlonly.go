// Package htmlonly implements the HtmlOnly host (§4.6, component C9):
// hosts that serve a gist embedded in an HTML page rather than a raw-text
// endpoint, extracted via a CSS selector predicate.
package htmlonly

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gisht/gisht/internal/config"
	"github.com/gisht/gisht/internal/gist"
	hostpkg "github.com/gisht/gisht/internal/host"
	"github.com/gisht/gisht/internal/host/snippet"
)

// Host fetches an HTML page and extracts a gist's text from it via a CSS
// selector, e.g. "pre#viewer" or "body".
type Host struct {
	id, name string
	htmlURL  string // the page to GET, e.g. "http://example.com/${id}"
	selector string
	handler  *snippet.Handler

	client *http.Client
}

// New constructs an HtmlOnly host. selector is a CSS selector evaluated
// against the fetched document; matching nodes' text content is
// concatenated (§4.6).
func New(id, name, htmlURLPattern, gistIDRe, selector string) *Host {
	return &Host{
		id:       id,
		name:     name,
		htmlURL:  htmlURLPattern,
		selector: selector,
		handler:  snippet.NewHandler(id, htmlURLPattern, gistIDRe),
		client:   http.DefaultClient,
	}
}

func (h *Host) ID() string   { return h.id }
func (h *Host) Name() string { return h.name }

func (h *Host) idURL(id string) string {
	return strings.Replace(h.htmlURL, "${id}", id, 1)
}

// FetchGist downloads the HTML page, extracts the gist text per the
// configured selector, normalizes its trailing newline, and hands it to
// store_gist (§4.6).
func (h *Host) FetchGist(ctx context.Context, g gist.Gist, mode hostpkg.FetchMode) error {
	if !h.handler.NeedFetch(g, mode) {
		return nil
	}
	id := snippet.ResolveID(g)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.idURL(id), nil)
	if err != nil {
		return fmt.Errorf("htmlonly: build request for gist %s: %w", g.URI, err)
	}
	req.Header.Set("User-Agent", config.UserAgent())
	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("htmlonly: fetch gist %s: %w", g.URI, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("htmlonly: fetch gist %s: unexpected status %s", g.URI, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Errorf("htmlonly: parse html for gist %s: %w", g.URI, err)
	}
	text := extractText(doc, h.selector)
	return h.handler.StoreGist(g, strings.NewReader(text))
}

// extractText concatenates the text content of every node matching
// selector, then ensures the result ends with the platform line
// separator — trimming trailing whitespace and appending one if it does
// not (§4.6, §8's round-trip law).
func extractText(doc *goquery.Document, selector string) string {
	var b strings.Builder
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		b.WriteString(s.Text())
	})
	sep := "\n"
	if runtime.GOOS == "windows" {
		sep = "\r\n"
	}
	text := b.String()
	if strings.HasSuffix(text, sep) {
		return text
	}
	return strings.TrimRight(text, " \t\r\n") + sep
}

// GistURL substitutes the gist's id into the HTML URL pattern.
func (h *Host) GistURL(ctx context.Context, g gist.Gist) (string, error) {
	return h.idURL(snippet.ResolveID(g)), nil
}

// GistInfo returns no metadata: HtmlOnly hosts expose no API, only a
// scraped page (§4.6).
func (h *Host) GistInfo(ctx context.Context, g gist.Gist) (*gist.Info, error) {
	return nil, nil
}

// ResolveURL canonicalizes url and matches it against the synthesized
// regex, same as Basic (§4.5, reused by §4.6).
func (h *Host) ResolveURL(ctx context.Context, url string) (*gist.Gist, error) {
	id, ok := h.handler.MatchID(h.handler.Canonicalize(url))
	if !ok {
		return nil, nil
	}
	g := gist.New(snippet.MakeURI(h.id, id)).WithID(id)
	return &g, nil
}
