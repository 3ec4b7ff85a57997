// Package multifile implements the glot.io-shaped multi-file snippet host
// (§4.8, component C11): a single JSON document describing a list of
// {name, content} files, the first of which is the executable.
package multifile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gisht/gisht/internal/config"
	"github.com/gisht/gisht/internal/gist"
	"github.com/gisht/gisht/internal/host"
	"github.com/gisht/gisht/internal/host/snippet"
	"github.com/gisht/gisht/internal/storage"
)

// Host is a multi-file paste service addressed by an opaque id whose API
// returns a JSON document listing every file in the gist.
type Host struct {
	id, name string
	apiURL   string           // e.g. "https://glot.io/api/snippets/${id}"
	htmlURL  string           // e.g. "https://glot.io/snippets/${id}"
	handler  *snippet.Handler // Canonicalize/MatchID only; fetch/store is this package's own
	client   *http.Client
}

// apiFile is one entry of the API's file list.
type apiFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// apiSnippet is the JSON document the glot.io-shaped API returns for a
// single snippet (§4.8).
type apiSnippet struct {
	Owner    string    `json:"owner"`
	Title    string    `json:"title"`
	Language string    `json:"language"`
	URL      string    `json:"url"`
	Created  string    `json:"created"`
	Modified string    `json:"modified"`
	Files    []apiFile `json:"files"`
}

// New constructs a multifile host. apiURLPattern and htmlURLPattern both
// carry a "${id}" placeholder substituted at request time; gistIDRe is the
// character class an id must match, used only for ResolveURL (§4.8, same
// ${id}-regex mechanism as Basic, grounded on the original's Glot::new
// wiring its SnippetHandler with Regex::new("[0-9a-z]+")).
func New(id, name, apiURLPattern, htmlURLPattern, gistIDRe string) *Host {
	return &Host{
		id:      id,
		name:    name,
		apiURL:  apiURLPattern,
		htmlURL: htmlURLPattern,
		handler: snippet.NewHandler(id, htmlURLPattern, gistIDRe),
		client:  http.DefaultClient,
	}
}

func (h *Host) ID() string   { return h.id }
func (h *Host) Name() string { return h.name }

func substID(pattern, id string) string {
	return strings.Replace(pattern, "${id}", id, 1)
}

func (h *Host) fetchSnippet(ctx context.Context, id string) (*apiSnippet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, substID(h.apiURL, id), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", config.UserAgent())
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("multifile: unexpected status %s", resp.Status)
	}
	var snip apiSnippet
	if err := json.NewDecoder(resp.Body).Decode(&snip); err != nil {
		return nil, fmt.Errorf("multifile: decode snippet: %w", err)
	}
	return &snip, nil
}

// FetchGist downloads the snippet's file list (unless already local and
// mode doesn't force it), writes every file under the gist's directory,
// and symlinks the first file as the executable (§4.8).
func (h *Host) FetchGist(ctx context.Context, g gist.Gist, mode host.FetchMode) error {
	id := snippet.ResolveID(g)
	binPath := storage.BinaryPath(h.id, "", g.URI.Name)
	if mode != host.Always {
		if _, err := os.Stat(binPath); err == nil {
			return nil
		}
	}

	snip, err := h.fetchSnippet(ctx, id)
	if err != nil {
		return fmt.Errorf("multifile: fetch gist %s: %w", g.URI, err)
	}
	if len(snip.Files) == 0 {
		return fmt.Errorf("multifile: gist %s has no files", g.URI)
	}

	dir := storage.TreePath(h.id, "", "", g.URI.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("multifile: create gist dir %s: %w", dir, err)
	}
	for _, f := range snip.Files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			return fmt.Errorf("multifile: write %s: %w", path, err)
		}
	}

	exePath := filepath.Join(dir, snip.Files[0].Name)
	if runtime.GOOS != "windows" {
		if err := os.Chmod(exePath, 0o755); err != nil {
			return fmt.Errorf("multifile: chmod +x %s: %w", exePath, err)
		}
	}
	if _, err := os.Lstat(binPath); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(binPath), 0o755); err != nil {
		return fmt.Errorf("multifile: create parent dir for symlink %s: %w", binPath, err)
	}
	return os.Symlink(exePath, binPath)
}

// GistURL substitutes the gist's id into the HTML URL pattern.
func (h *Host) GistURL(ctx context.Context, g gist.Gist) (string, error) {
	return substID(h.htmlURL, snippet.ResolveID(g)), nil
}

// GistInfo fetches the snippet's metadata JSON and maps it onto Info
// (§4.8): owner, title->Description, language, url->RawUrl, created,
// modified; BrowserUrl is synthesized rather than read from the API.
func (h *Host) GistInfo(ctx context.Context, g gist.Gist) (*gist.Info, error) {
	id := snippet.ResolveID(g)
	snip, err := h.fetchSnippet(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("multifile: gist info for %s: %w", g.URI, err)
	}
	info := gist.NewInfo().
		Set(gist.Id, id).
		Set(gist.Owner, snip.Owner).
		Set(gist.Description, snip.Title).
		Set(gist.Language, snip.Language).
		Set(gist.RawUrl, snip.URL).
		Set(gist.BrowserUrl, substID(h.htmlURL, id)).
		Set(gist.CreatedAt, snip.Created).
		Set(gist.UpdatedAt, snip.Modified)
	return info, nil
}

// ResolveURL canonicalizes url and matches it against the handler's
// synthesized regex over the HTML URL pattern, the same ${id}-placeholder
// mechanism Basic and HtmlOnly use (§4.8, grounded on the original's
// Glot::resolve_url, which just delegates to its SnippetHandler).
func (h *Host) ResolveURL(ctx context.Context, url string) (*gist.Gist, error) {
	id, ok := h.handler.MatchID(h.handler.Canonicalize(url))
	if !ok {
		return nil, nil
	}
	g := gist.New(snippet.MakeURI(h.id, id)).WithID(id)
	return &g, nil
}
