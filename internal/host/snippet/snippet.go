// Package snippet is the shared handler for single-file, immutable hosts
// (§4.4, component C7): URL canonicalization and pattern-derived regex
// synthesis, id/name folding, need_fetch, and store_gist.
package snippet

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/google/uuid"

	"github.com/gisht/gisht/internal/gist"
	"github.com/gisht/gisht/internal/host"
	"github.com/gisht/gisht/internal/logx"
	"github.com/gisht/gisht/internal/storage"
	"github.com/gisht/gisht/internal/uri"
)

const idPlaceholder = `${id}`

// Handler holds the logic shared by every single-file host: a gist is
// fully identified by an opaque id that also serves as the URI name, and
// is fetched, stored, and symlinked the same way regardless of which
// paste service it came from (§4.4).
type Handler struct {
	hostID        string
	htmlURLPattern string
	idRe          *regexp.Regexp // synthesized from htmlURLPattern + gistIDRe
}

// NewHandler validates htmlURLPattern per §4.4's "URL pattern validation"
// rule (must parse as a URL, begin with http(s)://, and contain the
// literal "${id}" placeholder) and synthesizes the matching regex from
// gistIDRe. It panics on an invalid pattern, since host construction
// happens once at startup from compiled-in constants, never from
// user input.
func NewHandler(hostID, htmlURLPattern, gistIDRe string) *Handler {
	if err := validatePattern(htmlURLPattern); err != nil {
		panic(fmt.Sprintf("snippet: host %q: %v", hostID, err))
	}
	re, err := synthesizeRegex(htmlURLPattern, gistIDRe)
	if err != nil {
		panic(fmt.Sprintf("snippet: host %q: %v", hostID, err))
	}
	return &Handler{hostID: hostID, htmlURLPattern: htmlURLPattern, idRe: re}
}

func validatePattern(pattern string) error {
	if !strings.HasPrefix(pattern, "http://") && !strings.HasPrefix(pattern, "https://") {
		return fmt.Errorf("url pattern %q must begin with http:// or https://", pattern)
	}
	if !strings.Contains(pattern, idPlaceholder) {
		return fmt.Errorf("url pattern %q must contain the %s placeholder", pattern, idPlaceholder)
	}
	probe := strings.ReplaceAll(pattern, idPlaceholder, "x")
	if _, err := url.Parse(probe); err != nil {
		return fmt.Errorf("url pattern %q does not parse as a URL: %w", pattern, err)
	}
	return nil
}

// synthesizeRegex replaces the escaped "${id}" placeholder in the escaped
// pattern with a named capture group using gistIDRe, anchored ^…$ (§4.4).
func synthesizeRegex(pattern, gistIDRe string) (*regexp.Regexp, error) {
	escaped := regexp.QuoteMeta(pattern)
	placeholder := regexp.QuoteMeta(idPlaceholder)
	body := strings.Replace(escaped, placeholder, "(?P<id>"+gistIDRe+")", 1)
	return regexp.Compile("^" + body + "$")
}

// Canonicalize normalizes rawURL before pattern matching: trim whitespace,
// align the scheme to the pattern's own scheme, and add/remove "www." to
// match the pattern's host (§4.4).
func (h *Handler) Canonicalize(rawURL string) string {
	s := strings.TrimSpace(rawURL)

	wantHTTPS := strings.HasPrefix(h.htmlURLPattern, "https://")
	if wantHTTPS && strings.HasPrefix(s, "http://") {
		s = "https://" + s[len("http://"):]
	} else if !wantHTTPS && strings.HasPrefix(s, "https://") {
		s = "http://" + s[len("https://"):]
	}

	patternHasWWW := strings.Contains(strings.SplitN(h.htmlURLPattern, "://", 2)[1], "www.")
	u, err := url.Parse(s)
	if err != nil {
		return s
	}
	hasWWW := strings.HasPrefix(u.Host, "www.")
	switch {
	case patternHasWWW && !hasWWW:
		u.Host = "www." + u.Host
	case !patternHasWWW && hasWWW:
		u.Host = strings.TrimPrefix(u.Host, "www.")
	}
	return u.String()
}

// MatchID applies the synthesized regex to a canonicalized URL and returns
// the captured id, or ("", false) when the URL does not match.
func (h *Handler) MatchID(canonicalURL string) (string, bool) {
	m := h.idRe.FindStringSubmatch(canonicalURL)
	if m == nil {
		return "", false
	}
	idx := h.idRe.SubexpIndex("id")
	return m[idx], true
}

// ResolveID returns g's host-specific id, folding it in from the URI name
// when unset — snippet hosts encode the id directly as the URI's name
// (§4.4's "Gist resolution from URI").
func ResolveID(g gist.Gist) string {
	if g.HasID() {
		return g.ID
	}
	return g.URI.Name
}

// Path is the on-disk tree path (a single file) for a snippet gist.
func (h *Handler) Path(g gist.Gist) string {
	return storage.TreePath(h.hostID, "", g.URI.Owner, g.URI.Name)
}

// BinaryPath is the executable symlink path for a snippet gist.
func (h *Handler) BinaryPath(g gist.Gist) string {
	return storage.BinaryPath(h.hostID, g.URI.Owner, g.URI.Name)
}

// NeedFetch reports whether fetch_gist must perform a download: true iff
// mode is Always, or the gist is not yet local (§4.4).
func (h *Handler) NeedFetch(g gist.Gist, mode host.FetchMode) bool {
	if mode == host.Always {
		return true
	}
	_, err := os.Stat(h.BinaryPath(g))
	return err != nil
}

// StoreGist writes all bytes read from r to the gist's tree path, marks
// the file executable, and creates the binary symlink if it doesn't
// already exist (§4.4, and the ordering guarantee in §5: write+flush,
// then chmod+x, then symlink).
//
// The body is first written to a uuid-named staging file in the same
// directory and renamed into place, so a reader that observes the final
// path by its well-known name never sees a partially written file —
// concurrent invocations on the same gist are otherwise undefined
// behavior (§5), but this specific race is cheap to close off.
func (h *Handler) StoreGist(g gist.Gist, r io.Reader) error {
	path := h.Path(g)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("snippet: create parent dir for %s: %w", g.URI, err)
	}

	var buf bytes.Buffer
	n, err := buf.ReadFrom(r)
	if err != nil {
		return fmt.Errorf("snippet: read gist %s body: %w", g.URI, err)
	}
	if n == 0 {
		logx.Warn("gist %s: download produced zero bytes", g.URI)
	}

	staging := filepath.Join(dir, "."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(staging, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("snippet: open staging file for %s: %w", path, err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		os.Remove(staging)
		return fmt.Errorf("snippet: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(staging)
		return fmt.Errorf("snippet: close %s: %w", path, err)
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(staging, 0o755); err != nil {
			os.Remove(staging)
			return fmt.Errorf("snippet: chmod +x %s: %w", path, err)
		}
	}
	if err := os.Rename(staging, path); err != nil {
		os.Remove(staging)
		return fmt.Errorf("snippet: rename staging file into %s: %w", path, err)
	}

	binPath := h.BinaryPath(g)
	if _, err := os.Lstat(binPath); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(binPath), 0o755); err != nil {
		return fmt.Errorf("snippet: create parent dir for symlink %s: %w", binPath, err)
	}
	if err := os.Symlink(path, binPath); err != nil {
		return fmt.Errorf("snippet: symlink %s -> %s: %w", binPath, path, err)
	}
	return nil
}

// HTMLURLPattern returns the host's browser-URL pattern, still containing
// the literal "${id}" placeholder, for callers that need to substitute a
// concrete id (e.g. gist_url).
func (h *Handler) HTMLURLPattern() string { return h.htmlURLPattern }

// MakeURI builds a URI for this host from a bare name, for snippet hosts
// where owner is always empty.
func MakeURI(hostID, name string) uri.URI {
	return uri.URI{Host: hostID, Name: name}
}
