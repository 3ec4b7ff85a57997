// Package github implements the GitHub Gist host (§4.7, component C10),
// the only mutable host in the core: it clones and pulls an actual git
// repository per gist, rather than downloading a single static file.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"time"

	gogithub "github.com/google/go-github/v57/github"

	"github.com/gisht/gisht/internal/config"
	"github.com/gisht/gisht/internal/gist"
	hostpkg "github.com/gisht/gisht/internal/host"
	"github.com/gisht/gisht/internal/logx"
	"github.com/gisht/gisht/internal/result"
	"github.com/gisht/gisht/internal/storage"
	"github.com/gisht/gisht/internal/uri"
	git "github.com/gisht/gisht/pkg/gitshell"
)

const (
	hostID   = "gh"
	hostName = "GitHub Gist"
	perPage  = 50

	// updateInterval is the staleness threshold needs_update applies to
	// FETCH_HEAD's mtime (§4.7).
	updateInterval = 7 * 24 * time.Hour
)

var htmlURLRe = regexp.MustCompile(`^https?://gist\.github\.com/(?:([A-Za-z0-9_-]+)/)?([0-9a-fA-F]+)$`)

// Host is the GitHub Gist adapter. It owns a go-github client for the
// paged listing/metadata API and shells out to git for clone/pull.
type Host struct {
	client *gogithub.Client
}

// New constructs the GitHub host. token may be "" for unauthenticated,
// lower-rate-limited API calls.
func New(token string) *Host {
	hc := http.DefaultClient
	if token != "" {
		hc = &http.Client{Transport: &bearerTransport{token: token, base: http.DefaultTransport}}
	}
	c := gogithub.NewClient(hc)
	c.UserAgent = config.UserAgent()
	return &Host{client: c}
}

// bearerTransport attaches a bearer token to every outgoing request. No
// OAuth2 library appears anywhere in the retrieved corpus, so this is a
// deliberately minimal stdlib RoundTripper rather than an adopted
// dependency.
type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(req)
}

// SetClientForTesting replaces h's go-github client, letting tests point
// the host at an httptest server instead of the real API.
func SetClientForTesting(h *Host, c *gogithub.Client) {
	h.client = c
}

func (h *Host) ID() string   { return hostID }
func (h *Host) Name() string { return hostName }

// resolveID implements §4.7's "Resolve-to-id": pass through an already
// populated id, else recover it from a local clone's directory name, else
// find it by paging the owner's gist listing for a URI-matching entry.
func (h *Host) resolveID(ctx context.Context, g gist.Gist) (string, error) {
	if g.HasID() {
		return g.ID, nil
	}
	binPath := storage.BinaryPath(hostID, g.URI.Owner, g.URI.Name)
	if target, err := os.Readlink(binPath); err == nil {
		return filepath.Base(filepath.Dir(target)), nil
	}
	return h.findIDByListing(ctx, g.URI.Owner, g.URI.Name)
}

// findIDByListing pages through owner's gists (§4.7's "Paged listing")
// until a namesake-matching entry is found.
func (h *Host) findIDByListing(ctx context.Context, owner, name string) (string, error) {
	opt := &gogithub.GistListOptions{ListOptions: gogithub.ListOptions{PerPage: perPage}}
	for {
		gists, resp, err := h.client.Gists.List(ctx, owner, opt)
		if err != nil {
			return "", fmt.Errorf("github: list gists for %s: %w", owner, err)
		}
		for _, gs := range gists {
			files := sortedFilenames(gs.Files)
			if len(files) == 0 {
				logx.Warn("github: gist %s has no files, skipping", gs.GetID())
				continue
			}
			if files[0] == name {
				return gs.GetID(), nil
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return "", result.ErrNotFound
}

func sortedFilenames(files map[gogithub.GistFilename]gogithub.GistFile) []string {
	names := make([]string, 0, len(files))
	for fn := range files {
		names = append(names, string(fn))
	}
	sort.Strings(names)
	return names
}

// repoDir returns the directory a gist's git clone lives in: the parent
// of its namesake file's tree path (§3's id-discriminated layout).
func repoDir(id, owner, name string) string {
	return filepath.Dir(storage.TreePath(hostID, id, owner, name))
}

// FetchGist implements §4.7's update-policy dispatch: clone when not
// local, pull when local and either Always or (Auto and stale), no-op
// under New or a fresh Auto.
func (h *Host) FetchGist(ctx context.Context, g gist.Gist, mode hostpkg.FetchMode) error {
	id, err := h.resolveID(ctx, g)
	if err != nil {
		return err
	}
	g = g.WithID(id)
	dir := repoDir(id, g.URI.Owner, g.URI.Name)

	if _, err := os.Stat(dir); err != nil {
		return h.clone(ctx, g, dir)
	}

	switch mode {
	case hostpkg.Always:
		return h.pull(ctx, g, dir)
	case hostpkg.New:
		return nil
	default: // Auto
		stale, err := needsUpdate(dir)
		if err != nil {
			return err
		}
		if stale {
			return h.pull(ctx, g, dir)
		}
		return nil
	}
}

// needsUpdate is true when FETCH_HEAD is older than updateInterval, its
// mtime cannot be read, or its mtime is in the future (§4.7).
func needsUpdate(dir string) (bool, error) {
	fi, err := git.New(dir).FetchHeadAge()
	if err != nil {
		return true, nil
	}
	age := time.Since(fi.ModTime())
	return age < 0 || age > updateInterval, nil
}

// clone implements §4.7's Clone: prefer a cached RawUrl, else look up the
// single-gist API for git_pull_url, then clone and symlink the namesake.
func (h *Host) clone(ctx context.Context, g gist.Gist, dir string) error {
	rawURL := ""
	if g.Info != nil && g.Info.Has(gist.RawUrl) {
		rawURL = g.Info.Get(gist.RawUrl)
	}
	if rawURL == "" {
		apiGist, _, err := h.client.Gists.Get(ctx, g.ID)
		if err != nil {
			return fmt.Errorf("github: look up gist %s: %w", g.ID, err)
		}
		rawURL = apiGist.GetGitPullURL()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("github: create gist dir %s: %w", dir, err)
	}
	if err := git.New(dir).Clone(ctx, rawURL); err != nil {
		return fmt.Errorf("github: clone gist %s: %w", g.URI, err)
	}
	return h.markExecutableAndSymlink(ctx, g, dir)
}

func (h *Host) markExecutableAndSymlink(ctx context.Context, g gist.Gist, dir string) error {
	files, err := git.New(dir).TopLevelFiles(ctx)
	if err != nil {
		return fmt.Errorf("github: list files of gist %s: %w", g.URI, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("github: gist %s has no files", g.URI)
	}
	exePath := filepath.Join(dir, files[0])
	if runtime.GOOS != "windows" {
		if err := os.Chmod(exePath, 0o755); err != nil {
			return fmt.Errorf("github: chmod +x %s: %w", exePath, err)
		}
	}
	binPath := storage.BinaryPath(hostID, g.URI.Owner, g.URI.Name)
	if _, err := os.Lstat(binPath); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(binPath), 0o755); err != nil {
		return fmt.Errorf("github: create parent dir for symlink %s: %w", binPath, err)
	}
	return os.Symlink(exePath, binPath)
}

// pull implements §4.7's Pull and the error-code mapping beneath it:
// uncommitted changes are fatal, a conflict or a pre-existing unmerged
// state recover via merge-reset, anything else is fatal.
func (h *Host) pull(ctx context.Context, g gist.Gist, dir string) error {
	gt := git.New(dir)

	if gt.MergeInProgress() {
		if rerr := h.mergeReset(ctx, gt); rerr != nil {
			return fmt.Errorf("github: merge-reset for gist %s: %w", g.URI, rerr)
		}
		logx.Warn("github: gist %s had an unfinished merge, reset to HEAD", g.URI)
	}

	clean, err := gt.IsClean(ctx)
	if err != nil {
		return fmt.Errorf("github: check working tree of gist %s: %w", g.URI, err)
	}
	if !clean {
		return &result.GitConflictError{URI: g.URI.String(), Cause: git.ErrDirtyTree}
	}

	if err := gt.FetchUpdate(ctx); err != nil {
		return fmt.Errorf("github: fetch update for gist %s: %w", g.URI, err)
	}

	if err := gt.CheckoutForce(ctx, "HEAD"); err != nil {
		var gitErr *git.GitError
		if errors.As(err, &gitErr) {
			switch gitErr.Classify() {
			case git.ErrConflict, git.ErrUnmerged:
				if rerr := h.mergeReset(ctx, gt); rerr != nil {
					return fmt.Errorf("github: merge-reset for gist %s: %w", g.URI, rerr)
				}
				logx.Warn("github: merge conflict pulling gist %s, reset to previous HEAD", g.URI)
				return nil
			case git.ErrDirtyTree:
				return &result.GitConflictError{URI: g.URI.String(), Cause: err}
			}
		}
		return fmt.Errorf("github: checkout HEAD for gist %s: %w", g.URI, err)
	}
	return nil
}

// mergeReset implements §4.7's Merge-reset: reset --hard to HEAD, then
// remove MERGE_HEAD, abandoning the merge without preserving unrelated
// working-tree changes.
func (h *Host) mergeReset(ctx context.Context, gt *git.Git) error {
	if !gt.MergeInProgress() {
		return nil
	}
	head, err := gt.HEAD(ctx)
	if err != nil {
		return fmt.Errorf("resolve HEAD: %w", err)
	}
	if err := gt.ResetHard(ctx, head); err != nil {
		return fmt.Errorf("reset --hard: %w", err)
	}
	return gt.RemoveMergeHead()
}

// GistURL returns a cached BrowserUrl if present, else looks it up via
// the single-gist API.
func (h *Host) GistURL(ctx context.Context, g gist.Gist) (string, error) {
	if g.Info != nil && g.Info.Has(gist.BrowserUrl) {
		return g.Info.Get(gist.BrowserUrl), nil
	}
	id, err := h.resolveID(ctx, g)
	if err != nil {
		return "", err
	}
	apiGist, _, err := h.client.Gists.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("github: look up gist %s: %w", id, err)
	}
	return apiGist.GetHTMLURL(), nil
}

// GistInfo implements §4.7's Info fields mapping.
func (h *Host) GistInfo(ctx context.Context, g gist.Gist) (*gist.Info, error) {
	id, err := h.resolveID(ctx, g)
	if err != nil {
		return nil, err
	}
	apiGist, _, err := h.client.Gists.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("github: look up gist %s: %w", id, err)
	}
	return infoFromAPIGist(apiGist), nil
}

func infoFromAPIGist(g *gogithub.Gist) *gist.Info {
	return gist.NewInfo().
		Set(gist.Id, g.GetID()).
		Set(gist.Owner, ownerLogin(g)).
		Set(gist.BrowserUrl, g.GetHTMLURL()).
		Set(gist.RawUrl, g.GetGitPullURL()).
		Set(gist.Description, g.GetDescription()).
		Set(gist.Language, languageList(g)).
		Set(gist.CreatedAt, g.GetCreatedAt().Format(time.RFC3339)).
		Set(gist.UpdatedAt, g.GetUpdatedAt().Format(time.RFC3339))
}

func ownerLogin(g *gogithub.Gist) string {
	if g.GetOwner().GetLogin() != "" {
		return g.GetOwner().GetLogin()
	}
	return "anonymous"
}

// languageList implements §4.7's Language field: the single file's
// language, or for multi-file gists a comma-separated list of distinct
// languages in namesake-first alphabetical filename order.
func languageList(g *gogithub.Gist) string {
	names := sortedFilenames(g.Files)
	seen := make(map[string]bool, len(names))
	var langs []string
	for _, n := range names {
		lang := g.Files[gogithub.GistFilename(n)].GetLanguage()
		if lang == "" || seen[lang] {
			continue
		}
		seen[lang] = true
		langs = append(langs, lang)
	}
	return strings.Join(langs, ",")
}

// ResolveURL matches https://gist.github.com/[owner/]id and looks up the
// namesake and owner via the single-gist API (§4.7's "URL → gist").
func (h *Host) ResolveURL(ctx context.Context, url string) (*gist.Gist, error) {
	m := htmlURLRe.FindStringSubmatch(url)
	if m == nil {
		return nil, nil
	}
	owner, id := m[1], m[2]

	apiGist, _, err := h.client.Gists.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("github: look up gist %s: %w", id, err)
	}
	names := sortedFilenames(apiGist.Files)
	if len(names) == 0 {
		return nil, fmt.Errorf("github: gist %s has no files", id)
	}
	if owner == "" {
		owner = ownerLogin(apiGist)
	}
	out := gist.New(uri.URI{Host: hostID, Owner: owner, Name: names[0]}).WithID(id).WithInfo(infoFromAPIGist(apiGist))
	return &out, nil
}
