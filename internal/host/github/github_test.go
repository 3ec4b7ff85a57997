package github_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	gogithub "github.com/google/go-github/v57/github"

	"github.com/gisht/gisht/internal/gist"
	"github.com/gisht/gisht/internal/host"
	ghhost "github.com/gisht/gisht/internal/host/github"
	"github.com/gisht/gisht/internal/uri"
	git "github.com/gisht/gisht/pkg/gitshell"
	"github.com/gisht/gisht/pkg/gitshell/testutil"
)

func TestResolveURLMatchesGistGithubURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/gists/abc123", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"abc123","html_url":"https://gist.github.com/Octocat/abc123","owner":{"login":"Octocat"},"files":{"hello.sh":{"filename":"hello.sh","language":"Shell"}}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	h := newHostWithBaseURL(t, srv.URL)
	g, err := h.ResolveURL(context.Background(), "https://gist.github.com/Octocat/abc123")
	if err != nil {
		t.Fatalf("ResolveURL: %v", err)
	}
	if g == nil || g.ID != "abc123" || g.URI.Name != "hello.sh" || g.URI.Owner != "Octocat" {
		t.Errorf("got %+v", g)
	}
}

func TestResolveURLReturnsNilForUnrelatedURL(t *testing.T) {
	h := ghhost.New("")
	g, err := h.ResolveURL(context.Background(), "http://example.com/nope")
	if g != nil || err != nil {
		t.Errorf("expected (nil, nil), got (%v, %v)", g, err)
	}
}

func TestFetchGistCloneAndUpdatePolicy(t *testing.T) {
	upstream := testutil.LinearHistory(t, 1)

	gistsDir := t.TempDir()
	binDir := t.TempDir()
	t.Setenv("GISHT_GISTS_DIR", gistsDir)
	t.Setenv("GISHT_BIN_DIR", binDir)

	h := ghhost.New("")
	g := gist.New(uri.URI{Host: "gh", Owner: "Octocat", Name: "file1.txt"}).
		WithID("deadbeef").
		WithInfo(gist.NewInfo().Set(gist.RawUrl, upstream.Dir))

	if err := h.FetchGist(context.Background(), g, host.Auto); err != nil {
		t.Fatalf("FetchGist (clone): %v", err)
	}
	binPath := filepath.Join(binDir, "gh", "Octocat", "file1.txt")
	if _, err := os.Lstat(binPath); err != nil {
		t.Fatalf("expected binary symlink at %s: %v", binPath, err)
	}

	// git clone writes no FETCH_HEAD, so a second Auto fetch counts the
	// clone as stale and pulls; with no new commits upstream it must not
	// error.
	if err := h.FetchGist(context.Background(), g, host.Auto); err != nil {
		t.Fatalf("FetchGist (auto, fresh): %v", err)
	}
}

func TestDirtyWorkingTreeReportsNotClean(t *testing.T) {
	repo := testutil.DirtyWorkingTree(t)
	gt := git.New(repo.Dir)
	clean, err := gt.IsClean(context.Background())
	if err != nil {
		t.Fatalf("IsClean: %v", err)
	}
	if clean {
		t.Fatal("expected a dirty working tree fixture to report dirty")
	}
}

func TestMergeResetRemovesMergeHead(t *testing.T) {
	repo := testutil.WithMergeConflict(t)
	gt := git.New(repo.Dir)
	if !gt.MergeInProgress() {
		t.Fatal("expected WithMergeConflict fixture to leave a merge in progress")
	}
	head, err := gt.HEAD(context.Background())
	if err != nil {
		t.Fatalf("HEAD: %v", err)
	}
	if err := gt.ResetHard(context.Background(), head); err != nil {
		t.Fatalf("ResetHard: %v", err)
	}
	if err := gt.RemoveMergeHead(); err != nil {
		t.Fatalf("RemoveMergeHead: %v", err)
	}
	if gt.MergeInProgress() {
		t.Error("expected MERGE_HEAD to be gone after merge-reset")
	}
}

// newHostWithBaseURL builds a github.Host pointed at a test server instead
// of the real API, the same way the go-github test suite itself redirects
// its client in unit tests.
func newHostWithBaseURL(t *testing.T, rawURL string) *ghhost.Host {
	t.Helper()
	h := ghhost.New("")
	u, err := url.Parse(rawURL + "/")
	if err != nil {
		t.Fatalf("parse base url: %v", err)
	}
	client := gogithub.NewClient(nil)
	client.BaseURL = u
	ghhost.SetClientForTesting(h, client)
	return h
}
