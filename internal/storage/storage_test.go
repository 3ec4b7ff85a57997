package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/gisht/gisht/internal/storage"
)

func TestTreePathSnippetHost(t *testing.T) {
	t.Setenv("GISHT_GISTS_DIR", "/gists")
	got := storage.TreePath("pb", "", "", "aB12cD")
	want := filepath.Join("/gists", "pb", "aB12cD")
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestTreePathGitHubUsesIDNotOwner(t *testing.T) {
	t.Setenv("GISHT_GISTS_DIR", "/gists")
	got := storage.TreePath("gh", "abcdef123", "Octocat", "hello")
	want := filepath.Join("/gists", "gh", "abcdef123", "hello")
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestBinaryPathAlwaysUsesOwner(t *testing.T) {
	t.Setenv("GISHT_BIN_DIR", "/bin")
	got := storage.BinaryPath("gh", "Octocat", "hello")
	want := filepath.Join("/bin", "gh", "Octocat", "hello")
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
