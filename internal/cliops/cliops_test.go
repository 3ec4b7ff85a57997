package cliops_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/gisht/gisht/internal/cliops"
	"github.com/gisht/gisht/internal/gist"
	"github.com/gisht/gisht/internal/host"
	"github.com/gisht/gisht/internal/storage"
	"github.com/gisht/gisht/internal/uri"
)

type fakeHost struct {
	id, name string
	content  string
	info     *gist.Info
	gistURL  string
	fetched  int
}

func (f *fakeHost) ID() string   { return f.id }
func (f *fakeHost) Name() string { return f.name }
func (f *fakeHost) FetchGist(ctx context.Context, g gist.Gist, mode host.FetchMode) error {
	f.fetched++
	path := storage.BinaryPath(g.URI.Host, g.URI.Owner, g.URI.Name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(f.content), 0o755)
}
func (f *fakeHost) GistURL(ctx context.Context, g gist.Gist) (string, error) { return f.gistURL, nil }
func (f *fakeHost) GistInfo(ctx context.Context, g gist.Gist) (*gist.Info, error) {
	return f.info, nil
}
func (f *fakeHost) ResolveURL(ctx context.Context, rawURL string) (*gist.Gist, error) {
	return nil, nil
}

func newTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GISHT_GISTS_DIR", t.TempDir())
	t.Setenv("GISHT_BIN_DIR", t.TempDir())
}

func TestWhichPrintsBinaryPath(t *testing.T) {
	newTestEnv(t)
	h := &fakeHost{id: "fk", content: "echo hi\n"}
	g := gist.New(uri.URI{Host: "fk", Name: "example"})

	r, w, _ := os.Pipe()
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	if err := cliops.Which(context.Background(), h, g); err != nil {
		t.Fatalf("Which: %v", err)
	}
	w.Close()
	out, _ := io.ReadAll(r)

	want := storage.BinaryPath("fk", "", "example")
	if string(bytes.TrimSpace(out)) != want {
		t.Errorf("got %q, want %q", bytes.TrimSpace(out), want)
	}
	if h.fetched != 1 {
		t.Errorf("expected exactly one fetch, got %d", h.fetched)
	}
}

func TestPrintWritesBinaryContentToStdout(t *testing.T) {
	newTestEnv(t)
	h := &fakeHost{id: "fk", content: "print me\n"}
	g := gist.New(uri.URI{Host: "fk", Name: "example"})

	r, w, _ := os.Pipe()
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	if err := cliops.Print(context.Background(), h, g); err != nil {
		t.Fatalf("Print: %v", err)
	}
	w.Close()
	out, _ := io.ReadAll(r)
	if string(out) != "print me\n" {
		t.Errorf("got %q", out)
	}
}

func TestInfoPrintsDatumsAndLocalLine(t *testing.T) {
	newTestEnv(t)
	info := gist.NewInfo().Set(gist.Owner, "octocat")
	h := &fakeHost{id: "fk", content: "x", info: info}
	g := gist.New(uri.URI{Host: "fk", Name: "example"})

	r, w, _ := os.Pipe()
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	if err := cliops.Info(context.Background(), h, g); err != nil {
		t.Fatalf("Info: %v", err)
	}
	w.Close()
	out, _ := io.ReadAll(r)
	if !bytes.Contains(out, []byte("octocat")) {
		t.Errorf("expected Owner datum in output, got %q", out)
	}
	if !bytes.Contains(out, []byte("Local: yes")) {
		t.Errorf("expected Local: yes line, got %q", out)
	}
}

type hostsFake struct{ id, name string }

func (f hostsFake) ID() string   { return f.id }
func (f hostsFake) Name() string { return f.name }
func (f hostsFake) FetchGist(ctx context.Context, g gist.Gist, mode host.FetchMode) error {
	return nil
}
func (f hostsFake) GistURL(ctx context.Context, g gist.Gist) (string, error) { return "", nil }
func (f hostsFake) GistInfo(ctx context.Context, g gist.Gist) (*gist.Info, error) {
	return nil, nil
}
func (f hostsFake) ResolveURL(ctx context.Context, rawURL string) (*gist.Gist, error) {
	return nil, nil
}

func TestHostsListsRegistryEntriesPadded(t *testing.T) {
	reg := host.NewRegistry(hostsFake{id: "gh", name: "GitHub Gist"}, hostsFake{id: "pb", name: "Pastebin.com"})

	r, w, _ := os.Pipe()
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	cliops.Hosts(reg)
	w.Close()
	out, _ := io.ReadAll(r)
	if !bytes.Contains(out, []byte("gh :: GitHub Gist")) || !bytes.Contains(out, []byte("pb :: Pastebin.com")) {
		t.Errorf("got %q", out)
	}
}
