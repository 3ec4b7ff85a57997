package decorator_test

import (
	"context"
	"testing"

	"github.com/gisht/gisht/internal/gist"
	"github.com/gisht/gisht/internal/host"
	"github.com/gisht/gisht/internal/host/decorator"
	"github.com/gisht/gisht/internal/uri"
)

// fakeBase is a minimal Host whose gist_url has no query/extension/suffix
// of its own, so decorator round-trips are easy to check in isolation.
type fakeBase struct{}

func (fakeBase) ID() string   { return "hb" }
func (fakeBase) Name() string { return "fake" }
func (fakeBase) FetchGist(ctx context.Context, g gist.Gist, mode host.FetchMode) error {
	return nil
}
func (fakeBase) GistInfo(ctx context.Context, g gist.Gist) (*gist.Info, error) { return g.Info, nil }
func (fakeBase) GistURL(ctx context.Context, g gist.Gist) (string, error) {
	return "http://hastebin.com/" + g.URI.Name, nil
}
func (fakeBase) ResolveURL(ctx context.Context, rawURL string) (*gist.Gist, error) {
	const prefix = "http://hastebin.com/"
	if len(rawURL) <= len(prefix) || rawURL[:len(prefix)] != prefix {
		return nil, nil
	}
	name := rawURL[len(prefix):]
	g := gist.New(uri.URI{Host: "hb", Name: name}).WithID(name)
	return &g, nil
}

func TestHastebinExtensionRoundTrip(t *testing.T) {
	d := decorator.NewHastebinExtension(fakeBase{})
	u := "http://hastebin.com/xkcdab.py"
	g, err := d.ResolveURL(context.Background(), u)
	if err != nil || g == nil {
		t.Fatalf("ResolveURL: %v, %v", g, err)
	}
	if g.Info.Get(gist.Id) != "xkcdab.py" {
		t.Errorf("got Info[Id]=%q, want xkcdab.py", g.Info.Get(gist.Id))
	}
	back, err := d.GistURL(context.Background(), *g)
	if err != nil {
		t.Fatalf("GistURL: %v", err)
	}
	if back != u {
		t.Errorf("round trip got %q, want %q", back, u)
	}
}

func TestSprungeRoundTrip(t *testing.T) {
	d := decorator.NewSprunge(fakeBase{})
	u := "http://hastebin.com/aB12cD?py"
	g, err := d.ResolveURL(context.Background(), u)
	if err != nil || g == nil {
		t.Fatalf("ResolveURL: %v, %v", g, err)
	}
	if g.Info.Get(gist.Language) != "py" {
		t.Errorf("got Info[Language]=%q, want py", g.Info.Get(gist.Language))
	}
	back, err := d.GistURL(context.Background(), *g)
	if err != nil {
		t.Fatalf("GistURL: %v", err)
	}
	if back != u {
		t.Errorf("round trip got %q, want %q", back, u)
	}
}

func TestIxIOPathSegmentRoundTrip(t *testing.T) {
	d := decorator.NewIxIO(fakeBase{})
	u := "http://hastebin.com/aB12cD/python"
	g, err := d.ResolveURL(context.Background(), u)
	if err != nil || g == nil {
		t.Fatalf("ResolveURL: %v, %v", g, err)
	}
	if g.Info.Get(gist.Language) != "python" {
		t.Errorf("got Info[Language]=%q, want python", g.Info.Get(gist.Language))
	}
	back, err := d.GistURL(context.Background(), *g)
	if err != nil {
		t.Fatalf("GistURL: %v", err)
	}
	if back != u+"/" {
		t.Errorf("round trip got %q, want %q", back, u+"/")
	}
}

func TestIxIOHyphenSuffixResolves(t *testing.T) {
	d := decorator.NewIxIO(fakeBase{})
	g, err := d.ResolveURL(context.Background(), "http://hastebin.com/aB12cD-python")
	if err != nil || g == nil {
		t.Fatalf("ResolveURL: %v, %v", g, err)
	}
	if g.Info.Get(gist.Language) != "python" {
		t.Errorf("got Info[Language]=%q, want python", g.Info.Get(gist.Language))
	}
}
