// Package cliops implements gisht's trivial sibling commands — which,
// print, open, info, and the bare hosts listing — as thin consumers of
// the Host contract (§1, supplemented from original_source's
// commands/gist.rs and commands/non_gist.rs).
package cliops

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cli/browser"

	"github.com/gisht/gisht/internal/gist"
	"github.com/gisht/gisht/internal/host"
	"github.com/gisht/gisht/internal/logx"
	"github.com/gisht/gisht/internal/storage"
)

// Resolve ensures g is fetched and returns its binary path — the common
// first step of which/print/run (§4's data flow: parse URI → resolve
// host → fetch → locate executable).
func Resolve(ctx context.Context, h host.Host, g gist.Gist, mode host.FetchMode) (gist.Gist, string, error) {
	if err := h.FetchGist(ctx, g, mode); err != nil {
		return g, "", err
	}
	return g, storage.BinaryPath(g.URI.Host, g.URI.Owner, g.URI.Name), nil
}

// Which prints the gist's binary path to stdout.
func Which(ctx context.Context, h host.Host, g gist.Gist) error {
	_, path, err := Resolve(ctx, h, g, host.Auto)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// Print copies the gist binary's full content to stdout, unexecuted.
func Print(ctx context.Context, h host.Host, g gist.Gist) error {
	_, path, err := Resolve(ctx, h, g, host.Auto)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cliops: open %s: %w", path, err)
	}
	defer f.Close()
	if _, err := io.Copy(os.Stdout, f); err != nil {
		return fmt.Errorf("cliops: write gist %s to stdout: %w", g.URI, err)
	}
	return nil
}

// Open launches the gist's browser URL in the system's default browser.
func Open(ctx context.Context, h host.Host, g gist.Gist) error {
	g, _, err := Resolve(ctx, h, g, host.Auto)
	if err != nil {
		return err
	}
	url, err := h.GistURL(ctx, g)
	if err != nil {
		return fmt.Errorf("cliops: determine URL for gist %s: %w", g.URI, err)
	}
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("cliops: open %s in browser: %w", url, err)
	}
	return nil
}

// Info prints each Datum the host returns a value for (data without a
// value are omitted), plus a final "Local: yes|no" line that isn't itself a Datum (supplemented
// from the original's show_gist_info, which prints a storage/local status
// line alongside the metadata).
func Info(ctx context.Context, h host.Host, g gist.Gist) error {
	g, path, err := Resolve(ctx, h, g, host.Auto)
	if err != nil {
		return err
	}
	info, err := h.GistInfo(ctx, g)
	if err != nil {
		return fmt.Errorf("cliops: obtain info for gist %s: %w", g.URI, err)
	}
	if info != nil {
		fmt.Println(info.String())
	} else {
		logx.Warn("host %s has no metadata for gist %s", h.ID(), g.URI)
	}
	local := "no"
	if _, err := os.Stat(path); err == nil {
		local = "yes"
	}
	fmt.Printf("Local: %s\n", local)
	return nil
}

// Hosts prints the registry's (id, name) pairs, ids right-padded to the
// widest one, mirroring the original's list_hosts.
func Hosts(reg *host.Registry) {
	hosts := reg.All()
	if len(hosts) == 0 {
		return
	}
	width := 0
	for _, h := range hosts {
		if n := len(h.ID()); n > width {
			width = n
		}
	}
	for _, h := range hosts {
		fmt.Printf("%-*s :: %s\n", width, h.ID(), h.Name())
	}
}
