// Package storage computes the on-disk paths for a gist's tree and its
// executable symlink (§3's Storage layout, component C2).
package storage

import (
	"path/filepath"

	"github.com/gisht/gisht/internal/config"
)

// TreePath returns the directory (or, for single-file hosts, the file)
// holding a gist's content.
//
// Hosts whose disk-level discriminator is an opaque id (GitHub) pass a
// non-empty id and an owner-less layout collapses to
// GISTS_DIR/host/id/name; every other host passes id == "" and gets
// GISTS_DIR/host/[owner/]name.
func TreePath(hostID, id, owner, name string) string {
	parts := []string{config.GistsDir(), hostID}
	if id != "" {
		parts = append(parts, id)
	} else if owner != "" {
		parts = append(parts, owner)
	}
	parts = append(parts, name)
	return filepath.Join(parts...)
}

// BinaryPath returns the path of the binary symlink for a gist, keyed by
// its URI components (owner may be empty).
func BinaryPath(hostID, owner, name string) string {
	parts := []string{config.BinDir(), hostID}
	if owner != "" {
		parts = append(parts, owner)
	}
	parts = append(parts, name)
	return filepath.Join(parts...)
}
