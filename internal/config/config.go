// Package config resolves gisht's process-wide, environment-derived
// configuration once at startup.
package config

import (
	"os"
	"path/filepath"
)

// version is substituted by cmd/gisht via SetVersion before the first HTTP
// request is made, so UserAgent always reflects the running binary.
var version = "dev"

// SetVersion publishes the resolved version string into the User-Agent.
func SetVersion(v string) { version = v }

// UserAgent is sent on every outgoing HTTP request (§6).
func UserAgent() string { return "gisht/" + version }

func defaultDataHome() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "gisht")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gisht"
	}
	return filepath.Join(home, ".local", "share", "gisht")
}

// GistsDir returns the root directory gist trees are stored under,
// honoring GISHT_GISTS_DIR (§3's GISTS_DIR constant).
func GistsDir() string {
	if v := os.Getenv("GISHT_GISTS_DIR"); v != "" {
		return v
	}
	return filepath.Join(defaultDataHome(), "gists")
}

// BinDir returns the root directory binary symlinks are stored under,
// honoring GISHT_BIN_DIR (§3's BIN_DIR constant).
func BinDir() string {
	if v := os.Getenv("GISHT_BIN_DIR"); v != "" {
		return v
	}
	return filepath.Join(defaultDataHome(), "bin")
}

// GithubToken returns the bearer token used for authenticated, higher-rate
// GitHub API calls, or "" if none is configured. Authentication itself
// (creating tokens, OAuth flows) is out of scope per §1's Non-goals; this
// only reads a token the user has already obtained elsewhere.
func GithubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}
