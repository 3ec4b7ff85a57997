package main

import (
	"github.com/gisht/gisht/internal/config"
	"github.com/gisht/gisht/internal/host"
	"github.com/gisht/gisht/internal/host/basic"
	"github.com/gisht/gisht/internal/host/decorator"
	"github.com/gisht/gisht/internal/host/github"
	"github.com/gisht/gisht/internal/host/htmlonly"
	"github.com/gisht/gisht/internal/host/multifile"
)

// buildRegistry wires up every host the original CLI ships, generalizing
// the single-entry lazy_static HOSTS map from the original source into
// the full set its individual host modules implement (§2, §4.1).
func buildRegistry() *host.Registry {
	pb := basic.New("pb", "Pastebin.com",
		"http://pastebin.com/raw/${id}",
		"http://pastebin.com/${id}",
		"[0-9a-zA-Z]+")

	hb := decorator.NewHastebinExtension(basic.New("hb", "hastebin.com",
		"https://hastebin.com/raw/${id}",
		"https://hastebin.com/${id}",
		"[a-z]+"))

	sprPattern := "http://sprunge.us/${id}"
	spr := decorator.NewSprunge(basic.New("spr", "sprunge.us",
		sprPattern, sprPattern,
		"[0-9a-zA-Z]+"))

	ix := decorator.NewIxIO(basic.New("ix", "ix.io",
		"http://ix.io/${id}",
		"http://ix.io/${id}/",
		"[0-9a-z]+"))

	moz := basic.New("moz", "Mozilla's Pastebin",
		"https://pastebin.mozilla.org/?dl=${id}",
		"https://pastebin.mozilla.org/${id}",
		"[0-9]+")

	dp := basic.New("dp", "dpaste.de",
		"https://dpaste.de/${id}/raw",
		"https://dpaste.de/${id}",
		"[A-Za-z]+")

	cs := htmlonly.New("cs", "CodeSend",
		"http://www.codesend.com/view/${id}/",
		"[0-9a-z]+",
		"pre#viewer")

	gl := multifile.New("gl", "glot.io",
		"https://snippets.glot.io/snippets/${id}",
		"https://glot.io/snippets/${id}",
		"[0-9a-z]+")

	gh := github.New(config.GithubToken())

	return host.NewRegistry(gh, pb, hb, spr, ix, moz, dp, cs, gl)
}
