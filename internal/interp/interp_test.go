package interp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gisht/gisht/internal/gist"
	"github.com/gisht/gisht/internal/result"
)

func TestEveryTemplateHasScriptAndArgsPlaceholders(t *testing.T) {
	for ext, tmpl := range extToTemplate {
		if !strings.Contains(tmpl, "${script}") || !strings.Contains(tmpl, "${args}") {
			t.Errorf("template for %q missing a placeholder: %q", ext, tmpl)
		}
	}
}

func TestTableKeysAreLowercaseNoLeadingDot(t *testing.T) {
	for lang, ext := range languageToExt {
		if lang != strings.ToLower(lang) || strings.HasPrefix(lang, ".") {
			t.Errorf("language key %q violates lowercase/no-dot invariant", lang)
		}
		if ext != strings.ToLower(ext) || strings.HasPrefix(ext, ".") {
			t.Errorf("extension value %q violates lowercase/no-dot invariant", ext)
		}
	}
	for ext := range extToTemplate {
		if ext != strings.ToLower(ext) || strings.HasPrefix(ext, ".") {
			t.Errorf("extension key %q violates lowercase/no-dot invariant", ext)
		}
	}
}

func TestByExtensionMatchesFilenameSuffix(t *testing.T) {
	tmpl, ok := byExtension("/path/to/script.py")
	if !ok || !strings.Contains(tmpl, "python") {
		t.Errorf("got %q, %v", tmpl, ok)
	}
}

func TestByLanguageAcceptsLanguageNameOrExtension(t *testing.T) {
	if _, ok := byLanguage("Python"); !ok {
		t.Error("expected language name match, case-insensitively")
	}
	if _, ok := byLanguage("py"); !ok {
		t.Error("expected direct extension match")
	}
	if _, ok := byLanguage("cobol"); ok {
		t.Error("expected no match for an unknown language")
	}
}

func TestGuessPrefersExtensionOverInfoLanguage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.sh")
	os.WriteFile(path, []byte("echo hi\n"), 0o755)

	info := gist.NewInfo().Set(gist.Language, "python")
	tmpl, err := Guess(path, info)
	if err != nil {
		t.Fatalf("Guess: %v", err)
	}
	if !strings.Contains(tmpl, "sh --") {
		t.Errorf("expected extension to win over Info language, got %q", tmpl)
	}
}

func TestHashbangEnvSpecialCase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script")
	os.WriteFile(path, []byte("#!/usr/bin/env python -O\nprint('hi')\n"), 0o755)

	tmpl, err := Guess(path, nil)
	if err != nil {
		t.Fatalf("Guess: %v", err)
	}
	if !strings.Contains(tmpl, "python") {
		t.Errorf("expected python template, got %q", tmpl)
	}
}

func TestHashbangAbsentYieldsNoGuess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script")
	os.WriteFile(path, []byte("just text, no hashbang\n"), 0o755)

	_, err := Guess(path, nil)
	if err != result.ErrNoGuess {
		t.Errorf("got %v, want ErrNoGuess", err)
	}
}

func TestHashbangUnknownProgramYieldsNoGuess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script")
	os.WriteFile(path, []byte("#!/usr/bin/made-up-interpreter\n"), 0o755)

	_, err := Guess(path, nil)
	if err != result.ErrNoGuess {
		t.Errorf("got %v, want ErrNoGuess", err)
	}
}
