// Package interp infers a run command-line for a fetched gist that the
// kernel could not launch directly, from its filename extension, its
// declared Info language, or its hashbang line (§4.10, component C13).
package interp

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/shlex"

	"github.com/gisht/gisht/internal/gist"
	"github.com/gisht/gisht/internal/result"
)

// languageToExt maps a declared Info language to the extension-to-command
// table's key (§4.10). Both tables use lowercase keys with no leading dot
// (enforced by the invariants test in interp_test.go).
var languageToExt = map[string]string{
	"bash":       "sh",
	"shell":      "sh",
	"sh":         "sh",
	"clojure":    "clj",
	"go":         "go",
	"golang":     "go",
	"haskell":    "hs",
	"javascript": "js",
	"node":       "js",
	"nodejs":     "js",
	"perl":       "pl",
	"python":     "py",
	"ruby":       "rb",
	"rust":       "rs",
}

// extToTemplate maps an extension (or a hashbang's basename) to a shell
// command-line template. Every template must contain both "${script}" and
// "${args}" (§4.10).
var extToTemplate = map[string]string{
	"hs": "runhaskell ${script} ${args}",
	"js": "node -e ${script} ${args}",
	"pl": "perl -- ${script} ${args}",
	"py": "python ${script} - ${args}",
	"rb": "irb -- ${script} ${args}",
	"sh": "sh -- ${script} ${args}",
}

// Guess infers a command-line template for path, trying, in order: the
// filename extension, the gist's declared Info language, then the
// hashbang line (§4.10). It returns result.ErrNoGuess if none apply.
func Guess(path string, info *gist.Info) (string, error) {
	if tmpl, ok := byExtension(path); ok {
		return tmpl, nil
	}
	if info != nil {
		if tmpl, ok := byLanguage(info.Get(gist.Language)); ok {
			return tmpl, nil
		}
	}
	tmpl, err := byHashbang(path)
	if err != nil {
		return "", err
	}
	return tmpl, nil
}

func byExtension(path string) (string, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	tmpl, ok := extToTemplate[strings.ToLower(ext)]
	return tmpl, ok
}

// byLanguage accepts either a language name ("python") or an extension
// ("py") directly, lowercased (§4.10).
func byLanguage(lang string) (string, bool) {
	lang = strings.ToLower(lang)
	if lang == "" {
		return "", false
	}
	if ext, ok := languageToExt[lang]; ok {
		lang = ext
	}
	tmpl, ok := extToTemplate[lang]
	return tmpl, ok
}

// byHashbang reads the first line of path, requires a "#!" prefix,
// tokenizes the rest with shell-quoting rules, special-cases
// /usr/bin/env or /bin/env, and matches the interpreter's basename
// against the first token of every command-line template (§4.10).
// Exactly one match is required; zero or multiple is result.ErrNoGuess.
func byHashbang(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("interp: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return "", result.ErrNoGuess
	}
	line := scanner.Text()
	if !strings.HasPrefix(line, "#!") {
		return "", result.ErrNoGuess
	}

	tokens, err := shlex.Split(strings.TrimPrefix(line, "#!"))
	if err != nil || len(tokens) == 0 {
		return "", result.ErrNoGuess
	}
	interpreter := tokens[0]
	if base := filepath.Base(interpreter); base == "env" && len(tokens) > 1 {
		interpreter = tokens[1]
	}
	name := filepath.Base(interpreter)

	var match string
	count := 0
	for _, tmpl := range extToTemplate {
		first, _, _ := strings.Cut(tmpl, " ")
		if first == name {
			match = tmpl
			count++
		}
	}
	if count != 1 {
		return "", result.ErrNoGuess
	}
	return match, nil
}
