// Package runner is the run pipeline (§4.11, component C14): direct exec
// of a fetched gist's binary, falling back to interpreter inference on
// specific kernel errors, and exit-code propagation.
package runner

import (
	"errors"
	"fmt"
	"strings"
	"syscall"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/gisht/gisht/internal/gist"
	"github.com/gisht/gisht/internal/interp"
	"github.com/gisht/gisht/internal/logx"
	"github.com/gisht/gisht/internal/result"
)

// Run execs path with args. On success it never returns to the caller:
// the process image is replaced (POSIX, exec_unix.go) or the process
// exits with the child's code (non-POSIX, exec_windows.go). It returns
// only once both the direct attempt and any interpreter fallback have
// failed (§4.11).
func Run(path string, args []string, info *gist.Info) error {
	logx.Flush()

	argv := append([]string{path}, args...)
	err := replaceProcess(argv)
	if !isRetryable(err) {
		return &result.ExecError{Path: path, Cause: err}
	}

	tmpl, err := interp.Guess(path, info)
	if err != nil {
		return &result.ExecError{Path: path, Cause: err}
	}
	argv, err = substitute(tmpl, path, args)
	if err != nil {
		return &result.ExecError{Path: path, Cause: err}
	}
	if err := replaceProcess(argv); err != nil {
		return &result.ExecError{Path: path, Cause: err}
	}
	return nil
}

// isRetryable reports whether err is one of the two kernel errors §4.11
// says should trigger interpreter inference: ENOENT (broken hashbang) or
// ENOEXEC (no hashbang at all). Any other error is fatal.
func isRetryable(err error) bool {
	return errors.Is(err, syscall.ENOENT) || errors.Is(err, syscall.ENOEXEC)
}

// substitute fills tmpl's "${script}" with scriptPath and "${args}" with
// the shell-quoted, space-joined args, then tokenizes the result with
// shell-quoting rules, ready for exec (§4.11 step 4).
func substitute(tmpl, scriptPath string, args []string) ([]string, error) {
	cmd := strings.ReplaceAll(tmpl, "${script}", scriptPath)
	cmd = strings.ReplaceAll(cmd, "${args}", shellquote.Join(args...))
	tokens, err := shellquote.Split(cmd)
	if err != nil {
		return nil, fmt.Errorf("runner: tokenize %q: %w", cmd, err)
	}
	return tokens, nil
}
