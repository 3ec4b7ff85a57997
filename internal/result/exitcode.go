package result

import (
	"errors"
	"io/fs"
	"net/url"
)

// Exit codes follow the BSD sysexits.h convention named in spec §6.
const (
	ExitOK          = 0
	ExitUsage       = 64
	ExitIOErr       = 74
	ExitUnavailable = 69
	ExitTempFail    = 75
)

// ExitCodeUnavailable is used by the run pipeline when a child process's
// exit code cannot be recovered from the OS (§4.11 step 6).
const ExitCodeUnavailable = ExitUnavailable

// ExitCode maps an error returned by the core to one of the sysexits codes
// above. It is consulted exactly once, by cmd/gisht's dispatcher, per §7's
// "map to exit codes once, at the top-level command dispatcher" rule.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var malformed *MalformedURIError
	var unknownHost *UnknownHostError
	var mismatch *UriHostMismatchError
	switch {
	case errors.As(err, &malformed), errors.As(err, &unknownHost), errors.As(err, &mismatch):
		return ExitUsage
	}

	if errors.Is(err, ErrNotFound) {
		return ExitUnavailable
	}

	var execErr *ExecError
	if errors.As(err, &execErr) {
		return ExitUnavailable
	}

	var conflictErr *GitConflictError
	if errors.As(err, &conflictErr) {
		return ExitIOErr
	}

	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return ExitIOErr
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ExitTempFail
	}

	return ExitUnavailable
}
