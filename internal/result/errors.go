// Package result defines the error taxonomy shared across gisht's core
// packages and the exit-code mapping consulted once by cmd/gisht.
package result

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions with no further structured detail.
var (
	// ErrNotFound means the gist does not exist locally and the host could
	// not locate it remotely either.
	ErrNotFound = errors.New("gist not found")
	// ErrNoGuess means interpreter inference produced zero or multiple
	// candidate interpreters.
	ErrNoGuess = errors.New("could not infer an interpreter")
)

// MalformedURIError means a URI string did not match the grammar in §3.
type MalformedURIError struct {
	Input string
}

func (e *MalformedURIError) Error() string {
	return fmt.Sprintf("malformed gist URI %q", e.Input)
}

// UnknownHostError means a URI named a host id the registry doesn't have.
type UnknownHostError struct {
	HostID string
}

func (e *UnknownHostError) Error() string {
	return fmt.Sprintf("unknown host %q", e.HostID)
}

// UriHostMismatchError means a Gist was handed to a Host implementation
// whose id does not match the gist's URI host.
type UriHostMismatchError struct {
	Want, Got string
}

func (e *UriHostMismatchError) Error() string {
	return fmt.Sprintf("gist host %q does not match %q", e.Got, e.Want)
}

// GitConflictError wraps a fatal (non-recoverable) git failure encountered
// while updating a GitHub-backed gist, e.g. uncommitted local changes that
// would be discarded by a checkout.
type GitConflictError struct {
	URI   string
	Cause error
}

func (e *GitConflictError) Error() string {
	return fmt.Sprintf("%s: %v", e.URI, e.Cause)
}

func (e *GitConflictError) Unwrap() error { return e.Cause }

// ExecError wraps a fatal error from launching or running the gist's
// binary, after interpreter inference (if attempted) has been exhausted.
type ExecError struct {
	Path  string
	Cause error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("cannot run %s: %v", e.Path, e.Cause)
}

func (e *ExecError) Unwrap() error { return e.Cause }

// IsMalformedURI reports whether err is a *MalformedURIError.
func IsMalformedURI(err error) bool {
	var e *MalformedURIError
	return errors.As(err, &e)
}

// IsUnknownHost reports whether err is an *UnknownHostError.
func IsUnknownHost(err error) bool {
	var e *UnknownHostError
	return errors.As(err, &e)
}

// IsUriHostMismatch reports whether err is a *UriHostMismatchError.
func IsUriHostMismatch(err error) bool {
	var e *UriHostMismatchError
	return errors.As(err, &e)
}

// IsGitConflict reports whether err is a *GitConflictError.
func IsGitConflict(err error) bool {
	var e *GitConflictError
	return errors.As(err, &e)
}
