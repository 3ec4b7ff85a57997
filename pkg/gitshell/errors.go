package git

import (
	"errors"
	"strings"
)

// Sentinel errors for the git failure modes the update policy (§4.7)
// distinguishes.
var (
	// ErrDirtyTree means a checkout/reset would discard uncommitted local
	// edits; callers must surface this as fatal, never discard it silently.
	ErrDirtyTree = errors.New("working tree has uncommitted changes")
	// ErrConflict means a merge produced conflict markers.
	ErrConflict = errors.New("merge conflict")
	// ErrUnmerged means a merge was already in progress (MERGE_HEAD present)
	// before this operation started.
	ErrUnmerged = errors.New("merge already in progress")
	// ErrRefNotFound means a ref failed to resolve.
	ErrRefNotFound = errors.New("ref not found")
)

// GitError wraps an exec error with the command that was run and stderr output.
type GitError struct {
	Args   []string // git subcommand and arguments
	Stderr string   // stderr output from git
	Err    error    // underlying exec error
}

func (e *GitError) Error() string {
	s := strings.TrimSpace(e.Stderr)
	if s != "" {
		return s
	}
	return e.Err.Error()
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// Classify maps a GitError's stderr text to one of the sentinel errors a
// caller can recover from, or nil if it is an ordinary (fatal) failure.
func (e *GitError) Classify() error {
	s := e.Stderr
	switch {
	case strings.Contains(s, "would be overwritten by") || strings.Contains(s, "Your local changes"):
		return ErrDirtyTree
	case strings.Contains(s, "CONFLICT") || strings.Contains(s, "Automatic merge failed"):
		return ErrConflict
	default:
		return nil
	}
}
