package git

import (
	"context"
	"os"
	"path/filepath"
)

// IsClean returns true if the working tree has no staged or unstaged changes.
// Untracked files do not count as dirty — a fresh gist clone with scratch
// files alongside it is still "clean" for update purposes.
func (g *Git) IsClean(ctx context.Context) (bool, error) {
	lines, err := g.RunLines(ctx, "status", "--porcelain=v1", "--untracked-files=no")
	if err != nil {
		return false, err
	}
	return len(lines) == 0, nil
}

// MergeInProgress reports whether the repository is mid-merge, i.e. whether
// MERGE_HEAD exists in the .git directory — this is the "repository state is
// Merge" check used by merge-reset (§4.7).
func (g *Git) MergeInProgress() bool {
	_, err := os.Stat(filepath.Join(g.Dir, ".git", "MERGE_HEAD"))
	return err == nil
}

// RemoveMergeHead deletes MERGE_HEAD and MERGE_MSG, abandoning an in-progress
// merge without touching the working tree. This is cleanup_state from §4.7's
// merge-reset: the working tree itself is restored separately via ResetHard.
func (g *Git) RemoveMergeHead() error {
	gitDir := filepath.Join(g.Dir, ".git")
	if err := os.Remove(filepath.Join(gitDir, "MERGE_HEAD")); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(filepath.Join(gitDir, "MERGE_MSG")); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// FetchHeadAge reads the modification time of FETCH_HEAD in the .git
// directory. Returns an error if FETCH_HEAD cannot be stat'd, which
// needs_update (§4.7) treats as "needs update".
func (g *Git) FetchHeadAge() (os.FileInfo, error) {
	return os.Stat(filepath.Join(g.Dir, ".git", "FETCH_HEAD"))
}
