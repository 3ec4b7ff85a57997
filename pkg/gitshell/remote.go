package git

import "context"

// Clone clones url into this directory.
func (g *Git) Clone(ctx context.Context, url string) error {
	return g.RunSilent(ctx, "clone", url, ".")
}

// FetchUpdate fetches from origin without an explicit refspec, so the
// remote's configured refspec applies, and records "gisht-update" as the
// reflog action (via GIT_REFLOG_ACTION) — see §4.7 Pull.
func (g *Git) FetchUpdate(ctx context.Context) error {
	args := []string{"fetch", "origin"}
	cmd := g.command(ctx, args...)
	cmd.Env = append(cmd.Env, "GIT_REFLOG_ACTION=gisht-update")
	if output, err := cmd.CombinedOutput(); err != nil {
		return &GitError{Args: args, Stderr: string(output), Err: err}
	}
	return nil
}

// Checkout checks out a ref (branch, tag, or commit hash).
func (g *Git) Checkout(ctx context.Context, ref string) error {
	return g.RunSilent(ctx, "checkout", ref)
}

// CheckoutForce discards working-tree changes while checking out ref.
func (g *Git) CheckoutForce(ctx context.Context, ref string) error {
	return g.RunSilent(ctx, "checkout", "--force", ref)
}

// ResetHard resets HEAD and the working tree to ref, discarding all local changes.
func (g *Git) ResetHard(ctx context.Context, ref string) error {
	return g.RunSilent(ctx, "reset", "--hard", ref)
}
