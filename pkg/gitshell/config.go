package git

import "context"

// ConfigGet reads a git config value.
func (g *Git) ConfigGet(ctx context.Context, key string) (string, error) {
	return g.Run(ctx, "config", key)
}

// RemoteURL returns the fetch URL configured for the given remote.
func (g *Git) RemoteURL(ctx context.Context, remote string) (string, error) {
	return g.ConfigGet(ctx, "remote."+remote+".url")
}
