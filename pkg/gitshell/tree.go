package git

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// TopLevelFiles lists the blob (non-tree) entries at the root of HEAD,
// sorted lexically. The GitHub host uses the first entry as the gist's
// "namesake" — see §4.7 and the GLOSSARY.
func (g *Git) TopLevelFiles(ctx context.Context) ([]string, error) {
	out, err := g.Run(ctx, "ls-tree", "HEAD")
	if err != nil {
		return nil, fmt.Errorf("git ls-tree failed: %w", err)
	}
	var files []string
	for _, l := range strings.Split(out, "\n") {
		parts := strings.Fields(l)
		if len(parts) < 4 || parts[1] != "blob" {
			continue
		}
		files = append(files, strings.Join(parts[3:], " "))
	}
	sort.Strings(files)
	return files, nil
}
