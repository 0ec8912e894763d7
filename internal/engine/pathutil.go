package engine

import (
	"path/filepath"
	"strings"

	"github.com/goblintools/goblin/internal/planner"
)

// commonRoot returns the deepest directory containing the parent directory of
// every source and destination in moves.
func commonRoot(moves []planner.Move) string {
	var root string
	for i, m := range moves {
		for _, p := range []string{m.Source, m.Destination} {
			dir := filepath.Dir(filepath.Clean(p))
			if i == 0 && root == "" {
				root = dir
				continue
			}
			root = commonPrefix(root, dir)
		}
	}
	return root
}

// commonPrefix returns the longest shared directory of a and b.
func commonPrefix(a, b string) string {
	for !isAncestor(a, b) {
		parent := filepath.Dir(a)
		if parent == a {
			return a
		}
		a = parent
	}
	return a
}

// isAncestor reports whether dir is path or one of its ancestors.
func isAncestor(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
