package planner

import (
	"fmt"
	"path/filepath"

	"gitlab.com/tozd/go/errors"

	"github.com/goblintools/goblin/internal/fsops"
	"github.com/goblintools/goblin/internal/naming"
)

// CollisionResolver rewrites destinations so that no two moves share a target
// and no move lands on a file that stays put.
type CollisionResolver struct {
	fs  fsops.FS
	key KeyFunc
}

// NewCollisionResolver creates a resolver using key for path equality.
func NewCollisionResolver(fs fsops.FS, key KeyFunc) *CollisionResolver {
	return &CollisionResolver{fs: fs, key: key}
}

// Candidate returns path with " (n)" inserted before the extension.
func Candidate(path string, n int) string {
	stem, ext := naming.SplitExt(filepath.Base(path))
	return filepath.Join(filepath.Dir(path), fmt.Sprintf("%s (%d)%s", stem, n, ext))
}

// Resolve returns moves with conflicting destinations replaced. Moves are
// processed in order, so earlier moves keep their preferred names.
//
// A destination conflicts when an earlier move already claimed it, or when it
// exists on disk and is not itself a source in the batch (that file will be
// moved out of the way). Suffixed candidates must be free on disk outright.
func (r *CollisionResolver) Resolve(moves []Move) ([]Move, error) {
	sources := keySet{}
	for _, m := range moves {
		sources.add(r.key(m.Source))
	}

	used := keySet{}
	out := make([]Move, 0, len(moves))
	for _, m := range moves {
		dst := m.Destination
		conflict, err := r.occupied(dst, used, sources)
		if err != nil {
			return nil, err
		}
		for n := 2; conflict; n++ {
			dst = Candidate(m.Destination, n)
			if conflict, err = r.occupied(dst, used, nil); err != nil {
				return nil, err
			}
		}
		used.add(r.key(dst))
		out = append(out, Move{Source: m.Source, Destination: dst})
	}
	return out, nil
}

// ResolvePlan returns a copy of plan with its moves resolved and the entries'
// proposed paths and actions updated to match.
func (r *CollisionResolver) ResolvePlan(plan *OperationPlan) (*OperationPlan, error) {
	resolved, err := r.Resolve(plan.Moves)
	if err != nil {
		return nil, err
	}
	out := plan.Clone()
	out.Moves = resolved

	bySource := make(map[string]string, len(resolved))
	for _, m := range resolved {
		bySource[r.key(m.Source)] = m.Destination
	}
	for i := range out.Entries {
		e := &out.Entries[i]
		if dst, ok := bySource[r.key(e.SourcePath)]; ok {
			e.ProposedPath = dst
			e.Action = DeriveAction(e.SourcePath, dst)
		}
	}
	return out, nil
}

func (r *CollisionResolver) occupied(path string, used, sources keySet) (bool, error) {
	k := r.key(path)
	if used.has(k) {
		return true, nil
	}
	exists, err := r.fs.Exists(path)
	if err != nil {
		return false, errors.Errorf("failed to check %s: %w", path, err)
	}
	return exists && !sources.has(k), nil
}
