package resolve

import (
	"talc/internal/templates"
)

// cycleGuard tracks the declarations on the active expansion path of one
// top-level Resolve call. Detection is declaration-level: a second
// instantiation of the same alias declaration on the path counts as a
// cycle regardless of its arguments. Conservative on purpose.
type cycleGuard struct {
	active map[templates.DeclID]struct{}
}

func newCycleGuard() *cycleGuard {
	return &cycleGuard{active: make(map[templates.DeclID]struct{}, 4)}
}

// enter adds id to the path. Returns false, without mutating, when id is
// already active.
func (g *cycleGuard) enter(id templates.DeclID) bool {
	if _, ok := g.active[id]; ok {
		return false
	}
	g.active[id] = struct{}{}
	return true
}

// leave removes id from the path. Must pair with every successful enter,
// on every exit path.
func (g *cycleGuard) leave(id templates.DeclID) {
	delete(g.active, id)
}
