package ioc

import "fmt"

// ── Registry ──────────────────────────────────────────────────────────────────

// registry maps each Identity to its recipe. At most one recipe per key at
// any time; inserts never overwrite. A registry is exclusively owned by one
// container and carries no locking — callers serialize access externally.
type registry struct {
	entries map[Identity]recipe
}

func newRegistry() *registry {
	return &registry{entries: make(map[Identity]recipe)}
}

// register inserts rec under id, failing with ErrAlreadyRegistered if the
// key is taken. The existing recipe is never replaced.
func (r *registry) register(id Identity, rec recipe) error {
	if _, exists := r.entries[id]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, id)
	}
	r.entries[id] = rec
	return nil
}

// isRegistered reports whether id currently holds a recipe.
func (r *registry) isRegistered(id Identity) bool {
	_, ok := r.entries[id]
	return ok
}

// lookup returns the recipe for id. Absence is a normal outcome, not an
// error.
func (r *registry) lookup(id Identity) (recipe, bool) {
	rec, ok := r.entries[id]
	return rec, ok
}

// remove deletes the recipe for id, reporting whether one existed. A miss
// mutates nothing.
func (r *registry) remove(id Identity) bool {
	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	return true
}

// keys returns all registered identities, in no particular order.
func (r *registry) keys() []Identity {
	out := make([]Identity, 0, len(r.entries))
	for id := range r.entries {
		out = append(out, id)
	}
	return out
}
