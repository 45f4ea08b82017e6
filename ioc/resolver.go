package ioc

import (
	"fmt"
	"log/slog"
	"reflect"
)

// ── Resolver ──────────────────────────────────────────────────────────────────

// Releasable is implemented by instances that hold resources needing
// teardown. The container calls Release exactly once on any instance it
// built and then discarded during a failed resolution. Instances handed to
// the caller are the caller's to release.
type Releasable interface {
	Release()
}

// resolver executes recipes against a registry, recursively resolving
// constructor arguments. A top-level resolve either returns one fully
// constructed instance or fails after releasing every instance built
// anywhere during the call — including dependencies buried inside
// intermediates that were themselves constructed successfully — newest
// first.
type resolver struct {
	reg      *registry
	log      *slog.Logger
	maxDepth int
}

// run drives one top-level resolution. Every instance manufactured during
// the recursion is recorded in one session-scoped list; on failure the
// whole list is released in reverse construction order, on success it is
// simply dropped and ownership passes to the caller.
func (r *resolver) run(id Identity) (any, error) {
	var built []any
	instance, err := r.resolve(id, 0, &built)
	if err != nil {
		r.releaseBuilt(built)
		return nil, err
	}
	return instance, nil
}

// resolve looks up and executes the recipe for id, recording the finished
// instance in built. depth counts recursion levels; it trips the depth
// guard on cyclic graphs instead of letting them exhaust the call stack.
func (r *resolver) resolve(id Identity, depth int, built *[]any) (any, error) {
	if depth > r.maxDepth {
		return nil, fmt.Errorf("%w: resolving %s at depth %d", ErrDepthExceeded, id, depth)
	}

	rec, ok := r.reg.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, id)
	}

	if r.log != nil {
		r.log.Debug("resolving", "identity", id.String(), "depth", depth)
	}

	var instance any
	var err error
	if rec.kind == delegateKind {
		instance, err = r.invokeDelegate(id, rec)
	} else {
		instance, err = r.construct(id, rec, depth, built)
	}
	if err != nil {
		return nil, err
	}

	*built = append(*built, instance)
	return instance, nil
}

// construct resolves each argument identity in declaration order, then
// invokes the constructor. Arguments record themselves in built as they
// finish, so a failure at any point leaves the session list holding
// exactly the instances that need releasing; the target is never
// constructed after a failed argument.
func (r *resolver) construct(id Identity, rec recipe, depth int, built *[]any) (any, error) {
	ctorType := rec.ctor.Type()
	in := make([]reflect.Value, 0, len(rec.args))

	for i, argID := range rec.args {
		dep, err := r.resolve(argID, depth+1, built)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: argument %s: %w", ErrResolutionFailed, id, argID, err)
		}

		v := reflect.ValueOf(dep)
		if !v.IsValid() {
			v = reflect.Zero(ctorType.In(i))
		}
		in = append(in, v)
	}

	instance, err := invoke(rec.ctor, in)
	if err != nil {
		return nil, fmt.Errorf("%w: constructing %s: %w", ErrResolutionFailed, id, err)
	}
	return instance, nil
}

// invokeDelegate runs a delegate factory. A failing delegate produces no
// instance of its own, so it contributes nothing to the session list.
func (r *resolver) invokeDelegate(id Identity, rec recipe) (out any, err error) {
	defer func() {
		if p := recover(); p != nil {
			out = nil
			err = fmt.Errorf("%w: delegate for %s panicked: %v", ErrResolutionFailed, id, p)
		}
	}()

	v, err := rec.factory()
	if err != nil {
		return nil, fmt.Errorf("%w: delegate for %s: %w", ErrResolutionFailed, id, err)
	}
	return v, nil
}

// releaseBuilt walks the instances one failed top-level resolve
// accumulated, newest first, so parents go before the dependencies they
// hold. The list is local to that call and is walked once, so each
// instance is released exactly once.
func (r *resolver) releaseBuilt(built []any) {
	for i := len(built) - 1; i >= 0; i-- {
		if rel, ok := built[i].(Releasable); ok {
			if r.log != nil {
				r.log.Debug("releasing discarded instance", "type", fmt.Sprintf("%T", built[i]))
			}
			rel.Release()
		}
	}
}

// invoke calls a constructor, converting a panic or a non-nil trailing
// error result into an error return.
func invoke(fn reflect.Value, in []reflect.Value) (out any, err error) {
	defer func() {
		if p := recover(); p != nil {
			out = nil
			err = fmt.Errorf("constructor panicked: %v", p)
		}
	}()

	results := fn.Call(in)
	if len(results) == 2 {
		if e, _ := results[1].Interface().(error); e != nil {
			return nil, e
		}
	}
	return results[0].Interface(), nil
}
