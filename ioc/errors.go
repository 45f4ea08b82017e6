package ioc

import "errors"

// ── Error kinds ───────────────────────────────────────────────────────────────

var (
	// ErrAlreadyRegistered is returned when a registration targets an
	// Identity that already holds a recipe. The existing recipe is left
	// untouched.
	ErrAlreadyRegistered = errors.New("ioc: identity already registered")

	// ErrNotRegistered is returned when a resolution targets an Identity
	// with no recipe. Nothing is allocated.
	ErrNotRegistered = errors.New("ioc: identity not registered")

	// ErrResolutionFailed is returned when a constructor or delegate fails
	// at any depth of the dependency graph. It surfaces only after every
	// instance built by the failing call has been released; the underlying
	// cause is wrapped and reachable via errors.Is / errors.As.
	ErrResolutionFailed = errors.New("ioc: resolution failed")

	// ErrDepthExceeded is returned when resolution recurses past the
	// container's depth limit, which otherwise happens only on a cyclic
	// dependency graph.
	ErrDepthExceeded = errors.New("ioc: dependency graph too deep")

	// ErrInvalidRecipe is returned at registration time when a constructor
	// function has an unusable signature.
	ErrInvalidRecipe = errors.New("ioc: invalid recipe")
)
