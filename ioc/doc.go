// Package ioc provides a transient dependency-injection container for Go.
//
// # Overview
//
// The container maps contracts (usually interfaces) to recipes that know how
// to manufacture a concrete value: either a constructor whose own parameters
// are resolved recursively, or a zero-argument delegate factory. Every
// resolution builds a fresh instance — there is no singleton or scoped
// caching, and the container keeps no reference to anything it hands out.
//
// Registrations are addressed by an Identity: the contract's runtime type
// plus an optional name. A key can hold at most one recipe; registering it
// twice fails with ErrAlreadyRegistered rather than overwriting.
//
// # Registering
//
//	c := ioc.New()
//
//	// Constructor injection — parameters are resolved from the container
//	// in declaration order before NewGreeter is invoked.
//	ioc.RegisterType[Clock](c, NewSystemClock)
//	ioc.RegisterType[*Greeter](c, NewGreeter) // func NewGreeter(Clock) *Greeter
//
//	// Delegate factory — bypasses constructor injection entirely.
//	ioc.RegisterDelegate[*config.Config](c, func() (*config.Config, error) {
//	    return config.Load(), nil
//	})
//
//	// Named registrations — the name is scoped per contract.
//	ioc.RegisterTypeNamed[Store](c, "archive", NewArchiveStore)
//
// # Resolving
//
//	greeter, err := ioc.Resolve[*Greeter](c)
//	archive, err := ioc.ResolveNamed[Store](c, "archive")
//
// Resolution is single-shot and transactional: either the caller receives
// exactly one fully constructed instance, or the call fails and every
// dependency the call had already built is released again, newest first.
// Instances that implement Releasable get their Release method called
// exactly once when the container discards them this way.
//
// # Removing
//
//	ok := ioc.RemoveRegistration[Store](c) // true iff an entry existed
//
// Removal never fails; an absent key is a normal outcome, not an error.
//
// # Concurrency
//
// A Container is owned by a single goroutine. None of its operations are
// safe for concurrent use; callers that share a container across goroutines
// must serialize access themselves.
package ioc
