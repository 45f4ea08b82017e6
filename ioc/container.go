package ioc

import (
	"fmt"

	"github.com/google/uuid"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the façade over the registry and resolver. It owns the
// registration table and manufactures fresh instances on demand; it never
// caches what it builds and keeps no reference to anything it returns.
//
// A Container is not safe for concurrent use.
type Container struct {
	id  uuid.UUID
	reg *registry
	res *resolver
}

// New creates an empty container.
func New(opts ...Option) *Container {
	cfg := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}

	reg := newRegistry()
	return &Container{
		id:  uuid.New(),
		reg: reg,
		res: &resolver{reg: reg, log: cfg.logger, maxDepth: cfg.maxDepth},
	}
}

// ID returns the container's instance identifier, useful for correlating
// log lines when several containers live in one process.
func (c *Container) ID() uuid.UUID { return c.id }

// ── Identity-level operations ─────────────────────────────────────────────────

// RegisterConstructor installs a constructor recipe under id. ctor must be
// func(deps...) T or func(deps...) (T, error) with T assignable to the
// contract. When args are omitted, each parameter resolves by the unnamed
// identity of its own type. Fails with ErrAlreadyRegistered if id is taken.
func (c *Container) RegisterConstructor(id Identity, ctor any, args ...Identity) error {
	if id.contract == nil {
		return fmt.Errorf("%w: zero identity", ErrInvalidRecipe)
	}
	rec, err := newConstructorRecipe(id.contract, ctor, args)
	if err != nil {
		return err
	}
	return c.reg.register(id, rec)
}

// RegisterFactory installs a delegate recipe under id. Fails with
// ErrAlreadyRegistered if id is taken.
func (c *Container) RegisterFactory(id Identity, factory func() (any, error)) error {
	if id.contract == nil {
		return fmt.Errorf("%w: zero identity", ErrInvalidRecipe)
	}
	rec, err := newDelegateRecipe(factory)
	if err != nil {
		return err
	}
	return c.reg.register(id, rec)
}

// Registered reports whether id currently holds a recipe.
func (c *Container) Registered(id Identity) bool {
	return c.reg.isRegistered(id)
}

// ResolveIdentity manufactures a fresh instance for id, recursively
// resolving constructor dependencies. On failure everything the call built
// is released again and an error of kind ErrNotRegistered or
// ErrResolutionFailed is returned.
func (c *Container) ResolveIdentity(id Identity) (any, error) {
	return c.res.run(id)
}

// Remove deletes the registration for id, reporting whether one existed.
func (c *Container) Remove(id Identity) bool {
	return c.reg.remove(id)
}

// Keys returns all registered identities, in no particular order.
func (c *Container) Keys() []Identity {
	return c.reg.keys()
}

// ── Generic helpers ───────────────────────────────────────────────────────────

// RegisterType installs a constructor recipe under the unnamed identity of
// Contract.
//
//	ioc.RegisterType[Clock](c, NewSystemClock)
//	ioc.RegisterType[*Greeter](c, NewGreeter) // deps derived from parameters
func RegisterType[Contract any](c *Container, ctor any, args ...Identity) error {
	return c.RegisterConstructor(Key[Contract](), ctor, args...)
}

// RegisterTypeNamed is RegisterType under a named identity.
func RegisterTypeNamed[Contract any](c *Container, name string, ctor any, args ...Identity) error {
	return c.RegisterConstructor(Key[Contract]().Named(name), ctor, args...)
}

// RegisterDelegate installs a delegate recipe under the unnamed identity of
// Contract.
//
//	ioc.RegisterDelegate[Store](c, func() (Store, error) { return OpenStore(dir) })
func RegisterDelegate[Contract any](c *Container, factory func() (Contract, error)) error {
	return c.RegisterFactory(Key[Contract](), wrapFactory(factory))
}

// RegisterDelegateNamed is RegisterDelegate under a named identity.
func RegisterDelegateNamed[Contract any](c *Container, name string, factory func() (Contract, error)) error {
	return c.RegisterFactory(Key[Contract]().Named(name), wrapFactory(factory))
}

// IsRegistered reports whether the unnamed identity of Contract holds a
// recipe.
func IsRegistered[Contract any](c *Container) bool {
	return c.Registered(Key[Contract]())
}

// IsRegisteredNamed is IsRegistered for a named identity.
func IsRegisteredNamed[Contract any](c *Container, name string) bool {
	return c.Registered(Key[Contract]().Named(name))
}

// Resolve manufactures a fresh Contract instance.
//
//	greeter, err := ioc.Resolve[*Greeter](c)
func Resolve[Contract any](c *Container) (Contract, error) {
	return resolveAs[Contract](c, Key[Contract]())
}

// ResolveNamed is Resolve for a named identity.
func ResolveNamed[Contract any](c *Container, name string) (Contract, error) {
	return resolveAs[Contract](c, Key[Contract]().Named(name))
}

// RemoveRegistration deletes the unnamed registration of Contract,
// reporting whether one existed.
func RemoveRegistration[Contract any](c *Container) bool {
	return c.Remove(Key[Contract]())
}

// RemoveRegistrationNamed is RemoveRegistration for a named identity.
func RemoveRegistrationNamed[Contract any](c *Container, name string) bool {
	return c.Remove(Key[Contract]().Named(name))
}

func resolveAs[Contract any](c *Container, id Identity) (Contract, error) {
	var zero Contract
	instance, err := c.ResolveIdentity(id)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(Contract)
	if !ok {
		// Only reachable through a delegate registered via the
		// identity-level API with a mismatched result type.
		return zero, fmt.Errorf("%w: %s resolved to %T", ErrResolutionFailed, id, instance)
	}
	return typed, nil
}

func wrapFactory[Contract any](factory func() (Contract, error)) func() (any, error) {
	if factory == nil {
		return nil
	}
	return func() (any, error) {
		v, err := factory()
		return v, err
	}
}
