package ioc

import "fmt"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related registrations into a reusable module.
//
// Register installs recipes; Boot runs after every provider has registered,
// so it is the first safe place to resolve other registrations.
//
//	type StorageProvider struct{ ioc.BaseProvider }
//
//	func (p *StorageProvider) Register(c *ioc.Container) error {
//	    return ioc.RegisterDelegate[Store](c, func() (Store, error) {
//	        return OpenStore(p.Dir)
//	    })
//	}
type ServiceProvider interface {
	// Register installs recipes into the container.
	// Do NOT resolve other registrations here — use Boot for that.
	Register(c *Container) error

	// Boot is called after all providers are registered.
	Boot(c *Container) error

	// Provides returns the identities this provider registers. Used for
	// deferred (lazy) loading; eager providers may return nil.
	Provides() []Identity

	// IsDeferred reports whether the provider should only be loaded when
	// one of its Provides identities is first resolved.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with no-op implementations of Boot,
// Provides, and IsDeferred. Embed it and override what you need.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }
func (p *BaseProvider) Provides() []Identity    { return nil }
func (p *BaseProvider) IsDeferred() bool        { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred providers that only materialize on first resolution.
type ProviderRegistry struct {
	c          *Container
	eager      []ServiceProvider
	booted     bool
	registered map[ServiceProvider]bool
	pending    map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry bound to c.
func NewProviderRegistry(c *Container) *ProviderRegistry {
	return &ProviderRegistry{
		c:          c,
		registered: make(map[ServiceProvider]bool),
		pending:    make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and runs its Register method, unless the
// provider is deferred, in which case placeholder delegates are installed
// for each identity it provides. Registering the same provider twice is a
// no-op.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		return r.interceptDeferred(provider)
	}

	if err := provider.Register(r.c); err != nil {
		return fmt.Errorf("registering provider %T: %w", provider, err)
	}
	r.eager = append(r.eager, provider)

	if r.booted {
		return provider.Boot(r.c)
	}
	return nil
}

// interceptDeferred installs, for each provided identity, a delegate that
// on first resolution swaps every placeholder out for the provider's real
// recipes and resolves against those.
func (r *ProviderRegistry) interceptDeferred(provider ServiceProvider) error {
	r.pending[provider] = true
	for _, id := range provider.Provides() {
		if err := r.installPlaceholder(provider, id); err != nil {
			return err
		}
	}
	return nil
}

// installPlaceholder binds a delegate under id that materializes the
// provider on first use, then resolves against its real recipe.
func (r *ProviderRegistry) installPlaceholder(provider ServiceProvider, id Identity) error {
	return r.c.RegisterFactory(id, func() (any, error) {
		if r.pending[provider] {
			if err := r.materialize(provider); err != nil {
				return nil, err
			}
		}
		return r.c.ResolveIdentity(id)
	})
}

// materialize swaps every placeholder for the provider's real recipes. If
// Register fails, whatever it managed to install is removed again and the
// placeholders are reinstated, so the provider stays pending and every
// later resolve of its identities sees the same state and the same error.
func (r *ProviderRegistry) materialize(provider ServiceProvider) error {
	provided := provider.Provides()
	for _, id := range provided {
		r.c.Remove(id)
	}

	if err := provider.Register(r.c); err != nil {
		for _, id := range provided {
			r.c.Remove(id)
			// Cannot fail: the key was just removed and the factory
			// is non-nil.
			_ = r.installPlaceholder(provider, id)
		}
		return fmt.Errorf("registering deferred provider %T: %w", provider, err)
	}
	delete(r.pending, provider)

	if r.booted {
		if err := provider.Boot(r.c); err != nil {
			return fmt.Errorf("booting deferred provider %T: %w", provider, err)
		}
	}
	return nil
}

// Boot runs Boot on all eager providers. Call it once, after every provider
// has been registered; further calls are no-ops.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	r.booted = true
	for _, provider := range r.eager {
		if err := provider.Boot(r.c); err != nil {
			return fmt.Errorf("booting provider %T: %w", provider, err)
		}
	}
	return nil
}

// Booted reports whether Boot has run.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.eager }
