package app

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/km-arc/go-ioc/config"
	"github.com/km-arc/go-ioc/ioc"
)

// Application is the top-level composition root for the demo web app. It
// embeds the container so callers can register and resolve directly, and
// carries the provider registry that wires the framework services.
type Application struct {
	*ioc.Container
	Providers *ioc.ProviderRegistry
}

// New creates an application with the core providers registered.
func New(opts ...ioc.Option) (*Application, error) {
	c := ioc.New(opts...)
	registry := ioc.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
	}

	if err := registry.Register(&ConfigProvider{}); err != nil {
		return nil, err
	}
	if err := registry.Register(&RouterProvider{}); err != nil {
		return nil, err
	}
	return app, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider ioc.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot phase on all providers.
func (a *Application) Boot() error {
	return a.Providers.Boot()
}

// Config resolves the application configuration.
func (a *Application) Config() (*config.Config, error) {
	return ioc.Resolve[*config.Config](a.Container)
}

// Router resolves a fresh router. The container is transient, so resolve
// once, mount your routes, and pass the router to Serve.
func (a *Application) Router() (*chi.Mux, error) {
	return ioc.Resolve[*chi.Mux](a.Container)
}

// Serve boots the application (if needed) and serves router over HTTP.
func (a *Application) Serve(router *chi.Mux) error {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return err
		}
	}
	cfg, err := a.Config()
	if err != nil {
		return err
	}
	fmt.Printf("%s listening on http://localhost:%s [%s]\n",
		cfg.App.Name, cfg.HTTP.Port, cfg.App.Env)
	return http.ListenAndServe(cfg.Addr(), router)
}
