package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/km-arc/go-ioc/config"
	"github.com/km-arc/go-ioc/ioc"
)

// ── ConfigProvider ────────────────────────────────────────────────────────────

// ConfigProvider loads the application configuration from .env and binds
// *config.Config into the container. Each resolve re-reads the environment;
// resolve once at bootstrap and hold on to the result.
type ConfigProvider struct {
	ioc.BaseProvider
	EnvFiles []string
}

func (p *ConfigProvider) Register(c *ioc.Container) error {
	envFiles := p.EnvFiles
	return ioc.RegisterDelegate[*config.Config](c, func() (*config.Config, error) {
		return config.Load(envFiles...), nil
	})
}

// ── RouterProvider ────────────────────────────────────────────────────────────

// RouterProvider binds a *chi.Mux with the demo middleware stack installed.
// Request-ID stamping can be switched off with HTTP_REQUEST_ID=false.
type RouterProvider struct {
	ioc.BaseProvider
}

func (p *RouterProvider) Register(c *ioc.Container) error {
	return ioc.RegisterDelegate[*chi.Mux](c, func() (*chi.Mux, error) {
		r := chi.NewRouter()
		if config.GetBool("HTTP_REQUEST_ID", true) {
			r.Use(RequestID)
		}
		r.Use(middleware.Recoverer)
		return r, nil
	})
}

// RequestID stamps every response with a fresh request identifier.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-Id", uuid.NewString())
		next.ServeHTTP(w, r)
	})
}
