package main

import (
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/km-arc/go-ioc/app"
	"github.com/km-arc/go-ioc/config"
	"github.com/km-arc/go-ioc/ioc"
)

// Demo wiring: a Clock contract, a Greeter built by constructor injection,
// and a handler that resolves a fresh Greeter per request.

// Clock abstracts time for the greeter.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewSystemClock constructs the default Clock.
func NewSystemClock() Clock { return systemClock{} }

// Greeter renders greetings; its Clock is injected.
type Greeter struct {
	clock Clock
}

// NewGreeter is the constructor-injection recipe for Greeter: the container
// resolves Clock before calling it.
func NewGreeter(clock Clock) *Greeter {
	return &Greeter{clock: clock}
}

func (g *Greeter) Greet(name string) string {
	hour := g.clock.Now().Hour()
	switch {
	case hour < 12:
		return fmt.Sprintf("Good morning, %s!", name)
	case hour < 18:
		return fmt.Sprintf("Good afternoon, %s!", name)
	default:
		return fmt.Sprintf("Good evening, %s!", name)
	}
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	application, err := app.New(ioc.WithLogger(logger))
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	if err := ioc.RegisterType[Clock](application.Container, NewSystemClock); err != nil {
		log.Fatalf("register clock: %v", err)
	}
	if err := ioc.RegisterType[*Greeter](application.Container, NewGreeter); err != nil {
		log.Fatalf("register greeter: %v", err)
	}

	router, err := application.Router()
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	router.Get("/greet/{name}", func(w http.ResponseWriter, r *http.Request) {
		// A fresh Greeter per request: the container is transient.
		greeter, err := ioc.Resolve[*Greeter](application.Container)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		name := chi.URLParam(r, "name")
		if name == "" {
			name = config.Get("GREETING_FALLBACK", "stranger")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"greeting": greeter.Greet(name),
		})
	})

	if err := application.Serve(router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
