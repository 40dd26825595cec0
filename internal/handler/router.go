package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Services bundles everything the router needs.
type Services struct {
	Users        *UserHandler
	Categories   *CategoryHandler
	Events       *EventHandler
	Requests     *RequestHandler
	Compilations *CompilationHandler
}

// NewValidator builds the shared payload validator.
func NewValidator() *validator.Validate {
	return validator.New()
}

// NewRouter builds the full API route tree.
func NewRouter(s Services, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogging(logger))
	r.Use(Metrics)
	r.Use(CORS)

	r.Get("/health", HealthCheck)
	r.Method(http.MethodGet, "/metrics", MetricsEndpoint())

	r.Route("/admin", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", s.Users.Create)
			r.Get("/", s.Users.List)
			r.Delete("/{userId}", s.Users.Delete)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", s.Categories.Create)
			r.Patch("/{catId}", s.Categories.Update)
			r.Delete("/{catId}", s.Categories.Delete)
		})
		r.Route("/events", func(r chi.Router) {
			r.Get("/", s.Events.ListAdmin)
			r.Patch("/{eventId}", s.Events.Moderate)
		})
		r.Route("/compilations", func(r chi.Router) {
			r.Post("/", s.Compilations.Create)
			r.Patch("/{compId}", s.Compilations.Update)
			r.Delete("/{compId}", s.Compilations.Delete)
		})
	})

	r.Route("/users/{userId}", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			r.Post("/", s.Events.Create)
			r.Get("/", s.Events.ListOwn)
			r.Get("/{eventId}", s.Events.GetOwn)
			r.Patch("/{eventId}", s.Events.UpdateOwn)
			r.Get("/{eventId}/requests", s.Requests.ListByEvent)
			r.Patch("/{eventId}/requests", s.Requests.UpdateStatuses)
		})
		r.Route("/requests", func(r chi.Router) {
			r.Post("/", s.Requests.Create)
			r.Get("/", s.Requests.ListOwn)
			r.Patch("/{requestId}/cancel", s.Requests.Cancel)
		})
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", s.Events.ListPublic)
		r.Get("/{eventId}", s.Events.GetPublic)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", s.Categories.List)
		r.Get("/{catId}", s.Categories.Get)
	})

	r.Route("/compilations", func(r chi.Router) {
		r.Get("/", s.Compilations.List)
		r.Get("/{compId}", s.Compilations.Get)
	})

	return r
}

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
