package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/recipebook/internal/logging"
	"github.com/dmitrijs2005/recipebook/internal/server/gateway"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts every gateway operation. limiter and metrics may be nil.
func NewRouter(g *gateway.Gateway, a Authenticator, l logging.Logger, metrics *Metrics, limiter *RateLimiter) http.Handler {
	h := &handlers{gw: g}
	logger := l.With("module", "http")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	if metrics != nil {
		r.Use(metrics.Instrument)
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if limiter != nil {
					r.Use(limiter.Handler)
				}
				r.Post("/register", h.register)
				r.Post("/signin", h.signIn)
			})
			r.Post("/refresh", h.refresh)
			r.With(requireAuth(a)).Post("/signout", h.signOut)
			r.With(optionalAuth(a)).Get("/session", h.session)
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", h.listIngredients)
			r.With(requireAuth(a)).Post("/", h.createIngredient)
			r.With(requireAuth(a)).Delete("/{id}", h.deleteIngredient)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", h.listRecipes)
			r.Get("/{id}", h.getRecipe)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth(a))
				r.Post("/", h.createRecipe)
				r.Put("/{id}", h.updateRecipe)
				r.Delete("/{id}", h.deleteRecipe)
			})
		})

		r.With(requireAuth(a)).Post("/images/upload-url", h.imageUploadURL)
	})

	return r
}
