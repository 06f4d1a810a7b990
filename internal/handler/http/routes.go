package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withMetrics)
	router.Use(withNoCache)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", traceIDHeader},
		ExposedHeaders:   []string{traceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(withGZip)

	if h.metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}
	router.Get("/api/version", h.getServerVersion)

	router.Group(func(r chi.Router) {
		r.Use(h.withSession)

		r.Route("/api/auth", func(r chi.Router) {
			r.Post("/register", h.register)
			r.Get("/confirm/{token}", h.confirmEmail)
			r.Post("/confirm/resend", h.resendConfirmation)
			r.Post("/login", h.login)
			r.Post("/logout", h.logout)
			r.With(h.requireSession).Post("/password/change", h.changePassword)
			r.Post("/password/reset/request", h.requestPasswordReset)
			r.Post("/password/reset", h.resetPassword)
			r.Get("/oauth/{provider}", h.oauthLogin)
			r.Get("/oauth/{provider}/callback", h.oauthCallback)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.requireSession)

			r.Get("/api/user/me", h.me)

			r.Route("/api/pets", func(r chi.Router) {
				r.Post("/", h.createPet)
				r.Get("/", h.listPets)
				r.Get("/{petID}", h.getPet)
				r.Patch("/{petID}/tracker", h.updateTracker)
			})
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
