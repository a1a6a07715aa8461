package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/chima-angwe/location-stamper-backend/internal/infrastructure/http/handlers"
	"github.com/chima-angwe/location-stamper-backend/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler   *handlers.AuthHandler
	StampsHandler *handlers.StampsHandler
	UploadHandler *handlers.UploadHandler
	HealthHandler *handlers.HealthHandler
	RequireJWT    func(http.Handler) http.Handler
	Secure        func(http.Handler) http.Handler
	CORS          func(http.Handler) http.Handler

	// Per-route-class rate limiters; any of them may be nil.
	GeneralRateLimit     func(http.Handler) http.Handler
	AuthRateLimit        func(http.Handler) http.Handler
	UploadRateLimit      func(http.Handler) http.Handler
	StampCreateRateLimit func(http.Handler) http.Handler

	Log     zerolog.Logger
	Metrics bool
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	if cfg.GeneralRateLimit != nil {
		r.Use(cfg.GeneralRateLimit)
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"service":"location-stamper","status":"running"}`))
	})
	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api/auth", func(r chi.Router) {
		// The upload routes are multipart, so the JSON content-type guard
		// lives on the JSON groups rather than the root.
		r.Use(chimid.AllowContentType("application/json"))
		r.Group(func(r chi.Router) {
			if cfg.AuthRateLimit != nil {
				r.Use(cfg.AuthRateLimit)
			}
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
		})
		r.Group(func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			r.Get("/me", cfg.AuthHandler.Me)
			r.Post("/logout", cfg.AuthHandler.Logout)
		})
	})

	r.Route("/api/stamps", func(r chi.Router) {
		r.Use(cfg.RequireJWT)
		r.Get("/", cfg.StampsHandler.List)
		r.Group(func(r chi.Router) {
			if cfg.StampCreateRateLimit != nil {
				r.Use(cfg.StampCreateRateLimit)
			}
			r.Post("/", cfg.StampsHandler.Create)
		})
		r.Get("/{id}", cfg.StampsHandler.Get)
		r.Put("/{id}", cfg.StampsHandler.Update)
		r.Delete("/{id}", cfg.StampsHandler.Delete)
	})

	if cfg.UploadHandler != nil {
		r.Route("/api/upload", func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			if cfg.UploadRateLimit != nil {
				r.Use(cfg.UploadRateLimit)
			}
			r.Post("/photo", cfg.UploadHandler.UploadPhoto)
			r.Post("/photos", cfg.UploadHandler.UploadPhotos)
			r.Delete("/photo/*", cfg.UploadHandler.DeletePhoto)
		})
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"Route not found"}`))
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
