// Package http provides the HTTP delivery layer of the shortener: the
// shorten and redirect endpoints, request validation, and the router with
// its logging, metrics and documentation routes.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/vadimbarashkov/shortlink/docs"
)

// NewRouter returns the service router. Short URLs in responses are built
// from baseURL, never from the incoming request.
func NewRouter(logger *httplog.Logger, urlUseCase urlUseCase, baseURL string, metrics *Metrics) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"POST", "GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(metrics.Middleware)
	r.Use(recoverer)

	r.Get("/api/v1/ping", handlePing)
	r.Handle("/metrics", metrics.Handler())

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))
	r.Get("/docs/swagger.yml", serveSwaggerYAML)

	h := newURLHandler(urlUseCase, validator.New(), baseURL)

	r.Post("/shorten", h.shortenURL)
	r.Post("/shorten/", h.shortenURL)
	r.Get("/{shortCode}", h.redirect)

	return r
}

func serveSwaggerYAML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(docs.SwaggerYAML)
}
