package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kmahrous/salesbot/internal/http/handlers"
	httpmiddleware "github.com/kmahrous/salesbot/internal/http/middleware"
	"github.com/kmahrous/salesbot/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger          *logging.Logger
	WhatsAppHandler *handlers.WhatsAppHandler
	MetricsHandler  http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.WhatsAppHandler.HealthCheck)
	r.Post("/webhooks/whatsapp", cfg.WhatsAppHandler.HandleInbound)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
