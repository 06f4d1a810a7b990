package http

import (
	"time"

	"github.com/MKhiriev/go-pet-life/internal/config"
	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/MKhiriev/go-pet-life/internal/metrics"
	"github.com/MKhiriev/go-pet-life/internal/service"
)

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics

	session        config.Session
	allowedOrigins []string
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, m *metrics.Metrics, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		metrics:        m,
		session:        cfg.Session,
		allowedOrigins: cfg.Server.AllowedOrigins,
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
}
