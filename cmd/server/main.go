package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pet-life/internal/adapter"
	"github.com/MKhiriev/go-pet-life/internal/config"
	"github.com/MKhiriev/go-pet-life/internal/handler"
	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/MKhiriev/go-pet-life/internal/mailer"
	"github.com/MKhiriev/go-pet-life/internal/metrics"
	"github.com/MKhiriev/go-pet-life/internal/server"
	"github.com/MKhiriev/go-pet-life/internal/service"
	"github.com/MKhiriev/go-pet-life/internal/store"
	"github.com/MKhiriev/go-pet-life/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("pet-life-server").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("pet-life-server", logger.WithLevel(cfg.App.LogLevel))
	log.Debug().Str("address", cfg.Server.HTTPAddress).Str("public_url", cfg.App.PublicURL).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Error().Err(err).Msg("error closing storages")
		}
	}()

	sender, err := mailer.NewSender(cfg.Mail, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating mail sender")
	}

	m := metrics.New()
	services, err := service.NewServices(service.Dependencies{
		Storages:  storages,
		Sender:    sender,
		Providers: adapter.NewProviders(cfg.OAuth, cfg.App.PublicURL, cfg.Server.RequestTimeout, log),
		Metrics:   m,
		BuildInfo: buildInfo,
	}, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg, m, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
