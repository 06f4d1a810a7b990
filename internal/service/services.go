package service

import (
	"github.com/MKhiriev/go-pet-life/internal/config"
	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/MKhiriev/go-pet-life/internal/mailer"
	"github.com/MKhiriev/go-pet-life/internal/metrics"
	"github.com/MKhiriev/go-pet-life/internal/store"
	"github.com/MKhiriev/go-pet-life/models"
)

type Services struct {
	AccountService AccountService
	SessionService SessionService
	PetService     PetService
	OAuthService   OAuthService
	AppInfoService AppInfoService
}

// Dependencies are the external collaborators of the service layer.
type Dependencies struct {
	Storages  *store.Storages
	Sender    mailer.Sender
	Providers ProviderRegistry
	Metrics   *metrics.Metrics
	BuildInfo models.AppBuildInfo
}

func NewServices(deps Dependencies, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, deps.BuildInfo, logger)
	if err != nil {
		return nil, err
	}

	sessions := NewSessionService(deps.Storages.SessionStorage, cfg.Session, logger)
	accounts := NewAccountService(
		deps.Storages.AccountRepository,
		sessions,
		NewTokenService(cfg.App),
		NewPasswordHasher(0),
		deps.Sender,
		deps.Metrics,
		cfg.App,
		logger,
	)
	pets := NewPetValidationService().Wrap(NewPetService(deps.Storages.PetRepository, logger))

	return &Services{
		AccountService: accounts,
		SessionService: sessions,
		PetService:     pets,
		OAuthService:   NewOAuthService(deps.Providers, accounts, logger),
		AppInfoService: appInfoService,
	}, nil
}
