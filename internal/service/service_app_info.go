package service

import (
	"context"

	"github.com/MKhiriev/go-pet-life/internal/config"
	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/MKhiriev/go-pet-life/models"
)

type appInfoService struct {
	version models.AppVersion

	logger *logger.Logger
}

// NewAppInfoService fails with ErrVersionIsNotSpecified when neither the
// configuration nor the build carries a version.
func NewAppInfoService(cfg config.App, buildInfo models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" && !buildInfo.Versioned() {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		version: buildInfo.Version(cfg.Version),
		logger:  logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) models.AppVersion {
	return s.version
}
