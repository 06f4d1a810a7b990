package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pet-life/internal/config"
	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/MKhiriev/go-pet-life/internal/utils"
	"github.com/redis/go-redis/v9"
)

// Storages aggregates every storage dependency of the service layer.
type Storages struct {
	AccountRepository AccountRepository
	PetRepository     PetRepository
	SessionStorage    SessionStorage

	db    *DB
	redis *redis.Client
}

// NewStorages connects to the database and Redis described by cfg, applies
// migrations and builds the repositories.
func NewStorages(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectDB(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting database: %w", err)
	}

	if err = db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	rdb, err := NewRedisClient(ctx, cfg.Storage.Redis, log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting redis: %w", err)
	}

	return &Storages{
		AccountRepository: NewAccountRepository(db, log),
		PetRepository:     NewPetRepository(db, log),
		SessionStorage:    NewSessionStorage(rdb, utils.NewHasher(cfg.Session.HashKey), log),
		db:                db,
		redis:             rdb,
	}, nil
}

// Close releases the database pool and the Redis client.
func (s *Storages) Close() error {
	var errs []error
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	return errors.Join(errs...)
}
