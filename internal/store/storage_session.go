package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/MKhiriev/go-pet-life/internal/utils"
	"github.com/MKhiriev/go-pet-life/models"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// sessionStorage keeps sessions in Redis. Keys are derived from the session
// ID with an HMAC so a leaked keyspace does not reveal valid cookies.
type sessionStorage struct {
	rdb    *redis.Client
	hasher *utils.Hasher
	logger *logger.Logger
}

// NewSessionStorage returns a [SessionStorage] backed by rdb.
func NewSessionStorage(rdb *redis.Client, hasher *utils.Hasher, logger *logger.Logger) SessionStorage {
	logger.Debug().Msg("creating session storage")
	return &sessionStorage{
		rdb:    rdb,
		hasher: hasher,
		logger: logger,
	}
}

func (s *sessionStorage) key(id string) string {
	return sessionKeyPrefix + s.hasher.HashString(id)
}

func (s *sessionStorage) Get(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}

	raw, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*sessionStorage.Get").Msg("error reading session")
		return nil, fmt.Errorf("error reading session: %w", err)
	}

	var session models.Session
	if err = json.Unmarshal(raw, &session); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionStorage.Get").Msg("corrupted session record")
		return nil, ErrSessionNotFound
	}
	session.ID = id

	return &session, nil
}

func (s *sessionStorage) Save(ctx context.Context, session *models.Session, ttl time.Duration) error {
	if session == nil || session.ID == "" {
		return errors.New("session without id")
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}

	if err = s.rdb.Set(ctx, s.key(session.ID), raw, ttl).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionStorage.Save").Msg("error writing session")
		return fmt.Errorf("error writing session: %w", err)
	}

	return nil
}

func (s *sessionStorage) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	if err := s.rdb.Del(ctx, s.key(id)).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionStorage.Delete").Msg("error deleting session")
		return fmt.Errorf("error deleting session: %w", err)
	}

	return nil
}
