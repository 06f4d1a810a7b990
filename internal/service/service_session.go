package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pet-life/internal/config"
	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/MKhiriev/go-pet-life/internal/store"
	"github.com/MKhiriev/go-pet-life/internal/utils"
	"github.com/MKhiriev/go-pet-life/models"
)

type sessionService struct {
	storage store.SessionStorage
	ids     *utils.UUIDGenerator

	lifetime          time.Duration
	permanentLifetime time.Duration

	logger *logger.Logger
}

// NewSessionService builds a SessionService on top of storage with the
// lifetimes from cfg.
func NewSessionService(storage store.SessionStorage, cfg config.Session, logger *logger.Logger) SessionService {
	return &sessionService{
		storage:           storage,
		ids:               utils.NewUUIDGenerator(),
		lifetime:          cfg.Lifetime,
		permanentLifetime: cfg.PermanentLifetime,
		logger:            logger,
	}
}

// Load never returns a nil session. A storage failure is reported together
// with an anonymous session.
func (s *sessionService) Load(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		return models.NewAnonymousSession(), nil
	}

	sess, err := s.storage.Get(ctx, id)
	if errors.Is(err, store.ErrSessionNotFound) {
		return models.NewAnonymousSession(), nil
	}
	if err != nil {
		return models.NewAnonymousSession(), fmt.Errorf("error loading session: %w", err)
	}
	return sess, nil
}

// Start drops the previous session record, if any, and stores sess under a
// new random id.
func (s *sessionService) Start(ctx context.Context, sess *models.Session, userID int64, remember bool) error {
	if sess == nil {
		return errors.New("nil session")
	}

	if sess.ID != "" {
		if err := s.storage.Delete(ctx, sess.ID); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Msg("failed to drop previous session")
		}
	}

	sess.ID = s.ids.Random()
	sess.UserID = userID
	sess.Permanent = remember

	if err := s.storage.Save(ctx, sess, s.Lifetime(sess)); err != nil {
		sess.Reset()
		return fmt.Errorf("error starting session: %w", err)
	}
	return nil
}

func (s *sessionService) Clear(ctx context.Context, sess *models.Session) error {
	if sess == nil {
		return nil
	}

	id := sess.ID
	sess.Reset()
	if id == "" {
		return nil
	}
	if err := s.storage.Delete(ctx, id); err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}
	return nil
}

func (s *sessionService) Lifetime(sess *models.Session) time.Duration {
	if sess != nil && sess.Permanent {
		return s.permanentLifetime
	}
	return s.lifetime
}

// RequireSession returns the user behind sess or ErrSessionRequired.
func RequireSession(sess *models.Session) (int64, error) {
	userID, ok := sess.Current()
	if !ok {
		return 0, ErrSessionRequired
	}
	return userID, nil
}
