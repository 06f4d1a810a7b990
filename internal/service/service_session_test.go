package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-pet-life/internal/config"
	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/MKhiriev/go-pet-life/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSessionConfig = config.Session{
	Lifetime:          24 * time.Hour,
	PermanentLifetime: 31 * 24 * time.Hour,
}

func TestSessionService_LoadUnknownIsAnonymous(t *testing.T) {
	sessions := NewSessionService(newFakeSessionStorage(), testSessionConfig, logger.Nop())

	for _, id := range []string{"", "missing"} {
		sess, err := sessions.Load(context.Background(), id)
		require.NoError(t, err)
		require.NotNil(t, sess)
		assert.False(t, sess.Authenticated())
	}
}

func TestSessionService_LoadStorageError(t *testing.T) {
	storage := newFakeSessionStorage()
	storage.getFn = func(ctx context.Context, id string) (*models.Session, error) {
		return nil, errors.New("redis down")
	}
	sessions := NewSessionService(storage, testSessionConfig, logger.Nop())

	sess, err := sessions.Load(context.Background(), "some-id")
	require.Error(t, err)
	require.NotNil(t, sess)
	assert.False(t, sess.Authenticated())
}

func TestSessionService_StartRotatesID(t *testing.T) {
	storage := newFakeSessionStorage()
	sessions := NewSessionService(storage, testSessionConfig, logger.Nop())
	ctx := context.Background()

	sess := models.NewAnonymousSession()
	require.NoError(t, sessions.Start(ctx, sess, 7, false))
	first := sess.ID
	assert.NotEmpty(t, first)
	assert.Equal(t, 24*time.Hour, storage.ttls[first])

	require.NoError(t, sessions.Start(ctx, sess, 7, true))
	assert.NotEqual(t, first, sess.ID)
	assert.Equal(t, 31*24*time.Hour, storage.ttls[sess.ID])
	assert.Equal(t, 1, storage.len(), "previous record must be dropped")

	loaded, err := sessions.Load(ctx, sess.ID)
	require.NoError(t, err)
	userID, ok := loaded.Current()
	assert.True(t, ok)
	assert.EqualValues(t, 7, userID)
	assert.True(t, loaded.Permanent)
}

func TestSessionService_StartSaveError(t *testing.T) {
	storage := newFakeSessionStorage()
	storage.saveFn = func(ctx context.Context, session *models.Session, ttl time.Duration) error {
		return errors.New("redis down")
	}
	sessions := NewSessionService(storage, testSessionConfig, logger.Nop())

	sess := models.NewAnonymousSession()
	require.Error(t, sessions.Start(context.Background(), sess, 7, false))
	assert.False(t, sess.Authenticated())
}

func TestSessionService_Clear(t *testing.T) {
	storage := newFakeSessionStorage()
	sessions := NewSessionService(storage, testSessionConfig, logger.Nop())
	ctx := context.Background()

	sess := models.NewAnonymousSession()
	require.NoError(t, sessions.Start(ctx, sess, 7, false))
	id := sess.ID

	require.NoError(t, sessions.Clear(ctx, sess))
	assert.False(t, sess.Authenticated())
	assert.Empty(t, sess.ID)

	loaded, err := sessions.Load(ctx, id)
	require.NoError(t, err)
	assert.False(t, loaded.Authenticated())

	require.NoError(t, sessions.Clear(ctx, nil))
}

func TestRequireSession(t *testing.T) {
	_, err := RequireSession(models.NewAnonymousSession())
	assert.ErrorIs(t, err, ErrSessionRequired)

	_, err = RequireSession(nil)
	assert.ErrorIs(t, err, ErrSessionRequired)

	userID, err := RequireSession(&models.Session{ID: "abc", UserID: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 3, userID)
}
