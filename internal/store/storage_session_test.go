package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-pet-life/internal/config"
	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/MKhiriev/go-pet-life/internal/utils"
	"github.com/MKhiriev/go-pet-life/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionStorage(t *testing.T) (*sessionStorage, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewSessionStorage(rdb, utils.NewHasher("test-key"), logger.Nop()).(*sessionStorage), mr
}

func TestSessionStorage_SaveGetDelete(t *testing.T) {
	s, mr := newTestSessionStorage(t)
	ctx := context.Background()

	session := &models.Session{ID: "sid-1", UserID: 42, Permanent: true}
	require.NoError(t, s.Save(ctx, session, time.Hour))

	got, err := s.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, session, got)

	require.NoError(t, s.Delete(ctx, "sid-1"))
	_, err = s.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, mr.Keys())
}

func TestSessionStorage_KeyDoesNotRevealID(t *testing.T) {
	s, mr := newTestSessionStorage(t)

	require.NoError(t, s.Save(context.Background(), &models.Session{ID: "plain-session-id", UserID: 1}, time.Hour))

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], sessionKeyPrefix))
	assert.NotContains(t, keys[0], "plain-session-id")
}

func TestSessionStorage_Expiry(t *testing.T) {
	s, mr := newTestSessionStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &models.Session{ID: "sid", UserID: 1}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := s.Get(ctx, "sid")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStorage_Edges(t *testing.T) {
	s, mr := newTestSessionStorage(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.Error(t, s.Save(ctx, &models.Session{UserID: 1}, time.Hour))
	assert.Error(t, s.Save(ctx, nil, time.Hour))
	assert.NoError(t, s.Delete(ctx, ""))
	assert.NoError(t, s.Delete(ctx, "unknown"))

	require.NoError(t, mr.Set(s.key("broken"), "not-json"))
	_, err = s.Get(ctx, "broken")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStorage_RedisDown(t *testing.T) {
	s, mr := newTestSessionStorage(t)
	mr.Close()

	_, err := s.Get(context.Background(), "sid")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := NewRedisClient(context.Background(), config.Redis{Address: mr.Addr()}, logger.Nop())
	require.NoError(t, err)
	rdb.Close()

	mr.Close()
	_, err = NewRedisClient(context.Background(), config.Redis{Address: mr.Addr()}, logger.Nop())
	assert.Error(t, err)
}
