package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tg-checkin-backend/internal/common/cache"
	apperrors "tg-checkin-backend/internal/common/errors"
	"tg-checkin-backend/internal/features/accounttype/models"
	"tg-checkin-backend/internal/features/accounttype/repository/repotest"
)

type countingCache struct {
	*cache.CacheService
	sets int
}

func (c *countingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.sets++
	return c.CacheService.Set(ctx, key, value, ttl)
}

func newCache(t *testing.T) (*countingCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &countingCache{CacheService: cache.NewCacheService(client)}, mr
}

func TestCatalog_CachesAfterFirstRead(t *testing.T) {
	repo := repotest.New("A1", "B2", "C3")
	c, mr := newCache(t)
	s := NewCatalogService(repo, c, DefaultCatalogTTL, TTLOnly)
	ctx := context.Background()

	catalog, err := s.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.Calls["Labels"])
	assert.Equal(t, 1, c.sets)
	require.Len(t, catalog, 2)
	assert.Len(t, catalog[0], 2)
	assert.Len(t, catalog[1], 1)
	assert.Equal(t, "C3", catalog[1][0].CallbackData)
	assert.True(t, mr.Exists(CatalogKey))
	assert.Equal(t, DefaultCatalogTTL, mr.TTL(CatalogKey))

	again, err := s.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog, again)
	assert.Equal(t, 1, repo.Calls["Labels"])
	assert.Equal(t, 1, c.sets)

	mr.FastForward(DefaultCatalogTTL + time.Second)
	_, err = s.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.Calls["Labels"])
}

func TestCatalog_EmptyCacheValueCountsAsMiss(t *testing.T) {
	repo := repotest.New("A1")
	c, mr := newCache(t)
	require.NoError(t, mr.Set(CatalogKey, "[]"))

	catalog, err := NewCatalogService(repo, c, time.Hour, TTLOnly).GetCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.Calls["Labels"])
	label, ok := catalog.Match("A1")
	assert.True(t, ok)
	assert.Equal(t, "A1", label)
}

func TestCatalog_InvalidationPolicy(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		policy InvalidationPolicy
		cached bool
	}{
		{TTLOnly, true},
		{InvalidateOnWrite, false},
	} {
		t.Run(tc.policy.String(), func(t *testing.T) {
			repo := repotest.New("A1")
			c, mr := newCache(t)
			catalog := NewCatalogService(repo, c, time.Hour, tc.policy)
			_, err := catalog.GetCatalog(ctx)
			require.NoError(t, err)

			admin := NewAccountTypeService(repo, catalog)
			_, err = admin.Create(ctx, models.CreateRequest{Type: "B2"})
			require.NoError(t, err)
			assert.Equal(t, tc.cached, mr.Exists(CatalogKey))
		})
	}
}

func TestAccountTypeService_Create(t *testing.T) {
	repo := repotest.New("A1")
	c, _ := newCache(t)
	s := NewAccountTypeService(repo, NewCatalogService(repo, c, time.Hour, TTLOnly))
	ctx := context.Background()

	_, err := s.Create(ctx, models.CreateRequest{Type: "A1"})
	assert.Equal(t, 409, apperrors.StatusCode(err))
	assert.Equal(t, apperrors.MsgAlreadyExists, apperrors.PublicMessage(err))

	_, err = s.Create(ctx, models.CreateRequest{Type: "x"})
	assert.Equal(t, 400, apperrors.StatusCode(err))
	assert.Equal(t, "账号类型太短", apperrors.PublicMessage(err))

	code := "123456"
	created, err := s.Create(ctx, models.CreateRequest{Type: " B2 ", Password: &code})
	require.NoError(t, err)
	assert.Equal(t, "B2", created.Type)

	found, err := s.VerifyPassword(ctx, code)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	missing, err := s.VerifyPassword(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAccountTypeService_Update(t *testing.T) {
	repo := repotest.New("A1", "B2")
	c, _ := newCache(t)
	s := NewAccountTypeService(repo, NewCatalogService(repo, c, time.Hour, TTLOnly))
	ctx := context.Background()
	rows := repo.Rows()

	err := s.Update(ctx, "", models.UpdateRequest{ID: rows[0].ID.Hex(), Type: "B2"})
	assert.Equal(t, 400, apperrors.StatusCode(err))
	assert.Equal(t, apperrors.MsgRecordExists, apperrors.PublicMessage(err))

	err = s.Update(ctx, "", models.UpdateRequest{ID: "bad", Type: "C3"})
	assert.Equal(t, apperrors.MsgInvalidID, apperrors.PublicMessage(err))

	require.NoError(t, s.Update(ctx, rows[0].ID.Hex(), models.UpdateRequest{Type: "C3"}))
	got, err := s.Get(ctx, rows[0].ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "C3", got.Type)

	require.NoError(t, s.Update(ctx, "", models.UpdateRequest{ID: rows[0].ID.Hex(), Type: "C3"}))

	require.NoError(t, s.Delete(ctx, rows[0].ID.Hex()))
	err = s.Delete(ctx, rows[0].ID.Hex())
	assert.Equal(t, apperrors.MsgNotRecorded, apperrors.PublicMessage(err))
}
