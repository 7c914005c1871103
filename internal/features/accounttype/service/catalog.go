package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"tg-checkin-backend/internal/common/cache"
	apperrors "tg-checkin-backend/internal/common/errors"
	"tg-checkin-backend/internal/features/accounttype/models"
	"tg-checkin-backend/internal/features/accounttype/repository"
	"tg-checkin-backend/internal/platform/telegram"
)

const (
	CatalogKey        = "account_type"
	DefaultCatalogTTL = 24 * time.Hour
	catalogColumns    = 2
)

// InvalidationPolicy decides what admin writes do to the cached catalog.
type InvalidationPolicy int

const (
	// TTLOnly leaves the cached catalog until it expires.
	TTLOnly InvalidationPolicy = iota
	// InvalidateOnWrite deletes the catalog key after every admin write.
	InvalidateOnWrite
)

func (p InvalidationPolicy) String() string {
	if p == InvalidateOnWrite {
		return "invalidate_on_write"
	}
	return "ttl_only"
}

// Cache is the subset of cache.CacheService the catalog needs.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type CatalogService interface {
	GetCatalog(ctx context.Context) (models.Catalog, error)
	// Written is called after an admin write to the pass-code collection.
	Written(ctx context.Context)
	Invalidate(ctx context.Context) error
}

type catalogService struct {
	repo   repository.AccountTypeRepository
	cache  Cache
	ttl    time.Duration
	policy InvalidationPolicy
}

func NewCatalogService(repo repository.AccountTypeRepository, c Cache, ttl time.Duration, policy InvalidationPolicy) CatalogService {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &catalogService{repo: repo, cache: c, ttl: ttl, policy: policy}
}

// GetCatalog serves the cached grid, rebuilding it from the store when the
// key is missing or holds an empty grid. Cache errors fall through to the
// store.
func (s *catalogService) GetCatalog(ctx context.Context) (models.Catalog, error) {
	var cached models.Catalog
	err := s.cache.Get(ctx, CatalogKey, &cached)
	switch {
	case err == nil && !cached.Empty():
		return cached, nil
	case err != nil && !errors.Is(err, cache.ErrCacheMiss):
		log.Warn().Err(err).Str("key", CatalogKey).Msg("catalog cache read failed")
	}

	labels, err := s.repo.Labels(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list account types", err)
	}

	catalog := models.Catalog(telegram.Grid(labels, catalogColumns))
	if catalog.Empty() {
		return catalog, nil
	}
	if err := s.cache.Set(ctx, CatalogKey, catalog, s.ttl); err != nil {
		log.Warn().Err(err).Str("key", CatalogKey).Msg("catalog cache write failed")
	}
	return catalog, nil
}

func (s *catalogService) Written(ctx context.Context) {
	if s.policy != InvalidateOnWrite {
		return
	}
	if err := s.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Str("key", CatalogKey).Msg("catalog invalidation failed")
	}
}

func (s *catalogService) Invalidate(ctx context.Context) error {
	if err := s.cache.Delete(ctx, CatalogKey); err != nil {
		return apperrors.NewCacheError("delete catalog", err)
	}
	return nil
}
