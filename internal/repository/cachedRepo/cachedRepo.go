package cachedRepo

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"shoeshop/internal/domain"
	"shoeshop/pkg/prometheus"
)

type ShoeRepository interface {
	SaveShoe(ctx context.Context, shoe *domain.Shoe) error
	UpdateShoe(ctx context.Context, shoe *domain.Shoe) error
	GetShoeByID(ctx context.Context, id string) (*domain.Shoe, error)
	ListShoes(ctx context.Context, filter domain.ShoeFilter, page domain.Page) ([]domain.Shoe, int, error)
	DeleteShoe(ctx context.Context, id string) error
}

type CacheRepository interface {
	GetShoeByID(ctx context.Context, id string) (*domain.Shoe, error)
	SaveShoe(ctx context.Context, shoe *domain.Shoe) error
	DeleteShoes(ctx context.Context, ids ...string) error
}

// CachedRepo serves shoe reads from the cache and falls back to the database.
// Writes go to the database first and then drop the cached copy.
// A read that overlaps an invalidation does not write its result back.
type CachedRepo struct {
	repo       ShoeRepository
	cache      CacheRepository
	generation atomic.Uint64
	log        *slog.Logger
}

func NewCachedRepo(repo ShoeRepository, cache CacheRepository, log *slog.Logger) *CachedRepo {
	return &CachedRepo{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func (r *CachedRepo) SaveShoe(ctx context.Context, shoe *domain.Shoe) error {
	return r.repo.SaveShoe(ctx, shoe)
}

func (r *CachedRepo) ListShoes(ctx context.Context, filter domain.ShoeFilter, page domain.Page) ([]domain.Shoe, int, error) {
	return r.repo.ListShoes(ctx, filter, page)
}

func (r *CachedRepo) UpdateShoe(ctx context.Context, shoe *domain.Shoe) error {
	if err := r.repo.UpdateShoe(ctx, shoe); err != nil {
		return err
	}
	r.Invalidate(ctx, shoe.ID)
	return nil
}

func (r *CachedRepo) DeleteShoe(ctx context.Context, id string) error {
	if err := r.repo.DeleteShoe(ctx, id); err != nil {
		return err
	}
	r.Invalidate(ctx, id)
	return nil
}

func (r *CachedRepo) GetShoeByID(ctx context.Context, id string) (*domain.Shoe, error) {
	r.log.Debug("attempting to get shoe from cache", "shoe_id", id)
	shoe, err := r.cache.GetShoeByID(ctx, id)
	if err == nil && shoe != nil {
		prometheus.CacheOperations.WithLabelValues("hit").Inc()
		r.log.Debug("shoe found in cache", "shoe_id", id)
		return shoe, nil
	}
	prometheus.CacheOperations.WithLabelValues("miss").Inc()
	if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		r.log.Warn("error getting from cache, falling back to database", "error", err, "shoe_id", id)
	}

	gen := r.generation.Load()
	shoe, err = r.repo.GetShoeByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrRecordNotFound) {
			r.log.Error("failed to get shoe from database", "error", err, "shoe_id", id)
		}
		return nil, err
	}

	if r.generation.Load() != gen {
		r.log.Debug("shoe invalidated during read, not caching", "shoe_id", id)
		return shoe, nil
	}
	if err := r.cache.SaveShoe(ctx, shoe); err != nil {
		r.log.Warn("failed to save shoe to cache", "error", err, "shoe_id", id)
		return shoe, nil
	}
	if r.generation.Load() != gen {
		r.Invalidate(ctx, id)
	}
	return shoe, nil
}

// Invalidate drops cached copies after stock changed behind the cache's back.
// Cache failures are logged only; entries also expire on their own.
func (r *CachedRepo) Invalidate(ctx context.Context, ids ...string) {
	r.generation.Add(1)
	if err := r.cache.DeleteShoes(ctx, ids...); err != nil {
		r.log.Warn("failed to invalidate cached shoes", "error", err, "ids", ids)
	}
}
