package redisCache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"shoeshop/configs"
	"shoeshop/internal/domain"
)

const recentSetName = "recent_shoes"

type RedisRepo struct {
	client   *redis.Client
	prefix   string
	capacity int
	ttl      time.Duration
	log      *slog.Logger
}

func NewCache(ctx context.Context, cfg *configs.Config, prefix string, log *slog.Logger) (*RedisRepo,
	error) {
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.RD.Host,
		DB:           cfg.RD.DB,
		Username:     cfg.RD.User,
		Password:     cfg.RD.Password,
		MaxRetries:   cfg.RD.MaxRetries,
		DialTimeout:  cfg.RD.DialTimeout,
		ReadTimeout:  cfg.RD.ReadTimeout,
		WriteTimeout: cfg.RD.WriteTimeout,
	})

	log.Info("attempting to connect to Redis", "host", cfg.RD.Host, "db", cfg.RD.DB)

	if err := db.Ping(ctx).Err(); err != nil {
		log.Error("Redis connection failed", "error", err, "host", cfg.RD.Host)
		_ = db.Close()
		return nil, err
	}
	log.Info("successfully connected to Redis", "host", cfg.RD.Host)

	return NewCacheWithClient(db, prefix, cfg.RD.Capacity, cfg.RD.TTL, log), nil
}

func NewCacheWithClient(client *redis.Client, prefix string, capacity int, ttl time.Duration,
	log *slog.Logger) *RedisRepo {
	return &RedisRepo{
		client:   client,
		prefix:   prefix,
		capacity: capacity,
		ttl:      ttl,
		log:      log,
	}
}

func (r *RedisRepo) GetShoeByID(ctx context.Context, id string) (*domain.Shoe, error) {
	r.log.Debug("Getting shoe from Redis", "shoe_id", id)
	data, err := r.client.Get(ctx, r.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		r.log.Debug("Shoe not found in cache", "shoe_id", id)
		return nil, domain.ErrRecordNotFound
	} else if err != nil {
		r.log.Debug("error getting from redis", "shoe_id", id)
		return nil, err
	}

	shoe := &domain.Shoe{}
	if err := json.Unmarshal(data, shoe); err != nil {
		r.log.Debug("error converting from redis", "shoe_id", id)
		return nil, err
	}
	return shoe, nil
}

// SaveShoe caches the shoe and evicts the oldest entries once capacity is exceeded.
func (r *RedisRepo) SaveShoe(ctx context.Context, shoe *domain.Shoe) error {
	data, err := json.Marshal(shoe)
	if err != nil {
		r.log.Error("error while setting to Redis", "error", err, "shoe_id", shoe.ID)
		return err
	}
	if err := r.client.Set(ctx, r.prefix+shoe.ID, data, r.ttl).Err(); err != nil {
		return err
	}

	sortedSetKey := r.prefix + recentSetName
	err = r.client.ZAdd(ctx, sortedSetKey, redis.Z{
		Score:  float64(time.Now().UnixNano()),
		Member: shoe.ID,
	}).Err()
	if err != nil {
		return err
	}

	if r.capacity > 0 {
		if err := r.evict(ctx, sortedSetKey); err != nil {
			return err
		}
	}

	r.log.Debug("shoe cached", "shoe_id", shoe.ID)
	return nil
}

func (r *RedisRepo) evict(ctx context.Context, sortedSetKey string) error {
	count, err := r.client.ZCard(ctx, sortedSetKey).Result()
	if err != nil {
		return err
	}
	if count <= int64(r.capacity) {
		return nil
	}

	stop := count - int64(r.capacity) - 1
	idsToRemove, err := r.client.ZRange(ctx, sortedSetKey, 0, stop).Result()
	if err != nil {
		r.log.Error("failed to get old shoes for removal", "error", err)
		return err
	}

	removedFromSet, err := r.client.ZRemRangeByRank(ctx, sortedSetKey, 0, stop).Result()
	if err != nil {
		r.log.Error("failed to remove from sorted set", "error", err)
		return err
	}

	if len(idsToRemove) > 0 {
		keysToDelete := make([]string, len(idsToRemove))
		for i, id := range idsToRemove {
			keysToDelete[i] = r.prefix + id
		}

		deleted, err := r.client.Del(ctx, keysToDelete...).Result()
		if err != nil {
			r.log.Error("failed to delete shoe data", "error", err)
		} else {
			r.log.Debug("evicted old shoes",
				"from_set", removedFromSet,
				"from_data", deleted,
				"ids", idsToRemove)
		}
	}
	return nil
}

// DeleteShoes drops the given shoes from the cache. Missing keys are ignored.
func (r *RedisRepo) DeleteShoes(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	members := make([]any, len(ids))
	for i, id := range ids {
		keys[i] = r.prefix + id
		members[i] = id
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, keys...)
	pipe.ZRem(ctx, r.prefix+recentSetName, members...)
	if _, err := pipe.Exec(ctx); err != nil {
		r.log.Error("failed to invalidate shoes", "error", err, "ids", ids)
		return err
	}
	return nil
}

func (r *RedisRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepo) Close() error {
	return r.client.Close()
}
