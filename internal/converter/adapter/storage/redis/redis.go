package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/welezhka/converter/internal/entities"
)

// Storage caches rate tables keyed by base currency, each entry expiring
// after the configured TTL.
type Storage struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStorage(client redis.UniversalClient, ttl time.Duration) *Storage {
	return &Storage{
		rdb: client.(*redis.Client),
		ttl: ttl,
	}
}

func InitStorage(ctx context.Context, options *redis.Options, ttl time.Duration) (*Storage, error) {
	const op = "storage.redis.InitStorage"

	redisClient := redis.NewClient(options)

	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		return nil, errors.Wrap(err, op)
	}

	return NewStorage(redisClient, ttl), nil
}

func (s *Storage) GetRates(ctx context.Context, base string) (*entities.RateTable, error) {
	const op = "storage.redis.GetRates"

	raw, err := s.rdb.Get(ctx, ratesKey(base)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	var table entities.RateTable
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, errors.Wrap(err, op)
	}

	return &table, nil
}

func (s *Storage) SetRates(ctx context.Context, table *entities.RateTable) error {
	const op = "storage.redis.SetRates"

	raw, err := json.Marshal(table)
	if err != nil {
		return errors.Wrap(err, op)
	}

	if err := s.rdb.Set(ctx, ratesKey(table.Base), raw, s.ttl).Err(); err != nil {
		return errors.Wrap(err, op)
	}

	return nil
}

func ratesKey(base string) string {
	return "rates:" + base
}
