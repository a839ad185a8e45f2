package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voyage-route-service/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const redisPortKeyPrefix = "voyage:port:"

// Cached port encoding. Field names are short to keep entries small.
type portRecord struct {
	ID       string  `msgpack:"id"`
	Name     string  `msgpack:"n"`
	UNLocode string  `msgpack:"u"`
	Lat      float64 `msgpack:"lat"`
	Lon      float64 `msgpack:"lon"`
}

// Redis backed port cache. Entries are msgpack encoded and expire after TTL.
type RedisPortStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisPortStore(client *redis.Client, ttl time.Duration) *RedisPortStore {
	return &RedisPortStore{Client: client, TTL: ttl}
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis client: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis client: ping: %w", err)
	}
	return client, nil
}

func (s *RedisPortStore) Get(ctx context.Context, id string) (*domain.Port, bool, error) {
	if s.Client == nil {
		return nil, false, errors.New("port cache: redis client is nil")
	}

	b, err := s.Client.Get(ctx, redisPortKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("port cache get %q: %w", id, err)
	}

	var rec portRecord
	if err := msgpack.Unmarshal(b, &rec); err != nil {
		return nil, false, fmt.Errorf("port cache get %q: decode: %w", id, err)
	}

	return &domain.Port{
		ID:        rec.ID,
		Name:      rec.Name,
		UNLocode:  rec.UNLocode,
		Latitude:  rec.Lat,
		Longitude: rec.Lon,
	}, true, nil
}

func (s *RedisPortStore) Put(ctx context.Context, p *domain.Port) error {
	if s.Client == nil {
		return errors.New("port cache: redis client is nil")
	}

	b, err := msgpack.Marshal(portRecord{
		ID:       p.ID,
		Name:     p.Name,
		UNLocode: p.UNLocode,
		Lat:      p.Latitude,
		Lon:      p.Longitude,
	})
	if err != nil {
		return fmt.Errorf("port cache put %q: encode: %w", p.ID, err)
	}

	if err := s.Client.Set(ctx, redisPortKeyPrefix+p.ID, b, s.TTL).Err(); err != nil {
		return fmt.Errorf("port cache put %q: %w", p.ID, err)
	}
	return nil
}
