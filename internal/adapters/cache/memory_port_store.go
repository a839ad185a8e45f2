package cache

import (
	"context"
	"time"

	"voyage-route-service/internal/domain"

	gocache "github.com/patrickmn/go-cache"
)

// In-process port cache used when no Redis is configured.
type MemoryPortStore struct {
	c *gocache.Cache
}

func NewMemoryPortStore(ttl time.Duration) *MemoryPortStore {
	return &MemoryPortStore{c: gocache.New(ttl, ttl*2)}
}

func (s *MemoryPortStore) Get(_ context.Context, id string) (*domain.Port, bool, error) {
	v, ok := s.c.Get(id)
	if !ok {
		return nil, false, nil
	}
	p, ok := v.(domain.Port)
	if !ok {
		s.c.Delete(id)
		return nil, false, nil
	}
	return &p, true, nil
}

func (s *MemoryPortStore) Put(_ context.Context, p *domain.Port) error {
	s.c.Set(p.ID, *p, gocache.DefaultExpiration)
	return nil
}

// Number of cached ports, including expired entries not yet evicted.
func (s *MemoryPortStore) Len() int {
	return s.c.ItemCount()
}
