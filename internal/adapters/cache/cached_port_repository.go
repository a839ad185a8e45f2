package cache

import (
	"context"
	"log"

	"voyage-route-service/internal/domain"
	"voyage-route-service/internal/platform/obs"
	"voyage-route-service/internal/ports"
)

// Backing storage of the port cache.
type PortStore interface {
	// Return the cached port and whether it was present.
	Get(ctx context.Context, id string) (*domain.Port, bool, error)
	Put(ctx context.Context, p *domain.Port) error
}

// Read-through cache in front of a PortRepository. Cache failures are logged
// and the lookup falls back to the repository. Missing ports are not cached.
type CachedPortRepository struct {
	Next    ports.PortRepository
	Store   PortStore
	Metrics *obs.Metrics
}

func NewCachedPortRepository(next ports.PortRepository, store PortStore, m *obs.Metrics) *CachedPortRepository {
	return &CachedPortRepository{Next: next, Store: store, Metrics: m}
}

func (c *CachedPortRepository) GetPort(ctx context.Context, id string) (*domain.Port, error) {
	p, ok, err := c.Store.Get(ctx, id)
	switch {
	case err != nil:
		c.Metrics.CacheLookup("error")
		log.Printf("req_id=%s op=port_cache.get port=%s err=%v", obs.RequestID(ctx), id, err)
	case ok:
		c.Metrics.CacheLookup("hit")
		return p, nil
	default:
		c.Metrics.CacheLookup("miss")
	}

	p, err = c.Next.GetPort(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Store.Put(ctx, p); err != nil {
		log.Printf("req_id=%s op=port_cache.put port=%s err=%v", obs.RequestID(ctx), id, err)
	}
	return p, nil
}
