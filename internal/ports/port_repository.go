package ports

import (
	"context"
	"voyage-route-service/internal/domain"
)

// Port: a boundary for reading port positions from the port registry.
type PortRepository interface {
	// Return the port or an error wrapping domain.ErrNotFound.
	GetPort(ctx context.Context, id string) (*domain.Port, error)
}
