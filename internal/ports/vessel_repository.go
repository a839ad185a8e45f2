package ports

import (
	"context"
	"voyage-route-service/internal/domain"
)

// Port: a boundary for reading vessel particulars from the fleet registry.
type VesselRepository interface {
	// Return the vessel or an error wrapping domain.ErrNotFound.
	GetVessel(ctx context.Context, id string) (*domain.Vessel, error)
}
