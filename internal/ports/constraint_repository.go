package ports

import (
	"context"
	"voyage-route-service/internal/domain"
)

// Port: the registry of physical route constraints (canals, straits, locks).
type ConstraintRepository interface {
	// Return active constraints applying to the vessel type, including those
	// registered for every type.
	ListConstraints(ctx context.Context, vesselType domain.VesselType) ([]domain.RouteConstraint, error)
}
