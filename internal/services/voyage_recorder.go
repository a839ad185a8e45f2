package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"voyage-route-service/internal/domain"
	"voyage-route-service/internal/platform/obs"
	"voyage-route-service/internal/ports"
)

// VoyageRecorder feeds completed voyages back into the learned patterns.
type VoyageRecorder struct {
	Routes  ports.RouteRepository
	Metrics *obs.Metrics
}

func NewVoyageRecorder(routes ports.RouteRepository, metrics *obs.Metrics) *VoyageRecorder {
	return &VoyageRecorder{Routes: routes, Metrics: metrics}
}

// RecordVoyage counts one completed voyage on a stored route and returns the
// updated pattern for the route's key.
func (v *VoyageRecorder) RecordVoyage(ctx context.Context, outcome domain.VoyageOutcome) (_ *domain.LearnedRoutePattern, err error) {
	defer obs.Time(ctx, "routes.RecordVoyage")(&err)

	if strings.TrimSpace(outcome.RouteID) == "" {
		return nil, errors.New("record voyage: route id is required")
	}
	if outcome.ActualHours != nil && *outcome.ActualHours <= 0 {
		return nil, fmt.Errorf("record voyage: actual hours must be positive, got %v", *outcome.ActualHours)
	}

	route, err := v.Routes.GetRoute(ctx, outcome.RouteID)
	if err != nil {
		return nil, fmt.Errorf("record voyage: %w", err)
	}

	pattern, err := v.Routes.RecordVoyage(ctx, route, outcome)
	if err != nil {
		return nil, fmt.Errorf("record voyage: route %s: %w", route.ID, err)
	}

	v.Metrics.VoyageRecorded()
	return pattern, nil
}
