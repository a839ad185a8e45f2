package services

import (
	"time"

	"voyage-route-service/internal/domain"
	"voyage-route-service/internal/geo"
)

const (
	// Cruising speed assumed for freshly calculated routes.
	ReferenceSpeedKnots = 14.0

	// Flat bunker consumption used for fuel estimates.
	FuelTonsPerDay = 30.0

	// Confidence of a route with no voyage history behind it.
	CalculatedConfidence = 0.3

	CalculatedRouteWarning = "Newly calculated route - accuracy will improve as vessels complete this voyage"
)

// CalculateRoute builds a great-circle baseline route between two ports.
//
// The track is origin, the arithmetic mean of both port positions, and
// destination. The midpoint is not a geodesic midpoint and no land or depth
// avoidance is attempted; calculated routes carry low confidence so learned
// routes take over once voyages have been recorded.
func CalculateRoute(vessel *domain.Vessel, origin, dest *domain.Port, req domain.RouteRequest) *domain.Route {
	route := newRoute(domain.RouteCalculated, vessel, origin, dest, req)

	distance := geo.HaversineNm(origin.Position(), dest.Position())
	hours := distance / ReferenceSpeedKnots

	route.Waypoints = directTrack(origin, dest, ReferenceSpeedKnots)
	route.TotalDistanceNm = geo.Round2(distance)
	route.EstimatedHours = geo.Round2(hours)
	route.FuelEstimateMt = fuelEstimate(hours)
	route.ConfidenceScore = CalculatedConfidence
	route.Warn(CalculatedRouteWarning)

	return route
}

// directTrack returns the three-point origin/midpoint/destination track with
// leg distances and times at the given speed.
func directTrack(origin, dest *domain.Port, speedKnots float64) []domain.Waypoint {
	o := origin.Position()
	d := dest.Position()
	mid := geo.Midpoint(o, d)

	wps := []domain.Waypoint{
		{Lat: o.Lat, Lon: o.Lon, Name: origin.Name, Type: domain.WaypointDeparture},
		{Lat: mid.Lat, Lon: mid.Lon, Name: "Mid-passage", Type: domain.WaypointWaypoint},
		{Lat: d.Lat, Lon: d.Lon, Name: dest.Name, Type: domain.WaypointArrival},
	}
	fillLegs(wps, speedKnots)
	return wps
}

// fillLegs numbers the waypoints and sets distance and time to the next
// waypoint. The last waypoint has no leg.
func fillLegs(wps []domain.Waypoint, speedKnots float64) {
	for i := range wps {
		wps[i].Sequence = i
		wps[i].DistanceToNextNm = nil
		wps[i].HoursToNext = nil
		if i == len(wps)-1 {
			continue
		}

		leg := geo.HaversineNm(wps[i].Point(), wps[i+1].Point())
		wps[i].DistanceToNextNm = domain.Float64(geo.Round2(leg))
		if speedKnots > 0 {
			wps[i].HoursToNext = domain.Float64(geo.Round2(leg / speedKnots))
		}
	}
}

func fuelEstimate(hours float64) *float64 {
	return domain.Float64(geo.Round2(hours / 24 * FuelTonsPerDay))
}

func newRoute(kind domain.RouteType, vessel *domain.Vessel, origin, dest *domain.Port, req domain.RouteRequest) *domain.Route {
	draft, loa, beam := EffectiveDimensions(vessel, req)

	optimize := req.OptimizeFor
	if optimize == "" {
		optimize = domain.OptimizeSpeed
	}

	return &domain.Route{
		VesselID:     vessel.ID,
		OriginPortID: origin.ID,
		DestPortID:   dest.ID,
		Type:         kind,
		VesselType:   vessel.Type,
		OptimizeFor:  optimize,
		Constraints: domain.ConstraintSnapshot{
			MaxDraftMeters: draft,
			MaxLOAMeters:   loa,
			MaxBeamMeters:  beam,
		},
		AvoidedEcaZones:      req.AvoidEcaZones,
		AvoidedHighRisk:      req.AvoidHighRiskAreas,
		ConsideredCongestion: req.ConsiderCongestion,
		ConsideredWeather:    req.ConsiderWeather,
		Warnings:             []string{},
		CreatedAt:            time.Now().UTC(),
	}
}
