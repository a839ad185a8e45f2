package services

import (
	"voyage-route-service/internal/domain"
	"voyage-route-service/internal/geo"
)

// Thresholds for trusting a learned pattern.
const (
	MinPatternObservations = 3
	MinPatternReliability  = 0.7
)

// PatternTrusted reports whether a learned pattern may replace calculation.
func PatternTrusted(p *domain.LearnedRoutePattern) bool {
	return p != nil && p.ObservedCount >= MinPatternObservations && p.Reliability > MinPatternReliability
}

// HistoricalUsable reports whether a stored route has been sailed at least once.
func HistoricalUsable(r *domain.Route) bool {
	return r != nil && r.UsageCount >= 1
}

// AdaptPattern turns a learned pattern into a route for this request. The
// pattern's averages and reliability carry over. When the stored track is
// not usable the default three-point track is used instead.
func AdaptPattern(p *domain.LearnedRoutePattern, vessel *domain.Vessel, origin, dest *domain.Port, req domain.RouteRequest) *domain.Route {
	route := newRoute(domain.RouteLearned, vessel, origin, dest, req)

	speed := ReferenceSpeedKnots
	if p.AvgDistanceNm > 0 && p.AvgDurationHours > 0 {
		speed = p.AvgDistanceNm / p.AvgDurationHours
	}

	if p.WaypointPattern.Usable() {
		route.Waypoints = patternTrack(p.WaypointPattern, speed)
	} else {
		route.Waypoints = directTrack(origin, dest, speed)
	}

	distance := p.AvgDistanceNm
	if distance <= 0 {
		distance = geo.TrackDistanceNm(route.Track())
	}
	hours := p.AvgDurationHours
	if hours <= 0 {
		hours = distance / speed
	}

	route.TotalDistanceNm = geo.Round2(distance)
	route.EstimatedHours = geo.Round2(hours)
	route.FuelEstimateMt = fuelEstimate(hours)
	route.ConfidenceScore = clamp01(p.Reliability)

	return route
}

// AdaptHistorical reuses a stored route's track and confidence for a new request.
func AdaptHistorical(h *domain.Route, vessel *domain.Vessel, origin, dest *domain.Port, req domain.RouteRequest) *domain.Route {
	route := newRoute(domain.RouteLearned, vessel, origin, dest, req)

	speed := ReferenceSpeedKnots
	if h.TotalDistanceNm > 0 && h.EstimatedHours > 0 {
		speed = h.TotalDistanceNm / h.EstimatedHours
	}

	if len(h.Waypoints) >= 2 {
		route.Waypoints = append([]domain.Waypoint(nil), h.Waypoints...)
		for i := range route.Waypoints {
			route.Waypoints[i].Sequence = i
		}
		if legsMissing(route.Waypoints) {
			fillLegs(route.Waypoints, speed)
		}
	} else {
		route.Waypoints = directTrack(origin, dest, speed)
	}

	distance := h.TotalDistanceNm
	if distance <= 0 {
		distance = geo.TrackDistanceNm(route.Track())
	}
	hours := h.EstimatedHours
	if hours <= 0 {
		hours = distance / speed
	}

	route.TotalDistanceNm = geo.Round2(distance)
	route.EstimatedHours = geo.Round2(hours)
	if h.FuelEstimateMt != nil {
		route.FuelEstimateMt = domain.Float64(*h.FuelEstimateMt)
	} else {
		route.FuelEstimateMt = fuelEstimate(hours)
	}
	route.ConfidenceScore = clamp01(h.ConfidenceScore)

	return route
}

func patternTrack(p domain.WaypointPattern, speedKnots float64) []domain.Waypoint {
	wps := make([]domain.Waypoint, 0, len(p.Points))
	last := len(p.Points) - 1
	for i, pt := range p.Points {
		t := pt.Type
		switch {
		case i == 0:
			t = domain.WaypointDeparture
		case i == last:
			t = domain.WaypointArrival
		case t == "" || t == domain.WaypointDeparture || t == domain.WaypointArrival:
			t = domain.WaypointWaypoint
		}
		wps = append(wps, domain.Waypoint{Lat: pt.Lat, Lon: pt.Lon, Name: pt.Name, Type: t})
	}
	fillLegs(wps, speedKnots)
	return wps
}

func legsMissing(wps []domain.Waypoint) bool {
	for _, w := range wps[:len(wps)-1] {
		if w.DistanceToNextNm == nil {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
