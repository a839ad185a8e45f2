package repositories

import (
	"fmt"

	"voyage-route-service/internal/domain"
)

// One observation folded into a learned pattern.
type voyageSample struct {
	name          string
	distanceNm    float64
	durationHours float64
	onTime        float64
	pattern       domain.WaypointPattern
}

func newVoyageSample(route *domain.Route, outcome domain.VoyageOutcome) voyageSample {
	hours := route.EstimatedHours
	if outcome.ActualHours != nil {
		hours = *outcome.ActualHours
	}
	onTime := 0.0
	if outcome.OnTime {
		onTime = 1
	}

	return voyageSample{
		name:          fmt.Sprintf("%s-%s %s", route.OriginPortID, route.DestPortID, route.VesselType),
		distanceNm:    route.TotalDistanceNm,
		durationHours: hours,
		onTime:        onTime,
		pattern:       domain.NewWaypointPattern(route.Waypoints),
	}
}

// fold applies the sample to an existing pattern using running averages.
// A nil pattern starts a new one.
func (s voyageSample) fold(p *domain.LearnedRoutePattern, route *domain.Route) *domain.LearnedRoutePattern {
	if p == nil {
		return &domain.LearnedRoutePattern{
			OriginPortID:     route.OriginPortID,
			DestPortID:       route.DestPortID,
			VesselType:       route.VesselType,
			PatternName:      s.name,
			ObservedCount:    1,
			Reliability:      s.onTime,
			AvgDistanceNm:    s.distanceNm,
			AvgDurationHours: s.durationHours,
			WaypointPattern:  s.pattern,
		}
	}

	n := float64(p.ObservedCount)
	out := *p
	out.ObservedCount = p.ObservedCount + 1
	out.Reliability = (p.Reliability*n + s.onTime) / (n + 1)
	out.AvgDistanceNm = (p.AvgDistanceNm*n + s.distanceNm) / (n + 1)
	out.AvgDurationHours = (p.AvgDurationHours*n + s.durationHours) / (n + 1)
	out.WaypointPattern = s.pattern
	return &out
}
