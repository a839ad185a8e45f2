package dto

import (
	"time"

	"voyage-route-service/internal/domain"
)

type RouteRequest struct {
	VesselID           string   `json:"vessel_id" validate:"required"`
	OriginPortID       string   `json:"origin_port_id" validate:"required"`
	DestPortID         string   `json:"dest_port_id" validate:"required"`
	DraftMeters        *float64 `json:"draft_meters" validate:"omitempty,gt=0,lte=40"`
	LOAMeters          *float64 `json:"loa_meters" validate:"omitempty,gt=0,lte=500"`
	BeamMeters         *float64 `json:"beam_meters" validate:"omitempty,gt=0,lte=100"`
	OptimizeFor        string   `json:"optimize_for" validate:"omitempty,oneof=SPEED FUEL SAFETY COST"`
	AvoidEcaZones      bool     `json:"avoid_eca_zones"`
	AvoidHighRiskAreas bool     `json:"avoid_high_risk_areas"`
	ConsiderCongestion bool     `json:"consider_congestion"`
	ConsiderWeather    bool     `json:"consider_weather"`
}

func (r RouteRequest) ToDomain() domain.RouteRequest {
	return domain.RouteRequest{
		VesselID:           r.VesselID,
		OriginPortID:       r.OriginPortID,
		DestPortID:         r.DestPortID,
		DraftMeters:        r.DraftMeters,
		LOAMeters:          r.LOAMeters,
		BeamMeters:         r.BeamMeters,
		OptimizeFor:        domain.OptimizeFor(r.OptimizeFor),
		AvoidEcaZones:      r.AvoidEcaZones,
		AvoidHighRiskAreas: r.AvoidHighRiskAreas,
		ConsiderCongestion: r.ConsiderCongestion,
		ConsiderWeather:    r.ConsiderWeather,
	}
}

type WaypointResponse struct {
	Sequence         int      `json:"sequence"`
	Lat              float64  `json:"lat"`
	Lon              float64  `json:"lon"`
	Name             string   `json:"name,omitempty"`
	Type             string   `json:"type"`
	DistanceToNextNm *float64 `json:"distance_to_next_nm,omitempty"`
	HoursToNext      *float64 `json:"hours_to_next,omitempty"`
	SpeedLimitKnots  *float64 `json:"speed_limit_knots,omitempty"`
}

type ConstraintSnapshotResponse struct {
	MaxDraftMeters float64 `json:"max_draft_meters"`
	MaxLOAMeters   float64 `json:"max_loa_meters"`
	MaxBeamMeters  float64 `json:"max_beam_meters"`
}

type RouteResponse struct {
	ID                   string                     `json:"id"`
	VesselID             string                     `json:"vessel_id"`
	OriginPortID         string                     `json:"origin_port_id"`
	DestPortID           string                     `json:"dest_port_id"`
	RouteType            string                     `json:"route_type"`
	VesselType           string                     `json:"vessel_type"`
	OptimizeFor          string                     `json:"optimize_for"`
	Constraints          ConstraintSnapshotResponse `json:"constraints"`
	TotalDistanceNm      float64                    `json:"total_distance_nm"`
	EstimatedHours       float64                    `json:"estimated_hours"`
	FuelEstimateMt       *float64                   `json:"fuel_estimate_mt,omitempty"`
	ConfidenceScore      float64                    `json:"confidence_score"`
	UsageCount           int                        `json:"usage_count"`
	AvoidedEcaZones      bool                       `json:"avoided_eca_zones"`
	AvoidedHighRisk      bool                       `json:"avoided_high_risk"`
	ConsideredCongestion bool                       `json:"considered_congestion"`
	ConsideredWeather    bool                       `json:"considered_weather"`
	Waypoints            []WaypointResponse         `json:"waypoints"`
	Warnings             []string                   `json:"warnings"`
	CreatedAt            time.Time                  `json:"created_at"`
}

func NewRouteResponse(r *domain.Route) RouteResponse {
	wps := make([]WaypointResponse, 0, len(r.Waypoints))
	for _, w := range r.Waypoints {
		wps = append(wps, WaypointResponse{
			Sequence:         w.Sequence,
			Lat:              w.Lat,
			Lon:              w.Lon,
			Name:             w.Name,
			Type:             string(w.Type),
			DistanceToNextNm: w.DistanceToNextNm,
			HoursToNext:      w.HoursToNext,
			SpeedLimitKnots:  w.SpeedLimitKnots,
		})
	}

	warnings := r.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return RouteResponse{
		ID:           r.ID,
		VesselID:     r.VesselID,
		OriginPortID: r.OriginPortID,
		DestPortID:   r.DestPortID,
		RouteType:    string(r.Type),
		VesselType:   string(r.VesselType),
		OptimizeFor:  string(r.OptimizeFor),
		Constraints: ConstraintSnapshotResponse{
			MaxDraftMeters: r.Constraints.MaxDraftMeters,
			MaxLOAMeters:   r.Constraints.MaxLOAMeters,
			MaxBeamMeters:  r.Constraints.MaxBeamMeters,
		},
		TotalDistanceNm:      r.TotalDistanceNm,
		EstimatedHours:       r.EstimatedHours,
		FuelEstimateMt:       r.FuelEstimateMt,
		ConfidenceScore:      r.ConfidenceScore,
		UsageCount:           r.UsageCount,
		AvoidedEcaZones:      r.AvoidedEcaZones,
		AvoidedHighRisk:      r.AvoidedHighRisk,
		ConsideredCongestion: r.ConsideredCongestion,
		ConsideredWeather:    r.ConsideredWeather,
		Waypoints:            wps,
		Warnings:             warnings,
		CreatedAt:            r.CreatedAt,
	}
}

type VoyageRequest struct {
	ActualHours *float64 `json:"actual_hours" validate:"omitempty,gt=0"`
	OnTime      bool     `json:"on_time"`
}

type PatternResponse struct {
	OriginPortID     string  `json:"origin_port_id"`
	DestPortID       string  `json:"dest_port_id"`
	VesselType       string  `json:"vessel_type"`
	PatternName      string  `json:"pattern_name"`
	ObservedCount    int     `json:"observed_count"`
	Reliability      float64 `json:"reliability"`
	AvgDistanceNm    float64 `json:"avg_distance_nm"`
	AvgDurationHours float64 `json:"avg_duration_hours"`
	Waypoints        int     `json:"waypoints"`
}

func NewPatternResponse(p *domain.LearnedRoutePattern) PatternResponse {
	return PatternResponse{
		OriginPortID:     p.OriginPortID,
		DestPortID:       p.DestPortID,
		VesselType:       string(p.VesselType),
		PatternName:      p.PatternName,
		ObservedCount:    p.ObservedCount,
		Reliability:      p.Reliability,
		AvgDistanceNm:    p.AvgDistanceNm,
		AvgDurationHours: p.AvgDurationHours,
		Waypoints:        len(p.WaypointPattern.Points),
	}
}

type RouteListQuery struct {
	Limit int `json:"limit" validate:"gte=0,lte=500"`
}

type ListRouteResponse struct {
	Routes []RouteResponse `json:"routes"`
}

func NewListRouteResponse(routes []*domain.Route) ListRouteResponse {
	out := make([]RouteResponse, 0, len(routes))
	for _, r := range routes {
		out = append(out, NewRouteResponse(r))
	}
	return ListRouteResponse{Routes: out}
}

type PatternQuery struct {
	OriginPortID   string  `json:"origin_port_id"`
	DestPortID     string  `json:"dest_port_id"`
	VesselType     string  `json:"vessel_type" validate:"omitempty,oneof=BULK_CARRIER TANKER CONTAINER GENERAL_CARGO LNG_CARRIER RO_RO"`
	MinReliability float64 `json:"min_reliability" validate:"gte=0,lte=1"`
	Limit          int     `json:"limit" validate:"gte=0,lte=500"`
}

func (q PatternQuery) ToDomain() domain.PatternFilter {
	return domain.PatternFilter{
		OriginPortID:   q.OriginPortID,
		DestPortID:     q.DestPortID,
		VesselType:     domain.VesselType(q.VesselType),
		MinReliability: q.MinReliability,
		Limit:          q.Limit,
	}
}

type ListPatternResponse struct {
	Patterns []PatternResponse `json:"patterns"`
}

func NewListPatternResponse(patterns []*domain.LearnedRoutePattern) ListPatternResponse {
	out := make([]PatternResponse, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, NewPatternResponse(p))
	}
	return ListPatternResponse{Patterns: out}
}
