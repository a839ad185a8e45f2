package domain

import "time"

// Provenance of a route.
type RouteType string

const (
	RouteCalculated RouteType = "CALCULATED"
	RouteLearned    RouteType = "LEARNED"
	RouteHybrid     RouteType = "HYBRID"
)

// Role of a waypoint within the route.
type WaypointType string

const (
	WaypointDeparture WaypointType = "DEPARTURE"
	WaypointWaypoint  WaypointType = "WAYPOINT"
	WaypointCanal     WaypointType = "CANAL"
	WaypointStrait    WaypointType = "STRAIT"
	WaypointAnchorage WaypointType = "ANCHORAGE"
	WaypointArrival   WaypointType = "ARRIVAL"
)

// Valid reports whether t is one of the known waypoint roles.
func (t WaypointType) Valid() bool {
	switch t {
	case WaypointDeparture, WaypointWaypoint, WaypointCanal, WaypointStrait, WaypointAnchorage, WaypointArrival:
		return true
	}
	return false
}

// Objective requested by the planner.
type OptimizeFor string

const (
	OptimizeSpeed  OptimizeFor = "SPEED"
	OptimizeFuel   OptimizeFor = "FUEL"
	OptimizeSafety OptimizeFor = "SAFETY"
	OptimizeCost   OptimizeFor = "COST"
)

// Represents a single point of a route track. The sequence of waypoints
// defines the path; leg values describe the leg to the following waypoint.
type Waypoint struct {
	Sequence         int
	Lat              float64
	Lon              float64
	Name             string
	Type             WaypointType
	DistanceToNextNm *float64
	HoursToNext      *float64
	SpeedLimitKnots  *float64
}

// Return the waypoint position.
func (w Waypoint) Point() GeoPoint { return GeoPoint{Lat: w.Lat, Lon: w.Lon} }

// Physical limits the route was planned for.
type ConstraintSnapshot struct {
	MaxDraftMeters float64
	MaxLOAMeters   float64
	MaxBeamMeters  float64
}

// Represents a planned voyage route for one vessel between two ports.
// A Route is created per planning request and persisted by the store for reuse.
type Route struct {
	ID           string
	VesselID     string
	OriginPortID string
	DestPortID   string
	Type         RouteType
	VesselType   VesselType
	OptimizeFor  OptimizeFor
	Constraints  ConstraintSnapshot

	TotalDistanceNm float64
	EstimatedHours  float64
	FuelEstimateMt  *float64
	ConfidenceScore float64
	UsageCount      int

	AvoidedEcaZones      bool
	AvoidedHighRisk      bool
	ConsideredCongestion bool
	ConsideredWeather    bool

	Waypoints []Waypoint
	Warnings  []string
	CreatedAt time.Time
}

// Track returns the waypoint positions in sequence order.
func (r *Route) Track() []GeoPoint {
	pts := make([]GeoPoint, 0, len(r.Waypoints))
	for _, w := range r.Waypoints {
		pts = append(pts, w.Point())
	}
	return pts
}

// Append an advisory message to the route.
func (r *Route) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Parameters of a route planning request. Dimension overrides replace the
// vessel's registered particulars for constraint checks.
type RouteRequest struct {
	VesselID           string
	OriginPortID       string
	DestPortID         string
	DraftMeters        *float64
	LOAMeters          *float64
	BeamMeters         *float64
	OptimizeFor        OptimizeFor
	AvoidEcaZones      bool
	AvoidHighRiskAreas bool
	ConsiderCongestion bool
	ConsiderWeather    bool
}

// Outcome of a completed voyage sailed on a stored route.
type VoyageOutcome struct {
	RouteID     string
	ActualHours *float64
	OnTime      bool
}

func Float64(v float64) *float64 { return &v }
