package domain

import (
	"encoding/json"
	"math"
)

// Kind tag carried by every serialized waypoint pattern.
const WaypointPatternKind = "waypoint_list"

// A single point of a learned track.
type PatternPoint struct {
	Lat  float64      `json:"lat"`
	Lon  float64      `json:"lon"`
	Name string       `json:"name,omitempty"`
	Type WaypointType `json:"type,omitempty"`
}

// Tagged list of points describing the track of a learned pattern.
// The zero value is an empty pattern.
type WaypointPattern struct {
	Kind   string         `json:"kind"`
	Points []PatternPoint `json:"points"`
}

// Build a pattern from route waypoints.
func NewWaypointPattern(wps []Waypoint) WaypointPattern {
	pts := make([]PatternPoint, 0, len(wps))
	for _, w := range wps {
		pts = append(pts, PatternPoint{Lat: w.Lat, Lon: w.Lon, Name: w.Name, Type: w.Type})
	}
	return WaypointPattern{Kind: WaypointPatternKind, Points: pts}
}

// ParseWaypointPattern decodes a stored payload. Anything that is not a
// well-formed waypoint list yields the empty pattern rather than an error.
func ParseWaypointPattern(raw []byte) WaypointPattern {
	if len(raw) == 0 {
		return WaypointPattern{}
	}

	var p WaypointPattern
	if err := json.Unmarshal(raw, &p); err != nil {
		return WaypointPattern{}
	}
	if p.Kind != WaypointPatternKind {
		return WaypointPattern{}
	}

	for _, pt := range p.Points {
		if math.IsNaN(pt.Lat) || math.IsNaN(pt.Lon) ||
			pt.Lat < -90 || pt.Lat > 90 || pt.Lon < -180 || pt.Lon > 180 {
			return WaypointPattern{}
		}
		if pt.Type != "" && !pt.Type.Valid() {
			return WaypointPattern{}
		}
	}
	return p
}

// Usable reports whether the pattern describes a track (at least two points).
func (p WaypointPattern) Usable() bool {
	return p.Kind == WaypointPatternKind && len(p.Points) >= 2
}

// Represents a route pattern learned from completed voyages on one
// origin/destination/vessel-type key.
type LearnedRoutePattern struct {
	OriginPortID     string
	DestPortID       string
	VesselType       VesselType
	PatternName      string
	ObservedCount    int
	Reliability      float64
	AvgDistanceNm    float64
	AvgDurationHours float64
	WaypointPattern  WaypointPattern
}

// Default result sizes for route and pattern listings.
const (
	DefaultRouteListLimit   = 50
	DefaultPatternListLimit = 20
)

// PatternFilter narrows a learned pattern listing. Zero-valued fields do not filter.
type PatternFilter struct {
	OriginPortID   string
	DestPortID     string
	VesselType     VesselType
	MinReliability float64
	Limit          int
}
