package domain

// Regulatory category of a maritime zone.
type ZoneCategory string

const (
	ZoneECA      ZoneCategory = "ECA"
	ZoneHighRisk ZoneCategory = "HIGH_RISK"
)

// Represents a named maritime zone. Vertices are (lat, lon) pairs and the
// boundary is implicitly closed from the last vertex back to the first.
type ZonePolygon struct {
	ID       string
	Name     string
	Code     string
	Category ZoneCategory
	Vertices [][2]float64
}

// One continuous passage of a route through a zone.
type RouteZoneIntersection struct {
	Zone         ZonePolygon
	EntryPoint   GeoPoint
	ExitPoint    GeoPoint
	SegmentIndex int
}

// Aggregate exposure of a route to one zone.
type ZoneExposure struct {
	Zone       ZonePolygon
	DistanceNm float64
	Crossings  int
}

// Compliance view of a route against a zone set.
type ZoneReport struct {
	Intersections   []RouteZoneIntersection
	Zones           []ZoneExposure
	TotalDistanceNm float64
}
