package dto

import "voyage-route-service/internal/domain"

type PointRequest struct {
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lon *float64 `json:"lon" validate:"required,gte=-180,lte=180"`
}

func (p PointRequest) ToDomain() domain.GeoPoint {
	return domain.GeoPoint{Lat: *p.Lat, Lon: *p.Lon}
}

// Track and polygon sizes are capped; report cost grows with
// waypoints x zones x vertices.
const (
	MaxTrackWaypoints  = 5000
	MaxPolygonVertices = 1000
)

type ZoneReportRequest struct {
	Waypoints []PointRequest `json:"waypoints" validate:"max=5000,dive"`
	ZoneCodes []string       `json:"zone_codes" validate:"dive,required"`
}

type ZoneDistanceRequest struct {
	Waypoints []PointRequest `json:"waypoints" validate:"max=5000,dive"`
	Polygon   [][2]float64   `json:"polygon" validate:"max=1000"`
}

type ZoneDistanceResponse struct {
	DistanceNm float64 `json:"distance_nm"`
}

type ZoneResponse struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Code     string       `json:"code"`
	Category string       `json:"category"`
	Vertices [][2]float64 `json:"vertices"`
}

type ListZoneResponse struct {
	Zones []ZoneResponse `json:"zones"`
}

type IntersectionResponse struct {
	ZoneCode     string          `json:"zone_code"`
	ZoneName     string          `json:"zone_name"`
	EntryPoint   domain.GeoPoint `json:"entry_point"`
	ExitPoint    domain.GeoPoint `json:"exit_point"`
	SegmentIndex int             `json:"segment_index"`
}

type ZoneExposureResponse struct {
	ZoneCode   string  `json:"zone_code"`
	ZoneName   string  `json:"zone_name"`
	Category   string  `json:"category"`
	DistanceNm float64 `json:"distance_nm"`
	Crossings  int     `json:"crossings"`
}

type ZoneReportResponse struct {
	Intersections   []IntersectionResponse `json:"intersections"`
	Zones           []ZoneExposureResponse `json:"zones"`
	TotalDistanceNm float64                `json:"total_distance_nm"`
}

func Track(points []PointRequest) []domain.GeoPoint {
	out := make([]domain.GeoPoint, 0, len(points))
	for _, p := range points {
		out = append(out, p.ToDomain())
	}
	return out
}

func NewZoneResponse(z domain.ZonePolygon) ZoneResponse {
	vertices := z.Vertices
	if vertices == nil {
		vertices = [][2]float64{}
	}
	return ZoneResponse{ID: z.ID, Name: z.Name, Code: z.Code, Category: string(z.Category), Vertices: vertices}
}

func NewListZoneResponse(zones []domain.ZonePolygon) ListZoneResponse {
	res := ListZoneResponse{Zones: make([]ZoneResponse, 0, len(zones))}
	for _, z := range zones {
		res.Zones = append(res.Zones, NewZoneResponse(z))
	}
	return res
}

func NewZoneReportResponse(r domain.ZoneReport) ZoneReportResponse {
	res := ZoneReportResponse{
		Intersections:   make([]IntersectionResponse, 0, len(r.Intersections)),
		Zones:           make([]ZoneExposureResponse, 0, len(r.Zones)),
		TotalDistanceNm: r.TotalDistanceNm,
	}
	for _, x := range r.Intersections {
		res.Intersections = append(res.Intersections, IntersectionResponse{
			ZoneCode:     x.Zone.Code,
			ZoneName:     x.Zone.Name,
			EntryPoint:   x.EntryPoint,
			ExitPoint:    x.ExitPoint,
			SegmentIndex: x.SegmentIndex,
		})
	}
	for _, e := range r.Zones {
		res.Zones = append(res.Zones, ZoneExposureResponse{
			ZoneCode:   e.Zone.Code,
			ZoneName:   e.Zone.Name,
			Category:   string(e.Zone.Category),
			DistanceNm: e.DistanceNm,
			Crossings:  e.Crossings,
		})
	}
	return res
}
