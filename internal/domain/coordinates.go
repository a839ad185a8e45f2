package domain

// Immutable geographic position in decimal degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Return the point as a (lat, lon) vertex, the order used by zone polygons.
func (p GeoPoint) Vertex() [2]float64 { return [2]float64{p.Lat, p.Lon} }
