package domain

// Vessel category used to key learned patterns and constraint lookups.
type VesselType string

const (
	VesselBulkCarrier  VesselType = "BULK_CARRIER"
	VesselTanker       VesselType = "TANKER"
	VesselContainer    VesselType = "CONTAINER"
	VesselGeneralCargo VesselType = "GENERAL_CARGO"
	VesselLNG          VesselType = "LNG_CARRIER"
	VesselRoRo         VesselType = "RO_RO"
)

// Represents the physical particulars of a vessel, owned by the fleet registry.
// All measurements are in meters.
type Vessel struct {
	ID          string
	Name        string
	Type        VesselType
	DraftMeters float64
	LOAMeters   float64
	BeamMeters  float64
}

// Represents a port as published by the port registry.
type Port struct {
	ID        string
	Name      string
	UNLocode  string
	Latitude  float64
	Longitude float64
}

// Return the port position.
func (p Port) Position() GeoPoint { return GeoPoint{Lat: p.Latitude, Lon: p.Longitude} }
