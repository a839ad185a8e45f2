package domain

import "fmt"

// Physical limit registered for a named location such as a canal or strait.
// An empty VesselType applies the limit to every vessel category; nil limits
// are not enforced.
type RouteConstraint struct {
	ID             string
	LocationName   string
	VesselType     VesselType
	MaxDraftMeters *float64
	MaxLOAMeters   *float64
	MaxBeamMeters  *float64
	Active         bool
}

// Violations returns one advisory per limit exceeded by the given dimensions.
func (c RouteConstraint) Violations(draft, loa, beam float64) []string {
	var out []string
	if c.MaxDraftMeters != nil && draft > *c.MaxDraftMeters {
		out = append(out, fmt.Sprintf("Draft %.1fm exceeds %s limit of %.1fm", draft, c.LocationName, *c.MaxDraftMeters))
	}
	if c.MaxLOAMeters != nil && loa > *c.MaxLOAMeters {
		out = append(out, fmt.Sprintf("LOA %.1fm exceeds %s limit of %.1fm", loa, c.LocationName, *c.MaxLOAMeters))
	}
	if c.MaxBeamMeters != nil && beam > *c.MaxBeamMeters {
		out = append(out, fmt.Sprintf("Beam %.1fm exceeds %s limit of %.1fm", beam, c.LocationName, *c.MaxBeamMeters))
	}
	return out
}
