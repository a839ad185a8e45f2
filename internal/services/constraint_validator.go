package services

import "voyage-route-service/internal/domain"

// EffectiveDimensions returns draft, LOA and beam for constraint checks:
// request overrides where given, otherwise the vessel's particulars.
func EffectiveDimensions(vessel *domain.Vessel, req domain.RouteRequest) (draft, loa, beam float64) {
	draft, loa, beam = vessel.DraftMeters, vessel.LOAMeters, vessel.BeamMeters
	if req.DraftMeters != nil {
		draft = *req.DraftMeters
	}
	if req.LOAMeters != nil {
		loa = *req.LOAMeters
	}
	if req.BeamMeters != nil {
		beam = *req.BeamMeters
	}
	return draft, loa, beam
}

// ValidateConstraints appends a warning to the route for every limit the
// route's dimension snapshot exceeds. Violations are advisories, never errors.
// Inactive constraints and those for other vessel types are ignored.
func ValidateConstraints(route *domain.Route, constraints []domain.RouteConstraint) int {
	n := 0
	for _, c := range constraints {
		if !c.Active {
			continue
		}
		if c.VesselType != "" && c.VesselType != route.VesselType {
			continue
		}

		for _, w := range c.Violations(route.Constraints.MaxDraftMeters, route.Constraints.MaxLOAMeters, route.Constraints.MaxBeamMeters) {
			route.Warn(w)
			n++
		}
	}
	return n
}
