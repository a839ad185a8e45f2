package handlers

import (
	"net/http"

	"voyage-route-service/internal/api/dto"
	"voyage-route-service/internal/ports"
)

type PatternHandler struct {
	Routes ports.RouteRepository
}

// List returns learned route patterns, most reliable first.
// Query: origin_port_id, dest_port_id, vessel_type, min_reliability, limit.
func (h *PatternHandler) List(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	q := dto.PatternQuery{
		OriginPortID: qs.Get("origin_port_id"),
		DestPortID:   qs.Get("dest_port_id"),
		VesselType:   qs.Get("vessel_type"),
	}

	var err error
	if q.MinReliability, err = queryFloat(r, "min_reliability"); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if q.Limit, err = queryInt(r, "limit"); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !validateQuery(w, r, &q) {
		return
	}

	patterns, err := h.Routes.ListLearnedPatterns(r.Context(), q.ToDomain())
	if err != nil {
		writeServiceError(w, r, "list learned patterns", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewListPatternResponse(patterns))
}
