package handlers

import (
	"errors"
	"net/http"

	"voyage-route-service/internal/api/dto"
	"voyage-route-service/internal/services"
	"voyage-route-service/internal/zones"
)

type ZoneHandler struct {
	Checker *services.ZoneChecker
}

// List returns every registered zone.
func (h *ZoneHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.NewListZoneResponse(h.Checker.Zones.All()))
}

// Match returns the zones containing a position.
func (h *ZoneHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req dto.PointRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewListZoneResponse(h.Checker.Match(req.ToDomain())))
}

// Report returns the compliance report for an ad-hoc track.
func (h *ZoneHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req dto.ZoneReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	report, err := h.Checker.Report(r.Context(), dto.Track(req.Waypoints), req.ZoneCodes)
	if errors.Is(err, zones.ErrUnknownZone) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeServiceError(w, r, "zone report", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewZoneReportResponse(report))
}

// Distance returns the distance a track runs inside an ad-hoc polygon.
func (h *ZoneHandler) Distance(w http.ResponseWriter, r *http.Request) {
	var req dto.ZoneDistanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	d := h.Checker.DistanceInPolygon(dto.Track(req.Waypoints), req.Polygon)
	writeJSON(w, r, http.StatusOK, dto.ZoneDistanceResponse{DistanceNm: d})
}

// RouteZones returns the compliance report for a stored route.
func (h *ZoneHandler) RouteZones(w http.ResponseWriter, r *http.Request) {
	report, err := h.Checker.RouteReport(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "route zone report", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewZoneReportResponse(report))
}
