package handlers

import (
	"errors"
	"log"
	"net/http"

	"voyage-route-service/internal/api/dto"
	"voyage-route-service/internal/domain"
	"voyage-route-service/internal/platform/obs"
	"voyage-route-service/internal/ports"
	"voyage-route-service/internal/services"
)

type RouteHandler struct {
	Selector *services.RouteSelector
	Recorder *services.VoyageRecorder
	Routes   ports.RouteRepository
}

// Create plans a route for a vessel between two ports.
func (h *RouteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	route, err := h.Selector.SelectRoute(r.Context(), req.ToDomain())
	if err != nil {
		writeServiceError(w, r, "select route", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewRouteResponse(route))
}

// Get returns a stored route.
func (h *RouteHandler) Get(w http.ResponseWriter, r *http.Request) {
	route, err := h.Routes.GetRoute(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "get route", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewRouteResponse(route))
}

// RecordVoyage feeds a completed voyage on a stored route into the learned patterns.
func (h *RouteHandler) RecordVoyage(w http.ResponseWriter, r *http.Request) {
	var req dto.VoyageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pattern, err := h.Recorder.RecordVoyage(r.Context(), domain.VoyageOutcome{
		RouteID:     r.PathValue("id"),
		ActualHours: req.ActualHours,
		OnTime:      req.OnTime,
	})
	if err != nil {
		writeServiceError(w, r, "record voyage", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewPatternResponse(pattern))
}

// ListByVessel returns a vessel's stored routes, newest first.
func (h *RouteHandler) ListByVessel(w http.ResponseWriter, r *http.Request) {
	var q dto.RouteListQuery
	var err error
	if q.Limit, err = queryInt(r, "limit"); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !validateQuery(w, r, &q) {
		return
	}

	routes, err := h.Routes.ListVesselRoutes(r.Context(), r.PathValue("id"), q.Limit)
	if err != nil {
		writeServiceError(w, r, "list vessel routes", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewListRouteResponse(routes))
}

func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}

	log.Printf("req_id=%s %s failed: %v", obs.RequestID(r.Context()), op, err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}
