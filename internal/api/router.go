package api

import (
	"net/http"

	"voyage-route-service/internal/api/handlers"
	"voyage-route-service/internal/platform/obs"
	"voyage-route-service/internal/ports"
	"voyage-route-service/internal/services"
)

// Dependencies of the HTTP API. Metrics may be nil.
type Deps struct {
	Selector *services.RouteSelector
	Recorder *services.VoyageRecorder
	Zones    *services.ZoneChecker
	Routes   ports.RouteRepository
	Metrics  *obs.Metrics
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{
		Selector: d.Selector,
		Recorder: d.Recorder,
		Routes:   d.Routes,
	}
	zoneHandler := &handlers.ZoneHandler{Checker: d.Zones}
	patternHandler := &handlers.PatternHandler{Routes: d.Routes}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("POST /routes", routeHandler.Create)
	mux.HandleFunc("GET /routes/{id}", routeHandler.Get)
	mux.HandleFunc("POST /routes/{id}/voyages", routeHandler.RecordVoyage)
	mux.HandleFunc("GET /routes/{id}/zones", zoneHandler.RouteZones)

	mux.HandleFunc("GET /vessels/{id}/routes", routeHandler.ListByVessel)
	mux.HandleFunc("GET /patterns", patternHandler.List)

	mux.HandleFunc("GET /zones", zoneHandler.List)
	mux.HandleFunc("POST /zones/match", zoneHandler.Match)
	mux.HandleFunc("POST /zones/report", zoneHandler.Report)
	mux.HandleFunc("POST /zones/distance", zoneHandler.Distance)

	mux.Handle("GET /metrics", d.Metrics.Handler())

	return requestIDMiddleware(loggingMiddleware(d.Metrics, mux))
}
