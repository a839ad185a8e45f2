package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voyage-route-service/internal/adapters/cache"
	"voyage-route-service/internal/adapters/repositories"
	"voyage-route-service/internal/api"
	"voyage-route-service/internal/config"
	"voyage-route-service/internal/domain"
	"voyage-route-service/internal/platform/db"
	"voyage-route-service/internal/platform/obs"
	"voyage-route-service/internal/ports"
	"voyage-route-service/internal/services"
	"voyage-route-service/internal/zones"
)

// main is the application composition root.
// It wires concrete adapters (SQL store, port cache, zone registry) behind
// ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logCloser := obs.SetLogFile(cfg.LogFile)
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialect, err := repositories.DialectFor(cfg.DBDriver)
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(ctx, cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Initialize schema and seed reference data on startup for local runs.
	if err := initAndSeed(ctx, conn, dialect, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}

	registry, err := loadZones(cfg.ZonesPath)
	if err != nil {
		log.Fatal(err)
	}

	metrics, err := obs.NewMetrics(nil)
	if err != nil {
		log.Fatal(err)
	}

	store := repositories.NewSQLStore(conn, dialect)
	portRepo, closeCache, err := portRepository(ctx, cfg, store, metrics)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	selector := services.NewRouteSelector(store, portRepo, store, store)
	selector.Zones = registry
	selector.Metrics = metrics
	selector.LookupTimeout = cfg.LookupTimeout

	router := api.NewRouter(api.Deps{
		Selector: selector,
		Recorder: services.NewVoyageRecorder(store, metrics),
		Zones:    services.NewZoneChecker(registry, store, metrics),
		Routes:   store,
		Metrics:  metrics,
	})

	log.Printf("Server listening addr=:%s driver=%s zones=%d", cfg.Port, cfg.DBDriver, registry.Len())
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("op=server.shutdown err=%v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

func initAndSeed(ctx context.Context, conn *sql.DB, dialect repositories.Dialect, seedPath string) error {
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(ctx, conn, dialect, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

// loadZones builds the registry from the default ECA set plus an optional
// YAML file whose codes override the defaults.
func loadZones(path string) (*zones.Registry, error) {
	sets := [][]domain.ZonePolygon{zones.DefaultECA()}
	if path != "" {
		extra, err := zones.LoadYAML(path)
		if err != nil {
			return nil, fmt.Errorf("load zones: %w", err)
		}
		sets = append(sets, extra)
	}
	return zones.NewRegistry(sets...)
}

// portRepository puts a read-through cache in front of the store: Redis when
// REDIS_URL is set, in-process otherwise.
func portRepository(ctx context.Context, cfg config.Config, store ports.PortRepository, m *obs.Metrics) (ports.PortRepository, func(), error) {
	if cfg.RedisURL == "" {
		return cache.NewCachedPortRepository(store, cache.NewMemoryPortStore(cfg.PortCacheTTL), m), func() {}, nil
	}

	client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = client.Close() }
	return cache.NewCachedPortRepository(store, cache.NewRedisPortStore(client, cfg.PortCacheTTL), m), closeFn, nil
}
