package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"voyage-route-service/internal/adapters/repositories"
	"voyage-route-service/internal/config"
	"voyage-route-service/internal/domain"
	"voyage-route-service/internal/platform/db"
	"voyage-route-service/internal/services"
	"voyage-route-service/internal/zones"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dbtool",
		Short:         "Database and zone maintenance for the voyage route service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(migrateCmd(), seedCmd(), zonesCmd())
	return root
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), func(ctx context.Context, conn *sql.DB, _ repositories.Dialect) error {
				log.Println("Initializing database schema...")
				if err := repositories.InitSchema(ctx, conn); err != nil {
					return fmt.Errorf("schema initialization failed: %w", err)
				}
				log.Println("Schema ready.")
				return nil
			})
		},
	}
}

func seedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load vessels, ports and constraints from a JSON file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				file = config.Get("SEED_PATH", "data/seeds/reference.json")
			}
			return withDB(cmd.Context(), func(ctx context.Context, conn *sql.DB, dialect repositories.Dialect) error {
				if err := repositories.InitSchema(ctx, conn); err != nil {
					return fmt.Errorf("schema initialization failed: %w", err)
				}
				log.Printf("Seeding database file=%s", file)
				if err := repositories.SeedFromJSON(ctx, conn, dialect, file); err != nil {
					return fmt.Errorf("seeding failed: %w", err)
				}
				log.Println("Seeding complete.")
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "seed JSON file (default $SEED_PATH)")
	return cmd
}

func zonesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zones",
		Short: "Inspect regulated zones",
	}
	cmd.AddCommand(zonesReportCmd())
	return cmd
}

// Track file read by "zones report".
type trackFile struct {
	Waypoints []domain.GeoPoint `json:"waypoints"`
	ZoneCodes []string          `json:"zone_codes"`
}

func zonesReportCmd() *cobra.Command {
	var file, zonesPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the zone exposure of a track file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			if zonesPath == "" {
				zonesPath = os.Getenv("ZONES_PATH")
			}
			return runZonesReport(cmd.Context(), cmd.OutOrStdout(), file, zonesPath)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "track JSON file with waypoints and optional zone_codes")
	cmd.Flags().StringVar(&zonesPath, "zones", "", "extra zone YAML file (default $ZONES_PATH)")
	return cmd
}

func runZonesReport(ctx context.Context, out io.Writer, file, zonesPath string) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("zones report: read %q: %w", file, err)
	}

	var track trackFile
	if err := json.Unmarshal(b, &track); err != nil {
		return fmt.Errorf("zones report: parse %q: %w", file, err)
	}

	sets := [][]domain.ZonePolygon{zones.DefaultECA()}
	if zonesPath != "" {
		extra, err := zones.LoadYAML(zonesPath)
		if err != nil {
			return fmt.Errorf("zones report: %w", err)
		}
		sets = append(sets, extra)
	}
	reg, err := zones.NewRegistry(sets...)
	if err != nil {
		return fmt.Errorf("zones report: %w", err)
	}

	report, err := services.NewZoneChecker(reg, nil, nil).Report(ctx, track.Waypoints, track.ZoneCodes)
	if err != nil {
		return err
	}

	if len(report.Zones) == 0 {
		fmt.Fprintln(out, "no regulated zones on track")
		return nil
	}
	for _, e := range report.Zones {
		fmt.Fprintf(out, "%-16s %-10s %10.2f nm  crossings=%d\n", e.Zone.Code, e.Zone.Category, e.DistanceNm, e.Crossings)
	}
	fmt.Fprintf(out, "%-27s %10.2f nm\n", "total", report.TotalDistanceNm)
	return nil
}

func withDB(ctx context.Context, fn func(context.Context, *sql.DB, repositories.Dialect) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dialect, err := repositories.DialectFor(cfg.DBDriver)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	conn, err := db.Open(ctx, cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(ctx, conn, dialect)
}
