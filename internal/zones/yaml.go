package zones

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"voyage-route-service/internal/domain"
)

type zoneFile struct {
	Zones []zoneEntry `yaml:"zones"`
}

type zoneEntry struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	Code     string       `yaml:"code"`
	Category string       `yaml:"category"`
	Vertices [][2]float64 `yaml:"vertices"`
}

// LoadYAML reads additional zone definitions maintained outside the service.
//
//	zones:
//	  - id: hra-example
//	    name: Example High Risk Area
//	    code: HRA_EXAMPLE
//	    category: HIGH_RISK
//	    vertices: [[12.0, 43.0], [12.0, 52.0], [16.0, 52.0]]
func LoadYAML(path string) ([]domain.ZonePolygon, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load zones: read %q: %w", path, err)
	}
	return ParseYAML(b)
}

// ParseYAML decodes a zone file body.
func ParseYAML(b []byte) ([]domain.ZonePolygon, error) {
	var f zoneFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("load zones: parse yaml: %w", err)
	}

	out := make([]domain.ZonePolygon, 0, len(f.Zones))
	for i, z := range f.Zones {
		cat := domain.ZoneCategory(z.Category)
		switch cat {
		case "":
			cat = domain.ZoneECA
		case domain.ZoneECA, domain.ZoneHighRisk:
		default:
			return nil, fmt.Errorf("load zones: zone #%d %q: unknown category %q", i+1, z.Code, z.Category)
		}

		for _, v := range z.Vertices {
			if v[0] < -90 || v[0] > 90 || v[1] < -180 || v[1] > 180 {
				return nil, fmt.Errorf("load zones: zone #%d %q: vertex %v out of range", i+1, z.Code, v)
			}
		}

		out = append(out, domain.ZonePolygon{
			ID:       z.ID,
			Name:     z.Name,
			Code:     z.Code,
			Category: cat,
			Vertices: z.Vertices,
		})
	}
	return out, nil
}
