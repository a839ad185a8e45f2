// Package zones holds the read-only reference set of regulated maritime
// zones. A Registry is built once at startup and shared by value-safe reads.
package zones

import (
	"errors"
	"fmt"
	"strings"

	"voyage-route-service/internal/domain"
	"voyage-route-service/internal/geo"
)

// Registry is an immutable, ordered set of zone polygons keyed by code.
// It is safe for concurrent use.
type Registry struct {
	zones  []domain.ZonePolygon
	byCode map[string]int
}

// NewRegistry merges the given zone sets in order. A zone whose code was
// already registered replaces the earlier definition in place.
func NewRegistry(sets ...[]domain.ZonePolygon) (*Registry, error) {
	r := &Registry{byCode: make(map[string]int)}

	for _, set := range sets {
		for _, z := range set {
			code := strings.TrimSpace(z.Code)
			if code == "" {
				return nil, fmt.Errorf("new zone registry: zone %q has empty code", z.ID)
			}
			z.Code = code
			if z.Category == "" {
				z.Category = domain.ZoneECA
			}
			z.Vertices = append([][2]float64(nil), z.Vertices...)

			if i, ok := r.byCode[code]; ok {
				r.zones[i] = z
				continue
			}
			r.byCode[code] = len(r.zones)
			r.zones = append(r.zones, z)
		}
	}

	return r, nil
}

// All returns every registered zone in registration order.
func (r *Registry) All() []domain.ZonePolygon {
	return append([]domain.ZonePolygon(nil), r.zones...)
}

func (r *Registry) Len() int { return len(r.zones) }

// Lookup returns the zone with the given code.
func (r *Registry) Lookup(code string) (domain.ZonePolygon, bool) {
	i, ok := r.byCode[strings.TrimSpace(code)]
	if !ok {
		return domain.ZonePolygon{}, false
	}
	return r.zones[i], true
}

// Select returns the zones for the given codes, or every zone when codes is
// empty. A code listed more than once selects its zone once.
func (r *Registry) Select(codes []string) ([]domain.ZonePolygon, error) {
	if len(codes) == 0 {
		return r.All(), nil
	}

	var missing []string
	seen := make(map[string]bool, len(codes))
	out := make([]domain.ZonePolygon, 0, len(codes))
	for _, c := range codes {
		z, ok := r.Lookup(c)
		if !ok {
			missing = append(missing, c)
			continue
		}
		if seen[z.Code] {
			continue
		}
		seen[z.Code] = true
		out = append(out, z)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("select zones: unknown codes %s: %w", strings.Join(missing, ","), ErrUnknownZone)
	}
	return out, nil
}

// ByCategory returns the zones of one category.
func (r *Registry) ByCategory(cat domain.ZoneCategory) []domain.ZonePolygon {
	out := []domain.ZonePolygon{}
	for _, z := range r.zones {
		if z.Category == cat {
			out = append(out, z)
		}
	}
	return out
}

// Match returns every zone containing p.
func (r *Registry) Match(p domain.GeoPoint) []domain.ZonePolygon {
	return geo.FindMatchingZones(p, r.zones)
}

// ErrUnknownZone is returned when a requested zone code is not registered.
var ErrUnknownZone = errors.New("unknown zone")
