package geo

import (
	"testing"

	"voyage-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
)

var square = [][2]float64{{0, 0}, {0, 10}, {10, 10}, {10, 0}}

func TestContainsSquare(t *testing.T) {
	assert.True(t, Contains(domain.GeoPoint{Lat: 5, Lon: 5}, square))
	assert.False(t, Contains(domain.GeoPoint{Lat: 15, Lon: 15}, square))
	assert.False(t, Contains(domain.GeoPoint{Lat: 5, Lon: -1}, square))
	assert.False(t, Contains(domain.GeoPoint{Lat: -1, Lon: 5}, square))
}

func TestContainsDegeneratePolygon(t *testing.T) {
	line := [][2]float64{{0, 0}, {10, 10}}
	for _, p := range []domain.GeoPoint{{Lat: 5, Lon: 5}, {Lat: 0, Lon: 0}, {Lat: -3, Lon: 7}} {
		assert.False(t, Contains(p, line), "point %+v", p)
	}
	assert.False(t, Contains(domain.GeoPoint{}, nil))
}

func TestContainsConcavePolygon(t *testing.T) {
	// U shape open to the north between lon 3 and 7.
	u := [][2]float64{{0, 0}, {0, 10}, {10, 10}, {10, 7}, {3, 7}, {3, 3}, {10, 3}, {10, 0}}

	assert.True(t, Contains(domain.GeoPoint{Lat: 5, Lon: 1}, u))
	assert.True(t, Contains(domain.GeoPoint{Lat: 5, Lon: 9}, u))
	assert.False(t, Contains(domain.GeoPoint{Lat: 5, Lon: 5}, u))
	assert.True(t, Contains(domain.GeoPoint{Lat: 1, Lon: 5}, u))
}

func TestContainsExplicitlyClosedPolygon(t *testing.T) {
	closed := append(append([][2]float64{}, square...), square[0])
	assert.True(t, Contains(domain.GeoPoint{Lat: 5, Lon: 5}, closed))
	assert.False(t, Contains(domain.GeoPoint{Lat: 15, Lon: 15}, closed))
}

func TestFindMatchingZones(t *testing.T) {
	zones := []domain.ZonePolygon{
		{ID: "a", Code: "A", Vertices: square},
		{ID: "b", Code: "B", Vertices: [][2]float64{{20, 20}, {20, 30}, {30, 30}, {30, 20}}},
		{ID: "c", Code: "C", Vertices: [][2]float64{{-5, -5}, {-5, 8}, {8, 8}, {8, -5}}},
	}

	got := FindMatchingZones(domain.GeoPoint{Lat: 5, Lon: 5}, zones)
	if assert.Len(t, got, 2) {
		assert.Equal(t, "A", got[0].Code)
		assert.Equal(t, "C", got[1].Code)
	}

	assert.Empty(t, FindMatchingZones(domain.GeoPoint{Lat: 50, Lon: 50}, zones))
}
