package zones

import "voyage-route-service/internal/domain"

// DefaultECA returns the seed set of Emission Control Areas. Boundaries are
// simplified outlines suitable for route-level checks, not the published
// IMO coordinates. Vertices are (lat, lon).
func DefaultECA() []domain.ZonePolygon {
	return []domain.ZonePolygon{
		{
			ID:       "eca-baltic-seca",
			Name:     "Baltic Sea SECA",
			Code:     "BALTIC_SECA",
			Category: domain.ZoneECA,
			Vertices: [][2]float64{
				{53.5, 9.0},  // Kiel
				{54.5, 10.0}, // Fehmarn Belt
				{55.0, 12.5},
				{55.5, 13.0},
				{56.0, 12.5}, // Oresund north
				{57.7, 11.8},
				{58.0, 11.0},
				{57.5, 8.0},
				{59.0, 10.5}, // Oslo Fjord
				{60.5, 19.0},
				{65.0, 25.0}, // Gulf of Bothnia
				{64.0, 21.0},
				{60.0, 26.5},
				{59.5, 28.0},
				{59.0, 24.0}, // Tallinn
				{57.5, 20.0},
				{56.0, 19.5},
				{55.0, 17.0},
				{54.0, 14.0},
				{53.5, 14.5},
				{53.5, 9.0},
			},
		},
		{
			ID:       "eca-north-sea-seca",
			Name:     "North Sea SECA",
			Code:     "NORTH_SEA_SECA",
			Category: domain.ZoneECA,
			Vertices: [][2]float64{
				{48.5, -5.0}, // Brest
				{49.0, -2.0},
				{50.5, -1.5},
				{51.0, 1.5}, // Dover Strait
				{51.5, 3.5},
				{53.5, 6.5},
				{55.0, 8.0},
				{57.5, 8.0},
				{58.0, 11.0}, // Skagerrak
				{62.0, 5.0},
				{62.0, -1.0},
				{60.5, -1.5}, // Shetland
				{58.0, -5.0},
				{56.0, -6.0},
				{54.0, -6.0},
				{51.5, -6.0},
				{50.0, -6.0},
				{48.5, -5.0},
			},
		},
		{
			ID:       "eca-north-america",
			Name:     "North American ECA",
			Code:     "NA_ECA",
			Category: domain.ZoneECA,
			Vertices: [][2]float64{
				{30.0, -81.5}, // Jacksonville
				{32.0, -79.0},
				{34.5, -75.5}, // Cape Hatteras
				{37.0, -74.5},
				{39.5, -73.0},
				{40.5, -72.5},
				{41.5, -69.5}, // Cape Cod
				{43.5, -67.0},
				{45.0, -64.5},
				{47.0, -60.0},
				{49.0, -58.0},
				{51.0, -56.0},
				{51.0, -52.0},
				{47.0, -55.0},
				{43.5, -62.0},
				{40.0, -67.5},
				{36.0, -70.0},
				{32.0, -74.0},
				{28.0, -77.0},
				{25.0, -79.5},
				{24.5, -82.0}, // Florida Keys
				{25.5, -84.0},
				{27.5, -84.5},
				{29.0, -85.0},
				{30.0, -88.0},
				{29.5, -91.0},
				{28.5, -93.5},
				{27.5, -96.5},
				{26.0, -97.0}, // Brownsville
				{25.0, -97.5},
				{25.0, -93.0},
				{25.5, -87.0},
				{24.0, -83.0},
				{24.0, -80.0},
				{28.0, -79.0},
				{30.0, -81.5},
			},
		},
		{
			ID:       "eca-us-caribbean",
			Name:     "US Caribbean ECA",
			Code:     "USCAR_ECA",
			Category: domain.ZoneECA,
			Vertices: [][2]float64{
				{20.0, -68.0},
				{19.5, -67.0},
				{18.0, -65.0},
				{17.5, -66.0},
				{17.5, -68.0},
				{18.0, -68.5}, // Mona Passage
				{18.5, -68.5},
				{19.0, -68.5},
				{19.5, -67.5},
				{20.0, -66.5},
				{20.0, -65.0},
				{20.0, -64.0},
				{19.0, -63.5},
				{17.5, -64.0},
				{17.0, -65.5},
				{17.0, -67.0},
				{17.0, -69.0},
				{18.0, -69.5},
				{19.5, -69.0},
				{20.0, -68.0},
			},
		},
		{
			ID:       "eca-mediterranean-seca",
			Name:     "Mediterranean SECA (2025+)",
			Code:     "MED_SECA",
			Category: domain.ZoneECA,
			Vertices: [][2]float64{
				{36.0, -5.5}, // Gibraltar
				{36.5, -2.0},
				{38.0, 0.0},
				{41.0, 1.5}, // Barcelona
				{43.0, 3.5},
				{43.5, 7.5},
				{44.0, 9.5}, // Genoa
				{42.0, 11.5},
				{41.0, 13.0},
				{38.0, 15.5}, // Strait of Messina
				{37.0, 15.5},
				{36.5, 14.5},
				{35.5, 12.5},
				{33.0, 11.5},
				{32.5, 13.0},
				{32.0, 20.0},
				{31.5, 25.0},
				{31.0, 29.5}, // Alexandria
				{31.5, 32.5},
				{33.0, 35.5},
				{35.0, 36.0},
				{36.5, 35.0},
				{37.0, 30.0},
				{37.0, 27.5},
				{38.0, 24.0},
				{40.0, 25.0},
				{40.5, 27.0},
				{39.5, 23.5},
				{38.5, 20.0},
				{40.0, 19.0},
				{42.5, 18.0},
				{44.5, 14.0},
				{45.5, 13.5}, // Trieste
				{44.5, 12.5},
				{42.0, 16.5},
				{40.0, 18.5},
				{39.0, 17.0},
				{38.5, 16.0},
				{37.5, 13.0},
				{37.5, 10.0},
				{37.0, 8.0},
				{36.5, 3.0},
				{35.5, -1.0},
				{35.5, -5.0},
				{36.0, -5.5},
			},
		},
	}
}
