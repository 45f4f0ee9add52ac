package solar

import (
	"math"
	"testing"
	"time"
)

func TestClearSky(t *testing.T) {
	tests := []struct {
		name      string
		time      time.Time
		latitude  float64
		longitude float64
		altitude  float64
		minGHI    float64
		maxGHI    float64
	}{
		{
			name:      "Heidelberg summer noon",
			time:      time.Date(2019, time.June, 21, 11, 27, 0, 0, time.UTC),
			latitude:  49.4077,
			longitude: 8.6908,
			altitude:  110,
			minGHI:    600,
			maxGHI:    1100,
		},
		{
			name:      "Heidelberg winter noon",
			time:      time.Date(2019, time.December, 21, 11, 30, 0, 0, time.UTC),
			latitude:  49.4077,
			longitude: 8.6908,
			altitude:  110,
			minGHI:    100,
			maxGHI:    500,
		},
		{
			name:      "night is dark",
			time:      time.Date(2019, time.June, 21, 0, 0, 0, 0, time.UTC),
			latitude:  49.4077,
			longitude: 8.6908,
			altitude:  110,
			minGHI:    0,
			maxGHI:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			irr := ClearSky(tt.time, tt.latitude, tt.longitude, tt.altitude)

			if irr.GHI < tt.minGHI || irr.GHI > tt.maxGHI {
				t.Errorf("GHI = %.1f W/m², expected within [%.0f, %.0f]", irr.GHI, tt.minGHI, tt.maxGHI)
			}
			if irr.DNI < 0 || irr.DHI < 0 {
				t.Errorf("negative component: DNI=%.1f DHI=%.1f", irr.DNI, irr.DHI)
			}
		})
	}
}

func TestClearSkyComponentIdentity(t *testing.T) {
	// GHI must equal DNI·cos(zenith) + DHI whenever the sun is up
	lat, lon := 49.4077, 8.6908
	for hour := 0; hour < 24; hour++ {
		ts := time.Date(2019, time.June, 21, hour, 0, 0, 0, time.UTC)
		pos := SunPosition(ts, lat, lon)
		irr := ClearSky(ts, lat, lon, 110)

		if !pos.Up() {
			if irr.GHI != 0 || irr.DNI != 0 || irr.DHI != 0 {
				t.Errorf("hour %d: nonzero irradiance with sun down", hour)
			}
			continue
		}

		want := irr.DNI*pos.CosZenith + irr.DHI
		if math.Abs(irr.GHI-want) > 1e-9 {
			t.Errorf("hour %d: GHI=%.6f, DNI·cosZ+DHI=%.6f", hour, irr.GHI, want)
		}
	}
}

func TestClearSkyPeaksAtNoon(t *testing.T) {
	lat, lon := 49.4077, 8.6908
	morning := ClearSky(time.Date(2019, time.June, 21, 7, 0, 0, 0, time.UTC), lat, lon, 110)
	noon := ClearSky(time.Date(2019, time.June, 21, 11, 27, 0, 0, time.UTC), lat, lon, 110)

	if noon.GHI <= morning.GHI {
		t.Errorf("noon GHI %.1f not above morning GHI %.1f", noon.GHI, morning.GHI)
	}
}
