package weather

import (
	"math"
	"time"

	"github.com/chrissnell/solarsim/internal/types"
	"github.com/chrissnell/solarsim/pkg/solar"
)

// Generate builds a synthetic cloud-free weather year for a location from the
// clear-sky model, with a seasonal temperature swing and steady light wind.
// Useful for demonstrations and for exercising the pipeline without a
// meteorological data file.
func Generate(year int, latitude, longitude, altitudeM float64) []types.WeatherRecord {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	hours := hoursRegularYear
	if isLeapYear(year) {
		hours = hoursLeapYear
	}

	records := make([]types.WeatherRecord, 0, hours)
	for h := 0; h < hours; h++ {
		ts := start.Add(time.Duration(h) * time.Hour)
		irr := solar.ClearSky(ts, latitude, longitude, altitudeM)

		records = append(records, types.WeatherRecord{
			Time:      ts,
			GHI:       irr.GHI,
			DNI:       irr.DNI,
			DHI:       irr.DHI,
			TempAir:   syntheticTemperature(ts, latitude),
			WindSpeed: 2.5,
		})
	}
	return records
}

// syntheticTemperature approximates a mid-latitude annual temperature cycle
// with a diurnal swing on top. Amplitude grows with distance from the
// equator; the southern hemisphere is phase-shifted by half a year.
func syntheticTemperature(t time.Time, latitude float64) float64 {
	seasonal := -math.Cos(2 * math.Pi * (float64(t.YearDay()) - 15) / 365)
	if latitude < 0 {
		seasonal = -seasonal
	}
	diurnal := -math.Cos(2 * math.Pi * float64(t.Hour()) / 24)
	amplitude := 4 + math.Abs(latitude)/90*8
	return 10 + amplitude*seasonal + 4*diurnal
}
