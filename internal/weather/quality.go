package weather

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/chrissnell/solarsim/internal/types"
)

// physicalMaxIrradiance is the upper bound for any irradiance component at
// the surface, W/m². Values above it are sensor faults.
const physicalMaxIrradiance = 1500.0

// maxDetailedWarnings caps per-record warnings before the rest collapse into
// a single count.
const maxDetailedWarnings = 20

// ApplyQualityControl substitutes conservative values for missing or
// impossible samples and flags suspicious ones. Missing wind becomes calm air,
// which overestimates cell temperature; missing temperature carries the
// previous sample forward; negative irradiance clamps to zero and components
// above the physical limit clamp to it. Statistical outliers in GHI are
// flagged but left untouched.
func ApplyQualityControl(records []types.WeatherRecord) ([]types.WeatherRecord, []types.QualityWarning) {
	var warnings []types.QualityWarning
	suppressed := 0

	warn := func(i int, field, format string, args ...any) {
		if len(warnings) >= maxDetailedWarnings {
			suppressed++
			return
		}
		warnings = append(warnings, types.QualityWarning{
			Index:   i,
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	out := make([]types.WeatherRecord, len(records))
	copy(out, records)

	lastTemp := firstValidTemp(out)
	for i := range out {
		rec := &out[i]

		if math.IsNaN(rec.WindSpeed) || rec.WindSpeed < 0 {
			warn(i, "wind_speed", "missing or negative wind speed, treated as calm air")
			rec.WindSpeed = 0
		}
		if math.IsNaN(rec.TempAir) {
			warn(i, "temp_air", "missing air temperature, carried %.1f °C forward", lastTemp)
			rec.TempAir = lastTemp
		}
		lastTemp = rec.TempAir

		for _, c := range []struct {
			name  string
			value *float64
		}{
			{"ghi", &rec.GHI},
			{"dni", &rec.DNI},
			{"dhi", &rec.DHI},
		} {
			switch {
			case math.IsNaN(*c.value):
				warn(i, c.name, "missing irradiance sample, treated as dark")
				*c.value = 0
			case *c.value < 0:
				warn(i, c.name, "negative irradiance %.1f clamped to zero", *c.value)
				*c.value = 0
			case *c.value > physicalMaxIrradiance:
				warn(i, c.name, "irradiance %.0f above physical limit, clamped to %.0f",
					*c.value, physicalMaxIrradiance)
				*c.value = physicalMaxIrradiance
			}
		}
	}

	for _, i := range ghiOutliers(out) {
		warn(i, "ghi", "suspicious irradiance spike %.0f W/m²", out[i].GHI)
	}

	if suppressed > 0 {
		warnings = append(warnings, types.QualityWarning{
			Index:   -1,
			Field:   "quality",
			Message: fmt.Sprintf("%d further warnings suppressed", suppressed),
		})
	}
	return out, warnings
}

func firstValidTemp(records []types.WeatherRecord) float64 {
	for _, rec := range records {
		if !math.IsNaN(rec.TempAir) {
			return rec.TempAir
		}
	}
	return 0
}

// ghiOutliers returns indices whose GHI exceeds three times the 95th
// percentile of the series' daylight values. A spike that clears this bar is
// almost certainly a logging artifact rather than a bright interval.
func ghiOutliers(records []types.WeatherRecord) []int {
	daylight := make([]float64, 0, len(records)/2)
	for _, rec := range records {
		if rec.GHI > 0 {
			daylight = append(daylight, rec.GHI)
		}
	}
	if len(daylight) < 10 {
		return nil
	}

	sort.Float64s(daylight)
	q95 := stat.Quantile(0.95, stat.Empirical, daylight, nil)
	if q95 <= 0 {
		return nil
	}

	threshold := 3 * q95
	var out []int
	for i, rec := range records {
		if rec.GHI > threshold {
			out = append(out, i)
		}
	}
	return out
}
