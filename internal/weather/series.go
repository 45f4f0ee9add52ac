// Package weather loads, checks, and normalizes the hourly meteorological
// series a simulation run consumes.
package weather

import (
	"time"

	"github.com/chrissnell/solarsim/internal/types"
)

const (
	hoursRegularYear = 8760
	hoursLeapYear    = 8784
)

// ValidateSeries checks that a weather series covers exactly one year of
// consecutive hourly records. Timestamps must advance by exactly one hour per
// record; duplicates, gaps, and partial years are all rejected.
func ValidateSeries(records []types.WeatherRecord) error {
	if len(records) == 0 {
		return types.NewValidationError("weather", "series is empty")
	}
	if len(records) != hoursRegularYear && len(records) != hoursLeapYear {
		return types.NewValidationError("weather",
			"series has %d records, expected a full year of %d (or %d in a leap year)",
			len(records), hoursRegularYear, hoursLeapYear)
	}

	for i := 1; i < len(records); i++ {
		step := records[i].Time.Sub(records[i-1].Time)
		switch {
		case step == 0:
			return types.NewValidationError("weather",
				"duplicate timestamp %s at record %d", records[i].Time.Format(time.RFC3339), i)
		case step < 0:
			return types.NewValidationError("weather",
				"timestamps go backwards at record %d (%s)", i, records[i].Time.Format(time.RFC3339))
		case step != time.Hour:
			return types.NewValidationError("weather",
				"gap of %s before record %d (%s), expected hourly steps",
				step, i, records[i].Time.Format(time.RFC3339))
		}
	}
	return nil
}

// CoerceYear rewrites every timestamp onto the given year so that a typical
// meteorological year stitched from different source years becomes one
// coherent calendar year. Rebasing onto a leap year is refused for a 8760-row
// series since February 29 would be missing.
func CoerceYear(records []types.WeatherRecord, year int) ([]types.WeatherRecord, error) {
	if isLeapYear(year) && len(records) == hoursRegularYear {
		return nil, types.NewValidationError("weather",
			"cannot rebase a %d-hour series onto leap year %d", hoursRegularYear, year)
	}

	out := make([]types.WeatherRecord, len(records))
	for i, rec := range records {
		t := rec.Time
		rec.Time = time.Date(year, t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
		out[i] = rec
	}
	return out, nil
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
