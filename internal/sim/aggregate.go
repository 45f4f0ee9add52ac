package sim

import (
	"time"

	"github.com/chrissnell/solarsim/internal/types"
)

// MonthlyTotals folds hourly AC power into twelve calendar-month energy
// buckets, keyed by month number only. Meteorological years stitched together
// from different source years still land in the right bucket.
func MonthlyTotals(hourly []types.HourlyPoint) []types.MonthlyEnergy {
	var sums [13]float64
	for _, p := range hourly {
		sums[p.Time.Month()] += p.PowerW
	}

	out := make([]types.MonthlyEnergy, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, types.MonthlyEnergy{Month: m, EnergyKWh: sums[m] / 1000})
	}
	return out
}

// BestDay returns the hourly profile of the day with the highest AC energy.
// When two days tie, the earlier one wins.
func BestDay(hourly []types.HourlyPoint) types.DayProfile {
	if len(hourly) == 0 {
		return types.DayProfile{}
	}

	sums := make(map[time.Time]float64)
	order := make([]time.Time, 0, 366)
	for _, p := range hourly {
		day := midnight(p.Time)
		if _, seen := sums[day]; !seen {
			order = append(order, day)
		}
		sums[day] += p.PowerW
	}

	// The series is chronological, so first-seen order is date order and a
	// strict comparison keeps the earliest day on ties.
	best := order[0]
	for _, day := range order[1:] {
		if sums[day] > sums[best] {
			best = day
		}
	}

	profile := types.DayProfile{Date: best}
	for _, p := range hourly {
		if midnight(p.Time).Equal(best) {
			profile.Points = append(profile.Points, p)
		}
	}
	return profile
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
