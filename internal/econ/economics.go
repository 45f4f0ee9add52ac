// Package econ turns an annual specific yield into a multi-year financial and
// emissions projection.
package econ

import (
	"math"

	"github.com/chrissnell/solarsim/internal/types"
)

// Projection is the per-year economic and emissions series over the horizon.
type Projection struct {
	Years           []types.YearEconomics
	TotalCost       float64
	AnnualSavings   float64
	PaybackYears    *float64
	TotalCO2SavedKg float64
}

// DegradedYield returns the specific yield in year i (1-indexed) after
// compounding the annual degradation rate.
func DegradedYield(firstYearYield, degradationRate float64, year int) float64 {
	return firstYearYield * math.Pow(1-degradationRate, float64(year-1))
}

// Evaluate projects a first-year specific yield (kWh/kWp) over the configured
// horizon. Savings and avoided emissions in every year come from the same
// degraded-yield figure, so the two series can never drift apart. The payback
// year is the first whose cumulative savings reach total install cost, found
// by a plain scan over the horizon; if the cost is never recovered the
// projection reports no payback rather than an error.
func Evaluate(specificYield, capacityKWp float64, params types.SystemParams) Projection {
	totalCost := params.InstallCostPerKWp * capacityKWp
	years := make([]types.YearEconomics, 0, params.HorizonYears)

	var cumSavings, cumCO2 float64
	var payback *float64
	for i := 1; i <= params.HorizonYears; i++ {
		yield := DegradedYield(specificYield, params.DegradationRate, i)
		savings := yield * capacityKWp * params.ElectricityPrice
		co2 := CO2SavedKg(yield*capacityKWp, params.GridCO2GramsPerKWh)

		cumSavings += savings
		cumCO2 += co2
		if payback == nil && cumSavings >= totalCost {
			p := float64(i)
			payback = &p
		}

		years = append(years, types.YearEconomics{
			Year:              i,
			YieldKWhPerKWp:    yield,
			Savings:           savings,
			CumulativeSavings: cumSavings,
			RemainingCost:     math.Max(totalCost-cumSavings, 0),
			CO2SavedKg:        co2,
			CumulativeCO2Kg:   cumCO2,
		})
	}

	proj := Projection{
		Years:           years,
		TotalCost:       totalCost,
		PaybackYears:    payback,
		TotalCO2SavedKg: cumCO2,
	}
	if len(years) > 0 {
		proj.AnnualSavings = years[0].Savings
	}
	return proj
}
