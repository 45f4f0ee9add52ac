package econ

import (
	"math"
	"testing"

	"github.com/chrissnell/solarsim/internal/types"
)

func flatParams() types.SystemParams {
	params := types.DefaultSystemParams()
	params.InstallCostPerKWp = 10000
	params.ElectricityPrice = 1.0
	params.DegradationRate = 0
	params.HorizonYears = 25
	return params
}

func TestDegradedYield(t *testing.T) {
	tests := []struct {
		name        string
		firstYear   float64
		degradation float64
		year        int
		want        float64
		epsilon     float64
	}{
		{name: "first year is undegraded", firstYear: 1000, degradation: 0.05, year: 1, want: 1000, epsilon: 0},
		{name: "third year compounds twice", firstYear: 1000, degradation: 0.1, year: 3, want: 810, epsilon: 1e-9},
		{name: "zero rate never degrades", firstYear: 1000, degradation: 0, year: 25, want: 1000, epsilon: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DegradedYield(tt.firstYear, tt.degradation, tt.year)
			if math.Abs(got-tt.want) > tt.epsilon {
				t.Errorf("DegradedYield = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateFlatPayback(t *testing.T) {
	// 10,000 install cost against flat 1,000/year savings recovers in
	// exactly ten years.
	proj := Evaluate(1000, 1.0, flatParams())

	if proj.TotalCost != 10000 {
		t.Fatalf("total cost = %v, want 10000", proj.TotalCost)
	}
	if proj.PaybackYears == nil {
		t.Fatal("expected a payback year")
	}
	if *proj.PaybackYears != 10 {
		t.Errorf("payback = %v years, want exactly 10", *proj.PaybackYears)
	}
	if proj.AnnualSavings != 1000 {
		t.Errorf("first-year savings = %v, want 1000", proj.AnnualSavings)
	}
}

func TestEvaluateDegradedPayback(t *testing.T) {
	params := flatParams()
	params.DegradationRate = 0.05

	proj := Evaluate(1000, 1.0, params)
	if proj.PaybackYears == nil {
		t.Fatal("cumulative savings cross 10,000 within 25 years even degraded")
	}
	if *proj.PaybackYears <= 10 {
		t.Errorf("payback = %v years, degradation must push it past 10", *proj.PaybackYears)
	}

	// Recompute the cumulative sum directly and find the crossing year.
	cum := 0.0
	wantYear := 0
	for i := 1; i <= params.HorizonYears; i++ {
		cum += 1000 * math.Pow(0.95, float64(i-1))
		if wantYear == 0 && cum >= 10000 {
			wantYear = i
		}
	}
	if *proj.PaybackYears != float64(wantYear) {
		t.Errorf("payback = %v, direct recomputation says %d", *proj.PaybackYears, wantYear)
	}
}

func TestEvaluateNeverRecovered(t *testing.T) {
	params := flatParams()
	params.InstallCostPerKWp = 1e9

	proj := Evaluate(1000, 1.0, params)
	if proj.PaybackYears != nil {
		t.Errorf("payback = %v, want undefined beyond the horizon", *proj.PaybackYears)
	}

	last := proj.Years[len(proj.Years)-1]
	if last.RemainingCost <= 0 {
		t.Errorf("remaining cost = %v, should still be positive", last.RemainingCost)
	}
}

func TestEvaluateSeriesMonotone(t *testing.T) {
	for _, degradation := range []float64{0, 0.005, 0.05, 0.5} {
		params := flatParams()
		params.DegradationRate = degradation
		params.GridCO2GramsPerKWh = 434

		proj := Evaluate(1000, 5.0, params)
		for i := 1; i < len(proj.Years); i++ {
			prev, cur := proj.Years[i-1], proj.Years[i]
			if cur.CumulativeSavings < prev.CumulativeSavings {
				t.Fatalf("d=%v: cumulative savings fell at year %d", degradation, cur.Year)
			}
			if cur.CumulativeCO2Kg < prev.CumulativeCO2Kg {
				t.Fatalf("d=%v: cumulative CO2 fell at year %d", degradation, cur.Year)
			}
			if cur.RemainingCost > prev.RemainingCost {
				t.Fatalf("d=%v: remaining cost rose at year %d", degradation, cur.Year)
			}
		}
	}
}

func TestEvaluateEmissionsUseSameDegradation(t *testing.T) {
	params := flatParams()
	params.DegradationRate = 0.02
	params.GridCO2GramsPerKWh = 434
	capacity := 3.25

	proj := Evaluate(1200, capacity, params)
	for _, y := range proj.Years {
		want := CO2SavedKg(y.YieldKWhPerKWp*capacity, params.GridCO2GramsPerKWh)
		if math.Abs(y.CO2SavedKg-want) > 1e-9 {
			t.Errorf("year %d: CO2 %v kg, want %v from the same degraded yield", y.Year, y.CO2SavedKg, want)
		}
	}

	total := proj.Years[len(proj.Years)-1].CumulativeCO2Kg
	if math.Abs(proj.TotalCO2SavedKg-total) > 1e-9 {
		t.Errorf("TotalCO2SavedKg = %v, cumulative series ends at %v", proj.TotalCO2SavedKg, total)
	}
}

func TestCO2SavedKg(t *testing.T) {
	if got := CO2SavedKg(1000, 434); math.Abs(got-434) > 1e-12 {
		t.Errorf("CO2SavedKg = %v, want 434", got)
	}
	if got := CO2SavedKg(0, 434); got != 0 {
		t.Errorf("CO2SavedKg = %v, want 0", got)
	}
}
