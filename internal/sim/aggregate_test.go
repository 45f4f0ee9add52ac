package sim

import (
	"math"
	"testing"
	"time"

	"github.com/chrissnell/solarsim/internal/types"
)

func hp(year int, month time.Month, day, hour int, powerW float64) types.HourlyPoint {
	return types.HourlyPoint{
		Time:   time.Date(year, month, day, hour, 0, 0, 0, time.UTC),
		PowerW: powerW,
	}
}

func TestMonthlyTotals(t *testing.T) {
	hourly := []types.HourlyPoint{
		hp(1990, time.January, 10, 11, 1500),
		hp(1990, time.January, 10, 12, 500),
		hp(1990, time.March, 2, 13, 250),
		hp(1990, time.July, 15, 12, 3000),
	}

	monthly := MonthlyTotals(hourly)
	if len(monthly) != 12 {
		t.Fatalf("got %d months, want 12", len(monthly))
	}

	want := map[time.Month]float64{
		time.January: 2.0,
		time.March:   0.25,
		time.July:    3.0,
	}
	for i, m := range monthly {
		if m.Month != time.Month(i+1) {
			t.Errorf("bucket %d is %v, want %v", i, m.Month, time.Month(i+1))
		}
		if math.Abs(m.EnergyKWh-want[m.Month]) > 1e-12 {
			t.Errorf("%v = %v kWh, want %v", m.Month, m.EnergyKWh, want[m.Month])
		}
	}
}

func TestMonthlyTotalsFoldsSourceYears(t *testing.T) {
	// Same month from different source years lands in one bucket.
	hourly := []types.HourlyPoint{
		hp(2007, time.June, 1, 12, 1000),
		hp(2013, time.June, 2, 12, 1000),
	}

	monthly := MonthlyTotals(hourly)
	if got := monthly[time.June-1].EnergyKWh; math.Abs(got-2.0) > 1e-12 {
		t.Errorf("June = %v kWh, want 2", got)
	}
}

func TestBestDay(t *testing.T) {
	tests := []struct {
		name       string
		hourly     []types.HourlyPoint
		wantDate   time.Time
		wantPoints int
	}{
		{
			name: "highest daily sum wins",
			hourly: []types.HourlyPoint{
				hp(1990, time.May, 31, 12, 250),
				hp(1990, time.June, 1, 11, 100),
				hp(1990, time.June, 1, 12, 200),
				hp(1990, time.June, 2, 12, 400),
			},
			wantDate:   time.Date(1990, time.June, 2, 0, 0, 0, 0, time.UTC),
			wantPoints: 1,
		},
		{
			name: "ties go to the earlier day",
			hourly: []types.HourlyPoint{
				hp(1990, time.June, 1, 11, 100),
				hp(1990, time.June, 1, 12, 200),
				hp(1990, time.June, 2, 12, 300),
			},
			wantDate:   time.Date(1990, time.June, 1, 0, 0, 0, 0, time.UTC),
			wantPoints: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := BestDay(tt.hourly)
			if !day.Date.Equal(tt.wantDate) {
				t.Errorf("date = %v, want %v", day.Date, tt.wantDate)
			}
			if len(day.Points) != tt.wantPoints {
				t.Errorf("got %d points, want %d", len(day.Points), tt.wantPoints)
			}
		})
	}
}

func TestBestDayEmpty(t *testing.T) {
	day := BestDay(nil)
	if !day.Date.IsZero() || len(day.Points) != 0 {
		t.Errorf("expected zero profile for empty input, got %+v", day)
	}
}
