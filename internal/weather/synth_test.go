package weather

import (
	"testing"
	"time"

	"github.com/chrissnell/solarsim/internal/types"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		hours int
	}{
		{name: "regular year", year: 1990, hours: 8760},
		{name: "leap year", year: 2000, hours: 8784},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := Generate(tt.year, 49.4077, 8.6908, 110)
			if len(records) != tt.hours {
				t.Fatalf("got %d records, want %d", len(records), tt.hours)
			}
			if err := ValidateSeries(records); err != nil {
				t.Fatalf("generated series invalid: %v", err)
			}
			for i, rec := range records {
				if rec.WindSpeed != 2.5 {
					t.Fatalf("record %d wind = %v, want constant 2.5", i, rec.WindSpeed)
				}
				if rec.TempAir < -30 || rec.TempAir > 45 {
					t.Fatalf("record %d temp = %v, outside plausible range", i, rec.TempAir)
				}
			}
		})
	}
}

func TestGenerateDayNightCycle(t *testing.T) {
	records := Generate(1990, 49.4077, 8.6908, 110)

	for _, rec := range records {
		if rec.Time.Hour() == 0 && rec.GHI != 0 {
			t.Fatalf("midnight %v has GHI %v, want dark", rec.Time, rec.GHI)
		}
	}

	noon := time.Date(1990, time.June, 21, 12, 0, 0, 0, time.UTC)
	for _, rec := range records {
		if rec.Time.Equal(noon) {
			if rec.GHI < 400 {
				t.Errorf("June noon GHI = %v, want a clear-sky level", rec.GHI)
			}
			return
		}
	}
	t.Fatal("June noon record not found")
}

func TestGenerateSeasonsFollowHemisphere(t *testing.T) {
	monthlyMean := func(records []types.WeatherRecord, m time.Month) float64 {
		sum, n := 0.0, 0
		for _, rec := range records {
			if rec.Time.Month() == m {
				sum += rec.TempAir
				n++
			}
		}
		return sum / float64(n)
	}

	north := Generate(1990, 49.4077, 8.6908, 110)
	if monthlyMean(north, time.July) <= monthlyMean(north, time.January) {
		t.Error("northern site should be warmer in July than January")
	}

	south := Generate(1990, -33.8688, 151.2093, 40)
	if monthlyMean(south, time.January) <= monthlyMean(south, time.July) {
		t.Error("southern site should be warmer in January than July")
	}
}
