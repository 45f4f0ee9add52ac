package solar

import (
	"testing"
	"time"
)

func TestSunriseSunset(t *testing.T) {
	tests := []struct {
		name      string
		date      time.Time
		latitude  float64
		longitude float64
		minHours  float64
		maxHours  float64
	}{
		{
			name:      "Heidelberg summer solstice",
			date:      time.Date(2019, time.June, 21, 0, 0, 0, 0, time.UTC),
			latitude:  49.4077,
			longitude: 8.6908,
			minHours:  15.5,
			maxHours:  16.5,
		},
		{
			name:      "Heidelberg winter solstice",
			date:      time.Date(2019, time.December, 21, 0, 0, 0, 0, time.UTC),
			latitude:  49.4077,
			longitude: 8.6908,
			minHours:  7.5,
			maxHours:  8.5,
		},
		{
			name:      "Kiel summer solstice",
			date:      time.Date(2019, time.June, 21, 0, 0, 0, 0, time.UTC),
			latitude:  54.3233,
			longitude: 10.1228,
			minHours:  16.5,
			maxHours:  17.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sunrise, sunset, ok := SunriseSunset(tt.date, tt.latitude, tt.longitude)
			if !ok {
				t.Fatal("expected sunrise and sunset, got polar day/night")
			}
			if !sunrise.Before(sunset) {
				t.Fatalf("sunrise %v not before sunset %v", sunrise, sunset)
			}

			dayHours := sunset.Sub(sunrise).Hours()
			if dayHours < tt.minHours || dayHours > tt.maxHours {
				t.Errorf("day length = %.2f h, expected within [%.1f, %.1f]", dayHours, tt.minHours, tt.maxHours)
			}
		})
	}
}

func TestSunriseSunsetPolar(t *testing.T) {
	// Svalbard in June: midnight sun, no sunrise or sunset exists.
	_, _, ok := SunriseSunset(time.Date(2019, time.June, 21, 0, 0, 0, 0, time.UTC), 78.0, 15.0)
	if ok {
		t.Error("expected ok=false during polar day at 78°N")
	}
}
