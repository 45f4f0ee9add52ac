package weather

import (
	"testing"
	"time"

	"github.com/chrissnell/solarsim/internal/types"
)

func makeSeries(start time.Time, hours int) []types.WeatherRecord {
	records := make([]types.WeatherRecord, hours)
	for i := range records {
		records[i] = types.WeatherRecord{
			Time:    start.Add(time.Duration(i) * time.Hour),
			GHI:     100,
			TempAir: 10,
		}
	}
	return records
}

func TestValidateSeries(t *testing.T) {
	start := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
	leapStart := time.Date(1992, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		records []types.WeatherRecord
		wantErr bool
	}{
		{name: "regular year", records: makeSeries(start, 8760), wantErr: false},
		{name: "leap year", records: makeSeries(leapStart, 8784), wantErr: false},
		{name: "empty", records: nil, wantErr: true},
		{name: "partial year", records: makeSeries(start, 100), wantErr: true},
		{name: "a day short", records: makeSeries(start, 8736), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSeries(tt.records)
			if tt.wantErr && err == nil {
				t.Fatal("expected an error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr && !types.IsValidationError(err) {
				t.Errorf("expected a validation error, got %v", err)
			}
		})
	}
}

func TestValidateSeriesBrokenTimestamps(t *testing.T) {
	start := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

	duplicate := makeSeries(start, 8760)
	duplicate[100].Time = duplicate[99].Time

	gap := makeSeries(start, 8760)
	gap[500].Time = gap[500].Time.Add(time.Hour)

	backwards := makeSeries(start, 8760)
	backwards[200].Time = backwards[200].Time.Add(-3 * time.Hour)

	tests := []struct {
		name    string
		records []types.WeatherRecord
	}{
		{name: "duplicate timestamp", records: duplicate},
		{name: "gap in series", records: gap},
		{name: "backwards timestamp", records: backwards},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateSeries(tt.records); err == nil {
				t.Fatal("expected an error")
			} else if !types.IsValidationError(err) {
				t.Errorf("expected a validation error, got %v", err)
			}
		})
	}
}

func TestCoerceYear(t *testing.T) {
	records := []types.WeatherRecord{
		{Time: time.Date(2011, time.January, 31, 23, 0, 0, 0, time.UTC)},
		{Time: time.Date(2008, time.February, 1, 0, 0, 0, 0, time.UTC)},
	}

	out, err := CoerceYear(records, 1990)
	if err != nil {
		t.Fatalf("CoerceYear: %v", err)
	}

	for i, rec := range out {
		if rec.Time.Year() != 1990 {
			t.Errorf("record %d year = %d, want 1990", i, rec.Time.Year())
		}
	}
	if out[1].Time.Sub(out[0].Time) != time.Hour {
		t.Errorf("stitched boundary not continuous after rebase: %v then %v", out[0].Time, out[1].Time)
	}
}

func TestCoerceYearRefusesLeapTarget(t *testing.T) {
	start := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
	if _, err := CoerceYear(makeSeries(start, 8760), 2000); err == nil {
		t.Fatal("expected an error rebasing 8760 hours onto a leap year")
	}
}
