package weather

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chrissnell/solarsim/internal/types"
)

// DefaultCoerceYear is the year a stitched meteorological series is rebased
// onto. 1990 is not a leap year, so a 8760-hour series always fits.
const DefaultCoerceYear = 1990

// Column aliases accepted in CSV headers, keyed by canonical field name.
// The alternates cover PVGIS exports before and after variable mapping.
var columnAliases = map[string][]string{
	"time":       {"time", "timestamp", "time(utc)", "period_end"},
	"ghi":        {"ghi", "g(h)", "global_horizontal"},
	"dni":        {"dni", "gb(n)", "direct_normal"},
	"dhi":        {"dhi", "gd(h)", "diffuse_horizontal"},
	"temp_air":   {"temp_air", "t2m", "temperature"},
	"wind_speed": {"wind_speed", "ws10m", "wind"},
}

var timestampFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"20060102:1504",
}

// LoadCSV reads an hourly weather series from a CSV file, applies quality
// control, and normalizes it into one coherent calendar year.
func LoadCSV(path string) ([]types.WeatherRecord, []types.QualityWarning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open weather file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load parses, checks, and normalizes a CSV weather series from r. The
// returned warnings describe any conservative substitutions made; a non-nil
// error means the series is unusable.
func Load(r io.Reader) ([]types.WeatherRecord, []types.QualityWarning, error) {
	records, err := parseCSV(r)
	if err != nil {
		return nil, nil, err
	}

	records, warnings := ApplyQualityControl(records)

	// Stitched typical-year files jump between source years at month
	// boundaries. Rebase those onto one synthetic year before validating.
	if !isConsecutiveHourly(records) {
		records, err = CoerceYear(records, DefaultCoerceYear)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := ValidateSeries(records); err != nil {
		return nil, nil, err
	}
	return records, warnings, nil
}

func parseCSV(r io.Reader) ([]types.WeatherRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, types.NewValidationError("weather", "cannot read CSV header: %v", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var records []types.WeatherRecord
	row := 1
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, types.NewValidationError("weather", "row %d: %v", row, err)
		}
		row++

		if len(fields) <= cols["time"] || fields[cols["time"]] == "" {
			break
		}

		ts, err := parseTimestamp(fields[cols["time"]])
		if err != nil {
			// PVGIS exports append metadata lines after the data block.
			if len(records) > 0 {
				break
			}
			return nil, types.NewValidationError("weather", "row %d: %v", row, err)
		}

		rec := types.WeatherRecord{
			Time:      ts,
			GHI:       parseFloatField(fields, cols, "ghi"),
			DNI:       parseFloatField(fields, cols, "dni"),
			DHI:       parseFloatField(fields, cols, "dhi"),
			TempAir:   parseFloatField(fields, cols, "temp_air"),
			WindSpeed: parseFloatField(fields, cols, "wind_speed"),
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, types.NewValidationError("weather", "no data rows found")
	}
	return records, nil
}

// resolveColumns maps canonical field names to CSV column indices. The wind
// column may be absent; quality control substitutes calm air for it.
func resolveColumns(header []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	cols := make(map[string]int)
	for field, aliases := range columnAliases {
		found := false
		for _, alias := range aliases {
			if i, ok := index[alias]; ok {
				cols[field] = i
				found = true
				break
			}
		}
		if !found {
			if field == "wind_speed" {
				cols[field] = -1
				continue
			}
			return nil, types.NewValidationError("weather",
				"missing required column %q (accepted names: %s)",
				field, strings.Join(columnAliases[field], ", "))
		}
	}
	return cols, nil
}

func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp %q", value)
}

// parseFloatField returns NaN for absent or malformed values so quality
// control can substitute and flag them in one place.
func parseFloatField(fields []string, cols map[string]int, name string) float64 {
	i := cols[name]
	if i < 0 || i >= len(fields) {
		return math.NaN()
	}
	v := strings.TrimSpace(fields[i])
	if v == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func isConsecutiveHourly(records []types.WeatherRecord) bool {
	for i := 1; i < len(records); i++ {
		if records[i].Time.Sub(records[i-1].Time) != time.Hour {
			return false
		}
	}
	return true
}
