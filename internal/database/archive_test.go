package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/chrissnell/solarsim/internal/types"
	"github.com/chrissnell/solarsim/pkg/config"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	c := NewClient(&config.ArchiveData{SQLite: filepath.Join(t.TempDir(), "runs.db")})
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	return c
}

func testResult(id string, runAt time.Time) *types.SimulationResult {
	payback := 10.0
	return &types.SimulationResult{
		ID:       id,
		RunAt:    runAt,
		Site:     types.SiteConfig{Name: "Heidelberg", Latitude: 49.4077, Longitude: 8.6908, TiltDeg: 35, AzimuthDeg: 180},
		Module:   types.ModuleSpec{Name: "test-325", PowerRatedW: 325},
		Inverter: types.InverterSpec{Name: "test-3000", PowerACRatedW: 3000},
		Params:   types.DefaultSystemParams(),

		HourlyAC:      []types.HourlyPoint{{Time: runAt, PowerW: 100}},
		Monthly:       []types.MonthlyEnergy{{Month: time.January, EnergyKWh: 30}},
		SpecificYield: 1050,
		CapacityKWp:   0.325,
		Losses:        types.LossBreakdown{POAEnergyKWh: 500, ACEnergyKWh: 341},

		Economics:    []types.YearEconomics{{Year: 1, Savings: 100}},
		PaybackYears: &payback,
		TotalCost:    487.5,
	}
}

func TestSaveAndGetRun(t *testing.T) {
	c := testClient(t)
	result := testResult("run-1", time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC))

	if err := c.SaveRun(result); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	row, err := c.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if row.SiteName != "Heidelberg" || row.ModuleName != "test-325" || row.InverterName != "test-3000" {
		t.Errorf("row names wrong: %+v", row)
	}
	if row.ACEnergyKWh != 341 || row.SpecificYield != 1050 {
		t.Errorf("row results wrong: %+v", row)
	}
	if row.PaybackYears == nil || *row.PaybackYears != 10 {
		t.Errorf("payback = %v, want 10", row.PaybackYears)
	}

	summary, err := row.DecodeSummary()
	if err != nil {
		t.Fatalf("DecodeSummary: %v", err)
	}
	if summary.HourlyAC != nil {
		t.Error("archived summary should drop the hourly series")
	}
	if len(summary.Monthly) != 1 || summary.Monthly[0].EnergyKWh != 30 {
		t.Errorf("monthly series lost: %+v", summary.Monthly)
	}
	if summary.Losses.POAEnergyKWh != 500 {
		t.Errorf("losses lost: %+v", summary.Losses)
	}
}

func TestGetRunMissing(t *testing.T) {
	c := testClient(t)
	if _, err := c.GetRun("no-such-run"); err == nil {
		t.Fatal("expected an error for a missing run")
	}
}

func TestListRuns(t *testing.T) {
	c := testClient(t)
	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		if err := c.SaveRun(testResult(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatal(err)
		}
	}

	rows, err := c.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].RunID != "run-c" || rows[1].RunID != "run-b" {
		t.Errorf("rows not newest-first: %s, %s", rows[0].RunID, rows[1].RunID)
	}

	n, err := c.CountRuns()
	if err != nil {
		t.Fatalf("CountRuns: %v", err)
	}
	if n != 3 {
		t.Errorf("CountRuns = %d, want 3", n)
	}
}
