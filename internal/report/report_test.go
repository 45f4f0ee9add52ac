package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/chrissnell/solarsim/internal/types"
)

func reportResult() *types.SimulationResult {
	payback := 8.2
	return &types.SimulationResult{
		ID:    "run-report",
		RunAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Site: types.SiteConfig{
			Name:       "Heidelberg",
			Latitude:   49.4077,
			Longitude:  8.6908,
			TiltDeg:    35,
			AzimuthDeg: 180,
			Mounting:   types.MountingOpenRackGlassGlass,
		},
		Module: types.ModuleSpec{
			Name:          "test-module-325",
			PowerRatedW:   325,
			GammaPmp:      -0.0036,
			IAMB0:         0.05,
			AreaM2:        1.67,
			RefIrradiance: 1000,
			RefTemp:       25,
		},
		Inverter: types.InverterSpec{
			Name:          "test-inverter-3000",
			PowerACRatedW: 3000,
			Efficiency: []types.EffPoint{
				{DCW: 30, Eta: 0.90},
				{DCW: 3000, Eta: 0.97},
			},
		},
		Params: types.SystemParams{
			ModuleCount:        10,
			SystemHealth:       0.95,
			DegradationRate:    0.005,
			InstallCostPerKWp:  1500,
			ElectricityPrice:   0.30,
			GridCO2GramsPerKWh: 434,
			HorizonYears:       25,
		},
		Monthly: []types.MonthlyEnergy{
			{Month: time.January, EnergyKWh: 325},
			{Month: time.July, EnergyKWh: 455},
		},
		SpecificYield: 384.6,
		CapacityKWp:   3.25,
		Losses: types.LossBreakdown{
			POAEnergyKWh:      5000,
			AOILossKWh:        150,
			IrradianceLossKWh: 3200,
			ThermalLossKWh:    120,
			SystemLossKWh:     180,
			InverterLossKWh:   90,
			ClippingLossKWh:   10,
			ACEnergyKWh:       1250,
		},
		Economics: []types.YearEconomics{
			{Year: 1, YieldKWhPerKWp: 384.6, Savings: 375, CumulativeSavings: 375, RemainingCost: 4500, CO2SavedKg: 542.5, CumulativeCO2Kg: 542.5},
			{Year: 2, YieldKWhPerKWp: 382.7, Savings: 373.1, CumulativeSavings: 748.1, RemainingCost: 4126.9, CO2SavedKg: 539.8, CumulativeCO2Kg: 1082.3},
		},
		PaybackYears:    &payback,
		TotalCost:       4875,
		AnnualSavings:   375,
		TotalCO2SavedKg: 14100,
	}
}

func TestCSVSections(t *testing.T) {
	b, err := CSV(reportResult())
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	text := string(b)

	wantLines := []string{
		"SIMULATION SUMMARY",
		"Site,Heidelberg",
		"Module,test-module-325",
		"Module Count,10",
		"System Capacity (kWp),3.250",
		"System Health (%),95.0",
		"Payback Period (Years),8.2",
		"Total CO2 Saved (kg),14100",
		"ENERGY LOSSES (kWh)",
		"POA Energy (kWh),5000.0",
		"Clipping Loss (kWh),10.0",
		"Final AC Yield (kWh),1250.0",
		"MONTHLY PRODUCTION (kWh per kWp)",
		"January,100.00",
		"July,140.00",
	}
	for _, want := range wantLines {
		if !strings.Contains(text, want+"\n") {
			t.Errorf("csv missing line %q", want)
		}
	}

	if !strings.Contains(text, "\n\nENERGY LOSSES (kWh)\n") {
		t.Error("loss section not separated by a blank line")
	}
	if !strings.Contains(text, "\n\nMONTHLY PRODUCTION (kWh per kWp)\n") {
		t.Error("monthly section not separated by a blank line")
	}
}

func TestCSVPaybackNotReached(t *testing.T) {
	r := reportResult()
	r.PaybackYears = nil
	b, err := CSV(r)
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	if !strings.Contains(string(b), "Payback Period (Years),not reached\n") {
		t.Error("nil payback not rendered as \"not reached\"")
	}
}

func TestXLSXSheets(t *testing.T) {
	raw, err := XLSX(reportResult())
	if err != nil {
		t.Fatalf("XLSX: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"summary", "losses", "monthly", "economics"} {
		if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
			t.Errorf("missing sheet %q", sheet)
		}
	}

	cells := []struct {
		sheet string
		cell  string
		want  string
	}{
		{"summary", "A1", "Simulation Summary"},
		{"summary", "B3", "Heidelberg"},
		{"summary", "B10", "10"}, // module count
		{"losses", "A2", "POA Energy"},
		{"losses", "B2", "5000"},
		{"losses", "A9", "Final AC Yield"},
		{"monthly", "A2", "January"},
		{"monthly", "C2", "100"},
		{"economics", "A1", "Year"},
		{"economics", "G1", "Cumulative CO2 (kg)"},
		{"economics", "A3", "2"},
	}
	for _, c := range cells {
		got, err := f.GetCellValue(c.sheet, c.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s!%s): %v", c.sheet, c.cell, err)
		}
		if got != c.want {
			t.Errorf("%s!%s = %q, want %q", c.sheet, c.cell, got, c.want)
		}
	}
}

func TestPDFRenders(t *testing.T) {
	b, err := PDF(reportResult())
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatal("output does not start with a PDF header")
	}
	if len(b) < 1000 {
		t.Errorf("suspiciously small PDF: %d bytes", len(b))
	}

	r := reportResult()
	r.PaybackYears = nil
	if _, err := PDF(r); err != nil {
		t.Fatalf("PDF without payback: %v", err)
	}
}
