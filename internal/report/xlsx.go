package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/chrissnell/solarsim/internal/types"
)

// XLSX renders a workbook with one sheet per result section: headline
// summary, loss waterfall, monthly production, and the year-by-year
// economic series.
func XLSX(result *types.SimulationResult) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	lossSheet := "losses"
	monthlySheet := "monthly"
	economicsSheet := "economics"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(lossSheet)
	f.NewSheet(monthlySheet)
	f.NewSheet(economicsSheet)

	var payback interface{} = "not reached"
	if result.PaybackYears != nil {
		payback = *result.PaybackYears
	}

	_ = f.SetCellValue(summarySheet, "A1", "Simulation Summary")
	summary := []struct {
		label string
		value interface{}
	}{
		{"Site", result.Site.Name},
		{"Latitude (deg)", result.Site.Latitude},
		{"Longitude (deg)", result.Site.Longitude},
		{"Tilt (deg)", result.Site.TiltDeg},
		{"Azimuth (deg)", result.Site.AzimuthDeg},
		{"Module", result.Module.Name},
		{"Inverter", result.Inverter.Name},
		{"Module Count", result.Params.ModuleCount},
		{"System Capacity (kWp)", result.CapacityKWp},
		{"System Health (%)", result.Params.SystemHealth * 100},
		{"Annual Degradation Rate (%)", result.Params.DegradationRate * 100},
		{"Final Annual Specific Yield (kWh/kWp)", result.SpecificYield},
		{"Annual AC Energy (kWh)", result.Losses.ACEnergyKWh},
		{"Annual Savings (EUR)", result.AnnualSavings},
		{"Payback Period (Years)", payback},
		{"Total CO2 Saved (kg)", result.TotalCO2SavedKg},
	}
	for i, kv := range summary {
		row := i + 3
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), kv.label)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), kv.value)
	}

	_ = f.SetCellValue(lossSheet, "A1", "Stage")
	_ = f.SetCellValue(lossSheet, "B1", "Energy (kWh)")
	losses := []struct {
		stage string
		kwh   float64
	}{
		{"POA Energy", result.Losses.POAEnergyKWh},
		{"AOI Loss", result.Losses.AOILossKWh},
		{"Irradiance Conversion Loss", result.Losses.IrradianceLossKWh},
		{"Thermal Loss", result.Losses.ThermalLossKWh},
		{"System Loss", result.Losses.SystemLossKWh},
		{"Inverter Loss", result.Losses.InverterLossKWh},
		{"Clipping Loss", result.Losses.ClippingLossKWh},
		{"Final AC Yield", result.Losses.ACEnergyKWh},
	}
	for i, l := range losses {
		row := i + 2
		_ = f.SetCellValue(lossSheet, fmt.Sprintf("A%d", row), l.stage)
		_ = f.SetCellValue(lossSheet, fmt.Sprintf("B%d", row), l.kwh)
	}

	_ = f.SetCellValue(monthlySheet, "A1", "Month")
	_ = f.SetCellValue(monthlySheet, "B1", "Energy (kWh)")
	_ = f.SetCellValue(monthlySheet, "C1", "kWh per kWp")
	for i, m := range result.Monthly {
		row := i + 2
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("A%d", row), m.Month.String())
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("B%d", row), m.EnergyKWh)
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("C%d", row), perKWp(m.EnergyKWh, result.CapacityKWp))
	}

	_ = f.SetCellValue(economicsSheet, "A1", "Year")
	_ = f.SetCellValue(economicsSheet, "B1", "Yield (kWh/kWp)")
	_ = f.SetCellValue(economicsSheet, "C1", "Savings (EUR)")
	_ = f.SetCellValue(economicsSheet, "D1", "Cumulative Savings (EUR)")
	_ = f.SetCellValue(economicsSheet, "E1", "Remaining Cost (EUR)")
	_ = f.SetCellValue(economicsSheet, "F1", "CO2 Saved (kg)")
	_ = f.SetCellValue(economicsSheet, "G1", "Cumulative CO2 (kg)")
	for i, y := range result.Economics {
		row := i + 2
		_ = f.SetCellValue(economicsSheet, fmt.Sprintf("A%d", row), y.Year)
		_ = f.SetCellValue(economicsSheet, fmt.Sprintf("B%d", row), y.YieldKWhPerKWp)
		_ = f.SetCellValue(economicsSheet, fmt.Sprintf("C%d", row), y.Savings)
		_ = f.SetCellValue(economicsSheet, fmt.Sprintf("D%d", row), y.CumulativeSavings)
		_ = f.SetCellValue(economicsSheet, fmt.Sprintf("E%d", row), y.RemainingCost)
		_ = f.SetCellValue(economicsSheet, fmt.Sprintf("F%d", row), y.CO2SavedKg)
		_ = f.SetCellValue(economicsSheet, fmt.Sprintf("G%d", row), y.CumulativeCO2Kg)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
