// Package report renders finished simulation runs as CSV, XLSX, or PDF.
// Renderers are pure functions of the result; callers decide where the
// bytes go.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/chrissnell/solarsim/internal/types"
)

// CSV renders the three-section plain-text summary: headline figures, the
// loss waterfall, and monthly production. Sections are separated by blank
// lines so the file reads cleanly in a spreadsheet or a pager.
func CSV(result *types.SimulationResult) ([]byte, error) {
	rows := [][]string{
		{"SIMULATION SUMMARY"},
		{"Site", result.Site.Name},
		{"Latitude (deg)", fmt.Sprintf("%.4f", result.Site.Latitude)},
		{"Longitude (deg)", fmt.Sprintf("%.4f", result.Site.Longitude)},
		{"Tilt (deg)", fmt.Sprintf("%.1f", result.Site.TiltDeg)},
		{"Azimuth (deg)", fmt.Sprintf("%.1f", result.Site.AzimuthDeg)},
		{"Module", result.Module.Name},
		{"Inverter", result.Inverter.Name},
		{"Module Count", strconv.Itoa(result.Params.ModuleCount)},
		{"System Capacity (kWp)", fmt.Sprintf("%.3f", result.CapacityKWp)},
		{"System Health (%)", fmt.Sprintf("%.1f", result.Params.SystemHealth*100)},
		{"Annual Degradation Rate (%)", fmt.Sprintf("%.2f", result.Params.DegradationRate*100)},
		{"Final Annual Specific Yield (kWh/kWp)", fmt.Sprintf("%.1f", result.SpecificYield)},
		{"Annual AC Energy (kWh)", fmt.Sprintf("%.1f", result.Losses.ACEnergyKWh)},
		{"Annual Savings (EUR)", fmt.Sprintf("%.2f", result.AnnualSavings)},
		{"Payback Period (Years)", paybackLabel(result.PaybackYears)},
		{"Total CO2 Saved (kg)", fmt.Sprintf("%.0f", result.TotalCO2SavedKg)},
		{""},
		{"ENERGY LOSSES (kWh)"},
		{"POA Energy (kWh)", fmt.Sprintf("%.1f", result.Losses.POAEnergyKWh)},
		{"AOI Loss (kWh)", fmt.Sprintf("%.1f", result.Losses.AOILossKWh)},
		{"Irradiance Conversion Loss (kWh)", fmt.Sprintf("%.1f", result.Losses.IrradianceLossKWh)},
		{"Thermal Loss (kWh)", fmt.Sprintf("%.1f", result.Losses.ThermalLossKWh)},
		{"System Loss (kWh)", fmt.Sprintf("%.1f", result.Losses.SystemLossKWh)},
		{"Inverter Loss (kWh)", fmt.Sprintf("%.1f", result.Losses.InverterLossKWh)},
		{"Clipping Loss (kWh)", fmt.Sprintf("%.1f", result.Losses.ClippingLossKWh)},
		{"Final AC Yield (kWh)", fmt.Sprintf("%.1f", result.Losses.ACEnergyKWh)},
		{""},
		{"MONTHLY PRODUCTION (kWh per kWp)"},
	}
	for _, m := range result.Monthly {
		rows = append(rows, []string{m.Month.String(), fmt.Sprintf("%.2f", perKWp(m.EnergyKWh, result.CapacityKWp))})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// paybackLabel formats the payback period, which is nil when the install
// cost is not recovered within the modeled horizon.
func paybackLabel(payback *float64) string {
	if payback == nil {
		return "not reached"
	}
	return fmt.Sprintf("%.1f", *payback)
}

// perKWp normalizes an energy total by system capacity.
func perKWp(kwh, capacityKWp float64) float64 {
	if capacityKWp <= 0 {
		return 0
	}
	return kwh / capacityKWp
}
