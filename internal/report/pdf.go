package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/chrissnell/solarsim/internal/types"
)

// PDF renders a printable report: run header, headline results, and the
// loss and monthly tables. Core fonts only, so all text stays ASCII.
func PDF(result *types.SimulationResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Solar Simulation Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Site: %s (%.4f, %.4f)", result.Site.Name, result.Site.Latitude, result.Site.Longitude))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Orientation: tilt %.1f deg, azimuth %.1f deg", result.Site.TiltDeg, result.Site.AzimuthDeg))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Module: %s x %d (%.3f kWp)", result.Module.Name, result.Params.ModuleCount, result.CapacityKWp))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Inverter: %s", result.Inverter.Name))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("System Health: %.0f%%, Degradation: %.2f%%/year", result.Params.SystemHealth*100, result.Params.DegradationRate*100))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", result.RunAt.Format(time.RFC3339)))
	pdf.Ln(8)

	payback := "not reached"
	if result.PaybackYears != nil {
		payback = fmt.Sprintf("%.1f years", *result.PaybackYears)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Specific Yield: %.1f kWh/kWp", result.SpecificYield))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Annual AC Energy: %.1f kWh", result.Losses.ACEnergyKWh))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Annual Savings: EUR %.2f", result.AnnualSavings))
	pdf.Ln(5)
	pdf.Cell(0, 6, "Payback Period: "+payback)
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("CO2 Saved over %d years: %.0f kg", result.Params.HorizonYears, result.TotalCO2SavedKg))
	pdf.Ln(8)

	// Loss waterfall
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 6, "Loss Stage", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 6, "Energy (kWh)", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
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
	for _, l := range losses {
		pdf.CellFormat(90, 6, l.stage, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.1f", l.kwh), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	// Monthly production
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Month", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 6, "Energy (kWh)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "kWh per kWp", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, m := range result.Monthly {
		pdf.CellFormat(40, 6, m.Month.String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.1f", m.EnergyKWh), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.2f", perKWp(m.EnergyKWh, result.CapacityKWp)), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
