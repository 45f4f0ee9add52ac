package sim

import (
	"math"

	"github.com/chrissnell/solarsim/internal/types"
)

// DerateFactor is one named multiplicative loss applied to DC power, such as
// the aggregate system-health derate or a soiling estimate.
type DerateFactor struct {
	Name     string  `json:"name"`
	Fraction float64 `json:"fraction"` // fraction of power lost, 0..1
}

// ApplyDerates scales DC power by every named loss fraction, then by
// compounded degradation for runs representing a later year of system life.
// Year index 0 is the as-built year.
func ApplyDerates(dcW float64, derates []DerateFactor, degradationRate float64, yearIndex int) float64 {
	for _, d := range derates {
		dcW *= 1 - d.Fraction
	}
	if yearIndex > 0 {
		dcW *= math.Pow(1-degradationRate, float64(yearIndex))
	}
	return dcW
}

// lossLedger accumulates the hourly energy waterfall from plane-of-array
// input down to AC output, in Wh.
type lossLedger struct {
	poaWh        float64
	aoiWh        float64
	conversionWh float64
	thermalWh    float64
	systemWh     float64
	inverterWh   float64
	clippingWh   float64
	acWh         float64
}

// breakdown converts the ledger to kWh. POA minus every loss equals AC.
func (l *lossLedger) breakdown() types.LossBreakdown {
	return types.LossBreakdown{
		POAEnergyKWh:      l.poaWh / 1000,
		AOILossKWh:        l.aoiWh / 1000,
		IrradianceLossKWh: l.conversionWh / 1000,
		ThermalLossKWh:    l.thermalWh / 1000,
		SystemLossKWh:     l.systemWh / 1000,
		InverterLossKWh:   l.inverterWh / 1000,
		ClippingLossKWh:   l.clippingWh / 1000,
		ACEnergyKWh:       l.acWh / 1000,
	}
}
