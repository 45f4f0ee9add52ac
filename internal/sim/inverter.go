package sim

import (
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/chrissnell/solarsim/internal/types"
)

// Inverter converts DC array power into AC using a piecewise-linear
// efficiency curve sampled over DC input power. Below the first curve point
// the inverter has not reached its power-on threshold and produces nothing;
// output above the AC nameplate is clipped.
type Inverter struct {
	spec   types.InverterSpec
	curve  interp.PiecewiseLinear
	minDCW float64
	maxDCW float64
}

// NewInverter validates the spec and fits the efficiency curve.
func NewInverter(spec types.InverterSpec) (*Inverter, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	xs := make([]float64, len(spec.Efficiency))
	ys := make([]float64, len(spec.Efficiency))
	for i, p := range spec.Efficiency {
		xs[i] = p.DCW
		ys[i] = p.Eta
	}

	inv := &Inverter{
		spec:   spec,
		minDCW: xs[0],
		maxDCW: xs[len(xs)-1],
	}
	if err := inv.curve.Fit(xs, ys); err != nil {
		return nil, types.NewValidationError("inverter.efficiency", "cannot fit efficiency curve: %v", err)
	}
	return inv, nil
}

// Spec returns the inverter parameters the converter was built from.
func (inv *Inverter) Spec() types.InverterSpec {
	return inv.spec
}

// PowerOnThresholdW is the DC power below which the inverter stays off.
func (inv *Inverter) PowerOnThresholdW() float64 {
	return inv.minDCW
}

// Convert returns the AC output for a DC input along with the conversion loss
// and the portion clipped at the AC nameplate, all in W. DC input below the
// power-on threshold is lost entirely.
func (inv *Inverter) Convert(dcW float64) (acW, conversionLossW, clippingLossW float64) {
	if dcW <= 0 {
		return 0, 0, 0
	}
	if dcW < inv.minDCW {
		return 0, dcW, 0
	}

	eta := inv.curve.Predict(math.Min(dcW, inv.maxDCW))
	ac := dcW * eta
	loss := dcW - ac

	if ac > inv.spec.PowerACRatedW {
		clipped := ac - inv.spec.PowerACRatedW
		return inv.spec.PowerACRatedW, loss, clipped
	}
	return ac, loss, 0
}
