package sim

import (
	"math"

	"github.com/chrissnell/solarsim/internal/types"
)

// sapmRefIrradiance is the reference irradiance for the conduction term of
// the Sandia module temperature model, W/m².
const sapmRefIrradiance = 1000.0

// SAPMCoefficients parameterize the Sandia module temperature model for one
// mounting configuration.
type SAPMCoefficients struct {
	A      float64 // irradiance heating coefficient at zero wind
	B      float64 // wind cooling coefficient, s/m
	DeltaT float64 // cell rise over module back surface at reference irradiance, °C
}

var sapmCoefficients = map[types.MountingClass]SAPMCoefficients{
	types.MountingOpenRackGlassGlass:        {A: -3.47, B: -0.0594, DeltaT: 3},
	types.MountingCloseMountGlassGlass:      {A: -2.98, B: -0.0471, DeltaT: 1},
	types.MountingOpenRackGlassPolymer:      {A: -3.56, B: -0.0750, DeltaT: 3},
	types.MountingInsulatedBackGlassPolymer: {A: -2.81, B: -0.0455, DeltaT: 0},
}

// MountingCoefficients returns the thermal coefficients for a mounting class.
// The empty string selects the open-rack glass/polymer default.
func MountingCoefficients(m types.MountingClass) (SAPMCoefficients, bool) {
	if m == "" {
		m = types.MountingOpenRackGlassPolymer
	}
	c, ok := sapmCoefficients[m]
	return c, ok
}

// CellTemperature evaluates the Sandia module temperature model. The module
// back surface runs above ambient by POA·exp(a + b·wind), and the cell runs
// above the back surface by ΔT scaled with irradiance. Temperatures in °C,
// irradiance in W/m², wind speed in m/s.
func CellTemperature(poaGlobal, tempAir, windSpeed float64, coeff SAPMCoefficients) (moduleTemp, cellTemp float64) {
	moduleTemp = tempAir + poaGlobal*math.Exp(coeff.A+coeff.B*windSpeed)
	cellTemp = moduleTemp + poaGlobal/sapmRefIrradiance*coeff.DeltaT
	return moduleTemp, cellTemp
}
