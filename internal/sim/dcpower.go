package sim

import (
	"math"

	"github.com/chrissnell/solarsim/internal/types"
)

// IAM returns the ASHRAE incidence angle modifier for the beam component:
// 1 - b0·(1/cosAOI - 1), clamped to [0, 1]. Incidence at or past 90° returns
// zero.
func IAM(cosAOI, b0 float64) float64 {
	if cosAOI <= 0 {
		return 0
	}
	iam := 1 - b0*(1/cosAOI-1)
	if iam < 0 {
		return 0
	}
	if iam > 1 {
		return 1
	}
	return iam
}

// EffectiveIrradiance derates the beam component by the incidence angle
// modifier and passes the diffuse components through unmodified.
func EffectiveIrradiance(poa POAIrradiance, b0 float64) float64 {
	return poa.Beam*IAM(poa.CosAOI, b0) + poa.SkyDiffuse + poa.GroundReflected
}

// DCPower converts effective irradiance and cell temperature into DC power
// for a single module: rated power scaled linearly with irradiance and
// adjusted by the power temperature coefficient. Output never goes negative,
// and zero irradiance yields zero directly without touching the temperature
// term.
func DCPower(effectiveIrradiance, cellTemp float64, module types.ModuleSpec) float64 {
	if effectiveIrradiance <= 0 {
		return 0
	}
	p := module.PowerRatedW * (effectiveIrradiance / module.RefIrradiance) *
		(1 + module.GammaPmp*(cellTemp-module.RefTemp))
	return math.Max(p, 0)
}
