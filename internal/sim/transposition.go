// Package sim implements the hourly photovoltaic simulation chain: plane-of-array
// transposition, incidence-angle modification, cell temperature, DC power,
// inverter conversion, and the aggregation of hourly output into monthly and
// annual figures.
package sim

import (
	"math"

	"github.com/chrissnell/solarsim/internal/types"
	"github.com/chrissnell/solarsim/pkg/solar"
)

// groundAlbedo is the reflectance of the ground in front of the array.
// 0.2 corresponds to grass or weathered concrete.
const groundAlbedo = 0.2

// POAIrradiance holds the irradiance components arriving in the plane of the
// array, all in W/m².
type POAIrradiance struct {
	Beam            float64 `json:"beam"`
	SkyDiffuse      float64 `json:"sky_diffuse"`
	GroundReflected float64 `json:"ground_reflected"`
	Global          float64 `json:"global"`
	CosAOI          float64 `json:"cos_aoi"`
}

// CosAOI returns the cosine of the angle between the sun vector and the array
// normal. Negative values mean the sun is behind the module plane.
func CosAOI(zenithDeg, sunAzimuthDeg, tiltDeg, panelAzimuthDeg float64) float64 {
	zen := zenithDeg * math.Pi / 180
	tilt := tiltDeg * math.Pi / 180
	azDiff := (sunAzimuthDeg - panelAzimuthDeg) * math.Pi / 180

	return math.Cos(zen)*math.Cos(tilt) + math.Sin(zen)*math.Sin(tilt)*math.Cos(azDiff)
}

// Transpose projects horizontal irradiance components onto a tilted array
// plane using the isotropic sky model. Beam is taken from DNI through the
// incidence angle, sky diffuse through the sky view factor (1+cosβ)/2, and
// ground-reflected from GHI through the albedo and the ground view factor.
// Hours with the sun at or below the horizon contribute nothing.
func Transpose(rec types.WeatherRecord, pos solar.Position, tiltDeg, panelAzimuthDeg float64) POAIrradiance {
	if !pos.Up() {
		return POAIrradiance{}
	}

	cosAOI := CosAOI(pos.ZenithDeg, pos.AzimuthDeg, tiltDeg, panelAzimuthDeg)

	tilt := tiltDeg * math.Pi / 180
	skyView := (1 + math.Cos(tilt)) / 2
	groundView := (1 - math.Cos(tilt)) / 2

	poa := POAIrradiance{
		Beam:            rec.DNI * math.Max(cosAOI, 0),
		SkyDiffuse:      rec.DHI * skyView,
		GroundReflected: rec.GHI * groundAlbedo * groundView,
		CosAOI:          cosAOI,
	}
	poa.Global = poa.Beam + poa.SkyDiffuse + poa.GroundReflected
	return poa
}
