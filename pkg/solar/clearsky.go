package solar

import (
	"math"
	"time"
)

// solarConstant is the average solar energy flux at the top of the
// atmosphere, W/m².
const solarConstant = 1361.0

// Irradiance is one clear-sky sample split into its standard components,
// all W/m².
type Irradiance struct {
	GHI float64 // global horizontal
	DNI float64 // direct normal
	DHI float64 // diffuse horizontal
}

// ClearSky estimates clear-sky irradiance for a UTC instant with an
// Ineichen-Perez-style parameterization: extraterrestrial flux corrected for
// Earth-Sun distance, attenuated through a Kasten-Young air mass with a
// fixed Linke turbidity of 2, plus a seasonal diffuse fraction. Zero when
// the sun is below the horizon.
func ClearSky(t time.Time, latitude, longitude, altitudeM float64) Irradiance {
	pos := SunPosition(t, latitude, longitude)
	if !pos.Up() || pos.CosZenith <= 0 {
		return Irradiance{}
	}

	n := float64(t.UTC().YearDay())

	// Extraterrestrial radiation, adjusted for orbital eccentricity
	g0 := solarConstant * (1 + 0.033*math.Cos(degToRad(360.0*(n-3)/365.0)))

	// Kasten-Young relative air mass
	am := 1.0 / (pos.CosZenith + 0.50572*math.Pow(96.07995-pos.ZenithDeg, -1.6364))

	const (
		turbidity  = 2.0   // Linke turbidity, typical clear sky
		dniScale   = 0.7   // beam normalization
		extinction = 0.027 // atmospheric extinction coefficient
	)
	dni := g0 * dniScale * math.Exp(-extinction*am*turbidity*math.Exp(-altitudeM/8000.0))

	// Seasonal diffuse fraction, scaled by sun height so the diffuse
	// component vanishes at the horizon
	fh := 0.1 + 0.05*math.Sin(math.Pi*(n-100)/365.0)
	dhi := fh * g0 * pos.CosZenith

	return Irradiance{
		GHI: dni*pos.CosZenith + dhi,
		DNI: dni,
		DHI: dhi,
	}
}
