// Package solar computes solar position, day length, and clear-sky
// irradiance. Position uses the NOAA low-precision algorithm (good to about
// 0.01° for years 1900–2100), which is plenty for irradiance work.
package solar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// Position describes where the sun is for an observer at a given instant.
// Angles are degrees. ElevationDeg includes the standard 0.5667° refraction
// correction at the horizon; CosZenith is geometric.
type Position struct {
	DeclinationDeg    float64
	EquationOfTimeMin float64
	HourAngleDeg      float64
	ZenithDeg         float64
	ElevationDeg      float64
	AzimuthDeg        float64 // from north, clockwise
	CosZenith         float64
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }
func fixAngle(a float64) float64   { return a - 360.0*math.Floor(a/360.0) }

// SunPosition computes the solar position for a UTC instant at the given
// coordinates. Longitude is positive east.
func SunPosition(t time.Time, latitude, longitude float64) Position {
	t = t.UTC()
	jd := julian.TimeToJD(t)
	T := (jd - 2451545.0) / 36525.0

	// Solar coordinates
	L0 := fixAngle(280.46646 + T*(36000.76983+T*0.0003032))
	M := fixAngle(357.52911 + T*(35999.05029-T*0.0001537))
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)
	C := math.Sin(degToRad(M))*(1.914602-T*(0.004817+T*0.000014)) +
		math.Sin(degToRad(2*M))*(0.019993-T*0.000101) +
		math.Sin(degToRad(3*M))*0.000289
	sunLong := L0 + C
	omega := 125.04 - 1934.136*T
	lambda := sunLong - 0.00569 - 0.00478*math.Sin(degToRad(omega))
	eps0 := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60
	declRad := math.Asin(math.Sin(degToRad(eps0)) * math.Sin(degToRad(lambda)))

	// Equation of time, minutes
	y := math.Tan(degToRad(eps0)/2) * math.Tan(degToRad(eps0)/2)
	eqTimeMin := radToDeg(y*math.Sin(degToRad(2*L0))-
		2*e*math.Sin(degToRad(M))+
		4*e*y*math.Sin(degToRad(M))*math.Cos(degToRad(2*L0))-
		0.5*y*y*math.Sin(degToRad(4*L0))-
		1.25*e*e*math.Sin(degToRad(2*M))) * 4

	// True solar time and hour angle
	utcMin := float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60.0
	tst := utcMin + 4*longitude + eqTimeMin
	ha := tst/4 - 180
	haRad := degToRad(ha)

	latRad := degToRad(latitude)
	cosZen := math.Sin(latRad)*math.Sin(declRad) + math.Cos(latRad)*math.Cos(declRad)*math.Cos(haRad)
	if cosZen > 1 {
		cosZen = 1
	} else if cosZen < -1 {
		cosZen = -1
	}
	zenRad := math.Acos(cosZen)
	zenDeg := radToDeg(zenRad)
	elDeg := 90 - zenDeg + 0.5667

	// Azimuth from north, clockwise. The acos argument can drift just past
	// ±1 near the zenith; clamp before inverting.
	azDeg := 0.0
	if azDen := math.Cos(latRad) * math.Sin(zenRad); azDen != 0 {
		azArg := (math.Sin(declRad) - math.Sin(latRad)*cosZen) / azDen
		if azArg > 1 {
			azArg = 1
		} else if azArg < -1 {
			azArg = -1
		}
		azDeg = radToDeg(math.Acos(azArg))
		if ha > 0 {
			azDeg = 360 - azDeg
		}
	}

	return Position{
		DeclinationDeg:    radToDeg(declRad),
		EquationOfTimeMin: eqTimeMin,
		HourAngleDeg:      ha,
		ZenithDeg:         zenDeg,
		ElevationDeg:      elDeg,
		AzimuthDeg:        azDeg,
		CosZenith:         cosZen,
	}
}

// Up reports whether the sun is above the horizon.
func (p Position) Up() bool { return p.ElevationDeg > 0 }
