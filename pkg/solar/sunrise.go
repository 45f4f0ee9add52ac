package solar

import (
	"math"
	"time"
)

// SunriseSunset returns sunrise and sunset in UTC for the calendar day of
// date at the given coordinates. ok is false during polar day or polar
// night, when the returned times are meaningless.
func SunriseSunset(date time.Time, latitude, longitude float64) (sunrise, sunset time.Time, ok bool) {
	noon := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC)
	pos := SunPosition(noon, latitude, longitude)

	// Hour angle at the horizon: cos H = -tan(lat) tan(decl)
	cosH := -math.Tan(degToRad(latitude)) * math.Tan(degToRad(pos.DeclinationDeg))
	if cosH < -1 || cosH > 1 {
		return time.Time{}, time.Time{}, false
	}
	haMin := radToDeg(math.Acos(cosH)) * 4 // 4 minutes per degree

	// Solar noon in UTC minutes, shifted by longitude and the equation of time
	noonMin := 720.0 - longitude*4.0 - pos.EquationOfTimeMin

	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	sunrise = midnight.Add(time.Duration((noonMin - haMin) * float64(time.Minute)))
	sunset = midnight.Add(time.Duration((noonMin + haMin) * float64(time.Minute)))
	return sunrise, sunset, true
}
