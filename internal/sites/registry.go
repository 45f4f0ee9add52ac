// Package sites holds the built-in registry of German simulation sites.
package sites

import (
	"math"
	"strings"

	"github.com/chrissnell/solarsim/internal/types"
)

// DefaultSiteName is the site selected when a request names none.
const DefaultSiteName = "Heidelberg"

// Site is one registry entry.
type Site struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

var registry = []Site{
	{Name: "Berlin", Latitude: 52.5200, Longitude: 13.4050},
	{Name: "Bonn", Latitude: 50.7374, Longitude: 7.0982},
	{Name: "Bremen", Latitude: 53.0793, Longitude: 8.8017},
	{Name: "Cologne", Latitude: 50.9375, Longitude: 6.9603},
	{Name: "Dresden", Latitude: 51.0504, Longitude: 13.7373},
	{Name: "Düsseldorf", Latitude: 51.2277, Longitude: 6.7735},
	{Name: "Frankfurt", Latitude: 50.1109, Longitude: 8.6821},
	{Name: "Freiburg", Latitude: 47.9990, Longitude: 7.8421},
	{Name: "Hamburg", Latitude: 53.5511, Longitude: 9.9937},
	{Name: "Hannover", Latitude: 52.3759, Longitude: 9.7320},
	{Name: "Heidelberg", Latitude: 49.4077, Longitude: 8.6908},
	{Name: "Kiel", Latitude: 54.3233, Longitude: 10.1228},
	{Name: "Leipzig", Latitude: 51.3397, Longitude: 12.3731},
	{Name: "Munich", Latitude: 48.1351, Longitude: 11.5820},
	{Name: "Nuremberg", Latitude: 49.4521, Longitude: 11.0767},
	{Name: "Potsdam", Latitude: 52.3906, Longitude: 13.0645},
	{Name: "Stuttgart", Latitude: 48.7758, Longitude: 9.1829},
}

// All returns the registry in listing order.
func All() []Site {
	out := make([]Site, len(registry))
	copy(out, registry)
	return out
}

// Names returns the site names in listing order.
func Names() []string {
	names := make([]string, len(registry))
	for i, s := range registry {
		names[i] = s.Name
	}
	return names
}

// Default returns the default site.
func Default() Site {
	s, _ := ByName(DefaultSiteName)
	return s
}

// ByName looks up a site, ignoring case. Unknown names are validation errors
// listing the available choices.
func ByName(name string) (Site, error) {
	for _, s := range registry {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return Site{}, types.NewValidationError("site",
		"unknown site %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Nearest returns the registry site closest to the given coordinates.
func Nearest(latitude, longitude float64) Site {
	best := registry[0]
	bestKm := distanceKm(latitude, longitude, best.Latitude, best.Longitude)
	for _, s := range registry[1:] {
		if d := distanceKm(latitude, longitude, s.Latitude, s.Longitude); d < bestKm {
			best, bestKm = s, d
		}
	}
	return best
}

// distanceKm is the haversine great-circle distance.
func distanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0

	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
