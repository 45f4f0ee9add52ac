package restserver

import (
	"github.com/chrissnell/solarsim/internal/types"
)

// SimulateRequest selects site, hardware, and parameters for one run. Every
// section is optional; omitted sections fall back to the server's configured
// defaults, so an empty body simulates the default system.
type SimulateRequest struct {
	Site     *SiteRequest        `json:"site,omitempty"`
	Module   string              `json:"module,omitempty"`
	Inverter string              `json:"inverter,omitempty"`
	Params   *types.SystemParams `json:"params,omitempty"`
	Weather  *WeatherRequest     `json:"weather,omitempty"`

	// IncludeHourly asks for the full hourly AC series in the response.
	// Monthly, best-day, loss, and economic figures are always included.
	IncludeHourly bool `json:"include_hourly,omitempty"`
}

// SiteRequest locates and orients the array. City selects a registry site;
// explicit coordinates override it field by field.
type SiteRequest struct {
	City       string   `json:"city,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	TiltDeg    *float64 `json:"tilt,omitempty"`
	AzimuthDeg *float64 `json:"azimuth,omitempty"`
	Mounting   string   `json:"mounting,omitempty"`
}

// WeatherRequest overrides the server's weather source for one run. Only
// the synthetic generator can be selected remotely; file sources always
// come from server configuration.
type WeatherRequest struct {
	Synthetic bool `json:"synthetic,omitempty"`
	Year      int  `json:"year,omitempty"`
}

// StatusResponse reports server identity and archive health.
type StatusResponse struct {
	Version       string `json:"version"`
	OS            string `json:"os"`
	Architecture  string `json:"architecture"`
	Hostname      string `json:"hostname"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	DefaultSite   string `json:"default_site,omitempty"`
	ArchivedRuns  int64  `json:"archived_runs"`
}
