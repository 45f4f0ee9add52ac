package config

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetSimulation() (*SimulationData, error)
	GetServer() (*ServerData, error)
	GetArchive() (*ArchiveData, error)

	// Configuration management (for SQLite-specific operations)
	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure. Pointer
// sections are optional; nil means the consumer applies its defaults.
type ConfigData struct {
	Simulation SimulationData `json:"simulation"`
	Server     *ServerData    `json:"server,omitempty"`
	Archive    *ArchiveData   `json:"archive,omitempty"`
}

// SimulationData bundles the sections a simulation run is assembled from.
type SimulationData struct {
	Site     *SiteData     `json:"site,omitempty"`
	Hardware *HardwareData `json:"hardware,omitempty"`
	Params   *ParamsData   `json:"params,omitempty"`
	Weather  *WeatherData  `json:"weather,omitempty"`
}

// SiteData holds the array location and orientation. City, when set, selects
// a registry site and overrides the coordinates.
type SiteData struct {
	City       string  `json:"city,omitempty"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
	AltitudeM  float64 `json:"altitude_m,omitempty"`
	TiltDeg    float64 `json:"tilt,omitempty"`
	AzimuthDeg float64 `json:"azimuth,omitempty"`
	Mounting   string  `json:"mounting,omitempty"`
}

// HardwareData selects catalog hardware by name. Empty names select the
// catalog defaults; CatalogFile extends the built-in catalog.
type HardwareData struct {
	Module      string `json:"module,omitempty"`
	Inverter    string `json:"inverter,omitempty"`
	CatalogFile string `json:"catalog_file,omitempty"`
}

// ParamsData holds the scaling, loss, and financial parameters of a run.
type ParamsData struct {
	ModuleCount        int     `json:"module_count,omitempty"`
	SystemHealth       float64 `json:"system_health,omitempty"`
	DegradationRate    float64 `json:"degradation_rate,omitempty"`
	InstallCostPerKWp  float64 `json:"install_cost_per_kwp,omitempty"`
	ElectricityPrice   float64 `json:"electricity_price,omitempty"`
	GridCO2GramsPerKWh float64 `json:"grid_co2_g_per_kwh,omitempty"`
	HorizonYears       int     `json:"horizon_years,omitempty"`
}

// WeatherData selects the weather source: a TMY CSV file, or a synthetic
// clear-sky year when Synthetic is set.
type WeatherData struct {
	CSVPath   string `json:"csv_path,omitempty"`
	CacheDir  string `json:"cache_dir,omitempty"`
	Synthetic bool   `json:"synthetic,omitempty"`
}

// ServerData holds the REST server listener configuration.
type ServerData struct {
	Cert       string `json:"cert,omitempty"`
	Key        string `json:"key,omitempty"`
	Port       int    `json:"port,omitempty"`
	ListenAddr string `json:"listen_addr,omitempty"`
}

// ArchiveData selects the run archive backend. SQLite names a database file;
// Postgres, when set, takes precedence and names a connection string.
type ArchiveData struct {
	SQLite   string `json:"sqlite,omitempty"`
	Postgres string `json:"postgres,omitempty"`
}
