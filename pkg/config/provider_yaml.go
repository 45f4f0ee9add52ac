package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	// Load into temporary struct with YAML tags
	var yamlConfig struct {
		Simulation SimulationYAML `yaml:"simulation,omitempty"`
		Server     *ServerYAML    `yaml:"server,omitempty"`
		Archive    *ArchiveYAML   `yaml:"archive,omitempty"`
	}

	err = yaml.Unmarshal(cfgFile, &yamlConfig)
	if err != nil {
		return nil, err
	}

	// Convert to our internal format
	config := &ConfigData{}

	if yamlConfig.Simulation.Site != nil {
		config.Simulation.Site = &SiteData{
			City:       yamlConfig.Simulation.Site.City,
			Latitude:   yamlConfig.Simulation.Site.Latitude,
			Longitude:  yamlConfig.Simulation.Site.Longitude,
			AltitudeM:  yamlConfig.Simulation.Site.AltitudeM,
			TiltDeg:    yamlConfig.Simulation.Site.TiltDeg,
			AzimuthDeg: yamlConfig.Simulation.Site.AzimuthDeg,
			Mounting:   yamlConfig.Simulation.Site.Mounting,
		}
	}

	if yamlConfig.Simulation.Hardware != nil {
		config.Simulation.Hardware = &HardwareData{
			Module:      yamlConfig.Simulation.Hardware.Module,
			Inverter:    yamlConfig.Simulation.Hardware.Inverter,
			CatalogFile: yamlConfig.Simulation.Hardware.CatalogFile,
		}
	}

	if yamlConfig.Simulation.Params != nil {
		config.Simulation.Params = &ParamsData{
			ModuleCount:        yamlConfig.Simulation.Params.ModuleCount,
			SystemHealth:       yamlConfig.Simulation.Params.SystemHealth,
			DegradationRate:    yamlConfig.Simulation.Params.DegradationRate,
			InstallCostPerKWp:  yamlConfig.Simulation.Params.InstallCostPerKWp,
			ElectricityPrice:   yamlConfig.Simulation.Params.ElectricityPrice,
			GridCO2GramsPerKWh: yamlConfig.Simulation.Params.GridCO2GramsPerKWh,
			HorizonYears:       yamlConfig.Simulation.Params.HorizonYears,
		}
	}

	if yamlConfig.Simulation.Weather != nil {
		config.Simulation.Weather = &WeatherData{
			CSVPath:   yamlConfig.Simulation.Weather.CSVPath,
			CacheDir:  yamlConfig.Simulation.Weather.CacheDir,
			Synthetic: yamlConfig.Simulation.Weather.Synthetic,
		}
	}

	if yamlConfig.Server != nil {
		config.Server = &ServerData{
			Cert:       yamlConfig.Server.Cert,
			Key:        yamlConfig.Server.Key,
			Port:       yamlConfig.Server.Port,
			ListenAddr: yamlConfig.Server.ListenAddr,
		}
	}

	if yamlConfig.Archive != nil {
		config.Archive = &ArchiveData{
			SQLite:   yamlConfig.Archive.SQLite,
			Postgres: yamlConfig.Archive.Postgres,
		}
	}

	y.config = config
	return config, nil
}

// GetSimulation returns the simulation configuration sections
func (y *YAMLProvider) GetSimulation() (*SimulationData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return &y.config.Simulation, nil
}

// GetServer returns the REST server configuration
func (y *YAMLProvider) GetServer() (*ServerData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return y.config.Server, nil
}

// GetArchive returns the run archive configuration
func (y *YAMLProvider) GetArchive() (*ArchiveData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return y.config.Archive, nil
}

// IsReadOnly returns true since YAML files are read-only through this interface
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

// YAML-specific structs with proper YAML tags for parsing the file format
type SimulationYAML struct {
	Site     *SiteYAML     `yaml:"site,omitempty"`
	Hardware *HardwareYAML `yaml:"hardware,omitempty"`
	Params   *ParamsYAML   `yaml:"params,omitempty"`
	Weather  *WeatherYAML  `yaml:"weather,omitempty"`
}

type SiteYAML struct {
	City       string  `yaml:"city,omitempty"`
	Latitude   float64 `yaml:"latitude,omitempty"`
	Longitude  float64 `yaml:"longitude,omitempty"`
	AltitudeM  float64 `yaml:"altitude,omitempty"`
	TiltDeg    float64 `yaml:"tilt,omitempty"`
	AzimuthDeg float64 `yaml:"azimuth,omitempty"`
	Mounting   string  `yaml:"mounting,omitempty"`
}

type HardwareYAML struct {
	Module      string `yaml:"module,omitempty"`
	Inverter    string `yaml:"inverter,omitempty"`
	CatalogFile string `yaml:"catalog-file,omitempty"`
}

type ParamsYAML struct {
	ModuleCount        int     `yaml:"module-count,omitempty"`
	SystemHealth       float64 `yaml:"system-health,omitempty"`
	DegradationRate    float64 `yaml:"degradation-rate,omitempty"`
	InstallCostPerKWp  float64 `yaml:"install-cost-per-kwp,omitempty"`
	ElectricityPrice   float64 `yaml:"electricity-price,omitempty"`
	GridCO2GramsPerKWh float64 `yaml:"grid-co2-g-per-kwh,omitempty"`
	HorizonYears       int     `yaml:"horizon-years,omitempty"`
}

type WeatherYAML struct {
	CSVPath   string `yaml:"csv-path,omitempty"`
	CacheDir  string `yaml:"cache-dir,omitempty"`
	Synthetic bool   `yaml:"synthetic,omitempty"`
}

type ServerYAML struct {
	Cert       string `yaml:"cert,omitempty"`
	Key        string `yaml:"key,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	ListenAddr string `yaml:"listen-addr,omitempty"`
}

type ArchiveYAML struct {
	SQLite   string `yaml:"sqlite,omitempty"`
	Postgres string `yaml:"postgres,omitempty"`
}
