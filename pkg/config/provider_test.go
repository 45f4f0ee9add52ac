package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const testYAML = `
simulation:
  site:
    city: Heidelberg
    tilt: 35
    azimuth: 180
    mounting: open_rack_glass_polymer
  hardware:
    module: Hanwha_Q_CELLS_Q_PEAK_DUO_G5_325
    inverter: SMA_America__SB3000TL_US_22__240V_
  params:
    module-count: 12
    system-health: 0.95
    degradation-rate: 0.005
    install-cost-per-kwp: 1500
    electricity-price: 0.30
    grid-co2-g-per-kwh: 434
    horizon-years: 25
  weather:
    csv-path: /var/lib/solarsim/heidelberg.csv
    cache-dir: /var/cache/solarsim
server:
  port: 8080
  listen-addr: 127.0.0.1
archive:
  sqlite: /var/lib/solarsim/runs.db
`

func writeTestConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestYAMLProviderLoadConfig(t *testing.T) {
	provider := NewYAMLProvider(writeTestConfig(t, testYAML))
	defer provider.Close()

	cfg, err := provider.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	site := cfg.Simulation.Site
	if site == nil || site.City != "Heidelberg" || site.TiltDeg != 35 || site.AzimuthDeg != 180 {
		t.Errorf("site section parsed wrong: %+v", site)
	}
	if hw := cfg.Simulation.Hardware; hw == nil || hw.Module != "Hanwha_Q_CELLS_Q_PEAK_DUO_G5_325" {
		t.Errorf("hardware section parsed wrong: %+v", hw)
	}
	if params := cfg.Simulation.Params; params == nil || params.ModuleCount != 12 || params.ElectricityPrice != 0.30 {
		t.Errorf("params section parsed wrong: %+v", params)
	}
	if weather := cfg.Simulation.Weather; weather == nil || weather.CSVPath != "/var/lib/solarsim/heidelberg.csv" {
		t.Errorf("weather section parsed wrong: %+v", weather)
	}
	if cfg.Server == nil || cfg.Server.Port != 8080 || cfg.Server.ListenAddr != "127.0.0.1" {
		t.Errorf("server section parsed wrong: %+v", cfg.Server)
	}
	if cfg.Archive == nil || cfg.Archive.SQLite != "/var/lib/solarsim/runs.db" {
		t.Errorf("archive section parsed wrong: %+v", cfg.Archive)
	}

	if !provider.IsReadOnly() {
		t.Error("YAML provider should be read-only")
	}
}

func TestYAMLProviderOmittedSections(t *testing.T) {
	provider := NewYAMLProvider(writeTestConfig(t, "simulation:\n  site:\n    city: Kiel\n"))

	sim, err := provider.GetSimulation()
	if err != nil {
		t.Fatalf("GetSimulation: %v", err)
	}
	if sim.Site == nil || sim.Site.City != "Kiel" {
		t.Errorf("site = %+v", sim.Site)
	}
	if sim.Hardware != nil || sim.Params != nil || sim.Weather != nil {
		t.Errorf("omitted sections should be nil: %+v", sim)
	}

	server, err := provider.GetServer()
	if err != nil || server != nil {
		t.Errorf("GetServer = %+v, %v, want nil section", server, err)
	}
	archive, err := provider.GetArchive()
	if err != nil || archive != nil {
		t.Errorf("GetArchive = %+v, %v, want nil section", archive, err)
	}
}

func TestYAMLProviderMissingFile(t *testing.T) {
	provider := NewYAMLProvider(filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := provider.LoadConfig(); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestSQLiteProviderRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "config.db")
	provider, err := NewSQLiteProvider(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteProvider: %v", err)
	}
	defer provider.Close()

	want := &ConfigData{
		Simulation: SimulationData{
			Site: &SiteData{
				City:       "Munich",
				Latitude:   48.1351,
				Longitude:  11.5820,
				AltitudeM:  520,
				TiltDeg:    30,
				AzimuthDeg: 180,
				Mounting:   "close_mount_glass_glass",
			},
			Hardware: &HardwareData{
				Module:   "SunPower_SPR_X21_345",
				Inverter: "SMA_America__SB5000TL_US_22__240V_",
			},
			Params: &ParamsData{
				ModuleCount:        20,
				SystemHealth:       0.9,
				DegradationRate:    0.005,
				InstallCostPerKWp:  1400,
				ElectricityPrice:   0.32,
				GridCO2GramsPerKWh: 434,
				HorizonYears:       30,
			},
			Weather: &WeatherData{
				CSVPath:   "/data/munich.csv",
				CacheDir:  "/data/cache",
				Synthetic: false,
			},
		},
		Server:  &ServerData{Port: 9090, ListenAddr: "0.0.0.0"},
		Archive: &ArchiveData{Postgres: "host=db user=solarsim dbname=runs"},
	}

	if err := provider.SaveConfig(want); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := provider.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}

	if provider.IsReadOnly() {
		t.Error("SQLite provider should be writable")
	}
}

func TestSQLiteProviderEmptyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")
	provider, err := NewSQLiteProvider(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteProvider: %v", err)
	}
	defer provider.Close()

	if err := provider.EnsureSchema(); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	cfg, err := provider.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Simulation.Site != nil || cfg.Server != nil || cfg.Archive != nil {
		t.Errorf("empty database should yield nil sections: %+v", cfg)
	}
}

func TestSQLiteProviderReplacesOnSave(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "config.db")
	provider, err := NewSQLiteProvider(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteProvider: %v", err)
	}
	defer provider.Close()

	first := &ConfigData{Simulation: SimulationData{Site: &SiteData{City: "Berlin", TiltDeg: 20}}}
	second := &ConfigData{Simulation: SimulationData{Site: &SiteData{City: "Bremen", TiltDeg: 40}}}

	if err := provider.SaveConfig(first); err != nil {
		t.Fatal(err)
	}
	if err := provider.SaveConfig(second); err != nil {
		t.Fatal(err)
	}

	sim, err := provider.GetSimulation()
	if err != nil {
		t.Fatal(err)
	}
	if sim.Site == nil || sim.Site.City != "Bremen" || sim.Site.TiltDeg != 40 {
		t.Errorf("save did not replace previous config: %+v", sim.Site)
	}
}
