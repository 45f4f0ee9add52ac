package config

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver. The GORM archive dialector
	// (github.com/glebarez/sqlite) links this same package; importing
	// modernc.org/sqlite here instead would register a second "sqlite"
	// driver and panic at init in any binary that links both.
	_ "github.com/glebarez/go-sqlite"
)

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// schema is the configuration database layout. One named config owns at most
// one row per section table.
const schema = `
CREATE TABLE IF NOT EXISTS configs (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS site_configs (
	config_id  INTEGER NOT NULL UNIQUE REFERENCES configs(id) ON DELETE CASCADE,
	city       TEXT,
	latitude   REAL,
	longitude  REAL,
	altitude_m REAL,
	tilt       REAL,
	azimuth    REAL,
	mounting   TEXT
);

CREATE TABLE IF NOT EXISTS hardware_configs (
	config_id    INTEGER NOT NULL UNIQUE REFERENCES configs(id) ON DELETE CASCADE,
	module       TEXT,
	inverter     TEXT,
	catalog_file TEXT
);

CREATE TABLE IF NOT EXISTS param_configs (
	config_id            INTEGER NOT NULL UNIQUE REFERENCES configs(id) ON DELETE CASCADE,
	module_count         INTEGER,
	system_health        REAL,
	degradation_rate     REAL,
	install_cost_per_kwp REAL,
	electricity_price    REAL,
	grid_co2_g_per_kwh   REAL,
	horizon_years        INTEGER
);

CREATE TABLE IF NOT EXISTS weather_configs (
	config_id INTEGER NOT NULL UNIQUE REFERENCES configs(id) ON DELETE CASCADE,
	csv_path  TEXT,
	cache_dir TEXT,
	synthetic INTEGER
);

CREATE TABLE IF NOT EXISTS server_configs (
	config_id   INTEGER NOT NULL UNIQUE REFERENCES configs(id) ON DELETE CASCADE,
	tls_cert    TEXT,
	tls_key     TEXT,
	port        INTEGER,
	listen_addr TEXT
);

CREATE TABLE IF NOT EXISTS archive_configs (
	config_id    INTEGER NOT NULL UNIQUE REFERENCES configs(id) ON DELETE CASCADE,
	sqlite_path  TEXT,
	postgres_dsn TEXT
);
`

// EnsureSchema creates the configuration tables if they do not exist
func (s *SQLiteProvider) EnsureSchema() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create configuration schema: %w", err)
	}
	return nil
}

// LoadConfig loads the complete configuration from SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	simulation, err := s.GetSimulation()
	if err != nil {
		return nil, fmt.Errorf("failed to load simulation config: %w", err)
	}
	config.Simulation = *simulation

	server, err := s.GetServer()
	if err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}
	config.Server = server

	archive, err := s.GetArchive()
	if err != nil {
		return nil, fmt.Errorf("failed to load archive config: %w", err)
	}
	config.Archive = archive

	return config, nil
}

// GetSimulation returns the simulation configuration sections from the database
func (s *SQLiteProvider) GetSimulation() (*SimulationData, error) {
	simulation := &SimulationData{}

	site, err := s.getSite()
	if err != nil {
		return nil, err
	}
	simulation.Site = site

	hardware, err := s.getHardware()
	if err != nil {
		return nil, err
	}
	simulation.Hardware = hardware

	params, err := s.getParams()
	if err != nil {
		return nil, err
	}
	simulation.Params = params

	weather, err := s.getWeather()
	if err != nil {
		return nil, err
	}
	simulation.Weather = weather

	return simulation, nil
}

func (s *SQLiteProvider) getSite() (*SiteData, error) {
	query := `
		SELECT city, latitude, longitude, altitude_m, tilt, azimuth, mounting
		FROM site_configs
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
	`

	var city, mounting sql.NullString
	var latitude, longitude, altitude, tilt, azimuth sql.NullFloat64

	err := s.db.QueryRow(query).Scan(&city, &latitude, &longitude, &altitude, &tilt, &azimuth, &mounting)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query site config: %w", err)
	}

	return &SiteData{
		City:       city.String,
		Latitude:   latitude.Float64,
		Longitude:  longitude.Float64,
		AltitudeM:  altitude.Float64,
		TiltDeg:    tilt.Float64,
		AzimuthDeg: azimuth.Float64,
		Mounting:   mounting.String,
	}, nil
}

func (s *SQLiteProvider) getHardware() (*HardwareData, error) {
	query := `
		SELECT module, inverter, catalog_file
		FROM hardware_configs
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
	`

	var module, inverter, catalogFile sql.NullString

	err := s.db.QueryRow(query).Scan(&module, &inverter, &catalogFile)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query hardware config: %w", err)
	}

	return &HardwareData{
		Module:      module.String,
		Inverter:    inverter.String,
		CatalogFile: catalogFile.String,
	}, nil
}

func (s *SQLiteProvider) getParams() (*ParamsData, error) {
	query := `
		SELECT module_count, system_health, degradation_rate, install_cost_per_kwp,
		       electricity_price, grid_co2_g_per_kwh, horizon_years
		FROM param_configs
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
	`

	var moduleCount, horizonYears sql.NullInt64
	var health, degradation, cost, price, co2 sql.NullFloat64

	err := s.db.QueryRow(query).Scan(&moduleCount, &health, &degradation, &cost, &price, &co2, &horizonYears)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query param config: %w", err)
	}

	return &ParamsData{
		ModuleCount:        int(moduleCount.Int64),
		SystemHealth:       health.Float64,
		DegradationRate:    degradation.Float64,
		InstallCostPerKWp:  cost.Float64,
		ElectricityPrice:   price.Float64,
		GridCO2GramsPerKWh: co2.Float64,
		HorizonYears:       int(horizonYears.Int64),
	}, nil
}

func (s *SQLiteProvider) getWeather() (*WeatherData, error) {
	query := `
		SELECT csv_path, cache_dir, synthetic
		FROM weather_configs
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
	`

	var csvPath, cacheDir sql.NullString
	var synthetic sql.NullBool

	err := s.db.QueryRow(query).Scan(&csvPath, &cacheDir, &synthetic)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query weather config: %w", err)
	}

	return &WeatherData{
		CSVPath:   csvPath.String,
		CacheDir:  cacheDir.String,
		Synthetic: synthetic.Bool,
	}, nil
}

// GetServer returns the REST server configuration from the database
func (s *SQLiteProvider) GetServer() (*ServerData, error) {
	query := `
		SELECT tls_cert, tls_key, port, listen_addr
		FROM server_configs
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
	`

	var cert, key, listenAddr sql.NullString
	var port sql.NullInt64

	err := s.db.QueryRow(query).Scan(&cert, &key, &port, &listenAddr)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query server config: %w", err)
	}

	return &ServerData{
		Cert:       cert.String,
		Key:        key.String,
		Port:       int(port.Int64),
		ListenAddr: listenAddr.String,
	}, nil
}

// GetArchive returns the run archive configuration from the database
func (s *SQLiteProvider) GetArchive() (*ArchiveData, error) {
	query := `
		SELECT sqlite_path, postgres_dsn
		FROM archive_configs
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
	`

	var sqlitePath, postgresDSN sql.NullString

	err := s.db.QueryRow(query).Scan(&sqlitePath, &postgresDSN)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query archive config: %w", err)
	}

	return &ArchiveData{
		SQLite:   sqlitePath.String,
		Postgres: postgresDSN.String,
	}, nil
}

// SaveConfig writes a complete configuration as the default config,
// replacing any previous one
func (s *SQLiteProvider) SaveConfig(config *ConfigData) error {
	if err := s.EnsureSchema(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO configs (name) VALUES ('default') ON CONFLICT(name) DO NOTHING`); err != nil {
		return fmt.Errorf("failed to create default config: %w", err)
	}

	var configID int64
	if err := tx.QueryRow(`SELECT id FROM configs WHERE name = 'default'`).Scan(&configID); err != nil {
		return fmt.Errorf("failed to resolve default config: %w", err)
	}

	for _, table := range []string{
		"site_configs", "hardware_configs", "param_configs",
		"weather_configs", "server_configs", "archive_configs",
	} {
		if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE config_id = ?", table), configID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if site := config.Simulation.Site; site != nil {
		_, err := tx.Exec(`
			INSERT INTO site_configs (config_id, city, latitude, longitude, altitude_m, tilt, azimuth, mounting)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			configID, site.City, site.Latitude, site.Longitude, site.AltitudeM,
			site.TiltDeg, site.AzimuthDeg, site.Mounting)
		if err != nil {
			return fmt.Errorf("failed to save site config: %w", err)
		}
	}

	if hw := config.Simulation.Hardware; hw != nil {
		_, err := tx.Exec(`
			INSERT INTO hardware_configs (config_id, module, inverter, catalog_file)
			VALUES (?, ?, ?, ?)`,
			configID, hw.Module, hw.Inverter, hw.CatalogFile)
		if err != nil {
			return fmt.Errorf("failed to save hardware config: %w", err)
		}
	}

	if params := config.Simulation.Params; params != nil {
		_, err := tx.Exec(`
			INSERT INTO param_configs (config_id, module_count, system_health, degradation_rate,
			                           install_cost_per_kwp, electricity_price, grid_co2_g_per_kwh, horizon_years)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			configID, params.ModuleCount, params.SystemHealth, params.DegradationRate,
			params.InstallCostPerKWp, params.ElectricityPrice, params.GridCO2GramsPerKWh, params.HorizonYears)
		if err != nil {
			return fmt.Errorf("failed to save param config: %w", err)
		}
	}

	if weather := config.Simulation.Weather; weather != nil {
		_, err := tx.Exec(`
			INSERT INTO weather_configs (config_id, csv_path, cache_dir, synthetic)
			VALUES (?, ?, ?, ?)`,
			configID, weather.CSVPath, weather.CacheDir, weather.Synthetic)
		if err != nil {
			return fmt.Errorf("failed to save weather config: %w", err)
		}
	}

	if server := config.Server; server != nil {
		_, err := tx.Exec(`
			INSERT INTO server_configs (config_id, tls_cert, tls_key, port, listen_addr)
			VALUES (?, ?, ?, ?, ?)`,
			configID, server.Cert, server.Key, server.Port, server.ListenAddr)
		if err != nil {
			return fmt.Errorf("failed to save server config: %w", err)
		}
	}

	if archive := config.Archive; archive != nil {
		_, err := tx.Exec(`
			INSERT INTO archive_configs (config_id, sqlite_path, postgres_dsn)
			VALUES (?, ?, ?)`,
			configID, archive.SQLite, archive.Postgres)
		if err != nil {
			return fmt.Errorf("failed to save archive config: %w", err)
		}
	}

	return tx.Commit()
}

// IsReadOnly returns false since SQLite configurations can be modified
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	return s.db.Close()
}
