// solarsim-run executes one simulation from flags and optional configuration,
// prints the headline results, and can write a CSV/XLSX/PDF report.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chrissnell/solarsim/internal/constants"
	"github.com/chrissnell/solarsim/internal/hardware"
	"github.com/chrissnell/solarsim/internal/log"
	"github.com/chrissnell/solarsim/internal/report"
	"github.com/chrissnell/solarsim/internal/sim"
	"github.com/chrissnell/solarsim/internal/sites"
	"github.com/chrissnell/solarsim/internal/types"
	"github.com/chrissnell/solarsim/internal/weather"
	"github.com/chrissnell/solarsim/pkg/config"
)

// runSetup is the fully resolved input set for the one-shot run.
type runSetup struct {
	site        types.SiteConfig
	params      types.SystemParams
	moduleName  string
	inverter    string
	catalogFile string
	weatherCSV  string
	cacheDir    string
	synthetic   bool
	year        int
	altitudeM   float64
}

func main() {
	var (
		cfgFile      = flag.String("config", "", "Optional configuration file providing run defaults")
		cfgBackend   = flag.String("config-backend", "yaml", "Configuration backend type: 'yaml' or 'sqlite'")
		city         = flag.String("city", "", "Registry site to simulate (default "+sites.DefaultSiteName+")")
		lat          = flag.Float64("lat", 0, "Site latitude in degrees (overrides the city's coordinates)")
		lon          = flag.Float64("lon", 0, "Site longitude in degrees")
		tilt         = flag.Float64("tilt", 35, "Array tilt in degrees")
		azimuth      = flag.Float64("azimuth", 180, "Array azimuth in degrees (180 = south)")
		mounting     = flag.String("mounting", "", "Mounting class for the thermal model")
		moduleName   = flag.String("module", "", "Module from the hardware catalog (default "+hardware.DefaultModuleName+")")
		inverterName = flag.String("inverter", "", "Inverter from the hardware catalog")
		catalogFile  = flag.String("catalog", "", "YAML file extending the hardware catalog")
		moduleCount  = flag.Int("module-count", 1, "Number of modules")
		health       = flag.Float64("health", 0.95, "System health factor (0-1]")
		degradation  = flag.Float64("degradation", 0.005, "Annual degradation rate, fraction per year")
		costPerKWp   = flag.Float64("cost-per-kwp", 1500, "Installation cost per kWp")
		price        = flag.Float64("price", 0.30, "Electricity price per kWh")
		gridCO2      = flag.Float64("grid-co2", 434, "Grid carbon intensity in g CO2 per kWh")
		horizon      = flag.Int("horizon", 25, "Economic horizon in years")
		weatherCSV   = flag.String("weather-csv", "", "TMY weather CSV (synthetic year when omitted)")
		year         = flag.Int("year", weather.DefaultCoerceYear, "Year for the synthetic weather generator")
		altitude     = flag.Float64("altitude", 0, "Site altitude in meters (synthetic weather only)")
		export       = flag.String("export", "", "Write a report to this file (.csv, .xlsx, or .pdf)")
		debug        = flag.Bool("debug", false, "Turn on debugging output")
		showVersion  = flag.Bool("version", false, "Show version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("solarsim-run %s\n", constants.Version)
		os.Exit(0)
	}

	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	setup := runSetup{
		site: types.SiteConfig{
			Name:       sites.Default().Name,
			Latitude:   sites.Default().Latitude,
			Longitude:  sites.Default().Longitude,
			TiltDeg:    35,
			AzimuthDeg: 180,
		},
		params: types.DefaultSystemParams(),
	}

	if *cfgFile != "" {
		if err := applyConfig(&setup, *cfgFile, *cfgBackend); err != nil {
			fatalf("Error loading configuration: %v", err)
		}
	}

	// Flags override the configured baseline. Numeric flags only count when
	// explicitly set, so configured values survive the flag defaults.
	if *city != "" {
		site, err := sites.ByName(*city)
		if err != nil {
			fatalf("Error: %v", err)
		}
		setup.site.Name = site.Name
		setup.site.Latitude = site.Latitude
		setup.site.Longitude = site.Longitude
	}
	if set["lat"] || set["lon"] {
		if *city == "" {
			setup.site.Name = ""
		}
		if set["lat"] {
			setup.site.Latitude = *lat
		}
		if set["lon"] {
			setup.site.Longitude = *lon
		}
	}
	if set["tilt"] {
		setup.site.TiltDeg = *tilt
	}
	if set["azimuth"] {
		setup.site.AzimuthDeg = *azimuth
	}
	if *mounting != "" {
		setup.site.Mounting = types.MountingClass(*mounting)
	}
	if *moduleName != "" {
		setup.moduleName = *moduleName
	}
	if *inverterName != "" {
		setup.inverter = *inverterName
	}
	if *catalogFile != "" {
		setup.catalogFile = *catalogFile
	}
	if set["module-count"] {
		setup.params.ModuleCount = *moduleCount
	}
	if set["health"] {
		setup.params.SystemHealth = *health
	}
	if set["degradation"] {
		setup.params.DegradationRate = *degradation
	}
	if set["cost-per-kwp"] {
		setup.params.InstallCostPerKWp = *costPerKWp
	}
	if set["price"] {
		setup.params.ElectricityPrice = *price
	}
	if set["grid-co2"] {
		setup.params.GridCO2GramsPerKWh = *gridCO2
	}
	if set["horizon"] {
		setup.params.HorizonYears = *horizon
	}
	if *weatherCSV != "" {
		setup.weatherCSV = *weatherCSV
		setup.synthetic = false
	}
	if set["year"] {
		setup.year = *year
	}
	if set["altitude"] {
		setup.altitudeM = *altitude
	}

	catalog := hardware.Default()
	if setup.catalogFile != "" {
		if err := catalog.LoadFile(setup.catalogFile); err != nil {
			fatalf("Error loading hardware catalog: %v", err)
		}
	}
	module, err := catalog.Module(setup.moduleName)
	if err != nil {
		fatalf("Error: %v", err)
	}
	inverter, err := catalog.Inverter(setup.inverter)
	if err != nil {
		fatalf("Error: %v", err)
	}

	engine, err := sim.NewEngine(setup.site, module, inverter, setup.params)
	if err != nil {
		fatalf("Error: %v", err)
	}

	records, warnings, err := loadWeather(&setup)
	if err != nil {
		fatalf("Error loading weather series: %v", err)
	}

	result, err := engine.Run(records)
	if err != nil {
		fatalf("Simulation failed: %v", err)
	}
	result.Warnings = warnings

	printSummary(result)

	if *export != "" {
		if err := exportReport(result, *export); err != nil {
			fatalf("Error writing report: %v", err)
		}
		fmt.Printf("\nReport written to %s\n", *export)
	}
}

// applyConfig folds the simulation sections of a configuration file into the
// setup, leaving untouched fields at their defaults.
func applyConfig(setup *runSetup, cfgFile, cfgBackend string) error {
	filename, _ := filepath.Abs(cfgFile)

	var provider config.ConfigProvider
	var err error
	switch cfgBackend {
	case "yaml":
		provider = config.NewYAMLProvider(filename)
	case "sqlite":
		provider, err = config.NewSQLiteProvider(filename)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported configuration backend: %s. Use 'yaml' or 'sqlite'", cfgBackend)
	}
	defer provider.Close()

	cfgData, err := provider.LoadConfig()
	if err != nil {
		return err
	}

	if sc := cfgData.Simulation.Site; sc != nil {
		if sc.City != "" {
			site, err := sites.ByName(sc.City)
			if err != nil {
				return err
			}
			setup.site.Name = site.Name
			setup.site.Latitude = site.Latitude
			setup.site.Longitude = site.Longitude
		} else {
			setup.site.Name = ""
			setup.site.Latitude = sc.Latitude
			setup.site.Longitude = sc.Longitude
		}
		setup.site.TiltDeg = sc.TiltDeg
		setup.site.AzimuthDeg = sc.AzimuthDeg
		setup.site.Mounting = types.MountingClass(sc.Mounting)
		setup.altitudeM = sc.AltitudeM
	}
	if hw := cfgData.Simulation.Hardware; hw != nil {
		setup.moduleName = hw.Module
		setup.inverter = hw.Inverter
		setup.catalogFile = hw.CatalogFile
	}
	if pc := cfgData.Simulation.Params; pc != nil {
		setup.params = types.SystemParams{
			ModuleCount:        pc.ModuleCount,
			SystemHealth:       pc.SystemHealth,
			DegradationRate:    pc.DegradationRate,
			InstallCostPerKWp:  pc.InstallCostPerKWp,
			ElectricityPrice:   pc.ElectricityPrice,
			GridCO2GramsPerKWh: pc.GridCO2GramsPerKWh,
			HorizonYears:       pc.HorizonYears,
		}
	}
	if wc := cfgData.Simulation.Weather; wc != nil {
		setup.weatherCSV = wc.CSVPath
		setup.cacheDir = wc.CacheDir
		setup.synthetic = wc.Synthetic
	}

	return nil
}

// loadWeather reads the configured CSV through the series cache, or
// generates a synthetic clear-sky year.
func loadWeather(setup *runSetup) ([]types.WeatherRecord, []types.QualityWarning, error) {
	if setup.weatherCSV == "" || setup.synthetic {
		year := setup.year
		if year == 0 {
			year = weather.DefaultCoerceYear
		}
		return weather.Generate(year, setup.site.Latitude, setup.site.Longitude, setup.altitudeM), nil, nil
	}

	cacheDir := setup.cacheDir
	if cacheDir == "" {
		cacheDir = filepath.Dir(setup.weatherCSV)
	}
	return weather.NewCache(cacheDir).LoadFile(setup.weatherCSV)
}

func printSummary(result *types.SimulationResult) {
	name := result.Site.Name
	if name == "" {
		name = "custom site"
	}
	fmt.Printf("Site:            %s (%.4f, %.4f), tilt %.0f, azimuth %.0f\n",
		name, result.Site.Latitude, result.Site.Longitude, result.Site.TiltDeg, result.Site.AzimuthDeg)
	fmt.Printf("System:          %d x %s (%.3f kWp)\n", result.Params.ModuleCount, result.Module.Name, result.CapacityKWp)
	fmt.Printf("Inverter:        %s\n", result.Inverter.Name)
	fmt.Printf("Specific yield:  %.1f kWh/kWp\n", result.SpecificYield)
	fmt.Printf("AC energy:       %.1f kWh/year\n", result.Losses.ACEnergyKWh)
	fmt.Printf("Annual savings:  %.2f EUR\n", result.AnnualSavings)
	if result.PaybackYears != nil {
		fmt.Printf("Payback:         %.1f years\n", *result.PaybackYears)
	} else {
		fmt.Printf("Payback:         not reached within %d years\n", result.Params.HorizonYears)
	}
	fmt.Printf("CO2 saved:       %.2f t over %d years\n", result.TotalCO2SavedKg/1000, result.Params.HorizonYears)
	if n := len(result.Warnings); n > 0 {
		fmt.Printf("Warnings:        %d data quality warnings\n", n)
	}
}

// exportReport writes the result in the format named by the file extension.
func exportReport(result *types.SimulationResult, path string) error {
	var payload []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		payload, err = report.CSV(result)
	case ".xlsx":
		payload, err = report.XLSX(result)
	case ".pdf":
		payload, err = report.PDF(result)
	default:
		return fmt.Errorf("unsupported report format %q (use .csv, .xlsx, or .pdf)", filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
