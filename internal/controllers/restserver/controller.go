// Package restserver exposes the simulation engine, hardware catalog, and
// run archive over a REST API.
package restserver

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/chrissnell/solarsim/internal/database"
	"github.com/chrissnell/solarsim/internal/hardware"
	"github.com/chrissnell/solarsim/internal/log"
	"github.com/chrissnell/solarsim/internal/metrics"
	"github.com/chrissnell/solarsim/internal/sites"
	"github.com/chrissnell/solarsim/internal/types"
	"github.com/chrissnell/solarsim/internal/weather"
	"github.com/chrissnell/solarsim/pkg/config"
)

// Controller represents the REST server controller
type Controller struct {
	ctx            context.Context
	wg             *sync.WaitGroup
	configProvider config.ConfigProvider
	serverConfig   config.ServerData
	Server         http.Server
	Archive        *database.Client
	Catalog        *hardware.Catalog
	defaults       runInputs
	weatherCfg     config.WeatherData
	altitudeM      float64
	cache          *weather.Cache
	started        time.Time
	logger         *zap.SugaredLogger
	handlers       *Handlers
}

// runInputs is a fully resolved set of engine inputs for one run.
type runInputs struct {
	Site     types.SiteConfig
	Module   types.ModuleSpec
	Inverter types.InverterSpec
	Params   types.SystemParams
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, configProvider config.ConfigProvider, sc config.ServerData, logger *zap.SugaredLogger) (*Controller, error) {
	ctrl := &Controller{
		ctx:            ctx,
		wg:             wg,
		configProvider: configProvider,
		started:        time.Now(),
		logger:         logger,
	}

	// Load configuration
	cfgData, err := configProvider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %v", err)
	}

	// Hardware catalog: built-in datasheets plus any configured extension file
	ctrl.Catalog = hardware.Default()
	if hw := cfgData.Simulation.Hardware; hw != nil && hw.CatalogFile != "" {
		if err := ctrl.Catalog.LoadFile(hw.CatalogFile); err != nil {
			return nil, fmt.Errorf("error loading hardware catalog %s: %v", hw.CatalogFile, err)
		}
	}

	// Resolve the configured baseline once; simulate requests override it
	// per run.
	ctrl.defaults, err = resolveBaseline(cfgData.Simulation, ctrl.Catalog)
	if err != nil {
		return nil, fmt.Errorf("error resolving simulation defaults: %v", err)
	}

	if site := cfgData.Simulation.Site; site != nil {
		ctrl.altitudeM = site.AltitudeM
	}
	if wc := cfgData.Simulation.Weather; wc != nil {
		ctrl.weatherCfg = *wc
	}
	if ctrl.weatherCfg.CSVPath != "" {
		cacheDir := ctrl.weatherCfg.CacheDir
		if cacheDir == "" {
			cacheDir = filepath.Dir(ctrl.weatherCfg.CSVPath)
		}
		ctrl.cache = weather.NewCache(cacheDir)
	}

	// If a listen address was not provided, listen on all interfaces
	if sc.ListenAddr == "" {
		logger.Info("server.listen-addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		sc.ListenAddr = "0.0.0.0"
	}

	// Set default HTTP port if not specified
	if sc.Port == 0 {
		logger.Info("server.port not provided; defaulting to 8080")
		sc.Port = 8080
	}
	ctrl.serverConfig = sc

	// The run archive always has a backend: Postgres when configured,
	// otherwise a local SQLite file.
	ctrl.Archive = database.NewClient(cfgData.Archive)
	if err := ctrl.Archive.Connect(); err != nil {
		return nil, fmt.Errorf("REST server could not connect to the run archive: %v", err)
	}

	metrics.Init()

	// Create handlers
	ctrl.handlers = NewHandlers(ctrl)

	// Set up router
	router := ctrl.setupRouter()
	ctrl.Server.Addr = fmt.Sprintf("%v:%v", sc.ListenAddr, sc.Port)
	ctrl.Server.Handler = router

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Info("Starting REST server controller...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if c.serverConfig.Cert != "" && c.serverConfig.Key != "" {
			if err := c.Server.ListenAndServeTLS(c.serverConfig.Cert, c.serverConfig.Key); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	// Record metrics and request log entries for every matched route
	router.Use(c.instrumentationMiddleware)

	router.HandleFunc("/api/sites", c.handlers.GetSites).Methods(http.MethodGet)
	router.HandleFunc("/api/modules", c.handlers.GetModules).Methods(http.MethodGet)
	router.HandleFunc("/api/inverters", c.handlers.GetInverters).Methods(http.MethodGet)
	router.HandleFunc("/api/simulate", c.handlers.RunSimulation).Methods(http.MethodPost)
	router.HandleFunc("/api/runs", c.handlers.GetRuns).Methods(http.MethodGet)
	router.HandleFunc("/api/runs/{id}", c.handlers.GetRun).Methods(http.MethodGet)
	router.HandleFunc("/api/runs/{id}/export/{format}", c.handlers.ExportRun).Methods(http.MethodGet)
	router.HandleFunc("/api/logs", c.handlers.GetLogs).Methods(http.MethodGet)
	router.HandleFunc("/api/status", c.handlers.GetStatus).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return router
}

// instrumentationMiddleware times each request, records it in the metrics
// registry under its route template, and feeds the HTTP log ring buffer.
func (c *Controller) instrumentationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}

		duration := time.Since(started)
		metrics.ObserveHTTPRequest(route, sw.status, duration)
		log.LogHTTPRequest(r.Method, r.URL.Path, sw.status, duration, sw.size, r.RemoteAddr, r.UserAgent(), nil)
	})
}

// statusWriter captures the response status and size for instrumentation.
type statusWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// resolveBaseline turns the configured simulation sections into engine
// inputs, applying registry and catalog defaults for omitted sections.
func resolveBaseline(simCfg config.SimulationData, catalog *hardware.Catalog) (runInputs, error) {
	def := sites.Default()
	in := runInputs{
		Site: types.SiteConfig{
			Name:       def.Name,
			Latitude:   def.Latitude,
			Longitude:  def.Longitude,
			TiltDeg:    35,
			AzimuthDeg: 180,
		},
		Params: types.DefaultSystemParams(),
	}

	if sc := simCfg.Site; sc != nil {
		if sc.City != "" {
			site, err := sites.ByName(sc.City)
			if err != nil {
				return runInputs{}, err
			}
			in.Site.Name = site.Name
			in.Site.Latitude = site.Latitude
			in.Site.Longitude = site.Longitude
		} else {
			in.Site.Name = ""
			in.Site.Latitude = sc.Latitude
			in.Site.Longitude = sc.Longitude
		}
		in.Site.TiltDeg = sc.TiltDeg
		in.Site.AzimuthDeg = sc.AzimuthDeg
		in.Site.Mounting = types.MountingClass(sc.Mounting)
	}

	var moduleName, inverterName string
	if hw := simCfg.Hardware; hw != nil {
		moduleName = hw.Module
		inverterName = hw.Inverter
	}
	module, err := catalog.Module(moduleName)
	if err != nil {
		return runInputs{}, err
	}
	inverter, err := catalog.Inverter(inverterName)
	if err != nil {
		return runInputs{}, err
	}
	in.Module = module
	in.Inverter = inverter

	if pc := simCfg.Params; pc != nil {
		in.Params = types.SystemParams{
			ModuleCount:        pc.ModuleCount,
			SystemHealth:       pc.SystemHealth,
			DegradationRate:    pc.DegradationRate,
			InstallCostPerKWp:  pc.InstallCostPerKWp,
			ElectricityPrice:   pc.ElectricityPrice,
			GridCO2GramsPerKWh: pc.GridCO2GramsPerKWh,
			HorizonYears:       pc.HorizonYears,
		}
	}

	if err := in.Site.Validate(); err != nil {
		return runInputs{}, err
	}
	if err := in.Params.Validate(); err != nil {
		return runInputs{}, err
	}

	return in, nil
}

// resolveInputs merges a simulate request over the configured baseline.
func (c *Controller) resolveInputs(req *SimulateRequest) (runInputs, error) {
	in := c.defaults

	if s := req.Site; s != nil {
		if s.City != "" {
			site, err := sites.ByName(s.City)
			if err != nil {
				return runInputs{}, err
			}
			in.Site.Name = site.Name
			in.Site.Latitude = site.Latitude
			in.Site.Longitude = site.Longitude
		}
		if s.Latitude != nil || s.Longitude != nil {
			if s.City == "" {
				in.Site.Name = ""
			}
			if s.Latitude != nil {
				in.Site.Latitude = *s.Latitude
			}
			if s.Longitude != nil {
				in.Site.Longitude = *s.Longitude
			}
		}
		if s.TiltDeg != nil {
			in.Site.TiltDeg = *s.TiltDeg
		}
		if s.AzimuthDeg != nil {
			in.Site.AzimuthDeg = *s.AzimuthDeg
		}
		if s.Mounting != "" {
			in.Site.Mounting = types.MountingClass(s.Mounting)
		}
	}

	if req.Module != "" {
		module, err := c.Catalog.Module(req.Module)
		if err != nil {
			return runInputs{}, err
		}
		in.Module = module
	}
	if req.Inverter != "" {
		inverter, err := c.Catalog.Inverter(req.Inverter)
		if err != nil {
			return runInputs{}, err
		}
		in.Inverter = inverter
	}
	if req.Params != nil {
		in.Params = *req.Params
	}

	return in, nil
}

// loadWeather produces the weather year for a run: the configured CSV when
// one is set, or a synthetic clear-sky year when requested or when no source
// is configured.
func (c *Controller) loadWeather(site types.SiteConfig, req *WeatherRequest) ([]types.WeatherRecord, []types.QualityWarning, error) {
	synthetic := c.weatherCfg.Synthetic || c.weatherCfg.CSVPath == ""
	year := 0
	if req != nil {
		if req.Synthetic {
			synthetic = true
		}
		year = req.Year
	}

	if synthetic {
		if year == 0 {
			year = weather.DefaultCoerceYear
		}
		return weather.Generate(year, site.Latitude, site.Longitude, c.altitudeM), nil, nil
	}

	return c.cache.LoadFile(c.weatherCfg.CSVPath)
}
