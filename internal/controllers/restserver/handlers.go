package restserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/chrissnell/solarsim/internal/constants"
	"github.com/chrissnell/solarsim/internal/database"
	"github.com/chrissnell/solarsim/internal/log"
	"github.com/chrissnell/solarsim/internal/metrics"
	"github.com/chrissnell/solarsim/internal/report"
	"github.com/chrissnell/solarsim/internal/sim"
	"github.com/chrissnell/solarsim/internal/sites"
	"github.com/chrissnell/solarsim/internal/types"
	"github.com/chrissnell/solarsim/pkg/responseformat"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// GetSites lists the built-in site registry.
func (h *Handlers) GetSites(w http.ResponseWriter, req *http.Request) {
	h.formatter.WriteResponse(w, req, sites.All(), nil)
}

// GetModules lists the module catalog, extension entries included.
func (h *Handlers) GetModules(w http.ResponseWriter, req *http.Request) {
	names := h.controller.Catalog.ModuleNames()
	specs := make([]types.ModuleSpec, 0, len(names))
	for _, name := range names {
		spec, err := h.controller.Catalog.Module(name)
		if err != nil {
			continue
		}
		specs = append(specs, spec)
	}
	h.formatter.WriteResponse(w, req, specs, nil)
}

// GetInverters lists the inverter catalog, extension entries included.
func (h *Handlers) GetInverters(w http.ResponseWriter, req *http.Request) {
	names := h.controller.Catalog.InverterNames()
	specs := make([]types.InverterSpec, 0, len(names))
	for _, name := range names {
		spec, err := h.controller.Catalog.Inverter(name)
		if err != nil {
			continue
		}
		specs = append(specs, spec)
	}
	h.formatter.WriteResponse(w, req, specs, nil)
}

// RunSimulation runs one simulation from the posted request, archives the
// result, and returns it. An empty body simulates the configured defaults.
func (h *Handlers) RunSimulation(w http.ResponseWriter, req *http.Request) {
	var simReq SimulateRequest
	if req.Body != nil {
		defer req.Body.Close()
		if err := json.NewDecoder(req.Body).Decode(&simReq); err != nil && err != io.EOF {
			h.formatter.WriteError(w, req, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	inputs, err := h.controller.resolveInputs(&simReq)
	if err != nil {
		h.writeSimulationError(w, req, err)
		return
	}

	engine, err := sim.NewEngine(inputs.Site, inputs.Module, inputs.Inverter, inputs.Params)
	if err != nil {
		h.writeSimulationError(w, req, err)
		return
	}

	records, warnings, err := h.controller.loadWeather(inputs.Site, simReq.Weather)
	if err != nil {
		log.Errorf("error loading weather series: %v", err)
		h.writeSimulationError(w, req, err)
		return
	}

	started := time.Now()
	result, err := engine.Run(records)
	if err != nil {
		metrics.ObserveSimulation(metrics.ResultError, time.Since(started))
		h.writeSimulationError(w, req, err)
		return
	}
	metrics.ObserveSimulation(metrics.ResultSuccess, time.Since(started))
	result.Warnings = warnings

	// The caller is gone; skip archiving and the response.
	if req.Context().Err() != nil {
		return
	}

	if err := h.controller.Archive.SaveRun(result); err != nil {
		log.Warnf("failed to archive run %s: %v", result.ID, err)
		metrics.IncArchiveWrite(metrics.ResultError)
	} else {
		metrics.IncArchiveWrite(metrics.ResultSuccess)
	}

	if !simReq.IncludeHourly {
		trimmed := *result
		trimmed.HourlyAC = nil
		result = &trimmed
	}
	if err := h.formatter.WriteResponse(w, req, result, nil); err != nil {
		log.Errorf("error encoding simulation result: %v", err)
	}
}

// GetRuns lists archived run summaries, newest first.
func (h *Handlers) GetRuns(w http.ResponseWriter, req *http.Request) {
	limit := 0
	if v := req.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			h.formatter.WriteError(w, req, http.StatusBadRequest, "limit must be a non-negative number")
			return
		}
		limit = parsed
	}

	runs, err := h.controller.Archive.ListRuns(limit)
	if err != nil {
		log.Errorf("error listing archived runs: %v", err)
		h.formatter.WriteError(w, req, http.StatusInternalServerError, "error listing runs")
		return
	}
	h.formatter.WriteResponse(w, req, runs, nil)
}

// GetRun returns one archived run with its full summary decoded.
func (h *Handlers) GetRun(w http.ResponseWriter, req *http.Request) {
	run, ok := h.fetchRun(w, req)
	if !ok {
		return
	}

	result, err := run.DecodeSummary()
	if err != nil {
		log.Errorf("error decoding archived run %s: %v", run.RunID, err)
		h.formatter.WriteError(w, req, http.StatusInternalServerError, "error decoding archived run")
		return
	}
	h.formatter.WriteResponse(w, req, result, nil)
}

// ExportRun re-renders an archived run as a CSV, XLSX, or PDF download.
func (h *Handlers) ExportRun(w http.ResponseWriter, req *http.Request) {
	format := mux.Vars(req)["format"]

	run, ok := h.fetchRun(w, req)
	if !ok {
		return
	}

	result, err := run.DecodeSummary()
	if err != nil {
		log.Errorf("error decoding archived run %s: %v", run.RunID, err)
		h.formatter.WriteError(w, req, http.StatusInternalServerError, "error decoding archived run")
		return
	}

	started := time.Now()
	var payload []byte
	var contentType string
	switch format {
	case "csv":
		payload, err = report.CSV(result)
		contentType = "text/csv"
	case "xlsx":
		payload, err = report.XLSX(result)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		payload, err = report.PDF(result)
		contentType = "application/pdf"
	default:
		h.formatter.WriteError(w, req, http.StatusBadRequest, "unsupported export format (want csv, xlsx, or pdf)")
		return
	}
	if err != nil {
		metrics.ObserveExport(format, metrics.ResultError, time.Since(started))
		log.Errorf("error rendering %s export for run %s: %v", format, run.RunID, err)
		h.formatter.WriteError(w, req, http.StatusInternalServerError, "error rendering export")
		return
	}
	metrics.ObserveExport(format, metrics.ResultSuccess, time.Since(started))

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "solarsim-"+run.RunID+"."+format))
	w.Write(payload)
}

// GetLogs returns the recent request entries from the HTTP log ring buffer.
func (h *Handlers) GetLogs(w http.ResponseWriter, req *http.Request) {
	h.formatter.WriteResponse(w, req, log.GetHTTPLogBuffer().GetEntries(), nil)
}

// GetStatus reports server identity and archive health.
func (h *Handlers) GetStatus(w http.ResponseWriter, req *http.Request) {
	hostname, _ := os.Hostname()

	runs, err := h.controller.Archive.CountRuns()
	if err != nil {
		log.Errorf("error counting archived runs: %v", err)
	}

	status := StatusResponse{
		Version:       constants.Version,
		OS:            runtime.GOOS,
		Architecture:  runtime.GOARCH,
		Hostname:      hostname,
		UptimeSeconds: int64(time.Since(h.controller.started).Seconds()),
		DefaultSite:   h.controller.defaults.Site.Name,
		ArchivedRuns:  runs,
	}

	h.formatter.WriteResponse(w, req, status, nil)
}

// fetchRun loads the archived run named in the route, writing the error
// response itself when the run cannot be served.
func (h *Handlers) fetchRun(w http.ResponseWriter, req *http.Request) (*database.SimulationRun, bool) {
	id := mux.Vars(req)["id"]
	run, err := h.controller.Archive.GetRun(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.formatter.WriteError(w, req, http.StatusNotFound, "run not found")
			return nil, false
		}
		log.Errorf("error fetching archived run %s: %v", id, err)
		h.formatter.WriteError(w, req, http.StatusInternalServerError, "error fetching archived run")
		return nil, false
	}
	return run, true
}

// writeSimulationError maps validation failures to 400 and everything else
// to 500.
func (h *Handlers) writeSimulationError(w http.ResponseWriter, req *http.Request, err error) {
	if types.IsValidationError(err) {
		h.formatter.WriteError(w, req, http.StatusBadRequest, err.Error())
		return
	}
	log.Errorf("simulation failed: %v", err)
	h.formatter.WriteError(w, req, http.StatusInternalServerError, "simulation failed")
}
