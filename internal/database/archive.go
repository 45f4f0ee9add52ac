package database

import (
	"encoding/json"
	"fmt"

	"github.com/chrissnell/solarsim/internal/types"
)

// SaveRun stores a completed run. The archived summary drops the hourly
// series; everything the report exporters need survives.
func (c *Client) SaveRun(result *types.SimulationResult) error {
	summary := *result
	summary.HourlyAC = nil

	blob, err := json.Marshal(&summary)
	if err != nil {
		return fmt.Errorf("unable to encode run summary: %w", err)
	}

	row := SimulationRun{
		RunID:           result.ID,
		SiteName:        result.Site.Name,
		ModuleName:      result.Module.Name,
		InverterName:    result.Inverter.Name,
		ModuleCount:     result.Params.ModuleCount,
		CapacityKWp:     result.CapacityKWp,
		SpecificYield:   result.SpecificYield,
		ACEnergyKWh:     result.Losses.ACEnergyKWh,
		PaybackYears:    result.PaybackYears,
		TotalCO2SavedKg: result.TotalCO2SavedKg,
		WarningCount:    len(result.Warnings),
		Summary:         string(blob),
		CreatedAt:       result.RunAt,
	}

	if err := c.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("unable to archive run %s: %w", result.ID, err)
	}
	return nil
}

// GetRun fetches one archived run by ID.
func (c *Client) GetRun(id string) (*SimulationRun, error) {
	var row SimulationRun
	if err := c.DB.First(&row, "run_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("run %s not found: %w", id, err)
	}
	return &row, nil
}

// ListRuns returns the most recent archived runs, newest first.
func (c *Client) ListRuns(limit int) ([]SimulationRun, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []SimulationRun
	if err := c.DB.Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("unable to list runs: %w", err)
	}
	return rows, nil
}

// CountRuns returns the number of archived runs.
func (c *Client) CountRuns() (int64, error) {
	var n int64
	if err := c.DB.Model(&SimulationRun{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("unable to count runs: %w", err)
	}
	return n, nil
}

// DecodeSummary rebuilds the archived result from its JSON blob.
func (r *SimulationRun) DecodeSummary() (*types.SimulationResult, error) {
	var result types.SimulationResult
	if err := json.Unmarshal([]byte(r.Summary), &result); err != nil {
		return nil, fmt.Errorf("unable to decode summary of run %s: %w", r.RunID, err)
	}
	return &result, nil
}
