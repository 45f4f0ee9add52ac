package database

import (
	"time"
)

// SimulationRun is the archived summary of one completed simulation.
type SimulationRun struct {
	RunID        string `gorm:"primaryKey;column:run_id" json:"run_id"`
	SiteName     string `gorm:"column:site_name" json:"site_name"`
	ModuleName   string `gorm:"column:module_name;not null" json:"module_name"`
	InverterName string `gorm:"column:inverter_name;not null" json:"inverter_name"`
	ModuleCount  int    `gorm:"column:module_count" json:"module_count"`

	// Headline results
	CapacityKWp     float64  `gorm:"column:capacity_kwp" json:"capacity_kwp"`
	SpecificYield   float64  `gorm:"column:specific_yield" json:"specific_yield"`
	ACEnergyKWh     float64  `gorm:"column:ac_energy_kwh" json:"ac_energy_kwh"`
	PaybackYears    *float64 `gorm:"column:payback_years" json:"payback_years"`
	TotalCO2SavedKg float64  `gorm:"column:total_co2_saved_kg" json:"total_co2_saved_kg"`
	WarningCount    int      `gorm:"column:warning_count" json:"warning_count"`

	// Summary holds the JSON-encoded result without the hourly series.
	Summary string `gorm:"column:summary;type:text" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table name for SimulationRun
func (SimulationRun) TableName() string {
	return "simulation_runs"
}
