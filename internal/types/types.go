// Package types contains the shared data types used throughout solarsim.
package types

import (
	"time"
)

// WeatherRecord is one hour of normalized weather input. Irradiance
// components are W/m², temperature °C, wind speed m/s.
type WeatherRecord struct {
	Time      time.Time `json:"time"`
	GHI       float64   `json:"ghi"`
	DNI       float64   `json:"dni"`
	DHI       float64   `json:"dhi"`
	TempAir   float64   `json:"temp_air"`
	WindSpeed float64   `json:"wind_speed"`
}

// MountingClass selects the empirical heat-transfer coefficients used by the
// thermal model.
type MountingClass string

const (
	MountingOpenRackGlassGlass        MountingClass = "open_rack_glass_glass"
	MountingCloseMountGlassGlass      MountingClass = "close_mount_glass_glass"
	MountingOpenRackGlassPolymer      MountingClass = "open_rack_glass_polymer"
	MountingInsulatedBackGlassPolymer MountingClass = "insulated_back_glass_polymer"
)

// SiteConfig describes the array location and orientation.
type SiteConfig struct {
	Name       string        `json:"name,omitempty"`
	Latitude   float64       `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude  float64       `json:"longitude" validate:"gte=-180,lte=180"`
	TiltDeg    float64       `json:"tilt" validate:"gte=0,lte=90"`
	AzimuthDeg float64       `json:"azimuth" validate:"gte=0,lte=360"`
	Mounting   MountingClass `json:"mounting,omitempty"`
}

// ModuleSpec holds the datasheet parameters of a PV module at standard test
// conditions. Catalogs may carry additional fields; the engine only reads
// these.
type ModuleSpec struct {
	Name          string  `json:"name"`
	PowerRatedW   float64 `json:"power_rated_w" validate:"gt=0"`
	GammaPmp      float64 `json:"gamma_pmp"` // power temperature coefficient, 1/°C
	IAMB0         float64 `json:"iam_b0"`    // ASHRAE incidence-angle coefficient
	AreaM2        float64 `json:"area_m2" validate:"gt=0"`
	RefIrradiance float64 `json:"ref_irradiance"` // W/m², usually 1000
	RefTemp       float64 `json:"ref_temp"`       // °C, usually 25
}

// EffPoint is one knot of an inverter efficiency curve: conversion
// efficiency at a given DC input power.
type EffPoint struct {
	DCW float64 `json:"dc_w"`
	Eta float64 `json:"eta"`
}

// InverterSpec holds the datasheet parameters of an inverter. The efficiency
// curve must be monotonically increasing in DC power; its first knot is the
// power-on threshold.
type InverterSpec struct {
	Name          string     `json:"name"`
	PowerACRatedW float64    `json:"power_ac_rated_w" validate:"gt=0"`
	Efficiency    []EffPoint `json:"efficiency" validate:"min=2"`
	MaxDCVoltage  float64    `json:"max_dc_voltage,omitempty"`
	MaxDCCurrent  float64    `json:"max_dc_current,omitempty"`
}

// SystemParams carries the user-settable scaling, loss, and financial
// parameters of a run. Mutable only via configuration before a run starts.
type SystemParams struct {
	ModuleCount        int     `json:"module_count" validate:"gte=1"`
	SystemHealth       float64 `json:"system_health" validate:"gte=0,lte=1"`
	DegradationRate    float64 `json:"degradation_rate" validate:"gte=0,lt=1"` // fraction per year
	InstallCostPerKWp  float64 `json:"install_cost_per_kwp" validate:"gte=0"`
	ElectricityPrice   float64 `json:"electricity_price" validate:"gte=0"` // per kWh
	GridCO2GramsPerKWh float64 `json:"grid_co2_g_per_kwh" validate:"gte=0"`
	HorizonYears       int     `json:"horizon_years" validate:"gte=1,lte=50"`
}

// DefaultSystemParams returns the stock parameter set: a single-module
// system in good health with typical German residential economics.
func DefaultSystemParams() SystemParams {
	return SystemParams{
		ModuleCount:        1,
		SystemHealth:       0.95,
		DegradationRate:    0.005,
		InstallCostPerKWp:  1500,
		ElectricityPrice:   0.30,
		GridCO2GramsPerKWh: 434,
		HorizonYears:       25,
	}
}

// CapacityKWp returns the rated system capacity for a given module.
func (p SystemParams) CapacityKWp(module ModuleSpec) float64 {
	return float64(p.ModuleCount) * module.PowerRatedW / 1000.0
}

// HourlyPoint is one timestamped power value in an output series.
type HourlyPoint struct {
	Time   time.Time `json:"time"`
	PowerW float64   `json:"power_w"`
}

// MonthlyEnergy is the AC energy total for one calendar month.
type MonthlyEnergy struct {
	Month     time.Month `json:"month"`
	EnergyKWh float64    `json:"energy_kwh"`
}

// DayProfile is the hourly AC power trace of one calendar day.
type DayProfile struct {
	Date   time.Time     `json:"date"`
	Points []HourlyPoint `json:"points"`
}

// LossBreakdown is the per-stage energy accounting of one simulated year, in
// kWh. Stages are ordered; POAEnergyKWh minus every loss equals ACEnergyKWh.
type LossBreakdown struct {
	POAEnergyKWh      float64 `json:"poa_energy_kwh"`      // incident on the array plane
	AOILossKWh        float64 `json:"aoi_loss_kwh"`        // beam energy lost to incidence angle
	IrradianceLossKWh float64 `json:"irradiance_loss_kwh"` // incident energy the modules cannot convert at reference efficiency
	ThermalLossKWh    float64 `json:"thermal_loss_kwh"`    // temperature-coefficient effect (negative when cold boosts output)
	SystemLossKWh     float64 `json:"system_loss_kwh"`     // aggregate health derating
	InverterLossKWh   float64 `json:"inverter_loss_kwh"`   // DC→AC conversion loss
	ClippingLossKWh   float64 `json:"clipping_loss_kwh"`   // AC demand above rated capacity
	ACEnergyKWh       float64 `json:"ac_energy_kwh"`       // delivered
}

// YearEconomics is one year of the economic series. Year is 1-indexed.
type YearEconomics struct {
	Year              int     `json:"year"`
	YieldKWhPerKWp    float64 `json:"yield_kwh_per_kwp"`
	Savings           float64 `json:"savings"`
	CumulativeSavings float64 `json:"cumulative_savings"`
	RemainingCost     float64 `json:"remaining_cost"`
	CO2SavedKg        float64 `json:"co2_saved_kg"`
	CumulativeCO2Kg   float64 `json:"cumulative_co2_kg"`
}

// SimulationResult is the complete output of one run. Created once per run
// and immutable thereafter.
type SimulationResult struct {
	ID       string       `json:"id"`
	RunAt    time.Time    `json:"run_at"`
	Site     SiteConfig   `json:"site"`
	Module   ModuleSpec   `json:"module"`
	Inverter InverterSpec `json:"inverter"`
	Params   SystemParams `json:"params"`

	HourlyAC      []HourlyPoint   `json:"hourly_ac"`
	Monthly       []MonthlyEnergy `json:"monthly"`
	BestDay       DayProfile      `json:"best_day"`
	SpecificYield float64         `json:"specific_yield_kwh_per_kwp"`
	CapacityKWp   float64         `json:"capacity_kwp"`
	Losses        LossBreakdown   `json:"losses"`

	Economics       []YearEconomics `json:"economics"`
	PaybackYears    *float64        `json:"payback_years"` // nil when cost is not recovered within the horizon
	TotalCost       float64         `json:"total_cost"`
	AnnualSavings   float64         `json:"annual_savings"` // first-year savings
	TotalCO2SavedKg float64         `json:"total_co2_saved_kg"`

	Warnings []QualityWarning `json:"warnings,omitempty"`
}
