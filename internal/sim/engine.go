package sim

import (
	"time"

	"github.com/google/uuid"

	"github.com/chrissnell/solarsim/internal/econ"
	"github.com/chrissnell/solarsim/internal/log"
	"github.com/chrissnell/solarsim/internal/types"
	"github.com/chrissnell/solarsim/internal/weather"
	"github.com/chrissnell/solarsim/pkg/solar"
)

// Engine runs the full simulation chain for one configured system: solar
// position, transposition, thermal model, DC power, derates, inverter, and
// the economic projection. An engine is safe to reuse; each run owns its
// inputs and produces an independent result.
type Engine struct {
	site     types.SiteConfig
	module   types.ModuleSpec
	inverter *Inverter
	params   types.SystemParams
	coeff    SAPMCoefficients
	derates  []DerateFactor
}

// NewEngine validates every input and prepares the chain. Out-of-range
// configuration is rejected here, before any power is computed.
func NewEngine(site types.SiteConfig, module types.ModuleSpec, inverter types.InverterSpec, params types.SystemParams) (*Engine, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}
	if err := module.Validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	coeff, ok := MountingCoefficients(site.Mounting)
	if !ok {
		return nil, types.NewValidationError("site.mounting", "unknown mounting class %q", site.Mounting)
	}

	inv, err := NewInverter(inverter)
	if err != nil {
		return nil, err
	}

	return &Engine{
		site:     site,
		module:   module,
		inverter: inv,
		params:   params,
		coeff:    coeff,
		derates:  []DerateFactor{{Name: "system health", Fraction: 1 - params.SystemHealth}},
	}, nil
}

// AddDerate appends a named multiplicative DC loss such as soiling or wiring,
// applied after the system-health derate.
func (e *Engine) AddDerate(name string, fraction float64) error {
	if fraction < 0 || fraction > 1 {
		return types.NewValidationError("derate."+name, "fraction %v outside [0, 1]", fraction)
	}
	e.derates = append(e.derates, DerateFactor{Name: name, Fraction: fraction})
	return nil
}

// Run executes the hourly chain over one weather year and projects the
// result over the economic horizon. The weather series must already be
// quality-controlled; Run only enforces the one-full-year contract.
func (e *Engine) Run(records []types.WeatherRecord) (*types.SimulationResult, error) {
	if err := weather.ValidateSeries(records); err != nil {
		return nil, err
	}

	started := time.Now()

	count := float64(e.params.ModuleCount)
	areaTotal := e.module.AreaM2 * count
	ratedTotal := e.module.PowerRatedW * count
	capacity := e.params.CapacityKWp(e.module)

	var ledger lossLedger
	hourly := make([]types.HourlyPoint, 0, len(records))

	for _, rec := range records {
		pos := solar.SunPosition(rec.Time, e.site.Latitude, e.site.Longitude)
		poa := Transpose(rec, pos, e.site.TiltDeg, e.site.AzimuthDeg)

		if poa.Global <= 0 {
			hourly = append(hourly, types.HourlyPoint{Time: rec.Time})
			continue
		}

		eeff := EffectiveIrradiance(poa, e.module.IAMB0)
		_, cellTemp := CellTemperature(poa.Global, rec.TempAir, rec.WindSpeed, e.coeff)

		// One hour per record, so W and Wh coincide. Each stage's shortfall
		// against the previous one lands in its ledger bucket.
		dcRefW := ratedTotal * (eeff / e.module.RefIrradiance)
		dcW := DCPower(eeff, cellTemp, e.module) * count
		dcNetW := ApplyDerates(dcW, e.derates, e.params.DegradationRate, 0)
		acW, inverterW, clippingW := e.inverter.Convert(dcNetW)

		ledger.poaWh += poa.Global * areaTotal
		ledger.aoiWh += (poa.Global - eeff) * areaTotal
		ledger.conversionWh += eeff*areaTotal - dcRefW
		ledger.thermalWh += dcRefW - dcW
		ledger.systemWh += dcW - dcNetW
		ledger.inverterWh += inverterW
		ledger.clippingWh += clippingW
		ledger.acWh += acW

		hourly = append(hourly, types.HourlyPoint{Time: rec.Time, PowerW: acW})
	}

	losses := ledger.breakdown()
	specificYield := losses.ACEnergyKWh / capacity
	projection := econ.Evaluate(specificYield, capacity, e.params)

	result := &types.SimulationResult{
		ID:              uuid.New().String(),
		RunAt:           time.Now().UTC(),
		Site:            e.site,
		Module:          e.module,
		Inverter:        e.inverter.Spec(),
		Params:          e.params,
		HourlyAC:        hourly,
		Monthly:         MonthlyTotals(hourly),
		BestDay:         BestDay(hourly),
		SpecificYield:   specificYield,
		CapacityKWp:     capacity,
		Losses:          losses,
		Economics:       projection.Years,
		PaybackYears:    projection.PaybackYears,
		TotalCost:       projection.TotalCost,
		AnnualSavings:   projection.AnnualSavings,
		TotalCO2SavedKg: projection.TotalCO2SavedKg,
	}

	log.Infof("simulation %s: %.0f kWh/kWp from %d hours in %s",
		result.ID, specificYield, len(records), time.Since(started).Round(time.Millisecond))
	return result, nil
}
