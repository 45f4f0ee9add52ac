// Package hardware provides the built-in module and inverter catalog and
// loads user extensions from YAML files.
package hardware

import (
	"sort"
	"strings"

	"github.com/chrissnell/solarsim/internal/types"
)

// Default hardware selected when a request names none.
const (
	DefaultModuleName   = "Hanwha_Q_CELLS_Q_PEAK_DUO_G5_325"
	DefaultInverterName = "SMA_America__SB3000TL_US_22__240V_"
)

// Catalog maps hardware names to datasheet parameter sets. The zero value is
// unusable; start from Default.
type Catalog struct {
	modules   map[string]types.ModuleSpec
	inverters map[string]types.InverterSpec
}

// Default returns a catalog holding the built-in datasheets. The returned
// catalog is independent; loading extensions into it leaves the built-ins
// untouched.
func Default() *Catalog {
	c := &Catalog{
		modules:   make(map[string]types.ModuleSpec, len(builtinModules)),
		inverters: make(map[string]types.InverterSpec, len(builtinInverters)),
	}
	for name, spec := range builtinModules {
		c.modules[name] = spec
	}
	for name, spec := range builtinInverters {
		c.inverters[name] = spec
	}
	return c
}

// Module looks up a module datasheet by name. An empty name selects the
// default module.
func (c *Catalog) Module(name string) (types.ModuleSpec, error) {
	if name == "" {
		name = DefaultModuleName
	}
	spec, ok := c.modules[name]
	if !ok {
		return types.ModuleSpec{}, types.NewValidationError("module",
			"unknown module %q (available: %s)", name, strings.Join(c.ModuleNames(), ", "))
	}
	return spec, nil
}

// Inverter looks up an inverter datasheet by name. An empty name selects the
// default inverter.
func (c *Catalog) Inverter(name string) (types.InverterSpec, error) {
	if name == "" {
		name = DefaultInverterName
	}
	spec, ok := c.inverters[name]
	if !ok {
		return types.InverterSpec{}, types.NewValidationError("inverter",
			"unknown inverter %q (available: %s)", name, strings.Join(c.InverterNames(), ", "))
	}
	return spec, nil
}

// ModuleNames returns the catalog's module names, sorted.
func (c *Catalog) ModuleNames() []string {
	names := make([]string, 0, len(c.modules))
	for name := range c.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InverterNames returns the catalog's inverter names, sorted.
func (c *Catalog) InverterNames() []string {
	names := make([]string, 0, len(c.inverters))
	for name := range c.inverters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// builtinModules carries datasheet values at standard test conditions for a
// few common residential modules.
var builtinModules = map[string]types.ModuleSpec{
	"Hanwha_Q_CELLS_Q_PEAK_DUO_G5_325": {
		Name:          "Hanwha_Q_CELLS_Q_PEAK_DUO_G5_325",
		PowerRatedW:   325,
		GammaPmp:      -0.0036,
		IAMB0:         0.05,
		AreaM2:        1.67,
		RefIrradiance: 1000,
		RefTemp:       25,
	},
	"Canadian_Solar_Inc__CS6K_300MS": {
		Name:          "Canadian_Solar_Inc__CS6K_300MS",
		PowerRatedW:   300,
		GammaPmp:      -0.0037,
		IAMB0:         0.05,
		AreaM2:        1.64,
		RefIrradiance: 1000,
		RefTemp:       25,
	},
	"SunPower_SPR_X21_345": {
		Name:          "SunPower_SPR_X21_345",
		PowerRatedW:   345,
		GammaPmp:      -0.0029,
		IAMB0:         0.05,
		AreaM2:        1.63,
		RefIrradiance: 1000,
		RefTemp:       25,
	},
	"Trina_Solar_TSM_250PA05_08": {
		Name:          "Trina_Solar_TSM_250PA05_08",
		PowerRatedW:   250,
		GammaPmp:      -0.0041,
		IAMB0:         0.05,
		AreaM2:        1.63,
		RefIrradiance: 1000,
		RefTemp:       25,
	},
}

// builtinInverters carries rated AC capacity and measured efficiency curves.
// The first knot of each curve is the power-on threshold.
var builtinInverters = map[string]types.InverterSpec{
	"SMA_America__SB3000TL_US_22__240V_": {
		Name:          "SMA_America__SB3000TL_US_22__240V_",
		PowerACRatedW: 3000,
		Efficiency: []types.EffPoint{
			{DCW: 30, Eta: 0.905},
			{DCW: 300, Eta: 0.950},
			{DCW: 600, Eta: 0.962},
			{DCW: 1500, Eta: 0.970},
			{DCW: 3000, Eta: 0.968},
			{DCW: 3200, Eta: 0.965},
		},
		MaxDCVoltage: 600,
		MaxDCCurrent: 15,
	},
	"SMA_America__SB5000TL_US_22__240V_": {
		Name:          "SMA_America__SB5000TL_US_22__240V_",
		PowerACRatedW: 5000,
		Efficiency: []types.EffPoint{
			{DCW: 35, Eta: 0.910},
			{DCW: 500, Eta: 0.955},
			{DCW: 1000, Eta: 0.966},
			{DCW: 2500, Eta: 0.972},
			{DCW: 5000, Eta: 0.969},
			{DCW: 5300, Eta: 0.966},
		},
		MaxDCVoltage: 600,
		MaxDCCurrent: 25,
	},
	"ABB__MICRO_0_25_I_OUTD_US_208": {
		Name:          "ABB__MICRO_0_25_I_OUTD_US_208",
		PowerACRatedW: 250,
		Efficiency: []types.EffPoint{
			{DCW: 3, Eta: 0.880},
			{DCW: 25, Eta: 0.930},
			{DCW: 100, Eta: 0.955},
			{DCW: 250, Eta: 0.952},
			{DCW: 270, Eta: 0.947},
		},
		MaxDCVoltage: 65,
		MaxDCCurrent: 10.5,
	},
}
