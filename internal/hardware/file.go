package hardware

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/chrissnell/solarsim/internal/types"
)

// catalogFile is the on-disk schema of a catalog extension. Entries with a
// name already in the catalog override it.
type catalogFile struct {
	Modules   []moduleEntry   `yaml:"modules"`
	Inverters []inverterEntry `yaml:"inverters"`
}

type moduleEntry struct {
	Name          string  `yaml:"name"`
	PowerRatedW   float64 `yaml:"power-rated-w"`
	GammaPmp      float64 `yaml:"gamma-pmp"`
	IAMB0         float64 `yaml:"iam-b0"`
	AreaM2        float64 `yaml:"area-m2"`
	RefIrradiance float64 `yaml:"ref-irradiance"`
	RefTemp       float64 `yaml:"ref-temp"`
}

type inverterEntry struct {
	Name          string     `yaml:"name"`
	PowerACRatedW float64    `yaml:"power-ac-rated-w"`
	Efficiency    []effEntry `yaml:"efficiency"`
	MaxDCVoltage  float64    `yaml:"max-dc-voltage"`
	MaxDCCurrent  float64    `yaml:"max-dc-current"`
}

type effEntry struct {
	DCW float64 `yaml:"dc-w"`
	Eta float64 `yaml:"eta"`
}

// LoadFile merges a YAML catalog extension into the catalog. Every entry is
// validated before any is applied, so a bad file changes nothing.
func (c *Catalog) LoadFile(filename string) error {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("could not read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return types.NewValidationError("catalog", "could not parse %s: %v", filename, err)
	}

	modules := make([]types.ModuleSpec, 0, len(file.Modules))
	for i, e := range file.Modules {
		if e.Name == "" {
			return types.NewValidationError("catalog", "module entry %d has no name", i)
		}
		spec := e.toSpec()
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("catalog module %q: %w", e.Name, err)
		}
		modules = append(modules, spec)
	}

	inverters := make([]types.InverterSpec, 0, len(file.Inverters))
	for i, e := range file.Inverters {
		if e.Name == "" {
			return types.NewValidationError("catalog", "inverter entry %d has no name", i)
		}
		spec := e.toSpec()
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("catalog inverter %q: %w", e.Name, err)
		}
		inverters = append(inverters, spec)
	}

	for _, spec := range modules {
		c.modules[spec.Name] = spec
	}
	for _, spec := range inverters {
		c.inverters[spec.Name] = spec
	}
	return nil
}

// toSpec fills in the standard-test-condition reference values when the file
// omits them.
func (e moduleEntry) toSpec() types.ModuleSpec {
	spec := types.ModuleSpec{
		Name:          e.Name,
		PowerRatedW:   e.PowerRatedW,
		GammaPmp:      e.GammaPmp,
		IAMB0:         e.IAMB0,
		AreaM2:        e.AreaM2,
		RefIrradiance: e.RefIrradiance,
		RefTemp:       e.RefTemp,
	}
	if spec.RefIrradiance == 0 {
		spec.RefIrradiance = 1000
	}
	if spec.RefTemp == 0 {
		spec.RefTemp = 25
	}
	if spec.IAMB0 == 0 {
		spec.IAMB0 = 0.05
	}
	return spec
}

func (e inverterEntry) toSpec() types.InverterSpec {
	spec := types.InverterSpec{
		Name:          e.Name,
		PowerACRatedW: e.PowerACRatedW,
		MaxDCVoltage:  e.MaxDCVoltage,
		MaxDCCurrent:  e.MaxDCCurrent,
	}
	for _, pt := range e.Efficiency {
		spec.Efficiency = append(spec.Efficiency, types.EffPoint{DCW: pt.DCW, Eta: pt.Eta})
	}
	return spec
}
