package econ

// CO2SavedKg returns the grid emissions avoided by the given energy in kWh at
// a grid intensity in g CO₂ per kWh.
func CO2SavedKg(energyKWh, gramsPerKWh float64) float64 {
	return energyKWh * gramsPerKWh / 1000
}
