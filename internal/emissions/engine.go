package emissions

import (
	"fmt"
	"math"
)

// Physical constants. Fixed rather than configurable per call so that every
// calculation across the system's lifetime is reproducible.
const (
	// methaneDensityKgPerM3 is the density of methane at standard conditions
	methaneDensityKgPerM3 = 0.657

	// methaneGWP is the 100-year Global Warming Potential of methane
	// per IPCC AR5
	methaneGWP = 28.0

	// mjPerKWh converts process heat (MJ) to kWh-equivalent
	mjPerKWh = 3.6
)

// GWP bounds accepted by IPCC AR5 for methane over a 100-year horizon
const (
	gwpLowerBound = 28.0
	gwpUpperBound = 36.0
)

// CalculationInput holds the measurement quantities the engine consumes
type CalculationInput struct {
	MethaneDestroyed    float64  // m3
	ElectricityProduced *float64 // kWh
	ProcessHeatProduced *float64 // MJ
}

// Calculate converts a measurement into an emissions record using the given
// accounting standard. The function is total over its validated-input domain:
// validation belongs to the measurement log, not the engine.
//
// co2Equivalent and grossEmissionsReduction are rounded to 3 decimal places
// and defValue to 6; the rounding is part of the contract since downstream
// consistency checks depend on it.
func Calculate(in CalculationInput, standard Standard) Record {
	co2Equivalent := calculateCO2Equivalent(in.MethaneDestroyed)

	energyProduced := 0.0
	switch {
	case in.ElectricityProduced != nil && *in.ElectricityProduced > 0:
		energyProduced = *in.ElectricityProduced
	case in.ProcessHeatProduced != nil && *in.ProcessHeatProduced > 0:
		energyProduced = *in.ProcessHeatProduced / mjPerKWh
	}

	defValue := calculateDEF(energyProduced, in.MethaneDestroyed)

	// GER is the CO2 equivalent avoided through methane destruction. A
	// multi-pathway extension would sum independent reduction sources here.
	grossEmissionsReduction := co2Equivalent

	return Record{
		MethaneDestroyed:        in.MethaneDestroyed,
		CO2Equivalent:           co2Equivalent,
		GlobalWarmingPotential:  methaneGWP,
		EnergyProduced:          energyProduced,
		DEFValue:                defValue,
		GrossEmissionsReduction: grossEmissionsReduction,
		StandardUsed:            standard,
	}
}

// calculateCO2Equivalent converts destroyed methane volume (m3) into tonnes
// of CO2 equivalent: m3 -> kg via density, kg -> tonnes, tonnes x GWP.
func calculateCO2Equivalent(methaneDestroyedM3 float64) float64 {
	methaneKg := methaneDestroyedM3 * methaneDensityKgPerM3
	methaneTonnes := methaneKg / 1000
	return round3(methaneTonnes * methaneGWP)
}

// calculateDEF derives the default emission factor per unit of energy
// produced. Zero energy yields a zero factor.
func calculateDEF(energyProducedKWh, methaneDestroyedM3 float64) float64 {
	if energyProducedKWh == 0 {
		return 0
	}
	methaneTonnes := methaneDestroyedM3 * methaneDensityKgPerM3 / 1000
	return round6(methaneTonnes * methaneGWP / energyProducedKWh)
}

// ValidationResult is the advisory outcome of checking a record against an
// accounting standard. Callers decide whether to block verification on it.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateAgainstStandard checks a calculated record against the invariants
// of the given accounting standard.
func ValidateAgainstStandard(rec *Record, standard Standard) ValidationResult {
	var errs []string

	if rec.GlobalWarmingPotential < gwpLowerBound || rec.GlobalWarmingPotential > gwpUpperBound {
		errs = append(errs, fmt.Sprintf("GWP value %.1f outside IPCC AR5 range (%.0f-%.0f)",
			rec.GlobalWarmingPotential, gwpLowerBound, gwpUpperBound))
	}
	if rec.CO2Equivalent <= 0 {
		errs = append(errs, "CO2 equivalent must be positive")
	}
	if math.Abs(rec.GrossEmissionsReduction-rec.CO2Equivalent) > 0.001 {
		errs = append(errs, "GER calculation mismatch")
	}

	switch standard {
	case StandardACM0022:
		if rec.MethaneDestroyed <= 0 {
			errs = append(errs, "ACM0022 requires positive methane destruction")
		}
	case StandardAM0053:
		if rec.EnergyProduced <= 0 {
			errs = append(errs, "AM0053 requires positive energy production")
		}
	case StandardAMSID:
		if rec.EnergyProduced <= 0 {
			errs = append(errs, "AMS-I.D requires electricity generation")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown accounting standard: %s", standard))
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round6(v float64) float64 {
	return math.Round(v*1000000) / 1000000
}
