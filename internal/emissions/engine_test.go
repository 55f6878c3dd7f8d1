package emissions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestCalculateCO2Equivalent(t *testing.T) {
	// 2485 m3 destroyed: 2485 * 0.657 / 1000 * 28 = 45.714 t CO2eq
	rec := Calculate(CalculationInput{MethaneDestroyed: 2485}, StandardACM0022)

	assert.Equal(t, 45.714, rec.CO2Equivalent)
	assert.Equal(t, 28.0, rec.GlobalWarmingPotential)
	assert.Equal(t, Standard("ACM0022"), rec.StandardUsed)
}

func TestCalculateGERIdentity(t *testing.T) {
	inputs := []CalculationInput{
		{MethaneDestroyed: 0},
		{MethaneDestroyed: 1},
		{MethaneDestroyed: 2485, ElectricityProduced: floatPtr(1200)},
		{MethaneDestroyed: 99999.5, ProcessHeatProduced: floatPtr(360)},
	}

	for _, in := range inputs {
		rec := Calculate(in, StandardACM0022)
		assert.Equal(t, rec.CO2Equivalent, rec.GrossEmissionsReduction,
			"GER must equal CO2 equivalent for the methane-destruction pathway")
	}
}

func TestCalculateGWPWithinIPCCRange(t *testing.T) {
	rec := Calculate(CalculationInput{MethaneDestroyed: 500}, StandardACM0022)
	assert.GreaterOrEqual(t, rec.GlobalWarmingPotential, 28.0)
	assert.LessOrEqual(t, rec.GlobalWarmingPotential, 36.0)
}

func TestCalculateEnergyFallback(t *testing.T) {
	// Electricity wins when present
	rec := Calculate(CalculationInput{
		MethaneDestroyed:    100,
		ElectricityProduced: floatPtr(1200),
		ProcessHeatProduced: floatPtr(7200),
	}, StandardAM0053)
	assert.Equal(t, 1200.0, rec.EnergyProduced)

	// Process heat converts MJ -> kWh at 3.6
	rec = Calculate(CalculationInput{
		MethaneDestroyed:    100,
		ProcessHeatProduced: floatPtr(7200),
	}, StandardAM0053)
	assert.Equal(t, 2000.0, rec.EnergyProduced)

	// Neither present
	rec = Calculate(CalculationInput{MethaneDestroyed: 100}, StandardACM0022)
	assert.Equal(t, 0.0, rec.EnergyProduced)
}

func TestCalculateDEF(t *testing.T) {
	// No energy produced means a zero emission factor
	rec := Calculate(CalculationInput{MethaneDestroyed: 2485}, StandardACM0022)
	assert.Equal(t, 0.0, rec.DEFValue)

	// 2485 m3 and 1200 kWh: (2485*0.657/1000*28)/1200 = 0.038095...
	rec = Calculate(CalculationInput{
		MethaneDestroyed:    2485,
		ElectricityProduced: floatPtr(1200),
	}, StandardACM0022)
	assert.Equal(t, 0.038095, rec.DEFValue)
}

func TestCalculateDeterministic(t *testing.T) {
	in := CalculationInput{
		MethaneDestroyed:    1234.5678,
		ElectricityProduced: floatPtr(987.654),
	}

	first := Calculate(in, StandardACM0022)
	second := Calculate(in, StandardACM0022)

	assert.Equal(t, first, second, "calculation must be bit-identical across calls")
}

func TestValidateAgainstStandard(t *testing.T) {
	valid := Calculate(CalculationInput{
		MethaneDestroyed:    2485,
		ElectricityProduced: floatPtr(1200),
	}, StandardACM0022)

	result := ValidateAgainstStandard(&valid, StandardACM0022)
	require.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateAgainstStandardViolations(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Record)
		standard Standard
		wantErr  string
	}{
		{
			name:     "GWP below AR5 range",
			mutate:   func(r *Record) { r.GlobalWarmingPotential = 25 },
			standard: StandardACM0022,
			wantErr:  "outside IPCC AR5 range",
		},
		{
			name:     "GWP above AR5 range",
			mutate:   func(r *Record) { r.GlobalWarmingPotential = 40 },
			standard: StandardACM0022,
			wantErr:  "outside IPCC AR5 range",
		},
		{
			name:     "non-positive CO2 equivalent",
			mutate:   func(r *Record) { r.CO2Equivalent = 0; r.GrossEmissionsReduction = 0; r.MethaneDestroyed = 0 },
			standard: StandardACM0022,
			wantErr:  "CO2 equivalent must be positive",
		},
		{
			name:     "GER mismatch",
			mutate:   func(r *Record) { r.GrossEmissionsReduction = r.CO2Equivalent + 1 },
			standard: StandardACM0022,
			wantErr:  "GER calculation mismatch",
		},
		{
			name:     "ACM0022 without methane destruction",
			mutate:   func(r *Record) { r.MethaneDestroyed = 0 },
			standard: StandardACM0022,
			wantErr:  "ACM0022 requires positive methane destruction",
		},
		{
			name:     "AM0053 without energy",
			mutate:   func(r *Record) { r.EnergyProduced = 0 },
			standard: StandardAM0053,
			wantErr:  "AM0053 requires positive energy production",
		},
		{
			name:     "AMS-I.D without electricity",
			mutate:   func(r *Record) { r.EnergyProduced = 0 },
			standard: StandardAMSID,
			wantErr:  "AMS-I.D requires electricity generation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Calculate(CalculationInput{
				MethaneDestroyed:    2485,
				ElectricityProduced: floatPtr(1200),
			}, tt.standard)
			tt.mutate(&rec)

			result := ValidateAgainstStandard(&rec, tt.standard)
			require.False(t, result.Valid)

			found := false
			for _, e := range result.Errors {
				if strings.Contains(e, tt.wantErr) {
					found = true
				}
			}
			assert.True(t, found, "expected error containing %q, got %v", tt.wantErr, result.Errors)
		})
	}
}

func TestValidateUnknownStandard(t *testing.T) {
	rec := Calculate(CalculationInput{MethaneDestroyed: 100}, Standard("VM0007"))
	result := ValidateAgainstStandard(&rec, Standard("VM0007"))
	assert.False(t, result.Valid)
}
