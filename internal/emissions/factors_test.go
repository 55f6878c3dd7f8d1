package emissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMFEEmissionFactor(t *testing.T) {
	factor, err := MFEEmissionFactor(WasteTypeFood)
	require.NoError(t, err)
	assert.Equal(t, 0.64, factor)

	_, err = MFEEmissionFactor(WasteType("PLASTIC"))
	assert.Error(t, err)
}

func TestEmissionsReduction(t *testing.T) {
	// E = Q x F: 10 t food waste at 0.64
	reduction, err := EmissionsReduction(10, WasteTypeFood)
	require.NoError(t, err)
	assert.Equal(t, 6.4, reduction)

	reduction, err = EmissionsReduction(3, WasteTypeSewageSludge)
	require.NoError(t, err)
	assert.Equal(t, 0.36, reduction)
}

func TestEstimateMethaneGeneration(t *testing.T) {
	m3, err := EstimateMethaneGeneration(5, MethaneSourceSewerageSludge)
	require.NoError(t, err)
	assert.Equal(t, 100.0, m3)

	m3, err = EstimateMethaneGeneration(2, MethaneSourceLandfillOrganic)
	require.NoError(t, err)
	assert.Equal(t, 200.0, m3)

	_, err = EstimateMethaneGeneration(1, MethaneSource("COMPOST"))
	assert.Error(t, err)
}

func TestEstimateDailyReduction(t *testing.T) {
	// Zero quantities fall back to the demonstrator defaults:
	// 3 t sludge * 0.12 + 7 t green * 0.18
	result := EstimateDailyReduction(0, 0, 0)

	assert.Equal(t, 0.36, result.SewageSludgeReduction)
	assert.Equal(t, 1.26, result.GreenWasteReduction)
	assert.Equal(t, 0.0, result.GrapeMarcReduction)
	assert.Equal(t, 1.62, result.TotalReduction)
	assert.Equal(t, 1200.0, result.ElectricityProduced)
}

func TestEstimateDailyReductionWithGrapeMarc(t *testing.T) {
	result := EstimateDailyReduction(3, 7, 2)

	assert.Equal(t, 0.36, result.GrapeMarcReduction) // 2 t * 0.18
	assert.Equal(t, 1.98, result.TotalReduction)
}
