package emissions

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteFacilityReport(t *testing.T) {
	rec := Calculate(CalculationInput{MethaneDestroyed: 2485, ElectricityProduced: floatPtr(1200)}, StandardACM0022)
	rec.ID = uuid.New()
	rec.MeasurementID = uuid.New()
	rec.CalculatedAt = time.Now().UTC()

	report := FacilityReport{
		FacilityID: "BRRP-NELSON",
		From:       time.Now().Add(-24 * time.Hour),
		To:         time.Now(),
		Aggregate: Aggregate{
			MeasurementCount:             1,
			TotalMethaneDestroyed:        rec.MethaneDestroyed,
			TotalCO2Equivalent:           rec.CO2Equivalent,
			TotalEnergyProduced:          rec.EnergyProduced,
			TotalGrossEmissionsReduction: rec.GrossEmissionsReduction,
		},
		Records: []Record{rec},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteFacilityReport(&buf, report))
	require.NotZero(t, buf.Len())

	// Workbook must open and carry both sheets
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), "Summary")
	assert.Contains(t, f.GetSheetList(), "Emissions")

	cell, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "BRRP-NELSON", cell)
}
