package emissions

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// FacilityReport is the input for the Excel emissions export
type FacilityReport struct {
	FacilityID string
	From       time.Time
	To         time.Time
	Aggregate  Aggregate
	Records    []Record
}

// WriteFacilityReport writes a facility emissions report as an Excel
// workbook: a summary sheet with period totals and a detail sheet with one
// row per emissions record.
func WriteFacilityReport(w io.Writer, report FacilityReport) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	summary := "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return err
	}

	summaryRows := [][]interface{}{
		{"Facility", report.FacilityID},
		{"Period start", report.From.Format("2006-01-02 15:04:05")},
		{"Period end", report.To.Format("2006-01-02 15:04:05")},
		{"Measurements", report.Aggregate.MeasurementCount},
		{"Methane destroyed (m3)", report.Aggregate.TotalMethaneDestroyed},
		{"CO2 equivalent (t)", report.Aggregate.TotalCO2Equivalent},
		{"Energy produced (kWh)", report.Aggregate.TotalEnergyProduced},
		{"Gross emissions reduction (t CO2eq)", report.Aggregate.TotalGrossEmissionsReduction},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(summary, "A", "A", 36)
	_ = f.SetColWidth(summary, "B", "B", 24)

	detail := "Emissions"
	if _, err := f.NewSheet(detail); err != nil {
		return err
	}

	header := []interface{}{
		"Record ID", "Measurement ID", "Calculated at", "Standard",
		"Methane destroyed (m3)", "CO2eq (t)", "GWP", "Energy (kWh)",
		"DEF", "GER (t CO2eq)",
	}
	if err := f.SetSheetRow(detail, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(detail, "A1", "J1", headerStyle); err != nil {
		return err
	}

	for i, rec := range report.Records {
		row := []interface{}{
			rec.ID.String(),
			rec.MeasurementID.String(),
			rec.CalculatedAt.Format("2006-01-02 15:04:05"),
			string(rec.StandardUsed),
			rec.MethaneDestroyed,
			rec.CO2Equivalent,
			rec.GlobalWarmingPotential,
			rec.EnergyProduced,
			rec.DEFValue,
			rec.GrossEmissionsReduction,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(detail, cell, &row); err != nil {
			return err
		}
	}
	_ = f.AutoFilter(detail, "A1:J1", nil)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
