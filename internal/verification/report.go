package verification

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"alimentary/brrp/carbon-backend/internal/emissions"
)

// Report is the structured verification report for one emissions record
type Report struct {
	ReportID          string           `json:"report_id"`
	VerificationID    string           `json:"verification_id"`
	EmissionsRecordID string           `json:"emissions_record_id"`
	Standard          Standard         `json:"standard"`
	VerifiedBy        string           `json:"verified_by"`
	VerificationDate  time.Time        `json:"verification_date"`
	Status            Status           `json:"status"`
	Emissions         EmissionsSummary `json:"emissions_summary"`
	NextVerification  time.Time        `json:"next_verification"`
	CertificateURL    *string          `json:"certificate_url,omitempty"`
	Notes             *string          `json:"notes,omitempty"`
	GeneratedAt       time.Time        `json:"generated_at"`
}

// EmissionsSummary is the slice of the emissions record included in reports
type EmissionsSummary struct {
	MethaneDestroyed        float64            `json:"methane_destroyed"`
	CO2Equivalent           float64            `json:"co2_equivalent"`
	GrossEmissionsReduction float64            `json:"gross_emissions_reduction"`
	StandardUsed            emissions.Standard `json:"standard_used"`
}

// BuildReport assembles the verification report for a record and its
// emissions data.
func BuildReport(rec *Record, em *emissions.Record) Report {
	now := time.Now().UTC()
	return Report{
		ReportID:          fmt.Sprintf("VRPT-%d", now.UnixMilli()),
		VerificationID:    rec.ID.String(),
		EmissionsRecordID: em.ID.String(),
		Standard:          rec.Standard,
		VerifiedBy:        rec.VerifiedBy,
		VerificationDate:  rec.VerificationDate,
		Status:            rec.Status,
		Emissions: EmissionsSummary{
			MethaneDestroyed:        em.MethaneDestroyed,
			CO2Equivalent:           em.CO2Equivalent,
			GrossEmissionsReduction: em.GrossEmissionsReduction,
			StandardUsed:            em.StandardUsed,
		},
		NextVerification: rec.NextVerificationDue,
		CertificateURL:   rec.CertificateURL,
		Notes:            rec.Notes,
		GeneratedAt:      now,
	}
}

// WriteReportPDF renders a verification report as a PDF document
func WriteReportPDF(w io.Writer, report Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Emissions Verification Report")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.Cell(0, 6, fmt.Sprintf("Report %s, generated %s", report.ReportID, report.GeneratedAt.Format("2 January 2006 15:04 MST")))
	pdf.Ln(12)
	pdf.SetTextColor(0, 0, 0)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(70, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	row("Verification ID", report.VerificationID)
	row("Emissions record", report.EmissionsRecordID)
	row("Verification standard", string(report.Standard))
	row("Verified by", report.VerifiedBy)
	row("Verification date", report.VerificationDate.Format("2 January 2006"))
	row("Status", string(report.Status))
	row("Next verification due", report.NextVerification.Format("2 January 2006"))
	if report.CertificateURL != nil {
		row("Certificate", *report.CertificateURL)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Emissions Summary")
	pdf.Ln(10)
	row("Accounting standard", string(report.Emissions.StandardUsed))
	row("Methane destroyed", fmt.Sprintf("%.3f m3", report.Emissions.MethaneDestroyed))
	row("CO2 equivalent", fmt.Sprintf("%.3f t CO2eq", report.Emissions.CO2Equivalent))
	row("Gross emissions reduction", fmt.Sprintf("%.3f t CO2eq", report.Emissions.GrossEmissionsReduction))

	if report.Notes != nil && *report.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Notes")
		pdf.Ln(10)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, *report.Notes, "", "L", false)
	}

	return pdf.Output(w)
}
