package verification

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alimentary/brrp/carbon-backend/internal/emissions"
)

func TestBuildReport(t *testing.T) {
	cert := "https://certs.example.com/abc.pdf"
	rec := &Record{
		ID:                  uuid.New(),
		EmissionsRecordID:   uuid.New(),
		Standard:            StandardToituEkos,
		Status:              StatusVerified,
		VerifiedBy:          "Toitu Envirocare",
		VerificationDate:    time.Now().UTC(),
		NextVerificationDue: time.Now().UTC().AddDate(0, 6, 0),
		CertificateURL:      &cert,
	}
	em := &emissions.Record{
		ID:                      rec.EmissionsRecordID,
		MethaneDestroyed:        2485,
		CO2Equivalent:           45.714,
		GrossEmissionsReduction: 45.714,
		StandardUsed:            emissions.StandardACM0022,
	}

	report := BuildReport(rec, em)

	assert.Equal(t, rec.ID.String(), report.VerificationID)
	assert.Equal(t, em.ID.String(), report.EmissionsRecordID)
	assert.Equal(t, StandardToituEkos, report.Standard)
	assert.Equal(t, 45.714, report.Emissions.CO2Equivalent)
	assert.Regexp(t, `^VRPT-\d+$`, report.ReportID)
}

func TestWriteReportPDF(t *testing.T) {
	rec := &Record{
		ID:                  uuid.New(),
		EmissionsRecordID:   uuid.New(),
		Standard:            StandardVerra,
		Status:              StatusVerified,
		VerifiedBy:          "SeeGreen Solutions LLP",
		VerificationDate:    time.Now().UTC(),
		NextVerificationDue: time.Now().UTC().AddDate(0, 6, 0),
	}
	em := &emissions.Record{
		ID:                      rec.EmissionsRecordID,
		MethaneDestroyed:        2485,
		CO2Equivalent:           45.714,
		GrossEmissionsReduction: 45.714,
		StandardUsed:            emissions.StandardACM0022,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReportPDF(&buf, BuildReport(rec, em)))
	require.NotZero(t, buf.Len())
	assert.Equal(t, "%PDF", buf.String()[:4])
}
