package scada

import (
	"fmt"
	"strings"

	"alimentary/brrp/carbon-backend/pkg/geospatial"
)

// FieldError describes a single rejected input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the field-level error list returned for malformed
// measurements. No record is created when validation fails.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "invalid measurement: " + strings.Join(msgs, "; ")
}

// ValidateRecordRequest checks a measurement before ingestion
func ValidateRecordRequest(req *RecordRequest) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(req.FacilityID) == "" {
		errs = append(errs, FieldError{Field: "facility_id", Message: "facility ID is required"})
	}
	if req.Timestamp.IsZero() {
		errs = append(errs, FieldError{Field: "timestamp", Message: "timestamp is required"})
	}
	if req.WasteProcessed < 0 {
		errs = append(errs, FieldError{Field: "waste_processed", Message: "waste processed cannot be negative"})
	}
	if req.MethaneGenerated < 0 {
		errs = append(errs, FieldError{Field: "methane_generated", Message: "methane generated cannot be negative"})
	}
	if req.MethaneDestroyed < 0 {
		errs = append(errs, FieldError{Field: "methane_destroyed", Message: "methane destroyed cannot be negative"})
	}
	if req.MethaneDestroyed > req.MethaneGenerated {
		errs = append(errs, FieldError{Field: "methane_destroyed", Message: "methane destroyed cannot exceed methane generated"})
	}
	if req.ElectricityProduced != nil && *req.ElectricityProduced < 0 {
		errs = append(errs, FieldError{Field: "electricity_produced", Message: "electricity produced cannot be negative"})
	}
	if req.ProcessHeatProduced != nil && *req.ProcessHeatProduced < 0 {
		errs = append(errs, FieldError{Field: "process_heat_produced", Message: "process heat produced cannot be negative"})
	}
	if req.Location != nil {
		if err := geospatial.ValidateCoordinates(req.Location.Latitude, req.Location.Longitude); err != nil {
			errs = append(errs, FieldError{Field: "location", Message: err.Error()})
		}
	}

	return errs
}
