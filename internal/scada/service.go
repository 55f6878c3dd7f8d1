package scada

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alimentary/brrp/carbon-backend/internal/emissions"
)

// Service handles SCADA measurement ingestion and queries. Every recorded
// measurement synchronously produces its 1:1 emissions record.
type Service struct {
	repo      Repository
	emissions *emissions.Service
	logger    *zap.Logger
}

// NewService creates a new SCADA service
func NewService(repo Repository, emissionsService *emissions.Service, logger *zap.Logger) *Service {
	return &Service{repo: repo, emissions: emissionsService, logger: logger}
}

// Record validates and persists one measurement, then calculates its
// emissions record. Returns ValidationErrors when the input is rejected; no
// row is created in that case.
func (s *Service) Record(ctx context.Context, req *RecordRequest, standard emissions.Standard) (*Measurement, *emissions.Record, error) {
	if standard == "" {
		standard = emissions.StandardACM0022
	}

	errs := ValidateRecordRequest(req)
	if !standard.IsKnown() {
		errs = append(errs, FieldError{Field: "standard", Message: fmt.Sprintf("unsupported accounting standard: %s", standard)})
	}
	if len(errs) > 0 {
		return nil, nil, errs
	}

	m := &Measurement{
		FacilityID:          req.FacilityID,
		Timestamp:           req.Timestamp,
		WasteProcessed:      req.WasteProcessed,
		MethaneGenerated:    req.MethaneGenerated,
		MethaneDestroyed:    req.MethaneDestroyed,
		ElectricityProduced: req.ElectricityProduced,
		ProcessHeatProduced: req.ProcessHeatProduced,
	}
	if req.Location != nil {
		lat, lon := req.Location.Latitude, req.Location.Longitude
		m.Latitude = &lat
		m.Longitude = &lon
		m.LocationAddress = req.Location.Address
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, nil, fmt.Errorf("failed to record measurement: %w", err)
	}

	rec, err := s.emissions.CalculateForMeasurement(ctx, m.ID, emissions.CalculationInput{
		MethaneDestroyed:    m.MethaneDestroyed,
		ElectricityProduced: m.ElectricityProduced,
		ProcessHeatProduced: m.ProcessHeatProduced,
	}, standard)
	if err != nil {
		return nil, nil, fmt.Errorf("measurement %s recorded but calculation failed: %w", m.ID, err)
	}

	s.logger.Info("measurement recorded",
		zap.String("measurement_id", m.ID.String()),
		zap.String("facility_id", m.FacilityID),
		zap.Float64("methane_destroyed", m.MethaneDestroyed))

	return m, rec, nil
}

// Get returns one measurement by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Measurement, error) {
	return s.repo.GetByID(ctx, id)
}

// Measurements returns a facility's measurements within a time range,
// ordered by timestamp ascending.
func (s *Service) Measurements(ctx context.Context, facilityID string, from, to time.Time) ([]Measurement, error) {
	return s.repo.ListByFacility(ctx, facilityID, from, to)
}
