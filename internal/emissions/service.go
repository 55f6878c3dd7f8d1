package emissions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrAlreadyCalculated is returned when an emissions record already exists
// for the measurement. The unique constraint on measurement_id enforces the
// 1:1 relationship at the storage boundary.
var ErrAlreadyCalculated = errors.New("emissions record already exists for measurement")

// Service wraps the pure calculation engine with persistence
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new emissions service
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CalculateForMeasurement runs the engine for one measurement and persists
// the result. Called synchronously from measurement ingestion.
func (s *Service) CalculateForMeasurement(ctx context.Context, measurementID uuid.UUID, in CalculationInput, standard Standard) (*Record, error) {
	if !standard.IsKnown() {
		return nil, fmt.Errorf("unsupported accounting standard: %s", standard)
	}

	rec := Calculate(in, standard)
	rec.MeasurementID = measurementID
	rec.CalculatedAt = time.Now().UTC()

	if err := s.repo.Create(ctx, &rec); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyCalculated
		}
		return nil, fmt.Errorf("failed to save emissions record: %w", err)
	}

	s.logger.Info("emissions record calculated",
		zap.String("measurement_id", measurementID.String()),
		zap.String("standard", string(standard)),
		zap.Float64("co2_equivalent", rec.CO2Equivalent),
		zap.Float64("gross_emissions_reduction", rec.GrossEmissionsReduction))

	return &rec, nil
}

// Get returns an emissions record by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	return s.repo.GetByID(ctx, id)
}

// GetForMeasurement returns the emissions record for a measurement
func (s *Service) GetForMeasurement(ctx context.Context, measurementID uuid.UUID) (*Record, error) {
	return s.repo.GetByMeasurement(ctx, measurementID)
}

// AggregateByFacility sums emissions for a facility over a period
func (s *Service) AggregateByFacility(ctx context.Context, facilityID string, from, to time.Time) (*Aggregate, error) {
	return s.repo.AggregateByFacility(ctx, facilityID, from, to)
}

// RecordsByFacility lists a facility's emissions records for a period
func (s *Service) RecordsByFacility(ctx context.Context, facilityID string, from, to time.Time) ([]Record, error) {
	return s.repo.ListByFacility(ctx, facilityID, from, to)
}
