package emissions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines data access for emissions records. Records are written
// once when a measurement is ingested and are read-only thereafter.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	GetByMeasurement(ctx context.Context, measurementID uuid.UUID) (*Record, error)
	ListByFacility(ctx context.Context, facilityID string, from, to time.Time) ([]Record, error)
	AggregateByFacility(ctx context.Context, facilityID string, from, to time.Time) (*Aggregate, error)
}

// GormRepository implements Repository using PostgreSQL via GORM
type GormRepository struct {
	db *gorm.DB
}

// NewRepository creates a new emissions repository
func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *GormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	var rec Record
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *GormRepository) GetByMeasurement(ctx context.Context, measurementID uuid.UUID) (*Record, error) {
	var rec Record
	if err := r.db.WithContext(ctx).First(&rec, "measurement_id = ?", measurementID).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByFacility returns the emissions records behind a facility's
// measurements within a time range, ordered by measurement timestamp
// ascending.
func (r *GormRepository) ListByFacility(ctx context.Context, facilityID string, from, to time.Time) ([]Record, error) {
	var records []Record
	err := r.db.WithContext(ctx).
		Joins("JOIN scada_measurements sm ON sm.id = emissions_records.measurement_id").
		Where("sm.facility_id = ? AND sm.timestamp >= ? AND sm.timestamp <= ?", facilityID, from, to).
		Order("sm.timestamp ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// AggregateByFacility sums emissions over a facility's measurements within a
// time range.
func (r *GormRepository) AggregateByFacility(ctx context.Context, facilityID string, from, to time.Time) (*Aggregate, error) {
	var agg Aggregate
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(sm.id) AS measurement_count,
			COALESCE(SUM(ed.methane_destroyed), 0) AS total_methane_destroyed,
			COALESCE(SUM(ed.co2_equivalent), 0) AS total_co2_equivalent,
			COALESCE(SUM(ed.energy_produced), 0) AS total_energy_produced,
			COALESCE(SUM(ed.gross_emissions_reduction), 0) AS total_gross_emissions_reduction
		FROM scada_measurements sm
		LEFT JOIN emissions_records ed ON ed.measurement_id = sm.id
		WHERE sm.facility_id = ?
		  AND sm.timestamp >= ?
		  AND sm.timestamp <= ?`,
		facilityID, from, to,
	).Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}
