package scada

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines data access for SCADA measurements. Measurements are
// append-only so the interface deliberately has no update or delete.
type Repository interface {
	Create(ctx context.Context, m *Measurement) error
	GetByID(ctx context.Context, id uuid.UUID) (*Measurement, error)
	ListByFacility(ctx context.Context, facilityID string, from, to time.Time) ([]Measurement, error)
}

// GormRepository implements Repository using PostgreSQL via GORM
type GormRepository struct {
	db *gorm.DB
}

// NewRepository creates a new measurement repository
func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, m *Measurement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *GormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Measurement, error) {
	var m Measurement
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByFacility returns measurements for a facility within a time range,
// ordered by timestamp ascending.
func (r *GormRepository) ListByFacility(ctx context.Context, facilityID string, from, to time.Time) ([]Measurement, error) {
	var measurements []Measurement
	err := r.db.WithContext(ctx).
		Where("facility_id = ? AND timestamp >= ? AND timestamp <= ?", facilityID, from, to).
		Order("timestamp ASC").
		Find(&measurements).Error
	if err != nil {
		return nil, err
	}
	return measurements, nil
}
