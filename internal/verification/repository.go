package verification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines data access for verification records. Records are never
// deleted; history is retained.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	Update(ctx context.Context, rec *Record) error
	ListByEmissionsRecord(ctx context.Context, emissionsRecordID uuid.UUID) ([]Record, error)
	ListDue(ctx context.Context, asOf time.Time, limit int) ([]Record, error)
}

// GormRepository implements Repository using PostgreSQL via GORM
type GormRepository struct {
	db *gorm.DB
}

// NewRepository creates a new verification repository
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

func (r *GormRepository) Update(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *GormRepository) ListByEmissionsRecord(ctx context.Context, emissionsRecordID uuid.UUID) ([]Record, error) {
	var records []Record
	err := r.db.WithContext(ctx).
		Where("emissions_record_id = ?", emissionsRecordID).
		Order("verification_date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListDue returns VERIFIED records whose next verification date has passed
func (r *GormRepository) ListDue(ctx context.Context, asOf time.Time, limit int) ([]Record, error) {
	var records []Record
	query := r.db.WithContext(ctx).
		Where("status = ? AND next_verification_due <= ?", StatusVerified, asOf).
		Order("next_verification_due ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
