package credits

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines data access for carbon credits. Credits are the only
// entity with a read-modify-write discipline; every status change goes
// through a status-guarded conditional update so concurrent callers collapse
// to a single winner at the row level.
type Repository interface {
	Create(ctx context.Context, credit *CarbonCredit) error
	GetByID(ctx context.Context, id uuid.UUID) (*CarbonCredit, error)
	GetByEmissionsRecord(ctx context.Context, emissionsRecordID uuid.UUID) (*CarbonCredit, error)
	MarkBudgetValidated(ctx context.Context, id uuid.UUID) error

	// MakeAvailable lists a MINTED credit; returns false when the credit
	// was not in MINTED state.
	MakeAvailable(ctx context.Context, id uuid.UUID, marketValue float64, currency string) (bool, error)

	// MarkSold transitions AVAILABLE -> SOLD; returns false when the
	// credit was not AVAILABLE.
	MarkSold(ctx context.Context, id uuid.UUID) (bool, error)

	// MarkDestroyed transitions any non-destroyed credit to DESTROYED;
	// returns false when the credit was already DESTROYED.
	MarkDestroyed(ctx context.Context, id uuid.UUID) (bool, error)
}

// GormRepository implements Repository using PostgreSQL via GORM
type GormRepository struct {
	db *gorm.DB
}

// NewRepository creates a new carbon credit repository
func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, credit *CarbonCredit) error {
	if err := r.db.WithContext(ctx).Create(credit).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateMint
		}
		return err
	}
	return nil
}

func (r *GormRepository) GetByID(ctx context.Context, id uuid.UUID) (*CarbonCredit, error) {
	var credit CarbonCredit
	if err := r.db.WithContext(ctx).First(&credit, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &credit, nil
}

func (r *GormRepository) GetByEmissionsRecord(ctx context.Context, emissionsRecordID uuid.UUID) (*CarbonCredit, error) {
	var credit CarbonCredit
	if err := r.db.WithContext(ctx).First(&credit, "emissions_record_id = ?", emissionsRecordID).Error; err != nil {
		return nil, err
	}
	return &credit, nil
}

func (r *GormRepository) MarkBudgetValidated(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&CarbonCredit{}).
		Where("id = ?", id).
		Update("national_carbon_budget_validated", true).Error
}

func (r *GormRepository) MakeAvailable(ctx context.Context, id uuid.UUID, marketValue float64, currency string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&CarbonCredit{}).
		Where("id = ? AND status = ? AND national_carbon_budget_validated = true", id, StatusMinted).
		Updates(map[string]interface{}{
			"status":       StatusAvailable,
			"market_value": marketValue,
			"currency":     currency,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *GormRepository) MarkSold(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&CarbonCredit{}).
		Where("id = ? AND status = ?", id, StatusAvailable).
		Update("status", StatusSold)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *GormRepository) MarkDestroyed(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&CarbonCredit{}).
		Where("id = ? AND status <> ?", id, StatusDestroyed).
		Update("status", StatusDestroyed)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
