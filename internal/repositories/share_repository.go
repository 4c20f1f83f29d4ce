package repositories

import (
	"context"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	apperrors "github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"gorm.io/gorm"
)

// ShareRepository stores the append-only log of plant shares
type ShareRepository interface {
	Create(ctx context.Context, record *models.SharedContentRecord) error
	ListSharedWith(ctx context.Context, accountID uint) ([]models.SharedContentRecord, error)
	WithTx(tx *gorm.DB) ShareRepository
}

type PostgresShareRepository struct {
	db *gorm.DB
}

func NewPostgresShareRepository(db *gorm.DB) *PostgresShareRepository {
	return &PostgresShareRepository{db: db}
}

func (r *PostgresShareRepository) WithTx(tx *gorm.DB) ShareRepository {
	return &PostgresShareRepository{db: tx}
}

func (r *PostgresShareRepository) Create(ctx context.Context, record *models.SharedContentRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return apperrors.Internal(err, "failed to record share")
	}
	return nil
}

// ListSharedWith returns the shares addressed to accountID, newest first
func (r *PostgresShareRepository) ListSharedWith(ctx context.Context, accountID uint) ([]models.SharedContentRecord, error) {
	records := []models.SharedContentRecord{}
	err := r.db.WithContext(ctx).
		Where("shared_with = ?", accountID).
		Order("created_at DESC, id DESC").
		Find(&records).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list shares")
	}
	return records, nil
}
