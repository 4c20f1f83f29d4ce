package repositories

import (
	"context"
	"errors"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	apperrors "github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VisibilityRepository defines the interface for per-account policy storage
type VisibilityRepository interface {
	// FindByAccountID returns nil, nil when the account never saved a policy.
	FindByAccountID(ctx context.Context, accountID uint) (*models.VisibilityPolicy, error)
	Upsert(ctx context.Context, policy *models.VisibilityPolicy) error
	PrivateAccountIDs(ctx context.Context) ([]uint, error)
}

type PostgresVisibilityRepository struct {
	db *gorm.DB
}

func NewPostgresVisibilityRepository(db *gorm.DB) *PostgresVisibilityRepository {
	return &PostgresVisibilityRepository{db: db}
}

func (r *PostgresVisibilityRepository) FindByAccountID(ctx context.Context, accountID uint) (*models.VisibilityPolicy, error) {
	var policy models.VisibilityPolicy
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&policy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Internal(err, "failed to load visibility policy")
	}
	return &policy, nil
}

// Upsert writes the full policy row, replacing any stored values
func (r *PostgresVisibilityRepository) Upsert(ctx context.Context, policy *models.VisibilityPolicy) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_profile_public", "allow_friend_requests", "font_size", "updated_at"}),
	}).Create(policy).Error
	if err != nil {
		return apperrors.Internal(err, "failed to save visibility policy")
	}
	return nil
}

// PrivateAccountIDs lists accounts that have hidden their profile
func (r *PostgresVisibilityRepository) PrivateAccountIDs(ctx context.Context) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&models.VisibilityPolicy{}).
		Where("is_profile_public = ?", false).
		Pluck("account_id", &ids).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list private accounts")
	}
	return ids, nil
}
