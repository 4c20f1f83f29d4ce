package repositories

import (
	"context"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	apperrors "github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"gorm.io/gorm"
)

// PlantRepository defines the interface for plant and growth log storage
type PlantRepository interface {
	Create(ctx context.Context, plant *models.Plant) error
	FindByID(ctx context.Context, id uint) (*models.Plant, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Plant, error)
	Delete(ctx context.Context, id uint) error
	AddGrowth(ctx context.Context, entry *models.GrowthEntry) error
	ListGrowth(ctx context.Context, plantID uint) ([]models.GrowthEntry, error)
	WithTx(tx *gorm.DB) PlantRepository
}

type PostgresPlantRepository struct {
	db *gorm.DB
}

func NewPostgresPlantRepository(db *gorm.DB) *PostgresPlantRepository {
	return &PostgresPlantRepository{db: db}
}

func (r *PostgresPlantRepository) WithTx(tx *gorm.DB) PlantRepository {
	return &PostgresPlantRepository{db: tx}
}

func (r *PostgresPlantRepository) Create(ctx context.Context, plant *models.Plant) error {
	if err := r.db.WithContext(ctx).Create(plant).Error; err != nil {
		return apperrors.Internal(err, "failed to create plant")
	}
	return nil
}

func (r *PostgresPlantRepository) FindByID(ctx context.Context, id uint) (*models.Plant, error) {
	var plant models.Plant
	if err := r.db.WithContext(ctx).First(&plant, id).Error; err != nil {
		return nil, notFoundOr(err, "plant")
	}
	return &plant, nil
}

// ListByOwner returns the owner's plants, oldest first
func (r *PostgresPlantRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Plant, error) {
	plants := []models.Plant{}
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at ASC, id ASC").Find(&plants).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list plants")
	}
	return plants, nil
}

// Delete removes a plant together with its growth log
func (r *PostgresPlantRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plant_id = ?", id).Delete(&models.GrowthEntry{}).Error; err != nil {
			return apperrors.Internal(err, "failed to delete growth entries")
		}
		result := tx.Delete(&models.Plant{}, id)
		if result.Error != nil {
			return apperrors.Internal(result.Error, "failed to delete plant")
		}
		if result.RowsAffected == 0 {
			return apperrors.New(apperrors.KindNotFound, "plant not found")
		}
		return nil
	})
}

func (r *PostgresPlantRepository) AddGrowth(ctx context.Context, entry *models.GrowthEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return apperrors.Internal(err, "failed to record growth")
	}
	return nil
}

// ListGrowth returns the growth log of a plant in recording order
func (r *PostgresPlantRepository) ListGrowth(ctx context.Context, plantID uint) ([]models.GrowthEntry, error) {
	entries := []models.GrowthEntry{}
	err := r.db.WithContext(ctx).Where("plant_id = ?", plantID).Order("recorded_at ASC, id ASC").Find(&entries).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list growth entries")
	}
	return entries, nil
}
