package services

import (
	"context"
	"time"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/emilyand-i/AgileWebGroup82/internal/repositories"
	"github.com/emilyand-i/AgileWebGroup82/internal/security"
	"github.com/emilyand-i/AgileWebGroup82/pkg/errors"
)

// ContentService manages the plants, growth logs and photos an account owns.
type ContentService struct {
	plants repositories.PlantRepository
	photos repositories.PhotoRepository
}

func NewContentService(plants repositories.PlantRepository, photos repositories.PhotoRepository) *ContentService {
	return &ContentService{plants: plants, photos: photos}
}

func (s *ContentService) CreatePlant(ctx context.Context, ownerID uint, req models.CreatePlantRequest) (*models.Plant, error) {
	plant := &models.Plant{
		OwnerID:        ownerID,
		Name:           security.SanitizeText(req.Name),
		Type:           security.SanitizeText(req.Type),
		ChosenImageURL: req.ChosenImageURL,
	}
	if err := s.plants.Create(ctx, plant); err != nil {
		return nil, err
	}
	return plant, nil
}

func (s *ContentService) ListPlants(ctx context.Context, ownerID uint) ([]models.Plant, error) {
	return s.plants.ListByOwner(ctx, ownerID)
}

// DeletePlant removes a plant and its growth log. Only the owner may do so.
func (s *ContentService) DeletePlant(ctx context.Context, ownerID, plantID uint) error {
	if _, err := s.ownedPlant(ctx, ownerID, plantID); err != nil {
		return err
	}
	return s.plants.Delete(ctx, plantID)
}

func (s *ContentService) AddGrowth(ctx context.Context, ownerID, plantID uint, req models.CreateGrowthRequest) (*models.GrowthEntry, error) {
	plant, err := s.ownedPlant(ctx, ownerID, plantID)
	if err != nil {
		return nil, err
	}
	entry := &models.GrowthEntry{
		PlantID:    plant.ID,
		OwnerID:    ownerID,
		CmGrown:    req.CmGrown,
		RecordedAt: time.Now().UTC(),
	}
	if err := s.plants.AddGrowth(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ContentService) ListGrowth(ctx context.Context, ownerID, plantID uint) ([]models.GrowthEntry, error) {
	if _, err := s.ownedPlant(ctx, ownerID, plantID); err != nil {
		return nil, err
	}
	return s.plants.ListGrowth(ctx, plantID)
}

// CreatePhoto registers a photo URL against one of the owner's plants.
func (s *ContentService) CreatePhoto(ctx context.Context, ownerID uint, req models.CreatePhotoRequest) (*models.Photo, error) {
	if _, err := s.ownedPlant(ctx, ownerID, req.PlantID); err != nil {
		return nil, err
	}
	photo := &models.Photo{
		OwnerID:  ownerID,
		PlantID:  req.PlantID,
		ImageURL: req.ImageURL,
		Caption:  security.SanitizeText(req.Caption),
	}
	if err := s.photos.Create(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *ContentService) ListPhotos(ctx context.Context, ownerID uint) ([]models.Photo, error) {
	return s.photos.ListByOwner(ctx, ownerID)
}

func (s *ContentService) ownedPlant(ctx context.Context, ownerID, plantID uint) (*models.Plant, error) {
	plant, err := s.plants.FindByID(ctx, plantID)
	if err != nil {
		return nil, err
	}
	if plant.OwnerID != ownerID {
		return nil, errors.New(errors.KindNotOwner, "plant belongs to another account")
	}
	return plant, nil
}
