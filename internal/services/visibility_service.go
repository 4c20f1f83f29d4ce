package services

import (
	"context"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/emilyand-i/AgileWebGroup82/internal/repositories"
	"github.com/emilyand-i/AgileWebGroup82/pkg/errors"
)

type VisibilityService struct {
	repo repositories.VisibilityRepository
}

func NewVisibilityService(repo repositories.VisibilityRepository) *VisibilityService {
	return &VisibilityService{repo: repo}
}

// Get returns the stored policy, or the defaults when none was ever saved.
func (s *VisibilityService) Get(ctx context.Context, accountID uint) (models.VisibilityPolicy, error) {
	policy, err := s.repo.FindByAccountID(ctx, accountID)
	if err != nil {
		return models.VisibilityPolicy{}, err
	}
	if policy == nil {
		return models.DefaultVisibilityPolicy(accountID), nil
	}
	return *policy, nil
}

// Set applies update on top of the current policy and stores the result.
func (s *VisibilityService) Set(ctx context.Context, accountID uint, update models.PolicyUpdate) (models.VisibilityPolicy, error) {
	if update.FontSize != nil && !validFontSize(*update.FontSize) {
		return models.VisibilityPolicy{}, errors.Newf(errors.KindValidation, "font_size must be one of small, normal, large; got %q", *update.FontSize)
	}

	policy, err := s.Get(ctx, accountID)
	if err != nil {
		return models.VisibilityPolicy{}, err
	}
	update.Apply(&policy)

	if err := s.repo.Upsert(ctx, &policy); err != nil {
		return models.VisibilityPolicy{}, err
	}
	return policy, nil
}

func (s *VisibilityService) PrivateAccountIDs(ctx context.Context) ([]uint, error) {
	return s.repo.PrivateAccountIDs(ctx)
}

func validFontSize(size string) bool {
	switch size {
	case models.FontSizeSmall, models.FontSizeNormal, models.FontSizeLarge:
		return true
	}
	return false
}
