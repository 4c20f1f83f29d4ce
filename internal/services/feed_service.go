package services

import (
	"context"
	"fmt"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/emilyand-i/AgileWebGroup82/internal/repositories"
	"github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"github.com/emilyand-i/AgileWebGroup82/pkg/logger"
	"gorm.io/gorm"
)

const (
	DefaultFeedLimit = 9
	MaxFeedLimit     = 50
)

// FeedService assembles feeds from the relationship graph and the content
// stores, and shares plants between accounts.
type FeedService struct {
	db            *gorm.DB
	photos        repositories.PhotoRepository
	plants        repositories.PlantRepository
	shares        repositories.ShareRepository
	accounts      repositories.AccountRepository
	relationships *RelationshipService
	visibility    *VisibilityService
	notifications *NotificationService
	defaultLimit  int
}

func NewFeedService(
	db *gorm.DB,
	photos repositories.PhotoRepository,
	plants repositories.PlantRepository,
	shares repositories.ShareRepository,
	accounts repositories.AccountRepository,
	relationships *RelationshipService,
	visibility *VisibilityService,
	notifications *NotificationService,
) *FeedService {
	return &FeedService{
		db:            db,
		photos:        photos,
		plants:        plants,
		shares:        shares,
		accounts:      accounts,
		relationships: relationships,
		visibility:    visibility,
		notifications: notifications,
		defaultLimit:  DefaultFeedLimit,
	}
}

// WithDefaultLimit overrides the page size used when a caller passes no limit.
func (s *FeedService) WithDefaultLimit(limit int) *FeedService {
	s.defaultLimit = clamp(limit, DefaultFeedLimit, MaxFeedLimit)
	return s
}

// PublicFeed returns the newest photos whose author has a public profile.
func (s *FeedService) PublicFeed(ctx context.Context, limit int) ([]models.ContentItem, error) {
	limit = clamp(limit, s.defaultLimit, MaxFeedLimit)

	private, err := s.visibility.PrivateAccountIDs(ctx)
	if err != nil {
		return nil, err
	}
	photos, err := s.photos.Recent(ctx, private, limit)
	if err != nil {
		return nil, err
	}
	return s.withAuthors(ctx, photos)
}

// FriendFeed returns the newest photos by accountID's accepted connections.
// Connections see each other's photos whatever their profile visibility.
func (s *FeedService) FriendFeed(ctx context.Context, accountID uint, limit int) ([]models.ContentItem, error) {
	limit = clamp(limit, s.defaultLimit, MaxFeedLimit)

	friends, err := s.relationships.ConnectedIDs(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if len(friends) == 0 {
		return []models.ContentItem{}, nil
	}
	photos, err := s.photos.RecentByOwners(ctx, friends, limit)
	if err != nil {
		return nil, err
	}
	return s.withAuthors(ctx, photos)
}

// ShareContent shares ownerID's plant with targetID. The share record and
// the receiver's notification are committed together or not at all.
func (s *FeedService) ShareContent(ctx context.Context, ownerID, contentID, targetID uint) (*models.SharedContentRecord, error) {
	var (
		record       *models.SharedContentRecord
		notification *models.Notification
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		plant, err := s.plants.WithTx(tx).FindByID(ctx, contentID)
		if err != nil {
			if errors.Is(err, errors.KindNotFound) {
				return errors.New(errors.KindNotOwner, "you can only share plants you own")
			}
			return err
		}
		if plant.OwnerID != ownerID {
			return errors.New(errors.KindNotOwner, "you can only share plants you own")
		}
		if targetID == ownerID {
			return errors.New(errors.KindSelfReference, "cannot share a plant with yourself")
		}

		accounts := s.accounts.WithTx(tx)
		target, err := accounts.FindByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, errors.KindNotFound) {
				return errors.Newf(errors.KindInvalidReference, "account %d does not exist", targetID)
			}
			return err
		}
		owner, err := accounts.FindByID(ctx, ownerID)
		if err != nil {
			return err
		}

		record = &models.SharedContentRecord{
			ContentID:  plant.ID,
			SharedBy:   ownerID,
			SharedWith: target.ID,
		}
		if err := s.shares.WithTx(tx).Create(ctx, record); err != nil {
			return err
		}

		relatedID := plant.ID
		notification, err = s.notifications.recordTx(ctx, tx, models.NewNotification{
			ReceiverID:       target.ID,
			SenderID:         ownerID,
			Kind:             models.NotificationKindPlantShare,
			Message:          fmt.Sprintf("%s shared their plant %s with you", owner.Username, plant.Name),
			RelatedContentID: &relatedID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifications.publish(*notification)
	logger.Info("Plant shared", "plant_id", contentID, "owner_id", ownerID, "target_id", targetID)
	return record, nil
}

func (s *FeedService) withAuthors(ctx context.Context, photos []models.Photo) ([]models.ContentItem, error) {
	ownerIDs := make([]uint, 0, len(photos))
	for i := range photos {
		ownerIDs = append(ownerIDs, photos[i].OwnerID)
	}
	authors, err := compactsByID(ctx, s.accounts, ownerIDs)
	if err != nil {
		return nil, err
	}

	items := make([]models.ContentItem, 0, len(photos))
	for _, p := range photos {
		items = append(items, models.ContentItem{Photo: p, Author: authors[p.OwnerID]})
	}
	return items, nil
}
