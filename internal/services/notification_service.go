package services

import (
	"context"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/emilyand-i/AgileWebGroup82/internal/repositories"
	"github.com/emilyand-i/AgileWebGroup82/internal/security"
	"github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"github.com/emilyand-i/AgileWebGroup82/pkg/logger"
	"gorm.io/gorm"
)

const (
	DefaultNotificationLimit = 20
	MaxNotificationLimit     = 50
)

// NotificationPublisher delivers committed notifications to online receivers.
type NotificationPublisher interface {
	Publish(notification models.Notification)
}

type NotificationService struct {
	db        *gorm.DB
	repo      repositories.NotificationRepository
	accounts  repositories.AccountRepository
	publisher NotificationPublisher
}

func NewNotificationService(
	db *gorm.DB,
	repo repositories.NotificationRepository,
	accounts repositories.AccountRepository,
	publisher NotificationPublisher,
) *NotificationService {
	return &NotificationService{
		db:        db,
		repo:      repo,
		accounts:  accounts,
		publisher: publisher,
	}
}

// Record appends a notification and pushes it once committed.
func (s *NotificationService) Record(ctx context.Context, in models.NewNotification) (*models.Notification, error) {
	var notification *models.Notification
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		notification, err = s.recordTx(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publish(*notification)
	return notification, nil
}

// recordTx writes a notification inside tx. Callers publish after commit.
func (s *NotificationService) recordTx(ctx context.Context, tx *gorm.DB, in models.NewNotification) (*models.Notification, error) {
	if in.Kind == "" {
		return nil, errors.New(errors.KindValidation, "notification kind is required")
	}

	accounts := s.accounts.WithTx(tx)
	for _, id := range []uint{in.ReceiverID, in.SenderID} {
		exists, err := accounts.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errors.Newf(errors.KindInvalidReference, "account %d does not exist", id)
		}
	}

	notification := &models.Notification{
		Kind:             in.Kind,
		ReceiverID:       in.ReceiverID,
		SenderID:         in.SenderID,
		RelatedContentID: in.RelatedContentID,
		Message:          security.SanitizeText(in.Message),
	}
	if err := s.repo.WithTx(tx).Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *NotificationService) publish(notification models.Notification) {
	if s.publisher == nil {
		logger.Debug("No realtime publisher configured", "notification_id", notification.ID)
		return
	}
	s.publisher.Publish(notification)
}

// ListFor returns one page of accountID's inbox, newest first.
func (s *NotificationService) ListFor(ctx context.Context, accountID, before uint, limit int) (*models.NotificationPage, error) {
	limit = clamp(limit, DefaultNotificationLimit, MaxNotificationLimit)

	// one extra row tells us whether another page follows
	rows, err := s.repo.ListByReceiver(ctx, accountID, before, limit+1)
	if err != nil {
		return nil, err
	}

	page := &models.NotificationPage{}
	if len(rows) > limit {
		rows = rows[:limit]
		page.NextCursor = rows[limit-1].ID
	}

	senderIDs := make([]uint, 0, len(rows))
	for i := range rows {
		senderIDs = append(senderIDs, rows[i].SenderID)
	}
	senders, err := s.compactsByID(ctx, senderIDs)
	if err != nil {
		return nil, err
	}

	page.Notifications = make([]models.EnrichedNotification, 0, len(rows))
	for _, n := range rows {
		page.Notifications = append(page.Notifications, models.EnrichedNotification{
			Notification: n,
			Sender:       senders[n.SenderID],
		})
	}
	return page, nil
}

// MarkRead marks a notification as read on behalf of callerID. Marking an
// already read notification succeeds.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, callerID uint) error {
	notification, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.ReceiverID != callerID {
		return errors.New(errors.KindForbidden, "notification belongs to another account")
	}
	if notification.IsRead {
		return nil
	}
	return s.repo.MarkRead(ctx, notificationID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, accountID uint) (int64, error) {
	return s.repo.UnreadCount(ctx, accountID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, accountID uint) (int64, error) {
	return s.repo.MarkAllRead(ctx, accountID)
}

func (s *NotificationService) compactsByID(ctx context.Context, ids []uint) (map[uint]models.AccountCompact, error) {
	return compactsByID(ctx, s.accounts, ids)
}

// compactsByID resolves ids to public account summaries. Missing accounts
// map to a summary carrying only the id.
func compactsByID(ctx context.Context, accounts repositories.AccountRepository, ids []uint) (map[uint]models.AccountCompact, error) {
	out := make(map[uint]models.AccountCompact, len(ids))
	found, err := accounts.FindByIDs(ctx, dedupe(ids))
	if err != nil {
		return nil, err
	}
	for i := range found {
		out[found[i].ID] = found[i].ToCompact()
	}
	for _, id := range ids {
		if _, ok := out[id]; !ok {
			out[id] = models.AccountCompact{ID: id}
		}
	}
	return out, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// clamp applies def to non-positive values and caps at ceiling.
func clamp(limit, def, ceiling int) int {
	if limit <= 0 {
		return def
	}
	if limit > ceiling {
		return ceiling
	}
	return limit
}
