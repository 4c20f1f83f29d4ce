package repositories

import (
	"context"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	apperrors "github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByID(ctx context.Context, id uint) (*models.Notification, error)
	ListByReceiver(ctx context.Context, receiverID, beforeID uint, limit int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, receiverID uint) (int64, error)
	MarkRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context, receiverID uint) (int64, error)
	WithTx(tx *gorm.DB) NotificationRepository
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) WithTx(tx *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: tx}
}

func (r *postgresNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return apperrors.Internal(err, "failed to record notification")
	}
	return nil
}

func (r *postgresNotificationRepository) FindByID(ctx context.Context, id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		return nil, notFoundOr(err, "notification")
	}
	return &notification, nil
}

// ListByReceiver returns up to limit notifications newest first. A non-zero
// beforeID resumes after that notification (keyset on created_at, id).
func (r *postgresNotificationRepository) ListByReceiver(ctx context.Context, receiverID, beforeID uint, limit int) ([]models.Notification, error) {
	q := r.db.WithContext(ctx).Where("receiver_id = ?", receiverID)

	if beforeID != 0 {
		var cursor models.Notification
		err := r.db.WithContext(ctx).
			Select("id", "created_at").
			Where("id = ? AND receiver_id = ?", beforeID, receiverID).
			First(&cursor).Error
		if err != nil {
			return nil, notFoundOr(err, "cursor notification")
		}
		q = q.Where("(created_at < ? OR (created_at = ? AND id < ?))", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	notifications := []models.Notification{}
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&notifications).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list notifications")
	}
	return notifications, nil
}

func (r *postgresNotificationRepository) UnreadCount(ctx context.Context, receiverID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Internal(err, "failed to count unread notifications")
	}
	return count, nil
}

func (r *postgresNotificationRepository) MarkRead(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true).Error
	if err != nil {
		return apperrors.Internal(err, "failed to mark notification read")
	}
	return nil
}

// MarkAllRead returns how many notifications changed state
func (r *postgresNotificationRepository) MarkAllRead(ctx context.Context, receiverID uint) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, apperrors.Internal(result.Error, "failed to mark notifications read")
	}
	return result.RowsAffected, nil
}
