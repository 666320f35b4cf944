package mysql

import (
	"context"

	domain "lendit-backend/internal/domain/notification"

	"gorm.io/gorm"
)

type NotificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) ListByUserID(ctx context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("`read` = ?", false)
	}
	var out []*domain.Notification
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

// MarkRead scopes on user_id so nobody can acknowledge someone else's
// notification. A miss is a no-op, matching the mock.
func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID, userID string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		Update("read", true).Error
}
