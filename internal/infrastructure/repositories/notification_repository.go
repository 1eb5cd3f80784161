package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// NotificationRepositoryImpl implements domain.NotificationRepository using GORM
type NotificationRepositoryImpl struct {
	db *gorm.DB
}

// DBNotification represents the database model for Notification
type DBNotification struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	Type      string `gorm:"size:64"`
	Message   string `gorm:"size:512"`
	Read      bool   `gorm:"index"`
	CreatedAt time.Time
}

func (DBNotification) TableName() string { return "notifications" }

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) domain.NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

// Create implements domain.NotificationRepository
func (r *NotificationRepositoryImpl) Create(ctx context.Context, n *domain.Notification) error {
	dbN := &DBNotification{
		UserID:  n.UserID,
		Type:    n.Type,
		Message: n.Message,
		Read:    n.Read,
	}
	if err := r.db.WithContext(ctx).Create(dbN).Error; err != nil {
		return err
	}
	n.ID = dbN.ID
	return nil
}

// ListByUser implements domain.NotificationRepository
func (r *NotificationRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]domain.Notification, error) {
	var dbNs []DBNotification
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&dbNs).Error; err != nil {
		return nil, err
	}
	notifications := make([]domain.Notification, 0, len(dbNs))
	for _, dbN := range dbNs {
		notifications = append(notifications, domain.Notification{
			ID:        dbN.ID,
			UserID:    dbN.UserID,
			Type:      dbN.Type,
			Message:   dbN.Message,
			Read:      dbN.Read,
			CreatedAt: dbN.CreatedAt,
		})
	}
	return notifications, nil
}

// MarkRead implements domain.NotificationRepository. The user id in the
// predicate keeps one user from acknowledging another's notifications.
func (r *NotificationRepositoryImpl) MarkRead(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).Model(&DBNotification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}
