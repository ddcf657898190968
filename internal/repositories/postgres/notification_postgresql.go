package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
)

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) repositories.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, tx *gorm.DB, notification *models.Notification) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(notification).Error; err != nil {
		return handleDBError(err, "create notification")
	}
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Notification, error) {
	db := r.getDB(tx)
	var notification models.Notification
	if err := db.WithContext(ctx).First(&notification, "id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get notification by id")
	}
	return &notification, nil
}

func (r *notificationRepository) GetByUser(ctx context.Context, tx *gorm.DB, userID string, filters repositories.NotificationFilters) ([]*models.Notification, int64, error) {
	db := r.getDB(tx)
	var notifications []*models.Notification
	var total int64

	query := db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)
	if filters.UnreadOnly {
		query = query.Where("is_read = false")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count notifications")
	}

	query = query.Order("created_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&notifications).Error; err != nil {
		return nil, 0, handleDBError(err, "get notifications by user")
	}

	return notifications, total, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, tx *gorm.DB, userID string) (int64, error) {
	db := r.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count unread notifications")
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, tx *gorm.DB, id string) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return handleDBError(result.Error, "mark notification read")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "mark notification read")
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, tx *gorm.DB, userID string) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Update("is_read", true).Error; err != nil {
		return handleDBError(err, "mark all notifications read")
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).Delete(&models.Notification{}, "id = ?", id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete notification")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete notification")
	}
	return nil
}

func (r *notificationRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
