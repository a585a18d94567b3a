package registration

import (
	"errors"

	"exim/models"

	"gorm.io/gorm"
)

// Emit appends a notification to the user's feed and returns the created
// record, so callers can display it without a reload. Delivery side-channels
// (email, SMS) subscribe to these records outside the engine.
func Emit(db *gorm.DB, userID uint, title, message, notifyType string) (*models.Notification, error) {
	notification := models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifyType,
	}
	if err := db.Create(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// MarkNotificationRead flips the read flag on one of the user's
// notifications.
func MarkNotificationRead(db *gorm.DB, userID, notificationID uint) error {
	var notification models.Notification
	err := db.Where("id = ? AND user_id = ?", notificationID, userID).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("notification %d not found", notificationID)
		}
		return err
	}
	if notification.Read {
		return nil
	}
	return db.Model(&notification).Update("read", true).Error
}
