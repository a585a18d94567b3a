package models

import "gorm.io/gorm"

// Notification types.
const (
	NotifyInfo    = "info"
	NotifySuccess = "success"
	NotifyWarning = "warning"
	NotifyError   = "error"
)

// Notification is an append-only log entry. Only the Read flag is ever
// mutated after creation.
type Notification struct {
	gorm.Model
	UserID  uint   `gorm:"index;not null" json:"userId"`
	Title   string `gorm:"not null" json:"title"`
	Message string `json:"message"`
	Type    string `gorm:"default:'info'" json:"type"`
	Read    bool   `gorm:"default:false" json:"read"`
}
