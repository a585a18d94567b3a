package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaxDocumentSize caps uploaded document parts at 10MB.
const MaxDocumentSize = 10 << 20

// DocumentRecord is the append-only ledger behind the denormalized document
// URLs on User and RegistrationStep. One row per upload; reviews append to
// the row's History instead of creating new rows.
type DocumentRecord struct {
	gorm.Model
	Ref    string `gorm:"size:36;index" json:"ref"` // public reference shown to the user
	UserID uint   `gorm:"index;not null" json:"userId"`
	StepID *int   `gorm:"index" json:"stepId"` // nil for profile documents
	Type   string `gorm:"not null" json:"type"`
	Url    string `gorm:"not null" json:"url"`
	Status string `gorm:"default:'uploaded'" json:"status"`
	Reason string `gorm:"default:''" json:"reason,omitempty"`
	// History is an append-only JSON array of StatusChange entries.
	History   datatypes.JSON `json:"history"`
	IsDeleted bool           `gorm:"default:false" json:"-"`
}

// StatusChange is one entry in a DocumentRecord's history array.
type StatusChange struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Reason    string `json:"reason,omitempty"`
}
