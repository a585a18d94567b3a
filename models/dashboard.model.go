package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Registration step statuses.
const (
	StepPending    = "pending"
	StepInProgress = "in-progress"
	StepCompleted  = "completed"
	StepRejected   = "rejected"
)

// Document slot statuses.
const (
	DocPending  = "pending"
	DocUploaded = "uploaded"
	DocVerified = "verified"
	DocRejected = "rejected"
)

// Stable numeric identities of the five registration steps.
const (
	StepGST     = 1
	StepIEC     = 2
	StepDSC     = 3
	StepICEGATE = 4
	StepADCode  = 5
)

// RegistrationDashboard is created lazily on first access, one per user,
// with the five default steps seeded as pending.
type RegistrationDashboard struct {
	gorm.Model
	UserID                 uint               `gorm:"uniqueIndex;not null" json:"userId"`
	HasStartedRegistration bool               `gorm:"default:false" json:"hasStartedRegistration"`
	OverallProgress        int                `gorm:"default:0" json:"overallProgress"`
	Steps                  []RegistrationStep `gorm:"foreignKey:DashboardID" json:"steps"`
	IsDeleted              bool               `gorm:"default:false" json:"-"`
}

type RegistrationStep struct {
	gorm.Model
	DashboardID uint   `gorm:"index;not null" json:"-"`
	StepID      int    `gorm:"not null" json:"stepId"` // 1..5
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Status      string `gorm:"default:'pending'" json:"status"`
	// CompletedAt records the first completion and is never cleared, even if
	// the step is later rejected and completed again. LastCompletedAt moves.
	CompletedAt     *time.Time        `json:"completedAt"`
	LastCompletedAt *time.Time        `json:"lastCompletedAt"`
	Details         datatypes.JSONMap `json:"details"` // step-specific form fields, pre-filled on revisit
	Documents       []StepDocument    `gorm:"foreignKey:RegistrationStepID" json:"documents"`
	IsDeleted       bool              `gorm:"default:false" json:"-"`
}

// StepDocument is a single file slot attached to a step. A rejected slot
// keeps its old URL for display but no longer counts toward progress.
type StepDocument struct {
	gorm.Model
	RegistrationStepID uint       `gorm:"index;not null" json:"-"`
	Name               string     `gorm:"not null" json:"name"`
	Url                string     `gorm:"default:''" json:"url"`
	Status             string     `gorm:"default:'pending'" json:"status"`
	Reason             string     `gorm:"default:''" json:"reason,omitempty"`
	UploadedAt         *time.Time `json:"uploadedAt"`
}
