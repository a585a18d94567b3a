package models

import (
	"time"

	"gorm.io/gorm"
)

// BankDetails model. Optional for IEC and AD Code registrations; the
// cancelled cheque uploaded here is reusable across steps.
type BankDetails struct {
	gorm.Model
	UserID          uint       `gorm:"index;not null"`
	BankName        string     `gorm:"default:''"`
	AccountNo       string     `gorm:"default:''"`
	HolderName      string     `gorm:"default:''"`
	IFSCCode        string     `gorm:"default:''"`
	BranchName      string     `gorm:"default:''"`
	AccountType     string     `gorm:"type:text;default:'current'"`
	CancelledCheque string     `gorm:"default:''"` // URL of the uploaded cheque leaf
	IsVerified      bool       `gorm:"default:false" json:"isVerified"`
	VerifiedAt      *time.Time `json:"verifiedAt"`
	IsDeleted       bool       `gorm:"default:false"`
}
