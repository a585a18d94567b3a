package models

import (
	"time"

	"gorm.io/gorm"
)

// Business entity types accepted at signup. Unknown values fall back to
// individual in the requirement resolver.
const (
	EntityIndividual  = "individual"
	EntityPartnership = "partnership"
	EntityLLP         = "llp"
	EntityPrivateLtd  = "private_limited"
	EntityOther       = "other"
)

type User struct {
	gorm.Model
	Name               string `gorm:"default:''"`
	Email              string `gorm:"unique;not null"`
	Mobile             string `gorm:"index"`
	Role               string `gorm:"default:'USER'"` // USER, ADMIN
	Password           string `gorm:"not null"`
	BusinessEntityType string `gorm:"default:'individual'"`
	BusinessName       string `gorm:"default:''"`
	Address            string
	City               string
	State              string
	PinCode            string
	IsMobileVerified   bool `gorm:"default:false"`
	IsEmailVerified    bool `gorm:"default:false"`

	// Denormalized profile document URLs. The DocumentRecord ledger is the
	// source of truth; these hold the latest upload of each type.
	PanCardUrl        string `gorm:"default:''"`
	AadharCardUrl     string `gorm:"default:''"`
	PhotographUrl     string `gorm:"default:''"`
	ProofOfAddressUrl string `gorm:"default:''"`

	LastLogin           time.Time  `gorm:"default:NULL"`
	FailedLoginAttempts int        `gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"last_failed_login"`
	IsBlocked           bool       `gorm:"default:false"`
	BlockedUntil        *time.Time `json:"blocked_until"`
	IsDeleted           bool       `gorm:"default:false"`
}
