package models

import "time"

// User is one family member. The ID is a short handle from the roster, not
// a generated key; the rest is login state plus the running ledger the
// weekly settlement mutates.
type User struct {
	ID                   string `gorm:"primaryKey"`
	Name                 string `gorm:"not null"`
	Avatar               string
	PINHash              string `gorm:"column:pin_hash"`
	WalletBalance        int    `gorm:"not null;default:0"`
	ExtraLives           int    `gorm:"not null;default:0"`
	CurrentFineLevel     int    `gorm:"not null;default:5000"`
	ConsecutiveSuccesses int    `gorm:"not null;default:0"`
	ConsecutiveMisses    int    `gorm:"not null;default:0"`
	HasShield            bool   `gorm:"not null;default:false"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
