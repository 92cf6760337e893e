package models

import "time"

// Justification is the single excuse record for a (user, week) pair. An
// appeal edits the record in place and bumps AppealCount; the row is never
// duplicated.
type Justification struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      string `gorm:"not null;index:idx_justification_user_week"`
	WeekID      string `gorm:"not null;index:idx_justification_user_week"`
	ExcuseText  string `gorm:"not null"`
	PhotoURL    string
	AIVerdict   bool   `gorm:"not null;default:false"`
	AIReason    string `gorm:"not null;default:''"`
	AppealCount int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
