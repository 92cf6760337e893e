package models

import "time"

const (
	SummaryCompleted = "completed"
	SummaryMissed    = "missed"
	SummaryFrozen    = "frozen"
	SummaryJustified = "justified"
)

// WeeklySummary is the immutable settlement outcome for one user and week.
// The unique (user_id, week_id) index doubles as the closed-week marker:
// settlement inserts with Create, and a duplicate key means the week was
// already closed for that user.
type WeeklySummary struct {
	ID               uint   `gorm:"primaryKey"`
	UserID           string `gorm:"not null;uniqueIndex:uidx_summary_user_week"`
	WeekID           string `gorm:"not null;uniqueIndex:uidx_summary_user_week"`
	Status           string `gorm:"not null"`
	Sessions         int    `gorm:"not null;default:0"`
	TotalRequired    int    `gorm:"not null;default:0"`
	RecoverySessions int    `gorm:"not null;default:0"`
	FineApplied      int    `gorm:"not null;default:0"`
	LifeUsed         bool   `gorm:"not null;default:false"`
	LifeEarned       bool   `gorm:"not null;default:false"`
	ShieldEarned     bool   `gorm:"not null;default:false"`
	ShieldBroken     bool   `gorm:"not null;default:false"`
	Deficit          int    `gorm:"not null;default:0"`
	CreatedAt        time.Time
}
