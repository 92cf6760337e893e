package models

import "time"

const AbsenceStatusActive = "active"

// Absence freezes one week and redistributes its required sessions onto the
// selected recovery weeks. RecoveryWeeks keeps the user's selection order:
// the distribution assigns ceil(goal/n) per week and the later weeks absorb
// whatever remains, so order is significant.
type Absence struct {
	ID                            uint           `gorm:"primaryKey"`
	UserID                        string         `gorm:"not null;index"`
	FrozenWeekID                  string         `gorm:"not null;index"`
	RecoveryWeeks                 []string       `gorm:"serializer:json"`
	MissedSessionsPerRecoveryWeek map[string]int `gorm:"serializer:json"`
	Status                        string         `gorm:"not null;default:active"`
	CreatedAt                     time.Time
}
