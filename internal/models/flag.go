package models

import "time"

const (
	VoteLegitimate = "legitimate"
	VoteFake       = "fake"

	FlagOpen               = "open"
	FlagResolvedFake       = "fake"
	FlagResolvedLegitimate = "legitimate"
)

// WorkoutFlag is a peer dispute over a workout. Votes maps voter id to a
// vote choice; the flagger's own "fake" vote is recorded at creation. One
// flag per workout, enforced by the unique index.
type WorkoutFlag struct {
	ID         uint              `gorm:"primaryKey"`
	WorkoutID  uint              `gorm:"not null;uniqueIndex"`
	FlaggerID  string            `gorm:"not null"`
	OwnerID    string            `gorm:"not null"`
	Votes      map[string]string `gorm:"serializer:json"`
	Resolution string            `gorm:"not null;default:open"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (flag *WorkoutFlag) Resolved() bool {
	return flag.Resolution != FlagOpen
}
