package models

import "time"

var ExerciseTypes = []string{
	"running",
	"walking",
	"cycling",
	"weights",
	"yoga",
	"swimming",
	"football",
	"crossfit",
	"dance",
	"other",
}

func IsExerciseType(name string) bool {
	for _, exercise := range ExerciseTypes {
		if exercise == name {
			return true
		}
	}
	return false
}

// Workout is a single logged session. Immutable once created; the only
// mutation is deletion by the flag resolver.
type Workout struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      string    `gorm:"not null;index"`
	Date        time.Time `gorm:"type:date;not null"`
	WeekID      string    `gorm:"not null;index"`
	Exercise    string    `gorm:"not null"`
	DurationMin int       `gorm:"not null"`
	Description string
	PhotoURL    string
	CreatedAt   time.Time
}
