package db

import "gorm.io/gorm"

type Repositories struct {
	Users          *UserRepository
	Workouts       *WorkoutRepository
	Absences       *AbsenceRepository
	Justifications *JustificationRepository
	Summaries      *SummaryRepository
	Flags          *FlagRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:          NewUserRepository(database),
		Workouts:       NewWorkoutRepository(database),
		Absences:       NewAbsenceRepository(database),
		Justifications: NewJustificationRepository(database),
		Summaries:      NewSummaryRepository(database),
		Flags:          NewFlagRepository(database),
	}
}
