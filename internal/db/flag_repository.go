package db

import (
	"github.com/vergaracl/fitfam/internal/models"
	"gorm.io/gorm"
)

type FlagRepository struct {
	database *gorm.DB
}

func NewFlagRepository(database *gorm.DB) *FlagRepository {
	return &FlagRepository{database: database}
}

func (repo *FlagRepository) FindByWorkout(workoutID uint) (models.WorkoutFlag, bool, error) {
	flag := models.WorkoutFlag{}
	result := repo.database.Where("workout_id = ?", workoutID).Limit(1).Find(&flag)
	if result.Error != nil {
		return models.WorkoutFlag{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.WorkoutFlag{}, false, nil
	}
	return flag, true, nil
}

func (repo *FlagRepository) ListOpen() ([]models.WorkoutFlag, error) {
	flags := make([]models.WorkoutFlag, 0)
	if err := repo.database.Where("resolution = ?", models.FlagOpen).Order("id ASC").Find(&flags).Error; err != nil {
		return nil, err
	}
	return flags, nil
}

func (repo *FlagRepository) Create(flag *models.WorkoutFlag) error {
	return repo.database.Create(flag).Error
}
