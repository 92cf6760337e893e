package db

import (
	"github.com/vergaracl/fitfam/internal/models"
	"gorm.io/gorm"
)

type WorkoutRepository struct {
	database *gorm.DB
}

func NewWorkoutRepository(database *gorm.DB) *WorkoutRepository {
	return &WorkoutRepository{database: database}
}

func (repo *WorkoutRepository) FindByID(workoutID uint) (models.Workout, bool, error) {
	workout := models.Workout{}
	result := repo.database.Where("id = ?", workoutID).Limit(1).Find(&workout)
	if result.Error != nil {
		return models.Workout{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Workout{}, false, nil
	}
	return workout, true, nil
}

func (repo *WorkoutRepository) ListByWeek(weekID string) ([]models.Workout, error) {
	workouts := make([]models.Workout, 0)
	if err := repo.database.Where("week_id = ?", weekID).Order("date ASC, id ASC").Find(&workouts).Error; err != nil {
		return nil, err
	}
	return workouts, nil
}

func (repo *WorkoutRepository) ListByUserAndWeek(userID string, weekID string) ([]models.Workout, error) {
	workouts := make([]models.Workout, 0)
	if err := repo.database.
		Where("user_id = ? AND week_id = ?", userID, weekID).
		Order("date ASC, id ASC").
		Find(&workouts).Error; err != nil {
		return nil, err
	}
	return workouts, nil
}

func (repo *WorkoutRepository) ListByUser(userID string) ([]models.Workout, error) {
	workouts := make([]models.Workout, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("date DESC, id DESC").Find(&workouts).Error; err != nil {
		return nil, err
	}
	return workouts, nil
}

func (repo *WorkoutRepository) ListRecent(limit int) ([]models.Workout, error) {
	workouts := make([]models.Workout, 0)
	if err := repo.database.Order("created_at DESC, id DESC").Limit(limit).Find(&workouts).Error; err != nil {
		return nil, err
	}
	return workouts, nil
}

func (repo *WorkoutRepository) CountByUserAndWeek(userID string, weekID string) (int, error) {
	var count int64
	err := repo.database.Model(&models.Workout{}).
		Where("user_id = ? AND week_id = ?", userID, weekID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (repo *WorkoutRepository) Create(workout *models.Workout) error {
	return repo.database.Create(workout).Error
}

func (repo *WorkoutRepository) DeleteByID(workoutID uint) error {
	return repo.database.Where("id = ?", workoutID).Delete(&models.Workout{}).Error
}
