package db

import (
	"github.com/vergaracl/fitfam/internal/models"
	"gorm.io/gorm"
)

type AbsenceRepository struct {
	database *gorm.DB
}

func NewAbsenceRepository(database *gorm.DB) *AbsenceRepository {
	return &AbsenceRepository{database: database}
}

func (repo *AbsenceRepository) ListAll() ([]models.Absence, error) {
	absences := make([]models.Absence, 0)
	if err := repo.database.Order("id ASC").Find(&absences).Error; err != nil {
		return nil, err
	}
	return absences, nil
}

func (repo *AbsenceRepository) ListByUser(userID string) ([]models.Absence, error) {
	absences := make([]models.Absence, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("id ASC").Find(&absences).Error; err != nil {
		return nil, err
	}
	return absences, nil
}

func (repo *AbsenceRepository) FindByUserAndFrozenWeek(userID string, weekID string) (models.Absence, bool, error) {
	absence := models.Absence{}
	result := repo.database.
		Where("user_id = ? AND frozen_week_id = ?", userID, weekID).
		Limit(1).
		Find(&absence)
	if result.Error != nil {
		return models.Absence{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Absence{}, false, nil
	}
	return absence, true, nil
}

func (repo *AbsenceRepository) Create(absence *models.Absence) error {
	return repo.database.Create(absence).Error
}
