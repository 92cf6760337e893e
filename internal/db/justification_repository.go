package db

import (
	"github.com/vergaracl/fitfam/internal/models"
	"gorm.io/gorm"
)

type JustificationRepository struct {
	database *gorm.DB
}

func NewJustificationRepository(database *gorm.DB) *JustificationRepository {
	return &JustificationRepository{database: database}
}

func (repo *JustificationRepository) FindByUserAndWeek(userID string, weekID string) (models.Justification, bool, error) {
	justification := models.Justification{}
	result := repo.database.
		Where("user_id = ? AND week_id = ?", userID, weekID).
		Order("id ASC").
		Limit(1).
		Find(&justification)
	if result.Error != nil {
		return models.Justification{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Justification{}, false, nil
	}
	return justification, true, nil
}

func (repo *JustificationRepository) ListByWeek(weekID string) ([]models.Justification, error) {
	justifications := make([]models.Justification, 0)
	if err := repo.database.Where("week_id = ?", weekID).Order("id ASC").Find(&justifications).Error; err != nil {
		return nil, err
	}
	return justifications, nil
}

func (repo *JustificationRepository) Create(justification *models.Justification) error {
	return repo.database.Create(justification).Error
}

func (repo *JustificationRepository) Save(justification *models.Justification) error {
	return repo.database.Save(justification).Error
}
