package db

import (
	"github.com/vergaracl/fitfam/internal/models"
	"gorm.io/gorm"
)

type SummaryRepository struct {
	database *gorm.DB
}

func NewSummaryRepository(database *gorm.DB) *SummaryRepository {
	return &SummaryRepository{database: database}
}

func (repo *SummaryRepository) FindByUserAndWeek(userID string, weekID string) (models.WeeklySummary, bool, error) {
	summary := models.WeeklySummary{}
	result := repo.database.
		Where("user_id = ? AND week_id = ?", userID, weekID).
		Limit(1).
		Find(&summary)
	if result.Error != nil {
		return models.WeeklySummary{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.WeeklySummary{}, false, nil
	}
	return summary, true, nil
}

func (repo *SummaryRepository) ListByWeek(weekID string) ([]models.WeeklySummary, error) {
	summaries := make([]models.WeeklySummary, 0)
	if err := repo.database.Where("week_id = ?", weekID).Order("user_id ASC").Find(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

func (repo *SummaryRepository) ListByUser(userID string) ([]models.WeeklySummary, error) {
	summaries := make([]models.WeeklySummary, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("week_id DESC").Find(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}
