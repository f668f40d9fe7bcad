package db

import (
	"github.com/praxishq/praxis/internal/models"
	"gorm.io/gorm"
)

type ProgressRepository struct {
	database *gorm.DB
}

func NewProgressRepository(database *gorm.DB) *ProgressRepository {
	return &ProgressRepository{database: database}
}

func (repo *ProgressRepository) Create(record *models.ProgressRecord) error {
	return repo.database.Create(record).Error
}

func (repo *ProgressRepository) FindByPlanID(planID string) (models.ProgressRecord, bool, error) {
	var record models.ProgressRecord
	result := repo.database.Where("plan_id = ?", planID).Limit(1).Find(&record)
	if result.Error != nil {
		return models.ProgressRecord{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.ProgressRecord{}, false, nil
	}
	return record, true, nil
}

func (repo *ProgressRepository) Save(record *models.ProgressRecord) error {
	return repo.database.Save(record).Error
}
