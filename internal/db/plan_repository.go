package db

import (
	"github.com/praxishq/praxis/internal/models"
	"gorm.io/gorm"
)

type PlanRepository struct {
	database *gorm.DB
}

func NewPlanRepository(database *gorm.DB) *PlanRepository {
	return &PlanRepository{database: database}
}

func (repo *PlanRepository) Create(plan *models.PersonalizedPlan) error {
	return repo.database.Create(plan).Error
}

func (repo *PlanRepository) FindByID(planID string) (models.PersonalizedPlan, bool, error) {
	var plan models.PersonalizedPlan
	result := repo.database.Where("id = ?", planID).Limit(1).Find(&plan)
	if result.Error != nil {
		return models.PersonalizedPlan{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.PersonalizedPlan{}, false, nil
	}
	return plan, true, nil
}

func (repo *PlanRepository) ListByUser(userID uint) ([]models.PersonalizedPlan, error) {
	plans := make([]models.PersonalizedPlan, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}
