package db

import (
	"github.com/praxishq/praxis/internal/models"
	"gorm.io/gorm"
)

type AssessmentRepository struct {
	database *gorm.DB
}

func NewAssessmentRepository(database *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{database: database}
}

func (repo *AssessmentRepository) Create(assessment *models.Assessment) error {
	return repo.database.Create(assessment).Error
}

func (repo *AssessmentRepository) FindByID(assessmentID uint) (models.Assessment, error) {
	var assessment models.Assessment
	if err := repo.database.First(&assessment, assessmentID).Error; err != nil {
		return models.Assessment{}, err
	}
	return assessment, nil
}

func (repo *AssessmentRepository) FindLatestByUser(userID uint) (models.Assessment, bool, error) {
	var assessment models.Assessment
	result := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&assessment)
	if result.Error != nil {
		return models.Assessment{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Assessment{}, false, nil
	}
	return assessment, true, nil
}
