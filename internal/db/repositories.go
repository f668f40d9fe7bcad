package db

import "gorm.io/gorm"

type Repositories struct {
	Assessments *AssessmentRepository
	Plans       *PlanRepository
	Progress    *ProgressRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Assessments: NewAssessmentRepository(database),
		Plans:       NewPlanRepository(database),
		Progress:    NewProgressRepository(database),
	}
}
