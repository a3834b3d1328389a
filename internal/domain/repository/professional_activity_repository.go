package repository

import (
	"health-marketplace-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type ProfessionalActivityRepository interface {
	Create(db *gorm.DB, offering *entity.ProfessionalActivity) error
	FindByID(db *gorm.DB, id int64) (*entity.ProfessionalActivity, error)
	FindByProfessionalID(db *gorm.DB, professionalID int64) ([]entity.ProfessionalActivity, error)
	Update(db *gorm.DB, offering *entity.ProfessionalActivity) error
	Delete(db *gorm.DB, id int64) (int64, error)
	CountByActivityID(db *gorm.DB, activityID int64) (int64, error)
}
