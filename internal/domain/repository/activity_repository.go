package repository

import (
	"health-marketplace-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type ActivityRepository interface {
	Create(db *gorm.DB, activity *entity.Activity) error
	FindByID(db *gorm.DB, id int64) (*entity.Activity, error)
	FindAll(db *gorm.DB) ([]entity.Activity, error)
	Update(db *gorm.DB, activity *entity.Activity) error
	Delete(db *gorm.DB, id int64) (int64, error)
}
