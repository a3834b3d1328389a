package repository

import (
	"health-marketplace-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(db *gorm.DB, category *entity.Category) error
	FindByID(db *gorm.DB, id int64) (*entity.Category, error)
	FindAll(db *gorm.DB) ([]entity.Category, error)
	Update(db *gorm.DB, category *entity.Category) error
	Delete(db *gorm.DB, id int64) (int64, error)
}
