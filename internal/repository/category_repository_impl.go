package repository

import (
	"errors"

	"health-marketplace-backend/internal/domain/entity"
	domainRepo "health-marketplace-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type categoryRepository struct{}

func NewCategoryRepository() domainRepo.CategoryRepository {
	return &categoryRepository{}
}

func (r *categoryRepository) Create(db *gorm.DB, category *entity.Category) error {
	return db.Create(category).Error
}

func (r *categoryRepository) FindByID(db *gorm.DB, id int64) (*entity.Category, error) {
	var category entity.Category
	err := db.Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindAll(db *gorm.DB) ([]entity.Category, error) {
	var categories []entity.Category
	err := db.Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Update(db *gorm.DB, category *entity.Category) error {
	return db.Save(category).Error
}

func (r *categoryRepository) Delete(db *gorm.DB, id int64) (int64, error) {
	result := db.Delete(&entity.Category{}, id)
	return result.RowsAffected, result.Error
}
