package repository

import (
	"errors"

	"health-marketplace-backend/internal/domain/entity"
	domainRepo "health-marketplace-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type professionalActivityRepository struct{}

func NewProfessionalActivityRepository() domainRepo.ProfessionalActivityRepository {
	return &professionalActivityRepository{}
}

func (r *professionalActivityRepository) Create(db *gorm.DB, offering *entity.ProfessionalActivity) error {
	return db.Create(offering).Error
}

func (r *professionalActivityRepository) FindByID(db *gorm.DB, id int64) (*entity.ProfessionalActivity, error) {
	var offering entity.ProfessionalActivity
	err := db.Preload("Activity").Where("id = ?", id).First(&offering).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &offering, nil
}

func (r *professionalActivityRepository) FindByProfessionalID(db *gorm.DB, professionalID int64) ([]entity.ProfessionalActivity, error) {
	var offerings []entity.ProfessionalActivity
	err := db.Preload("Activity").
		Where("professional_id = ?", professionalID).
		Order("id ASC").
		Find(&offerings).Error
	if err != nil {
		return nil, err
	}
	return offerings, nil
}

func (r *professionalActivityRepository) Update(db *gorm.DB, offering *entity.ProfessionalActivity) error {
	return db.Save(offering).Error
}

func (r *professionalActivityRepository) Delete(db *gorm.DB, id int64) (int64, error) {
	result := db.Delete(&entity.ProfessionalActivity{}, id)
	return result.RowsAffected, result.Error
}

func (r *professionalActivityRepository) CountByActivityID(db *gorm.DB, activityID int64) (int64, error) {
	var count int64
	err := db.Model(&entity.ProfessionalActivity{}).
		Where("activity_id = ?", activityID).
		Count(&count).Error
	return count, err
}
