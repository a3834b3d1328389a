package repository

import (
	"errors"

	"health-marketplace-backend/internal/domain/entity"
	domainRepo "health-marketplace-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type activityRepository struct{}

func NewActivityRepository() domainRepo.ActivityRepository {
	return &activityRepository{}
}

func (r *activityRepository) Create(db *gorm.DB, activity *entity.Activity) error {
	return db.Create(activity).Error
}

func (r *activityRepository) FindByID(db *gorm.DB, id int64) (*entity.Activity, error) {
	var activity entity.Activity
	err := db.Preload("Category").Where("id = ?", id).First(&activity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepository) FindAll(db *gorm.DB) ([]entity.Activity, error) {
	var activities []entity.Activity
	err := db.Preload("Category").Order("name ASC").Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) Update(db *gorm.DB, activity *entity.Activity) error {
	return db.Save(activity).Error
}

func (r *activityRepository) Delete(db *gorm.DB, id int64) (int64, error) {
	result := db.Delete(&entity.Activity{}, id)
	return result.RowsAffected, result.Error
}
