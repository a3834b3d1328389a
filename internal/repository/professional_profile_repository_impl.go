package repository

import (
	"errors"
	"time"

	"health-marketplace-backend/internal/domain/entity"
	domainRepo "health-marketplace-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type professionalProfileRepository struct{}

func NewProfessionalProfileRepository() domainRepo.ProfessionalProfileRepository {
	return &professionalProfileRepository{}
}

func (r *professionalProfileRepository) Create(db *gorm.DB, profile *entity.ProfessionalProfile) error {
	return db.Create(profile).Error
}

func (r *professionalProfileRepository) FindByID(db *gorm.DB, id int64) (*entity.ProfessionalProfile, error) {
	var profile entity.ProfessionalProfile
	err := db.Preload("User").Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *professionalProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.ProfessionalProfile, error) {
	var profile entity.ProfessionalProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *professionalProfileRepository) FindPending(db *gorm.DB) ([]entity.ProfessionalProfile, error) {
	var profiles []entity.ProfessionalProfile
	err := db.Preload("User").
		Where("approval_status = ?", entity.ApprovalStatusPending).
		Order("created_at ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *professionalProfileRepository) FindApproved(db *gorm.DB, filter domainRepo.ProfessionalSearchFilter) ([]entity.ProfessionalProfile, error) {
	query := db.Preload("User").
		Preload("Offerings").
		Preload("Offerings.Activity").
		Where("professional_profiles.approval_status = ?", entity.ApprovalStatusApproved)

	if filter.ActivityID != nil {
		query = query.
			Joins("JOIN professional_activities ON professional_activities.professional_id = professional_profiles.id").
			Where("professional_activities.activity_id = ?", *filter.ActivityID)
	}
	if filter.CategoryID != nil {
		query = query.
			Joins("JOIN professional_activities pa_cat ON pa_cat.professional_id = professional_profiles.id").
			Joins("JOIN activities ON activities.id = pa_cat.activity_id").
			Where("activities.category_id = ?", *filter.CategoryID)
	}

	var profiles []entity.ProfessionalProfile
	err := query.Distinct("professional_profiles.*").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *professionalProfileRepository) Update(db *gorm.DB, profile *entity.ProfessionalProfile) error {
	return db.Save(profile).Error
}

// UpdateApprovalFromPending atomically flips approval state ONLY while the
// row is still pending. Affected rows 0 = already processed (prevents two
// concurrent reviewers from both succeeding).
func (r *professionalProfileRepository) UpdateApprovalFromPending(db *gorm.DB, id int64, status entity.ApprovalStatus, approvalDate *time.Time, rejectionReason *string) (int64, error) {
	result := db.Model(&entity.ProfessionalProfile{}).
		Where("id = ? AND approval_status = ?", id, entity.ApprovalStatusPending).
		Updates(map[string]interface{}{
			"approval_status":  status,
			"approval_date":    approvalDate,
			"rejection_reason": rejectionReason,
		})
	return result.RowsAffected, result.Error
}
