package repository

import (
	"time"

	"health-marketplace-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfessionalSearchFilter narrows the approved-professional listing
type ProfessionalSearchFilter struct {
	ActivityID *int64
	CategoryID *int64
}

type ProfessionalProfileRepository interface {
	Create(db *gorm.DB, profile *entity.ProfessionalProfile) error
	FindByID(db *gorm.DB, id int64) (*entity.ProfessionalProfile, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.ProfessionalProfile, error)
	FindPending(db *gorm.DB) ([]entity.ProfessionalProfile, error)
	FindApproved(db *gorm.DB, filter ProfessionalSearchFilter) ([]entity.ProfessionalProfile, error)
	Update(db *gorm.DB, profile *entity.ProfessionalProfile) error
	// UpdateApprovalFromPending flips the approval state only while the row is
	// still pending. Returns affected rows: 0 means a concurrent reviewer got
	// there first (or the profile was never pending).
	UpdateApprovalFromPending(db *gorm.DB, id int64, status entity.ApprovalStatus, approvalDate *time.Time, rejectionReason *string) (int64, error)
}
