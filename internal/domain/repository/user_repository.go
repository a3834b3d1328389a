package repository

import (
	"health-marketplace-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	Update(db *gorm.DB, user *entity.User) error
	// UpdateApprovalStatus mirrors the professional profile's approval state
	// onto the user record. Callers run it inside the same transaction as the
	// profile write.
	UpdateApprovalStatus(db *gorm.DB, id uuid.UUID, status entity.ApprovalStatus) error
}
