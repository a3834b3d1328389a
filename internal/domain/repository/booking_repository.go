package repository

import (
	"health-marketplace-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(db *gorm.DB, booking *entity.Booking) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Booking, error)
	FindByProfessionalID(db *gorm.DB, professionalID int64) ([]entity.Booking, error)
	FindAll(db *gorm.DB) ([]entity.Booking, error)
	// UpdateStatusFrom transitions a booking only while its status still equals
	// from. Returns affected rows: 0 means a concurrent transition won the race.
	UpdateStatusFrom(db *gorm.DB, id uuid.UUID, from, to entity.BookingStatus) (int64, error)
}
