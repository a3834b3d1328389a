package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidBookingStatus is wrapped by ParseBookingStatus failures
var ErrInvalidBookingStatus = errors.New("invalid booking status")

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// BookingStatuses lists every valid status, in lifecycle order
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCancelled,
	BookingStatusCompleted,
}

// ParseBookingStatus validates a raw status value against the closed enum
func ParseBookingStatus(raw string) (BookingStatus, error) {
	s := BookingStatus(raw)
	for _, valid := range BookingStatuses {
		if s == valid {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w %q, must be one of: pending, confirmed, cancelled, completed", ErrInvalidBookingStatus, raw)
}

// Booking represents a patient's request to engage a professional at a
// scheduled time. PatientID references the patient's user record,
// ProfessionalID the professional profile.
type Booking struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"patient_id"`
	ProfessionalID int64         `gorm:"not null;index" json:"professional_id"`
	ScheduledDate  time.Time     `gorm:"not null" json:"scheduled_date"`
	Status         BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Professional ProfessionalProfile `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsPending checks if booking is in pending status
func (b *Booking) IsPending() bool {
	return b.Status == BookingStatusPending
}

// IsConfirmed checks if booking is confirmed
func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}

// IsCancelled checks if booking is cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// IsCompleted checks if booking is completed
func (b *Booking) IsCompleted() bool {
	return b.Status == BookingStatusCompleted
}
