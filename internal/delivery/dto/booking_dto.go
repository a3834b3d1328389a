package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBookingRequest struct {
	ProfessionalID int64  `json:"professional_id" validate:"required,min=1"`
	ScheduledDate  string `json:"scheduled_date" validate:"required"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response DTOs

type BookingResponse struct {
	ID             uuid.UUID `json:"id"`
	PatientID      uuid.UUID `json:"patient_id"`
	ProfessionalID int64     `json:"professional_id"`
	ScheduledDate  time.Time `json:"scheduled_date"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}
