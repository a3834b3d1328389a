package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpdatePatientRequest struct {
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
	Document  *string `json:"document" validate:"omitempty,max=50"`
	BirthDate *string `json:"birth_date" validate:"omitempty"`
	Address   *string `json:"address" validate:"omitempty,max=255"`
	City      *string `json:"city" validate:"omitempty,max=100"`
	State     *string `json:"state" validate:"omitempty,max=100"`
}

type PatientResponse struct {
	UserID    uuid.UUID  `json:"user_id"`
	FullName  string     `json:"full_name,omitempty"`
	Email     string     `json:"email,omitempty"`
	Document  string     `json:"document,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Address   string     `json:"address,omitempty"`
	City      string     `json:"city,omitempty"`
	State     string     `json:"state,omitempty"`
	Phone     string     `json:"phone,omitempty"`
}
