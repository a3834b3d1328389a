package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RegisterPatientRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FullName  string `json:"full_name" validate:"required,min=2"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Document  string `json:"document" validate:"omitempty,max=50"`
	BirthDate string `json:"birth_date" validate:"omitempty"`
	Address   string `json:"address" validate:"omitempty,max=255"`
	City      string `json:"city" validate:"omitempty,max=100"`
	State     string `json:"state" validate:"omitempty,max=100"`
}

// RegisterOffering is an initial offering submitted with professional
// registration
type RegisterOffering struct {
	ActivityID   int64  `json:"activity_id" validate:"required,min=1"`
	Description  string `json:"description" validate:"omitempty,max=255"`
	Price        string `json:"price" validate:"omitempty"`
	Availability string `json:"availability" validate:"omitempty,max=255"`
}

type RegisterProfessionalRequest struct {
	Email          string             `json:"email" validate:"required,email"`
	Password       string             `json:"password" validate:"required,min=6"`
	FullName       string             `json:"full_name" validate:"required,min=2"`
	Phone          string             `json:"phone" validate:"omitempty,max=20"`
	DocumentNumber string             `json:"document_number" validate:"required,max=20"`
	DiplomaFile    string             `json:"diploma_file" validate:"required,max=255"`
	Bio            string             `json:"bio" validate:"omitempty"`
	Offerings      []RegisterOffering `json:"offerings" validate:"omitempty,dive"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Response DTOs

type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Phone          string    `json:"phone,omitempty"`
	Role           string    `json:"role"`
	ApprovalStatus string    `json:"approval_status,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
