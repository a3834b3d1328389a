package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RejectProfessionalRequest struct {
	Reason string `json:"reason" validate:"omitempty"`
}

// UpdateProfessionalRequest updates a professional profile. ApprovalStatus is
// honored for admins only; the owning professional may change Bio alone.
type UpdateProfessionalRequest struct {
	Bio            *string `json:"bio" validate:"omitempty"`
	ApprovalStatus *string `json:"approval_status" validate:"omitempty,oneof=pending approved rejected"`
}

// Response DTOs

type ProfessionalResponse struct {
	ID              int64      `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	FullName        string     `json:"full_name,omitempty"`
	Email           string     `json:"email,omitempty"`
	DocumentNumber  string     `json:"document_number"`
	DiplomaFile     string     `json:"diploma_file"`
	Bio             string     `json:"bio,omitempty"`
	ApprovalStatus  string     `json:"approval_status"`
	ApprovalDate    *time.Time `json:"approval_date,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type ProfessionalListResponse struct {
	Professionals []ProfessionalResponse `json:"professionals"`
	Total         int                    `json:"total"`
}
