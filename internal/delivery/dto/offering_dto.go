package dto

import "github.com/shopspring/decimal"

// Request DTOs

type CreateOfferingRequest struct {
	ActivityID   int64  `json:"activity_id" validate:"required,min=1"`
	Description  string `json:"description" validate:"omitempty,max=255"`
	Price        string `json:"price" validate:"omitempty"`
	Availability string `json:"availability" validate:"omitempty,max=255"`
}

type UpdateOfferingRequest struct {
	Description  *string `json:"description" validate:"omitempty,max=255"`
	Price        *string `json:"price" validate:"omitempty"`
	Availability *string `json:"availability" validate:"omitempty,max=255"`
}

// Response DTOs

type OfferingResponse struct {
	ID             int64           `json:"id"`
	ProfessionalID int64           `json:"professional_id"`
	ActivityID     int64           `json:"activity_id"`
	ActivityName   string          `json:"activity_name,omitempty"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Availability   string          `json:"availability,omitempty"`
}

type OfferingListResponse struct {
	Offerings []OfferingResponse `json:"offerings"`
	Total     int                `json:"total"`
}
