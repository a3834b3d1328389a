package converter

import (
	"health-marketplace-backend/internal/delivery/dto"
	"health-marketplace-backend/internal/domain/entity"
)

// ProfessionalToResponse converts a ProfessionalProfile entity to a
// ProfessionalResponse DTO
func ProfessionalToResponse(profile *entity.ProfessionalProfile) *dto.ProfessionalResponse {
	if profile == nil {
		return nil
	}

	return &dto.ProfessionalResponse{
		ID:              profile.ID,
		UserID:          profile.UserID,
		FullName:        profile.User.FullName,
		Email:           profile.User.Email,
		DocumentNumber:  profile.DocumentNumber,
		DiplomaFile:     profile.DiplomaFile,
		Bio:             profile.Bio,
		ApprovalStatus:  string(profile.ApprovalStatus),
		ApprovalDate:    profile.ApprovalDate,
		RejectionReason: profile.RejectionReason,
		CreatedAt:       profile.CreatedAt,
		UpdatedAt:       profile.UpdatedAt,
	}
}

// ProfessionalsToResponses converts a slice of profiles to response DTOs
func ProfessionalsToResponses(profiles []entity.ProfessionalProfile) []dto.ProfessionalResponse {
	responses := make([]dto.ProfessionalResponse, len(profiles))
	for i := range profiles {
		responses[i] = *ProfessionalToResponse(&profiles[i])
	}
	return responses
}

// ProfessionalToSearchResponse converts a profile to the public marketplace
// projection. Diploma reference and document number stay private.
func ProfessionalToSearchResponse(profile *entity.ProfessionalProfile) *dto.SearchProfessionalResponse {
	if profile == nil {
		return nil
	}

	return &dto.SearchProfessionalResponse{
		ID:        profile.ID,
		FullName:  profile.User.FullName,
		Phone:     profile.User.Phone,
		Bio:       profile.Bio,
		Offerings: OfferingsToResponses(profile.Offerings),
	}
}
