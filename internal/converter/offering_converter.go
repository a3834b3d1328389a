package converter

import (
	"health-marketplace-backend/internal/delivery/dto"
	"health-marketplace-backend/internal/domain/entity"
)

// OfferingToResponse converts a ProfessionalActivity entity to an
// OfferingResponse DTO
func OfferingToResponse(offering *entity.ProfessionalActivity) *dto.OfferingResponse {
	if offering == nil {
		return nil
	}

	return &dto.OfferingResponse{
		ID:             offering.ID,
		ProfessionalID: offering.ProfessionalID,
		ActivityID:     offering.ActivityID,
		ActivityName:   offering.Activity.Name,
		Description:    offering.Description,
		Price:          offering.Price,
		Availability:   offering.Availability,
	}
}

// OfferingsToResponses converts a slice of offerings to response DTOs
func OfferingsToResponses(offerings []entity.ProfessionalActivity) []dto.OfferingResponse {
	responses := make([]dto.OfferingResponse, len(offerings))
	for i := range offerings {
		responses[i] = *OfferingToResponse(&offerings[i])
	}
	return responses
}
