package converter

import (
	"health-marketplace-backend/internal/delivery/dto"
	"health-marketplace-backend/internal/domain/entity"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	return &dto.BookingResponse{
		ID:             booking.ID,
		PatientID:      booking.PatientID,
		ProfessionalID: booking.ProfessionalID,
		ScheduledDate:  booking.ScheduledDate,
		Status:         string(booking.Status),
		CreatedAt:      booking.CreatedAt,
		UpdatedAt:      booking.UpdatedAt,
	}
}

// BookingsToResponses converts a slice of Booking entities to response DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = *BookingToResponse(&bookings[i])
	}
	return responses
}
