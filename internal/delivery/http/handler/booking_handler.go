package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"health-marketplace-backend/internal/delivery/dto"
	"health-marketplace-backend/internal/domain/entity"
	"health-marketplace-backend/internal/usecase"
	"health-marketplace-backend/pkg/response"
	"health-marketplace-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrNotPatient:
			response.Forbidden(w, "Only patients can create bookings")
		case usecase.ErrInvalidScheduledDate:
			response.Error(w, http.StatusBadRequest, "scheduled_date must be a valid timestamp", nil)
		case usecase.ErrScheduledDateInPast:
			response.Error(w, http.StatusBadRequest, "scheduled_date must be in the future", nil)
		case usecase.ErrProfessionalNotAvailable:
			response.Error(w, http.StatusUnprocessableEntity, "Professional not found or not approved", nil)
		default:
			response.InternalServerError(w, "Failed to create booking")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingUsecase.List(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrProfessionalNotFound:
			response.NotFound(w, "Professional profile not found")
		case usecase.ErrRoleNotAllowed:
			response.Forbidden(w, "Role is not allowed to perform this action")
		default:
			response.InternalServerError(w, "Failed to list bookings")
		}
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	booking, err := h.bookingUsecase.Get(r.Context(), bookingID)
	if err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case usecase.ErrBookingNotOwned:
			response.Forbidden(w, "Booking does not belong to you")
		default:
			response.InternalServerError(w, "Failed to get booking")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", booking)
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	var req dto.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.UpdateStatus(r.Context(), bookingID, &req)
	if err != nil {
		h.writeStatusUpdateError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Booking status updated successfully", booking)
}

func (h *BookingHandler) writeStatusUpdateError(w http.ResponseWriter, err error) {
	var conflict *usecase.BookingConflictError
	switch {
	case errors.Is(err, usecase.ErrBookingNotFound):
		response.NotFound(w, "Booking not found")
	case errors.Is(err, usecase.ErrBookingNotOwned):
		response.Forbidden(w, "Booking does not belong to you")
	case errors.Is(err, usecase.ErrRoleNotAllowed):
		response.Forbidden(w, err.Error())
	case errors.As(err, &conflict):
		response.Conflict(w, conflict.Error())
	case errors.Is(err, entity.ErrInvalidBookingStatus):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, "Failed to update booking status")
	}
}
