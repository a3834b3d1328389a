package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"health-marketplace-backend/internal/delivery/dto"
	"health-marketplace-backend/internal/usecase"
	"health-marketplace-backend/pkg/response"
	"health-marketplace-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type OfferingHandler struct {
	offeringUsecase usecase.OfferingUsecase
	validator       *validator.CustomValidator
}

func NewOfferingHandler(offeringUsecase usecase.OfferingUsecase, validator *validator.CustomValidator) *OfferingHandler {
	return &OfferingHandler{
		offeringUsecase: offeringUsecase,
		validator:       validator,
	}
}

func (h *OfferingHandler) List(w http.ResponseWriter, r *http.Request) {
	offerings, err := h.offeringUsecase.List(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrProfessionalNotFound:
			response.NotFound(w, "Professional profile not found")
		default:
			response.InternalServerError(w, "Failed to list offerings")
		}
		return
	}

	response.Success(w, http.StatusOK, "Offerings retrieved successfully", offerings)
}

func (h *OfferingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOfferingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	offering, err := h.offeringUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrProfessionalNotFound:
			response.NotFound(w, "Professional profile not found")
		case usecase.ErrActivityNotFound:
			response.Error(w, http.StatusUnprocessableEntity, "Activity not found", nil)
		default:
			response.InternalServerError(w, "Failed to create offering")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Offering created successfully", offering)
}

func (h *OfferingHandler) Update(w http.ResponseWriter, r *http.Request) {
	offeringID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid offering ID", nil)
		return
	}

	var req dto.UpdateOfferingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	offering, err := h.offeringUsecase.Update(r.Context(), offeringID, &req)
	if err != nil {
		switch err {
		case usecase.ErrProfessionalNotFound:
			response.NotFound(w, "Professional profile not found")
		case usecase.ErrOfferingNotFound:
			response.NotFound(w, "Offering not found")
		case usecase.ErrOfferingNotOwned:
			response.Forbidden(w, "Offering does not belong to you")
		default:
			response.InternalServerError(w, "Failed to update offering")
		}
		return
	}

	response.Success(w, http.StatusOK, "Offering updated successfully", offering)
}

func (h *OfferingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	offeringID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid offering ID", nil)
		return
	}

	if err := h.offeringUsecase.Delete(r.Context(), offeringID); err != nil {
		switch err {
		case usecase.ErrProfessionalNotFound:
			response.NotFound(w, "Professional profile not found")
		case usecase.ErrOfferingNotFound:
			response.NotFound(w, "Offering not found")
		case usecase.ErrOfferingNotOwned:
			response.Forbidden(w, "Offering does not belong to you")
		default:
			response.InternalServerError(w, "Failed to delete offering")
		}
		return
	}

	response.Success(w, http.StatusOK, "Offering deleted successfully", nil)
}
