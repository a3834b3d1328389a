package handler

import (
	"encoding/json"
	"net/http"

	"health-marketplace-backend/internal/delivery/dto"
	"health-marketplace-backend/internal/usecase"
	"health-marketplace-backend/pkg/response"
	"health-marketplace-backend/pkg/validator"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.patientUsecase.GetProfile(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrPatientProfileNotFound:
			response.NotFound(w, "Patient profile not found")
		default:
			response.InternalServerError(w, "Failed to get patient profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient profile retrieved successfully", profile)
}

func (h *PatientHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.patientUsecase.UpdateProfile(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientProfileNotFound:
			response.NotFound(w, "Patient profile not found")
		case usecase.ErrInvalidBirthDate:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update patient profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient profile updated successfully", profile)
}
