package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"health-marketplace-backend/internal/delivery/dto"
	"health-marketplace-backend/internal/usecase"
	"health-marketplace-backend/pkg/response"
	"health-marketplace-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type ProfessionalHandler struct {
	approvalUsecase usecase.ApprovalUsecase
	validator       *validator.CustomValidator
}

func NewProfessionalHandler(approvalUsecase usecase.ApprovalUsecase, validator *validator.CustomValidator) *ProfessionalHandler {
	return &ProfessionalHandler{
		approvalUsecase: approvalUsecase,
		validator:       validator,
	}
}

func (h *ProfessionalHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	professionals, err := h.approvalUsecase.ListPending(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list pending professionals")
		return
	}

	response.Success(w, http.StatusOK, "Pending professionals retrieved successfully", professionals)
}

func (h *ProfessionalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	professionalID, err := parseProfessionalID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid professional ID", nil)
		return
	}

	professional, err := h.approvalUsecase.Approve(r.Context(), professionalID)
	if err != nil {
		h.writeApprovalError(w, err, "Failed to approve professional")
		return
	}

	response.Success(w, http.StatusOK, "Professional approved successfully", professional)
}

func (h *ProfessionalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	professionalID, err := parseProfessionalID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid professional ID", nil)
		return
	}

	var req dto.RejectProfessionalRequest
	if r.Body != nil {
		// Reason is optional, an empty body is fine
		json.NewDecoder(r.Body).Decode(&req)
	}

	professional, err := h.approvalUsecase.Reject(r.Context(), professionalID, req.Reason)
	if err != nil {
		h.writeApprovalError(w, err, "Failed to reject professional")
		return
	}

	response.Success(w, http.StatusOK, "Professional rejected successfully", professional)
}

func (h *ProfessionalHandler) Update(w http.ResponseWriter, r *http.Request) {
	professionalID, err := parseProfessionalID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid professional ID", nil)
		return
	}

	var req dto.UpdateProfessionalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	professional, err := h.approvalUsecase.UpdateProfile(r.Context(), professionalID, &req)
	if err != nil {
		switch err {
		case usecase.ErrProfessionalNotFound:
			response.NotFound(w, "Professional not found")
		case usecase.ErrInvalidApprovalStatus:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrNotProfileOwner:
			response.Forbidden(w, "Profile does not belong to you")
		case usecase.ErrApprovalStatusForbidden:
			response.Forbidden(w, "Only admins may change the approval status")
		case usecase.ErrRoleNotAllowed:
			response.Forbidden(w, "Role is not allowed to perform this action")
		default:
			response.InternalServerError(w, "Failed to update professional")
		}
		return
	}

	response.Success(w, http.StatusOK, "Professional updated successfully", professional)
}

func (h *ProfessionalHandler) writeApprovalError(w http.ResponseWriter, err error, fallback string) {
	var conflict *usecase.ApprovalConflictError
	switch {
	case errors.Is(err, usecase.ErrProfessionalNotFound):
		response.NotFound(w, "Professional not found")
	case errors.As(err, &conflict):
		response.Conflict(w, conflict.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}

func parseProfessionalID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
