package handler

import (
	"net/http"
	"strconv"

	"health-marketplace-backend/internal/domain/repository"
	"health-marketplace-backend/internal/usecase"
	"health-marketplace-backend/pkg/response"

	"github.com/gorilla/mux"
)

type SearchHandler struct {
	searchUsecase usecase.SearchUsecase
}

func NewSearchHandler(searchUsecase usecase.SearchUsecase) *SearchHandler {
	return &SearchHandler{searchUsecase: searchUsecase}
}

// SearchProfessionals lists approved professionals, filtered by optional
// activity_id and category_id query parameters.
func (h *SearchHandler) SearchProfessionals(w http.ResponseWriter, r *http.Request) {
	var filter repository.ProfessionalSearchFilter

	if raw := r.URL.Query().Get("activity_id"); raw != "" {
		activityID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid activity_id", nil)
			return
		}
		filter.ActivityID = &activityID
	}
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid category_id", nil)
			return
		}
		filter.CategoryID = &categoryID
	}

	professionals, err := h.searchUsecase.SearchProfessionals(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to search professionals")
		return
	}

	response.Success(w, http.StatusOK, "Professionals retrieved successfully", professionals)
}

func (h *SearchHandler) GetProfessional(w http.ResponseWriter, r *http.Request) {
	professionalID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid professional ID", nil)
		return
	}

	professional, err := h.searchUsecase.GetProfessional(r.Context(), professionalID)
	if err != nil {
		switch err {
		case usecase.ErrProfessionalNotFound:
			response.NotFound(w, "Professional not found")
		default:
			response.InternalServerError(w, "Failed to get professional")
		}
		return
	}

	response.Success(w, http.StatusOK, "Professional retrieved successfully", professional)
}
