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

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUsecase
	validator      *validator.CustomValidator
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUsecase, validator *validator.CustomValidator) *CatalogHandler {
	return &CatalogHandler{
		catalogUsecase: catalogUsecase,
		validator:      validator,
	}
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogUsecase.ListCategories(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list categories")
		return
	}

	response.Success(w, http.StatusOK, "Categories retrieved successfully", categories)
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	category, err := h.catalogUsecase.CreateCategory(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrCategoryNameTaken:
			response.Conflict(w, "Category name already exists")
		default:
			response.InternalServerError(w, "Failed to create category")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Category created successfully", category)
}

func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := parseCatalogID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid category ID", nil)
		return
	}

	var req dto.UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	category, err := h.catalogUsecase.UpdateCategory(r.Context(), categoryID, &req)
	if err != nil {
		switch err {
		case usecase.ErrCategoryNotFound:
			response.NotFound(w, "Category not found")
		case usecase.ErrCategoryNameTaken:
			response.Conflict(w, "Category name already exists")
		default:
			response.InternalServerError(w, "Failed to update category")
		}
		return
	}

	response.Success(w, http.StatusOK, "Category updated successfully", category)
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := parseCatalogID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid category ID", nil)
		return
	}

	if err := h.catalogUsecase.DeleteCategory(r.Context(), categoryID); err != nil {
		switch err {
		case usecase.ErrCategoryNotFound:
			response.NotFound(w, "Category not found")
		case usecase.ErrCategoryHasActivity:
			response.Conflict(w, "Category still has activities and cannot be deleted")
		default:
			response.InternalServerError(w, "Failed to delete category")
		}
		return
	}

	response.Success(w, http.StatusOK, "Category deleted successfully", nil)
}

func (h *CatalogHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.catalogUsecase.ListActivities(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list activities")
		return
	}

	response.Success(w, http.StatusOK, "Activities retrieved successfully", activities)
}

func (h *CatalogHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	activity, err := h.catalogUsecase.CreateActivity(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrCategoryNotFound:
			response.Error(w, http.StatusUnprocessableEntity, "Category not found", nil)
		case usecase.ErrActivityNameTaken:
			response.Conflict(w, "Activity name already exists")
		default:
			response.InternalServerError(w, "Failed to create activity")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Activity created successfully", activity)
}

func (h *CatalogHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	activityID, err := parseCatalogID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid activity ID", nil)
		return
	}

	var req dto.UpdateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	activity, err := h.catalogUsecase.UpdateActivity(r.Context(), activityID, &req)
	if err != nil {
		switch err {
		case usecase.ErrActivityNotFound:
			response.NotFound(w, "Activity not found")
		case usecase.ErrCategoryNotFound:
			response.Error(w, http.StatusUnprocessableEntity, "Category not found", nil)
		case usecase.ErrActivityNameTaken:
			response.Conflict(w, "Activity name already exists")
		default:
			response.InternalServerError(w, "Failed to update activity")
		}
		return
	}

	response.Success(w, http.StatusOK, "Activity updated successfully", activity)
}

func (h *CatalogHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	activityID, err := parseCatalogID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid activity ID", nil)
		return
	}

	if err := h.catalogUsecase.DeleteActivity(r.Context(), activityID); err != nil {
		switch err {
		case usecase.ErrActivityNotFound:
			response.NotFound(w, "Activity not found")
		case usecase.ErrActivityInUse:
			response.Conflict(w, "Activity is referenced by offerings and cannot be deleted")
		default:
			response.InternalServerError(w, "Failed to delete activity")
		}
		return
	}

	response.Success(w, http.StatusOK, "Activity deleted successfully", nil)
}

func parseCatalogID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
