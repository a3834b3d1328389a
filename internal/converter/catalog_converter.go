package converter

import (
	"health-marketplace-backend/internal/delivery/dto"
	"health-marketplace-backend/internal/domain/entity"
)

// CategoryToResponse converts a Category entity to CategoryResponse DTO
func CategoryToResponse(category *entity.Category) *dto.CategoryResponse {
	if category == nil {
		return nil
	}

	return &dto.CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	}
}

// CategoriesToResponses converts a slice of categories to response DTOs
func CategoriesToResponses(categories []entity.Category) []dto.CategoryResponse {
	responses := make([]dto.CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *CategoryToResponse(&categories[i])
	}
	return responses
}

// ActivityToResponse converts an Activity entity to ActivityResponse DTO
func ActivityToResponse(activity *entity.Activity) *dto.ActivityResponse {
	if activity == nil {
		return nil
	}

	return &dto.ActivityResponse{
		ID:          activity.ID,
		Name:        activity.Name,
		Description: activity.Description,
		CategoryID:  activity.CategoryID,
		Category:    CategoryToResponse(activity.Category),
	}
}

// ActivitiesToResponses converts a slice of activities to response DTOs
func ActivitiesToResponses(activities []entity.Activity) []dto.ActivityResponse {
	responses := make([]dto.ActivityResponse, len(activities))
	for i := range activities {
		responses[i] = *ActivityToResponse(&activities[i])
	}
	return responses
}
