package dto

// Request DTOs

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty"`
}

type UpdateCategoryRequest struct {
	Name        string `json:"name" validate:"omitempty,min=2,max=100"`
	Description string `json:"description" validate:"omitempty"`
}

type CreateActivityRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty"`
	CategoryID  *int64 `json:"category_id" validate:"omitempty,min=1"`
}

type UpdateActivityRequest struct {
	Name        string  `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty"`
	CategoryID  *int64  `json:"category_id" validate:"omitempty,min=1"`
}

// Response DTOs

type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Total      int                `json:"total"`
}

type ActivityResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	CategoryID  *int64            `json:"category_id,omitempty"`
	Category    *CategoryResponse `json:"category,omitempty"`
}

type ActivityListResponse struct {
	Activities []ActivityResponse `json:"activities"`
	Total      int                `json:"total"`
}
