package converter

import (
	"health-marketplace-backend/internal/delivery/dto"
	"health-marketplace-backend/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	resp := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Phone:     user.Phone,
		Role:      entity.RoleName(user.RoleID),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if user.ApprovalStatus != nil {
		resp.ApprovalStatus = string(*user.ApprovalStatus)
	}
	return resp
}

// PatientToResponse converts a PatientProfile entity to PatientResponse DTO
func PatientToResponse(profile *entity.PatientProfile) *dto.PatientResponse {
	if profile == nil {
		return nil
	}

	return &dto.PatientResponse{
		UserID:    profile.UserID,
		FullName:  profile.User.FullName,
		Email:     profile.User.Email,
		Document:  profile.Document,
		BirthDate: profile.BirthDate,
		Address:   profile.Address,
		City:      profile.City,
		State:     profile.State,
		Phone:     profile.Phone,
	}
}
