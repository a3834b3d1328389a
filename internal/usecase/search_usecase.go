package usecase

import (
	"context"

	"health-marketplace-backend/internal/converter"
	"health-marketplace-backend/internal/delivery/dto"
	"health-marketplace-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SearchUsecase serves the public marketplace listing. Only approved
// professionals are visible, projected without review-only fields.
type SearchUsecase interface {
	SearchProfessionals(ctx context.Context, filter repository.ProfessionalSearchFilter) (*dto.SearchProfessionalListResponse, error)
	GetProfessional(ctx context.Context, professionalID int64) (*dto.SearchProfessionalResponse, error)
}

type searchUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	professionalRepo repository.ProfessionalProfileRepository
}

func NewSearchUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	professionalRepo repository.ProfessionalProfileRepository,
) SearchUsecase {
	return &searchUsecase{
		db:               db,
		log:              log,
		professionalRepo: professionalRepo,
	}
}

// SearchProfessionals lists approved professionals, optionally narrowed by
// activity or category.
func (u *searchUsecase) SearchProfessionals(ctx context.Context, filter repository.ProfessionalSearchFilter) (*dto.SearchProfessionalListResponse, error) {
	profiles, err := u.professionalRepo.FindApproved(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to search professionals: %+v", err)
		return nil, err
	}

	responses := make([]dto.SearchProfessionalResponse, len(profiles))
	for i := range profiles {
		responses[i] = *converter.ProfessionalToSearchResponse(&profiles[i])
	}

	return &dto.SearchProfessionalListResponse{
		Professionals: responses,
		Total:         len(responses),
	}, nil
}

// GetProfessional returns the public projection of a single approved
// professional. Pending and rejected profiles are invisible here.
func (u *searchUsecase) GetProfessional(ctx context.Context, professionalID int64) (*dto.SearchProfessionalResponse, error) {
	profile, err := u.professionalRepo.FindByID(u.db.WithContext(ctx), professionalID)
	if err != nil {
		u.log.Warnf("Failed to find professional %d: %+v", professionalID, err)
		return nil, err
	}
	if profile == nil || !profile.IsApproved() {
		return nil, ErrProfessionalNotFound
	}

	return converter.ProfessionalToSearchResponse(profile), nil
}
