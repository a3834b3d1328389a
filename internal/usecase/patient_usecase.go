package usecase

import (
	"context"
	"errors"
	"time"

	"health-marketplace-backend/internal/converter"
	"health-marketplace-backend/internal/delivery/dto"
	"health-marketplace-backend/internal/delivery/http/middleware"
	"health-marketplace-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrPatientProfileNotFound = errors.New("patient profile not found")

// PatientUsecase exposes a patient's own profile.
type PatientUsecase interface {
	GetProfile(ctx context.Context) (*dto.PatientResponse, error)
	UpdateProfile(ctx context.Context, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
}

type patientUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientProfileRepository
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientProfileRepository,
) PatientUsecase {
	return &patientUsecase{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
	}
}

func (u *patientUsecase) GetProfile(ctx context.Context) (*dto.PatientResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrActorNotFound
	}

	profile, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile for user %s: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientProfileNotFound
	}

	return converter.PatientToResponse(profile), nil
}

func (u *patientUsecase) UpdateProfile(ctx context.Context, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrActorNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.patientRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile for user %s: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientProfileNotFound
	}

	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Document != nil {
		profile.Document = *req.Document
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if req.City != nil {
		profile.City = *req.City
	}
	if req.State != nil {
		profile.State = *req.State
	}
	if req.BirthDate != nil {
		if *req.BirthDate == "" {
			profile.BirthDate = nil
		} else {
			birthDate, err := time.Parse(birthDateLayout, *req.BirthDate)
			if err != nil {
				return nil, ErrInvalidBirthDate
			}
			profile.BirthDate = &birthDate
		}
	}

	if err := u.patientRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update patient profile for user %s: %+v", userID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(profile), nil
}
