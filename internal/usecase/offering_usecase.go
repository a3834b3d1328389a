package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"health-marketplace-backend/internal/converter"
	"health-marketplace-backend/internal/delivery/dto"
	"health-marketplace-backend/internal/delivery/http/middleware"
	"health-marketplace-backend/internal/domain/entity"
	"health-marketplace-backend/internal/domain/repository"
	"health-marketplace-backend/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrOfferingNotFound = errors.New("offering not found")
	ErrOfferingNotOwned = errors.New("offering does not belong to you")
)

// OfferingUsecase lets professionals manage the activities they offer. Every
// operation is scoped to the caller's own profile.
type OfferingUsecase interface {
	List(ctx context.Context) (*dto.OfferingListResponse, error)
	Create(ctx context.Context, req *dto.CreateOfferingRequest) (*dto.OfferingResponse, error)
	Update(ctx context.Context, offeringID int64, req *dto.UpdateOfferingRequest) (*dto.OfferingResponse, error)
	Delete(ctx context.Context, offeringID int64) error
}

type offeringUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	offeringRepo     repository.ProfessionalActivityRepository
	professionalRepo repository.ProfessionalProfileRepository
	activityRepo     repository.ActivityRepository
	auditService     service.AuditService
}

func NewOfferingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	offeringRepo repository.ProfessionalActivityRepository,
	professionalRepo repository.ProfessionalProfileRepository,
	activityRepo repository.ActivityRepository,
	auditService service.AuditService,
) OfferingUsecase {
	return &offeringUsecase{
		db:               db,
		log:              log,
		offeringRepo:     offeringRepo,
		professionalRepo: professionalRepo,
		activityRepo:     activityRepo,
		auditService:     auditService,
	}
}

func (u *offeringUsecase) List(ctx context.Context) (*dto.OfferingListResponse, error) {
	db := u.db.WithContext(ctx)

	profile, err := u.ownProfile(ctx, db)
	if err != nil {
		return nil, err
	}

	offerings, err := u.offeringRepo.FindByProfessionalID(db, profile.ID)
	if err != nil {
		u.log.Warnf("Failed to list offerings for professional %d: %+v", profile.ID, err)
		return nil, err
	}

	return &dto.OfferingListResponse{
		Offerings: converter.OfferingsToResponses(offerings),
		Total:     len(offerings),
	}, nil
}

func (u *offeringUsecase) Create(ctx context.Context, req *dto.CreateOfferingRequest) (*dto.OfferingResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.ownProfile(ctx, tx)
	if err != nil {
		return nil, err
	}

	activity, err := u.activityRepo.FindByID(tx, req.ActivityID)
	if err != nil {
		u.log.Warnf("Failed to find activity %d: %+v", req.ActivityID, err)
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}

	price := decimal.Zero
	if req.Price != "" {
		price, err = decimal.NewFromString(req.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q", req.Price)
		}
	}

	offering := &entity.ProfessionalActivity{
		ProfessionalID: profile.ID,
		ActivityID:     req.ActivityID,
		Description:    req.Description,
		Price:          price,
		Availability:   req.Availability,
	}
	if err := u.offeringRepo.Create(tx, offering); err != nil {
		u.log.Warnf("Failed to create offering: %+v", err)
		return nil, err
	}
	offering.Activity = *activity

	u.auditOffering(ctx, tx, entity.AuditActionOfferingCreate, offering.ID, nil, offering)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.OfferingToResponse(offering), nil
}

func (u *offeringUsecase) Update(ctx context.Context, offeringID int64, req *dto.UpdateOfferingRequest) (*dto.OfferingResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	offering, err := u.ownOffering(ctx, tx, offeringID)
	if err != nil {
		return nil, err
	}

	old := *offering
	if req.Description != nil {
		offering.Description = *req.Description
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q", *req.Price)
		}
		offering.Price = price
	}
	if req.Availability != nil {
		offering.Availability = *req.Availability
	}

	if err := u.offeringRepo.Update(tx, offering); err != nil {
		u.log.Warnf("Failed to update offering %d: %+v", offeringID, err)
		return nil, err
	}

	u.auditOffering(ctx, tx, entity.AuditActionOfferingUpdate, offeringID, &old, offering)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.OfferingToResponse(offering), nil
}

func (u *offeringUsecase) Delete(ctx context.Context, offeringID int64) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	offering, err := u.ownOffering(ctx, tx, offeringID)
	if err != nil {
		return err
	}

	rows, err := u.offeringRepo.Delete(tx, offeringID)
	if err != nil {
		u.log.Warnf("Failed to delete offering %d: %+v", offeringID, err)
		return err
	}
	if rows == 0 {
		return ErrOfferingNotFound
	}

	u.auditOffering(ctx, tx, entity.AuditActionOfferingDelete, offeringID, offering, nil)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// ownProfile resolves the caller's professional profile.
func (u *offeringUsecase) ownProfile(ctx context.Context, db *gorm.DB) (*entity.ProfessionalProfile, error) {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrActorNotFound
	}

	profile, err := u.professionalRepo.FindByUserID(db, actorID)
	if err != nil {
		u.log.Warnf("Failed to find professional profile for user %s: %+v", actorID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfessionalNotFound
	}
	return profile, nil
}

// ownOffering resolves an offering and verifies the caller owns it.
func (u *offeringUsecase) ownOffering(ctx context.Context, db *gorm.DB, offeringID int64) (*entity.ProfessionalActivity, error) {
	profile, err := u.ownProfile(ctx, db)
	if err != nil {
		return nil, err
	}

	offering, err := u.offeringRepo.FindByID(db, offeringID)
	if err != nil {
		u.log.Warnf("Failed to find offering %d: %+v", offeringID, err)
		return nil, err
	}
	if offering == nil {
		return nil, ErrOfferingNotFound
	}
	if offering.ProfessionalID != profile.ID {
		return nil, ErrOfferingNotOwned
	}
	return offering, nil
}

func (u *offeringUsecase) auditOffering(ctx context.Context, tx *gorm.DB, action string, offeringID int64, oldValue, newValue interface{}) {
	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogAction(ctx, tx, &actorID, action, "offering", strconv.FormatInt(offeringID, 10), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}
}
