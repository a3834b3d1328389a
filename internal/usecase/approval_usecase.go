package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"health-marketplace-backend/internal/converter"
	"health-marketplace-backend/internal/delivery/dto"
	"health-marketplace-backend/internal/delivery/http/middleware"
	"health-marketplace-backend/internal/domain/entity"
	"health-marketplace-backend/internal/domain/repository"
	"health-marketplace-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DefaultRejectionReason is recorded when an admin rejects without giving one
const DefaultRejectionReason = "not specified"

var (
	ErrProfessionalNotFound    = errors.New("professional not found")
	ErrInvalidApprovalStatus   = errors.New("invalid approval status, must be one of: pending, approved, rejected")
	ErrNotProfileOwner         = errors.New("profile does not belong to you")
	ErrApprovalStatusForbidden = errors.New("only admins may change the approval status")
	ErrRoleNotAllowed          = errors.New("role is not allowed to perform this action")
	ErrActorNotFound           = errors.New("user not found in context")
)

// ApprovalUsecase gates marketplace visibility of professionals behind admin
// review. Approve/Reject move a pending profile to its terminal state and
// mirror the result onto the user record inside one transaction.
type ApprovalUsecase interface {
	ListPending(ctx context.Context) (*dto.ProfessionalListResponse, error)
	Approve(ctx context.Context, professionalID int64) (*dto.ProfessionalResponse, error)
	Reject(ctx context.Context, professionalID int64, reason string) (*dto.ProfessionalResponse, error)
	UpdateProfile(ctx context.Context, professionalID int64, req *dto.UpdateProfessionalRequest) (*dto.ProfessionalResponse, error)
}

type approvalUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	professionalRepo repository.ProfessionalProfileRepository
	userRepo         repository.UserRepository
	auditService     service.AuditService
}

func NewApprovalUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	professionalRepo repository.ProfessionalProfileRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) ApprovalUsecase {
	return &approvalUsecase{
		db:               db,
		log:              log,
		professionalRepo: professionalRepo,
		userRepo:         userRepo,
		auditService:     auditService,
	}
}

// ListPending returns all profiles awaiting review, joined with user display
// data. Admin gating happens at the route level.
func (u *approvalUsecase) ListPending(ctx context.Context) (*dto.ProfessionalListResponse, error) {
	profiles, err := u.professionalRepo.FindPending(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list pending professionals: %+v", err)
		return nil, err
	}

	return &dto.ProfessionalListResponse{
		Professionals: converter.ProfessionalsToResponses(profiles),
		Total:         len(profiles),
	}, nil
}

// Approve moves a pending profile to approved, stamps the approval date,
// clears any rejection reason and mirrors the state onto the user record.
// Both writes commit together or not at all.
func (u *approvalUsecase) Approve(ctx context.Context, professionalID int64) (*dto.ProfessionalResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.professionalRepo.FindByID(tx, professionalID)
	if err != nil {
		u.log.Warnf("Failed to find professional %d: %+v", professionalID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfessionalNotFound
	}
	if !profile.IsPending() {
		return nil, &ApprovalConflictError{Current: profile.ApprovalStatus}
	}

	now := time.Now().UTC()
	rows, err := u.professionalRepo.UpdateApprovalFromPending(tx, professionalID, entity.ApprovalStatusApproved, &now, nil)
	if err != nil {
		u.log.Warnf("Failed to approve professional %d: %+v", professionalID, err)
		return nil, err
	}
	if rows == 0 {
		// A concurrent reviewer processed this profile between our read and
		// the guarded update.
		return nil, u.currentStatusConflict(tx, professionalID, profile.ApprovalStatus)
	}

	if err := u.userRepo.UpdateApprovalStatus(tx, profile.UserID, entity.ApprovalStatusApproved); err != nil {
		u.log.Warnf("Failed to mirror approval onto user %s: %+v", profile.UserID, err)
		return nil, err
	}

	adminID, _ := middleware.GetUserIDFromContext(ctx)
	oldStatus := string(profile.ApprovalStatus)
	profile.ApprovalStatus = entity.ApprovalStatusApproved
	profile.ApprovalDate = &now
	profile.RejectionReason = nil
	if err := u.auditService.LogAction(ctx, tx, &adminID, entity.AuditActionProfessionalApprove, "professional_profile", strconv.FormatInt(professionalID, 10), oldStatus, string(profile.ApprovalStatus)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Professional approved: id=%d, user=%s", professionalID, profile.UserID)
	return converter.ProfessionalToResponse(profile), nil
}

// Reject moves a pending profile to rejected, records the reason (default
// when omitted) and mirrors the state onto the user record.
func (u *approvalUsecase) Reject(ctx context.Context, professionalID int64, reason string) (*dto.ProfessionalResponse, error) {
	if reason == "" {
		reason = DefaultRejectionReason
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.professionalRepo.FindByID(tx, professionalID)
	if err != nil {
		u.log.Warnf("Failed to find professional %d: %+v", professionalID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfessionalNotFound
	}
	if !profile.IsPending() {
		return nil, &ApprovalConflictError{Current: profile.ApprovalStatus}
	}

	rows, err := u.professionalRepo.UpdateApprovalFromPending(tx, professionalID, entity.ApprovalStatusRejected, nil, &reason)
	if err != nil {
		u.log.Warnf("Failed to reject professional %d: %+v", professionalID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, u.currentStatusConflict(tx, professionalID, profile.ApprovalStatus)
	}

	if err := u.userRepo.UpdateApprovalStatus(tx, profile.UserID, entity.ApprovalStatusRejected); err != nil {
		u.log.Warnf("Failed to mirror rejection onto user %s: %+v", profile.UserID, err)
		return nil, err
	}

	adminID, _ := middleware.GetUserIDFromContext(ctx)
	oldStatus := string(profile.ApprovalStatus)
	profile.ApprovalStatus = entity.ApprovalStatusRejected
	profile.ApprovalDate = nil
	profile.RejectionReason = &reason
	if err := u.auditService.LogAction(ctx, tx, &adminID, entity.AuditActionProfessionalReject, "professional_profile", strconv.FormatInt(professionalID, 10), oldStatus, string(profile.ApprovalStatus)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Professional rejected: id=%d, user=%s, reason=%q", professionalID, profile.UserID, reason)
	return converter.ProfessionalToResponse(profile), nil
}

// UpdateProfile lets an admin edit bio and/or approval status, and the owning
// professional edit their own bio. A professional trying to touch the
// approval status gets a permission error, never a silent ignore.
func (u *approvalUsecase) UpdateProfile(ctx context.Context, professionalID int64, req *dto.UpdateProfessionalRequest) (*dto.ProfessionalResponse, error) {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrActorNotFound
	}
	roleID, ok := middleware.GetRoleIDFromContext(ctx)
	if !ok {
		return nil, ErrActorNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.professionalRepo.FindByID(tx, professionalID)
	if err != nil {
		u.log.Warnf("Failed to find professional %d: %+v", professionalID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfessionalNotFound
	}

	oldValue := converter.ProfessionalToResponse(profile)

	switch roleID {
	case entity.RoleIDAdmin:
		if req.Bio != nil {
			profile.Bio = *req.Bio
		}
		if req.ApprovalStatus != nil {
			status := entity.ApprovalStatus(*req.ApprovalStatus)
			if !status.IsValid() {
				return nil, ErrInvalidApprovalStatus
			}
			u.applyApprovalStatus(profile, status)
			if err := u.userRepo.UpdateApprovalStatus(tx, profile.UserID, status); err != nil {
				u.log.Warnf("Failed to mirror approval status onto user %s: %+v", profile.UserID, err)
				return nil, err
			}
		}
	case entity.RoleIDProfessional:
		if profile.UserID != actorID {
			return nil, ErrNotProfileOwner
		}
		if req.ApprovalStatus != nil {
			return nil, ErrApprovalStatusForbidden
		}
		if req.Bio != nil {
			profile.Bio = *req.Bio
		}
	default:
		return nil, ErrRoleNotAllowed
	}

	if err := u.professionalRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update professional %d: %+v", professionalID, err)
		return nil, err
	}

	newValue := converter.ProfessionalToResponse(profile)
	if err := u.auditService.LogAction(ctx, tx, &actorID, entity.AuditActionProfessionalUpdate, "professional_profile", strconv.FormatInt(professionalID, 10), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

// applyApprovalStatus keeps the approval_date/rejection_reason invariant when
// an admin sets the status directly through a profile update.
func (u *approvalUsecase) applyApprovalStatus(profile *entity.ProfessionalProfile, status entity.ApprovalStatus) {
	profile.ApprovalStatus = status
	switch status {
	case entity.ApprovalStatusApproved:
		now := time.Now().UTC()
		profile.ApprovalDate = &now
		profile.RejectionReason = nil
	case entity.ApprovalStatusRejected:
		profile.ApprovalDate = nil
		if profile.RejectionReason == nil {
			reason := DefaultRejectionReason
			profile.RejectionReason = &reason
		}
	default:
		profile.ApprovalDate = nil
		profile.RejectionReason = nil
	}
}

// currentStatusConflict re-reads the profile so the conflict error names the
// status the concurrent reviewer left behind.
func (u *approvalUsecase) currentStatusConflict(tx *gorm.DB, professionalID int64, fallback entity.ApprovalStatus) error {
	current, err := u.professionalRepo.FindByID(tx, professionalID)
	if err != nil || current == nil {
		return &ApprovalConflictError{Current: fallback}
	}
	return &ApprovalConflictError{Current: current.ApprovalStatus}
}
