package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"health-marketplace-backend/internal/converter"
	"health-marketplace-backend/internal/delivery/dto"
	"health-marketplace-backend/internal/delivery/http/middleware"
	"health-marketplace-backend/internal/domain/entity"
	"health-marketplace-backend/internal/domain/repository"
	"health-marketplace-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// scheduledDateLayouts are tried in order when parsing a booking date.
// RFC3339 is canonical, the bare layout accepts timestamps without an offset
// and treats them as UTC.
var scheduledDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

var (
	ErrNotPatient               = errors.New("only patients can create bookings")
	ErrInvalidScheduledDate     = errors.New("scheduled_date must be a valid timestamp")
	ErrScheduledDateInPast      = errors.New("scheduled_date must be in the future")
	ErrProfessionalNotAvailable = errors.New("professional not found or not approved")
	ErrBookingNotFound          = errors.New("booking not found")
	ErrBookingNotOwned          = errors.New("booking does not belong to you")
)

// BookingUsecase drives the booking lifecycle. Status changes are role gated
// and guarded against concurrent transitions at the database level.
type BookingUsecase interface {
	Create(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	List(ctx context.Context) (*dto.BookingListResponse, error)
	Get(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error)
}

type bookingUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	bookingRepo      repository.BookingRepository
	professionalRepo repository.ProfessionalProfileRepository
	auditService     service.AuditService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	professionalRepo repository.ProfessionalProfileRepository,
	auditService service.AuditService,
) BookingUsecase {
	return &bookingUsecase{
		db:               db,
		log:              log,
		bookingRepo:      bookingRepo,
		professionalRepo: professionalRepo,
		auditService:     auditService,
	}
}

// Create books an approved professional for a future date. Only patients can
// create bookings, and every booking starts out pending.
func (u *bookingUsecase) Create(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrActorNotFound
	}
	roleID, ok := middleware.GetRoleIDFromContext(ctx)
	if !ok {
		return nil, ErrActorNotFound
	}
	if roleID != entity.RoleIDPatient {
		return nil, ErrNotPatient
	}

	scheduledDate, err := parseScheduledDate(req.ScheduledDate)
	if err != nil {
		return nil, err
	}
	if !scheduledDate.After(time.Now().UTC()) {
		return nil, ErrScheduledDateInPast
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	professional, err := u.professionalRepo.FindByID(tx, req.ProfessionalID)
	if err != nil {
		u.log.Warnf("Failed to find professional %d: %+v", req.ProfessionalID, err)
		return nil, err
	}
	if professional == nil || !professional.IsApproved() {
		return nil, ErrProfessionalNotAvailable
	}

	booking := &entity.Booking{
		PatientID:      patientID,
		ProfessionalID: req.ProfessionalID,
		ScheduledDate:  scheduledDate,
		Status:         entity.BookingStatusPending,
	}
	if err := u.bookingRepo.Create(tx, booking); err != nil {
		u.log.Warnf("Failed to create booking: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(ctx, tx, &patientID, entity.AuditActionBookingCreate, "booking", booking.ID.String(), nil, converter.BookingToResponse(booking)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Booking created: id=%s, patient=%s, professional=%d", booking.ID, patientID, req.ProfessionalID)
	return converter.BookingToResponse(booking), nil
}

// List returns the bookings visible to the caller: patients and professionals
// see their own, admins see everything.
func (u *bookingUsecase) List(ctx context.Context) (*dto.BookingListResponse, error) {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrActorNotFound
	}
	roleID, ok := middleware.GetRoleIDFromContext(ctx)
	if !ok {
		return nil, ErrActorNotFound
	}

	db := u.db.WithContext(ctx)

	var bookings []entity.Booking
	var err error
	switch roleID {
	case entity.RoleIDPatient:
		bookings, err = u.bookingRepo.FindByPatientID(db, actorID)
	case entity.RoleIDProfessional:
		var profile *entity.ProfessionalProfile
		profile, err = u.professionalRepo.FindByUserID(db, actorID)
		if err == nil {
			if profile == nil {
				return nil, ErrProfessionalNotFound
			}
			bookings, err = u.bookingRepo.FindByProfessionalID(db, profile.ID)
		}
	case entity.RoleIDAdmin:
		bookings, err = u.bookingRepo.FindAll(db)
	default:
		return nil, ErrRoleNotAllowed
	}
	if err != nil {
		u.log.Warnf("Failed to list bookings: %+v", err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// Get returns a single booking if the caller owns it or is an admin.
func (u *bookingUsecase) Get(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	db := u.db.WithContext(ctx)

	booking, err := u.bookingRepo.FindByID(db, bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if err := u.authorizeBookingAccess(ctx, db, booking); err != nil {
		return nil, err
	}

	return converter.BookingToResponse(booking), nil
}

// UpdateStatus transitions a booking through its lifecycle. The allowed
// targets depend on the caller's role and the booking's current status;
// admins may set any status. The update is guarded on the status we read,
// so two concurrent transitions cannot both win.
func (u *bookingUsecase) UpdateStatus(ctx context.Context, bookingID uuid.UUID, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error) {
	target, err := entity.ParseBookingStatus(req.Status)
	if err != nil {
		return nil, err
	}

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

	booking, err := u.bookingRepo.FindByID(tx, bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if err := u.authorizeBookingAccess(ctx, tx, booking); err != nil {
		return nil, err
	}
	if err := checkTransition(roleID, booking.Status, target); err != nil {
		return nil, err
	}

	rows, err := u.bookingRepo.UpdateStatusFrom(tx, bookingID, booking.Status, target)
	if err != nil {
		u.log.Warnf("Failed to update booking %s status: %+v", bookingID, err)
		return nil, err
	}
	if rows == 0 {
		// A concurrent transition changed the status between our read and
		// the guarded update.
		return nil, u.currentBookingConflict(tx, bookingID, target, booking.Status)
	}

	oldStatus := string(booking.Status)
	booking.Status = target
	if err := u.auditService.LogAction(ctx, tx, &actorID, entity.AuditActionBookingStatusUpdate, "booking", bookingID.String(), oldStatus, string(target)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Booking status updated: id=%s, %s -> %s, by=%s", bookingID, oldStatus, target, actorID)
	return converter.BookingToResponse(booking), nil
}

// authorizeBookingAccess enforces ownership: patients must be the booking's
// patient, professionals must own the booked profile, admins see everything.
func (u *bookingUsecase) authorizeBookingAccess(ctx context.Context, db *gorm.DB, booking *entity.Booking) error {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrActorNotFound
	}
	roleID, ok := middleware.GetRoleIDFromContext(ctx)
	if !ok {
		return ErrActorNotFound
	}

	switch roleID {
	case entity.RoleIDAdmin:
		return nil
	case entity.RoleIDPatient:
		if booking.PatientID != actorID {
			return ErrBookingNotOwned
		}
		return nil
	case entity.RoleIDProfessional:
		profile, err := u.professionalRepo.FindByUserID(db, actorID)
		if err != nil {
			u.log.Warnf("Failed to find professional profile for user %s: %+v", actorID, err)
			return err
		}
		if profile == nil || booking.ProfessionalID != profile.ID {
			return ErrBookingNotOwned
		}
		return nil
	default:
		return ErrRoleNotAllowed
	}
}

// checkTransition applies the role/status transition table. Admins are
// unconstrained; professionals confirm, cancel and complete their bookings;
// patients may only cancel.
func checkTransition(roleID int, from, to entity.BookingStatus) error {
	if roleID == entity.RoleIDAdmin {
		return nil
	}

	switch roleID {
	case entity.RoleIDProfessional:
		switch to {
		case entity.BookingStatusConfirmed:
			if from != entity.BookingStatusPending {
				return &BookingConflictError{Current: from, Reason: "only pending bookings can be confirmed"}
			}
		case entity.BookingStatusCancelled:
			if from != entity.BookingStatusPending && from != entity.BookingStatusConfirmed {
				return &BookingConflictError{Current: from, Reason: "only pending or confirmed bookings can be cancelled"}
			}
		case entity.BookingStatusCompleted:
			if from != entity.BookingStatusConfirmed {
				return &BookingConflictError{Current: from, Reason: "only confirmed bookings can be completed"}
			}
		default:
			return fmt.Errorf("professionals cannot set status %q: %w", to, ErrRoleNotAllowed)
		}
		return nil
	case entity.RoleIDPatient:
		if to != entity.BookingStatusCancelled {
			return fmt.Errorf("patients can only cancel bookings: %w", ErrRoleNotAllowed)
		}
		if from != entity.BookingStatusPending && from != entity.BookingStatusConfirmed {
			return &BookingConflictError{Current: from, Reason: "only pending or confirmed bookings can be cancelled"}
		}
		return nil
	default:
		return ErrRoleNotAllowed
	}
}

// currentBookingConflict re-reads the booking so the conflict error names the
// status the concurrent transition left behind.
func (u *bookingUsecase) currentBookingConflict(tx *gorm.DB, bookingID uuid.UUID, target entity.BookingStatus, fallback entity.BookingStatus) error {
	current := fallback
	if b, err := u.bookingRepo.FindByID(tx, bookingID); err == nil && b != nil {
		current = b.Status
	}
	return &BookingConflictError{
		Current: current,
		Reason:  fmt.Sprintf("booking status changed concurrently, cannot move to %s", target),
	}
}

func parseScheduledDate(raw string) (time.Time, error) {
	for _, layout := range scheduledDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidScheduledDate
}
