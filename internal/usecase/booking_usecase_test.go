package usecase

import (
	"testing"
	"time"

	"health-marketplace-backend/internal/delivery/dto"
	"health-marketplace-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedProfile(id int64) *entity.ProfessionalProfile {
	now := time.Now().UTC()
	return &entity.ProfessionalProfile{
		ID:             id,
		UserID:         uuid.New(),
		DocumentNumber: "CRM-99",
		DiplomaFile:    "diplomas/crm-99.pdf",
		ApprovalStatus: entity.ApprovalStatusApproved,
		ApprovalDate:   &now,
	}
}

func bookingWith(status entity.BookingStatus, patientID uuid.UUID, professionalID int64) *entity.Booking {
	return &entity.Booking{
		ID:             uuid.New(),
		PatientID:      patientID,
		ProfessionalID: professionalID,
		ScheduledDate:  time.Now().UTC().Add(48 * time.Hour),
		Status:         status,
	}
}

func TestCreateBooking_StartsPending(t *testing.T) {
	db, mock := newTestDB(t)
	professional := approvedProfile(1)
	bookingRepo := newFakeBookingRepo()
	audit := &fakeAuditService{}
	uc := NewBookingUsecase(db, testLogger(), bookingRepo, newFakeProfessionalRepo(professional), audit)

	mock.ExpectBegin()
	mock.ExpectCommit()

	patientID := uuid.New()
	resp, err := uc.Create(authContext(patientID, entity.RoleIDPatient), &dto.CreateBookingRequest{
		ProfessionalID: 1,
		ScheduledDate:  time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, patientID, resp.PatientID)
	assert.Equal(t, int64(1), resp.ProfessionalID)
	assert.Equal(t, []string{entity.AuditActionBookingCreate}, audit.actions)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking_AcceptsBareTimestamp(t *testing.T) {
	db, mock := newTestDB(t)
	uc := NewBookingUsecase(db, testLogger(), newFakeBookingRepo(), newFakeProfessionalRepo(approvedProfile(1)), &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	raw := time.Now().UTC().Add(24 * time.Hour).Format("2006-01-02T15:04:05")
	resp, err := uc.Create(authContext(uuid.New(), entity.RoleIDPatient), &dto.CreateBookingRequest{
		ProfessionalID: 1,
		ScheduledDate:  raw,
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
}

func TestCreateBooking_OnlyPatients(t *testing.T) {
	db, _ := newTestDB(t)
	uc := NewBookingUsecase(db, testLogger(), newFakeBookingRepo(), newFakeProfessionalRepo(approvedProfile(1)), &fakeAuditService{})

	for _, roleID := range []int{entity.RoleIDAdmin, entity.RoleIDProfessional} {
		_, err := uc.Create(authContext(uuid.New(), roleID), &dto.CreateBookingRequest{
			ProfessionalID: 1,
			ScheduledDate:  time.Now().UTC().Add(time.Hour).Format(time.RFC3339),
		})
		assert.ErrorIs(t, err, ErrNotPatient)
	}
}

func TestCreateBooking_RejectsBadDates(t *testing.T) {
	db, _ := newTestDB(t)
	uc := NewBookingUsecase(db, testLogger(), newFakeBookingRepo(), newFakeProfessionalRepo(approvedProfile(1)), &fakeAuditService{})

	_, err := uc.Create(authContext(uuid.New(), entity.RoleIDPatient), &dto.CreateBookingRequest{
		ProfessionalID: 1,
		ScheduledDate:  "next tuesday",
	})
	assert.ErrorIs(t, err, ErrInvalidScheduledDate)

	_, err = uc.Create(authContext(uuid.New(), entity.RoleIDPatient), &dto.CreateBookingRequest{
		ProfessionalID: 1,
		ScheduledDate:  time.Now().UTC().Add(-time.Hour).Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, ErrScheduledDateInPast)
}

func TestCreateBooking_RequiresApprovedProfessional(t *testing.T) {
	pending := pendingProfile(1)

	for name, professionalID := range map[string]int64{"pending": 1, "missing": 42} {
		t.Run(name, func(t *testing.T) {
			db, mock := newTestDB(t)
			uc := NewBookingUsecase(db, testLogger(), newFakeBookingRepo(), newFakeProfessionalRepo(pending), &fakeAuditService{})

			mock.ExpectBegin()
			mock.ExpectRollback()

			_, err := uc.Create(authContext(uuid.New(), entity.RoleIDPatient), &dto.CreateBookingRequest{
				ProfessionalID: professionalID,
				ScheduledDate:  time.Now().UTC().Add(time.Hour).Format(time.RFC3339),
			})
			assert.ErrorIs(t, err, ErrProfessionalNotAvailable)
		})
	}
}

func TestUpdateStatus_ProfessionalConfirmsPending(t *testing.T) {
	db, mock := newTestDB(t)
	professional := approvedProfile(1)
	booking := bookingWith(entity.BookingStatusPending, uuid.New(), 1)
	audit := &fakeAuditService{}
	uc := NewBookingUsecase(db, testLogger(), newFakeBookingRepo(booking), newFakeProfessionalRepo(professional), audit)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := uc.UpdateStatus(authContext(professional.UserID, entity.RoleIDProfessional), booking.ID, &dto.UpdateBookingStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, []string{entity.AuditActionBookingStatusUpdate}, audit.actions)
}

func TestUpdateStatus_ProfessionalCompletesOnlyConfirmed(t *testing.T) {
	professional := approvedProfile(1)

	t.Run("from confirmed", func(t *testing.T) {
		db, mock := newTestDB(t)
		booking := bookingWith(entity.BookingStatusConfirmed, uuid.New(), 1)
		uc := NewBookingUsecase(db, testLogger(), newFakeBookingRepo(booking), newFakeProfessionalRepo(professional), &fakeAuditService{})

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := uc.UpdateStatus(authContext(professional.UserID, entity.RoleIDProfessional), booking.ID, &dto.UpdateBookingStatusRequest{Status: "completed"})
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
	})

	t.Run("from pending", func(t *testing.T) {
		db, mock := newTestDB(t)
		booking := bookingWith(entity.BookingStatusPending, uuid.New(), 1)
		uc := NewBookingUsecase(db, testLogger(), newFakeBookingRepo(booking), newFakeProfessionalRepo(professional), &fakeAuditService{})

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := uc.UpdateStatus(authContext(professional.UserID, entity.RoleIDProfessional), booking.ID, &dto.UpdateBookingStatusRequest{Status: "completed"})
		var conflict *BookingConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, entity.BookingStatusPending, conflict.Current)
	})
}

func TestUpdateStatus_PatientCancelsOwnBooking(t *testing.T) {
	for _, from := range []entity.BookingStatus{entity.BookingStatusPending, entity.BookingStatusConfirmed} {
		t.Run(string(from), func(t *testing.T) {
			db, mock := newTestDB(t)
			patientID := uuid.New()
			booking := bookingWith(from, patientID, 1)
			uc := NewBookingUsecase(db, testLogger(), newFakeBookingRepo(booking), newFakeProfessionalRepo(approvedProfile(1)), &fakeAuditService{})

			mock.ExpectBegin()
			mock.ExpectCommit()

			resp, err := uc.UpdateStatus(authContext(patientID, entity.RoleIDPatient), booking.ID, &dto.UpdateBookingStatusRequest{Status: "cancelled"})
			require.NoError(t, err)
			assert.Equal(t, "cancelled", resp.Status)
		})
	}
}

func TestUpdateStatus_PatientCannotCancelSettledBooking(t *testing.T) {
	for _, from := range []entity.BookingStatus{entity.BookingStatusCompleted, entity.BookingStatusCancelled} {
		t.Run(string(from), func(t *testing.T) {
			db, mock := newTestDB(t)
			patientID := uuid.New()
			booking := bookingWith(from, patientID, 1)
			uc := NewBookingUsecase(db, testLogger(), newFakeBookingRepo(booking), newFakeProfessionalRepo(approvedProfile(1)), &fakeAuditService{})

			mock.ExpectBegin()
			mock.ExpectRollback()

			_, err := uc.UpdateStatus(authContext(patientID, entity.RoleIDPatient), booking.ID, &dto.UpdateBookingStatusRequest{Status: "cancelled"})
			var conflict *BookingConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Equal(t, from, conflict.Current)
		})
	}
}

func TestBookingLifecycle_CancelAfterCompletionFails(t *testing.T) {
	db, mock := newTestDB(t)
	professional := approvedProfile(1)
	bookingRepo := newFakeBookingRepo()
	uc := NewBookingUsecase(db, testLogger(), bookingRepo, newFakeProfessionalRepo(professional), &fakeAuditService{})

	// create, confirm and complete each commit; the final cancel rolls back
	for i := 0; i < 3; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}
	mock.ExpectBegin()
	mock.ExpectRollback()

	patientID := uuid.New()
	created, err := uc.Create(authContext(patientID, entity.RoleIDPatient), &dto.CreateBookingRequest{
		ProfessionalID: 1,
		ScheduledDate:  time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)
	require.Equal(t, "pending", created.Status)

	confirmed, err := uc.UpdateStatus(authContext(professional.UserID, entity.RoleIDProfessional), created.ID, &dto.UpdateBookingStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	require.Equal(t, "confirmed", confirmed.Status)

	completed, err := uc.UpdateStatus(authContext(professional.UserID, entity.RoleIDProfessional), created.ID, &dto.UpdateBookingStatusRequest{Status: "completed"})
	require.NoError(t, err)
	require.Equal(t, "completed", completed.Status)

	_, err = uc.UpdateStatus(authContext(patientID, entity.RoleIDPatient), created.ID, &dto.UpdateBookingStatusRequest{Status: "cancelled"})
	var conflict *BookingConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, entity.BookingStatusCompleted, conflict.Current)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_PatientCannotConfirmOrComplete(t *testing.T) {
	patientID := uuid.New()
	booking := bookingWith(entity.BookingStatusPending, patientID, 1)

	for _, target := range []string{"confirmed", "completed"} {
		db, mock := newTestDB(t)
		uc := NewBookingUsecase(db, testLogger(), newFakeBookingRepo(booking), newFakeProfessionalRepo(approvedProfile(1)), &fakeAuditService{})

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := uc.UpdateStatus(authContext(patientID, entity.RoleIDPatient), booking.ID, &dto.UpdateBookingStatusRequest{Status: target})
		assert.ErrorIs(t, err, ErrRoleNotAllowed)
	}
}

func TestUpdateStatus_TerminalStatesAreFinalForNonAdmins(t *testing.T) {
	professional := approvedProfile(1)

	for _, from := range []entity.BookingStatus{entity.BookingStatusCancelled, entity.BookingStatusCompleted} {
		t.Run(string(from), func(t *testing.T) {
			db, mock := newTestDB(t)
			booking := bookingWith(from, uuid.New(), 1)
			uc := NewBookingUsecase(db, testLogger(), newFakeBookingRepo(booking), newFakeProfessionalRepo(professional), &fakeAuditService{})

			mock.ExpectBegin()
			mock.ExpectRollback()

			_, err := uc.UpdateStatus(authContext(professional.UserID, entity.RoleIDProfessional), booking.ID, &dto.UpdateBookingStatusRequest{Status: "confirmed"})
			var conflict *BookingConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Equal(t, from, conflict.Current)
		})
	}
}

func TestUpdateStatus_AdminBypassesTransitionTable(t *testing.T) {
	db, mock := newTestDB(t)
	booking := bookingWith(entity.BookingStatusPending, uuid.New(), 1)
	uc := NewBookingUsecase(db, testLogger(), newFakeBookingRepo(booking), newFakeProfessionalRepo(approvedProfile(1)), &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := uc.UpdateStatus(authContext(uuid.New(), entity.RoleIDAdmin), booking.ID, &dto.UpdateBookingStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
}

func TestUpdateStatus_InvalidStatusValue(t *testing.T) {
	db, _ := newTestDB(t)
	booking := bookingWith(entity.BookingStatusPending, uuid.New(), 1)
	uc := NewBookingUsecase(db, testLogger(), newFakeBookingRepo(booking), newFakeProfessionalRepo(approvedProfile(1)), &fakeAuditService{})

	_, err := uc.UpdateStatus(authContext(uuid.New(), entity.RoleIDAdmin), booking.ID, &dto.UpdateBookingStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, entity.ErrInvalidBookingStatus)
}

func TestUpdateStatus_OwnershipEnforced(t *testing.T) {
	professional := approvedProfile(1)
	otherProfessional := approvedProfile(2)
	booking := bookingWith(entity.BookingStatusPending, uuid.New(), 1)

	t.Run("stranger patient", func(t *testing.T) {
		db, mock := newTestDB(t)
		uc := NewBookingUsecase(db, testLogger(), newFakeBookingRepo(booking), newFakeProfessionalRepo(professional), &fakeAuditService{})

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := uc.UpdateStatus(authContext(uuid.New(), entity.RoleIDPatient), booking.ID, &dto.UpdateBookingStatusRequest{Status: "cancelled"})
		assert.ErrorIs(t, err, ErrBookingNotOwned)
	})

	t.Run("other professional", func(t *testing.T) {
		db, mock := newTestDB(t)
		uc := NewBookingUsecase(db, testLogger(), newFakeBookingRepo(booking), newFakeProfessionalRepo(professional, otherProfessional), &fakeAuditService{})

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := uc.UpdateStatus(authContext(otherProfessional.UserID, entity.RoleIDProfessional), booking.ID, &dto.UpdateBookingStatusRequest{Status: "confirmed"})
		assert.ErrorIs(t, err, ErrBookingNotOwned)
	})
}

func TestUpdateStatus_LostRaceReportsConflict(t *testing.T) {
	db, mock := newTestDB(t)
	professional := approvedProfile(1)
	booking := bookingWith(entity.BookingStatusPending, uuid.New(), 1)
	bookingRepo := newFakeBookingRepo(booking)
	bookingRepo.updateRows = 0
	uc := NewBookingUsecase(db, testLogger(), bookingRepo, newFakeProfessionalRepo(professional), &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := uc.UpdateStatus(authContext(professional.UserID, entity.RoleIDProfessional), booking.ID, &dto.UpdateBookingStatusRequest{Status: "confirmed"})
	var conflict *BookingConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	uc := NewBookingUsecase(db, testLogger(), newFakeBookingRepo(), newFakeProfessionalRepo(approvedProfile(1)), &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := uc.UpdateStatus(authContext(uuid.New(), entity.RoleIDAdmin), uuid.New(), &dto.UpdateBookingStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListAndGet_RoleScoping(t *testing.T) {
	professional := approvedProfile(1)
	patientID := uuid.New()
	mine := bookingWith(entity.BookingStatusPending, patientID, 1)
	other := bookingWith(entity.BookingStatusConfirmed, uuid.New(), 2)

	t.Run("patient sees own only", func(t *testing.T) {
		db, _ := newTestDB(t)
		uc := NewBookingUsecase(db, testLogger(), newFakeBookingRepo(mine, other), newFakeProfessionalRepo(professional), &fakeAuditService{})

		resp, err := uc.List(authContext(patientID, entity.RoleIDPatient))
		require.NoError(t, err)
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, mine.ID, resp.Bookings[0].ID)
	})

	t.Run("professional sees own schedule", func(t *testing.T) {
		db, _ := newTestDB(t)
		uc := NewBookingUsecase(db, testLogger(), newFakeBookingRepo(mine, other), newFakeProfessionalRepo(professional), &fakeAuditService{})

		resp, err := uc.List(authContext(professional.UserID, entity.RoleIDProfessional))
		require.NoError(t, err)
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, mine.ID, resp.Bookings[0].ID)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		db, _ := newTestDB(t)
		uc := NewBookingUsecase(db, testLogger(), newFakeBookingRepo(mine, other), newFakeProfessionalRepo(professional), &fakeAuditService{})

		resp, err := uc.List(authContext(uuid.New(), entity.RoleIDAdmin))
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
	})

	t.Run("get blocks strangers", func(t *testing.T) {
		db, _ := newTestDB(t)
		uc := NewBookingUsecase(db, testLogger(), newFakeBookingRepo(mine), newFakeProfessionalRepo(professional), &fakeAuditService{})

		_, err := uc.Get(authContext(uuid.New(), entity.RoleIDPatient), mine.ID)
		assert.ErrorIs(t, err, ErrBookingNotOwned)

		resp, err := uc.Get(authContext(patientID, entity.RoleIDPatient), mine.ID)
		require.NoError(t, err)
		assert.Equal(t, mine.ID, resp.ID)
	})
}
