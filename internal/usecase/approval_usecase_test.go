package usecase

import (
	"testing"

	"health-marketplace-backend/internal/delivery/dto"
	"health-marketplace-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func updateProfessionalRequest(bio, approvalStatus *string) *dto.UpdateProfessionalRequest {
	return &dto.UpdateProfessionalRequest{Bio: bio, ApprovalStatus: approvalStatus}
}

func pendingProfile(id int64) *entity.ProfessionalProfile {
	return &entity.ProfessionalProfile{
		ID:             id,
		UserID:         uuid.New(),
		DocumentNumber: "CRM-12345",
		DiplomaFile:    "diplomas/crm-12345.pdf",
		ApprovalStatus: entity.ApprovalStatusPending,
	}
}

func TestApprove_SetsDateAndMirrorsUser(t *testing.T) {
	db, mock := newTestDB(t)
	profile := pendingProfile(1)
	professionalRepo := newFakeProfessionalRepo(profile)
	userRepo := newFakeUserRepo(&entity.User{ID: profile.UserID, RoleID: entity.RoleIDProfessional})
	audit := &fakeAuditService{}
	uc := NewApprovalUsecase(db, testLogger(), professionalRepo, userRepo, audit)

	mock.ExpectBegin()
	mock.ExpectCommit()

	adminID := uuid.New()
	resp, err := uc.Approve(authContext(adminID, entity.RoleIDAdmin), 1)
	require.NoError(t, err)

	assert.Equal(t, "approved", resp.ApprovalStatus)
	assert.NotNil(t, resp.ApprovalDate)
	assert.Nil(t, resp.RejectionReason)
	assert.Equal(t, []entity.ApprovalStatus{entity.ApprovalStatusApproved}, userRepo.mirrored)
	assert.Equal(t, []string{entity.AuditActionProfessionalApprove}, audit.actions)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReject_DefaultsReason(t *testing.T) {
	db, mock := newTestDB(t)
	profile := pendingProfile(1)
	professionalRepo := newFakeProfessionalRepo(profile)
	userRepo := newFakeUserRepo(&entity.User{ID: profile.UserID, RoleID: entity.RoleIDProfessional})
	uc := NewApprovalUsecase(db, testLogger(), professionalRepo, userRepo, &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := uc.Reject(authContext(uuid.New(), entity.RoleIDAdmin), 1, "")
	require.NoError(t, err)

	assert.Equal(t, "rejected", resp.ApprovalStatus)
	assert.Nil(t, resp.ApprovalDate)
	require.NotNil(t, resp.RejectionReason)
	assert.Equal(t, DefaultRejectionReason, *resp.RejectionReason)
	assert.Equal(t, []entity.ApprovalStatus{entity.ApprovalStatusRejected}, userRepo.mirrored)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReject_KeepsGivenReason(t *testing.T) {
	db, mock := newTestDB(t)
	profile := pendingProfile(1)
	professionalRepo := newFakeProfessionalRepo(profile)
	userRepo := newFakeUserRepo(&entity.User{ID: profile.UserID})
	uc := NewApprovalUsecase(db, testLogger(), professionalRepo, userRepo, &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := uc.Reject(authContext(uuid.New(), entity.RoleIDAdmin), 1, "diploma unreadable")
	require.NoError(t, err)
	require.NotNil(t, resp.RejectionReason)
	assert.Equal(t, "diploma unreadable", *resp.RejectionReason)
}

func TestApprove_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	uc := NewApprovalUsecase(db, testLogger(), newFakeProfessionalRepo(), newFakeUserRepo(), &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := uc.Approve(authContext(uuid.New(), entity.RoleIDAdmin), 99)
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestApprove_TerminalStateConflicts(t *testing.T) {
	for _, status := range []entity.ApprovalStatus{entity.ApprovalStatusApproved, entity.ApprovalStatusRejected} {
		t.Run(string(status), func(t *testing.T) {
			db, mock := newTestDB(t)
			profile := pendingProfile(1)
			profile.ApprovalStatus = status
			uc := NewApprovalUsecase(db, testLogger(), newFakeProfessionalRepo(profile), newFakeUserRepo(), &fakeAuditService{})

			mock.ExpectBegin()
			mock.ExpectRollback()

			_, err := uc.Approve(authContext(uuid.New(), entity.RoleIDAdmin), 1)
			var conflict *ApprovalConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Equal(t, status, conflict.Current)
		})
	}
}

func TestApprove_LostRaceReportsWinnerStatus(t *testing.T) {
	db, mock := newTestDB(t)
	profile := pendingProfile(1)
	professionalRepo := newFakeProfessionalRepo(profile)
	professionalRepo.updateRows = 0
	professionalRepo.raceTo = entity.ApprovalStatusRejected
	userRepo := newFakeUserRepo(&entity.User{ID: profile.UserID})
	uc := NewApprovalUsecase(db, testLogger(), professionalRepo, userRepo, &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := uc.Approve(authContext(uuid.New(), entity.RoleIDAdmin), 1)
	var conflict *ApprovalConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, entity.ApprovalStatusRejected, conflict.Current)
	assert.Empty(t, userRepo.mirrored)
}

func TestUpdateProfile_AdminSetsStatusWithInvariants(t *testing.T) {
	db, mock := newTestDB(t)
	profile := pendingProfile(1)
	professionalRepo := newFakeProfessionalRepo(profile)
	userRepo := newFakeUserRepo(&entity.User{ID: profile.UserID})
	uc := NewApprovalUsecase(db, testLogger(), professionalRepo, userRepo, &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	status := "rejected"
	resp, err := uc.UpdateProfile(authContext(uuid.New(), entity.RoleIDAdmin), 1, updateProfessionalRequest(nil, &status))
	require.NoError(t, err)

	assert.Equal(t, "rejected", resp.ApprovalStatus)
	assert.Nil(t, resp.ApprovalDate)
	require.NotNil(t, resp.RejectionReason)
	assert.Equal(t, DefaultRejectionReason, *resp.RejectionReason)
	assert.Equal(t, []entity.ApprovalStatus{entity.ApprovalStatusRejected}, userRepo.mirrored)
}

func TestUpdateProfile_AdminInvalidStatus(t *testing.T) {
	db, mock := newTestDB(t)
	profile := pendingProfile(1)
	uc := NewApprovalUsecase(db, testLogger(), newFakeProfessionalRepo(profile), newFakeUserRepo(), &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	status := "archived"
	_, err := uc.UpdateProfile(authContext(uuid.New(), entity.RoleIDAdmin), 1, updateProfessionalRequest(nil, &status))
	assert.ErrorIs(t, err, ErrInvalidApprovalStatus)
}

func TestUpdateProfile_OwnerEditsBio(t *testing.T) {
	db, mock := newTestDB(t)
	profile := pendingProfile(1)
	uc := NewApprovalUsecase(db, testLogger(), newFakeProfessionalRepo(profile), newFakeUserRepo(), &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	bio := "Sports physiotherapist, 10 years of practice"
	resp, err := uc.UpdateProfile(authContext(profile.UserID, entity.RoleIDProfessional), 1, updateProfessionalRequest(&bio, nil))
	require.NoError(t, err)
	assert.Equal(t, bio, resp.Bio)
	assert.Equal(t, "pending", resp.ApprovalStatus)
}

func TestUpdateProfile_OwnerCannotTouchApprovalStatus(t *testing.T) {
	db, mock := newTestDB(t)
	profile := pendingProfile(1)
	uc := NewApprovalUsecase(db, testLogger(), newFakeProfessionalRepo(profile), newFakeUserRepo(), &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	status := "approved"
	_, err := uc.UpdateProfile(authContext(profile.UserID, entity.RoleIDProfessional), 1, updateProfessionalRequest(nil, &status))
	assert.ErrorIs(t, err, ErrApprovalStatusForbidden)
}

func TestUpdateProfile_StrangerProfessionalForbidden(t *testing.T) {
	db, mock := newTestDB(t)
	profile := pendingProfile(1)
	uc := NewApprovalUsecase(db, testLogger(), newFakeProfessionalRepo(profile), newFakeUserRepo(), &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	bio := "hijacked"
	_, err := uc.UpdateProfile(authContext(uuid.New(), entity.RoleIDProfessional), 1, updateProfessionalRequest(&bio, nil))
	assert.ErrorIs(t, err, ErrNotProfileOwner)
}

func TestUpdateProfile_PatientRoleRejected(t *testing.T) {
	db, mock := newTestDB(t)
	profile := pendingProfile(1)
	uc := NewApprovalUsecase(db, testLogger(), newFakeProfessionalRepo(profile), newFakeUserRepo(), &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	bio := "nope"
	_, err := uc.UpdateProfile(authContext(uuid.New(), entity.RoleIDPatient), 1, updateProfessionalRequest(&bio, nil))
	assert.ErrorIs(t, err, ErrRoleNotAllowed)
}

func TestListPending_ReturnsOnlyPending(t *testing.T) {
	db, _ := newTestDB(t)
	pending := pendingProfile(1)
	approved := pendingProfile(2)
	approved.ApprovalStatus = entity.ApprovalStatusApproved
	uc := NewApprovalUsecase(db, testLogger(), newFakeProfessionalRepo(pending, approved), newFakeUserRepo(), &fakeAuditService{})

	resp, err := uc.ListPending(authContext(uuid.New(), entity.RoleIDAdmin))
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, pending.ID, resp.Professionals[0].ID)
}
