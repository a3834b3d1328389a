package usecase

import (
	"context"
	"testing"
	"time"

	"health-marketplace-backend/internal/delivery/http/middleware"
	"health-marketplace-backend/internal/domain/entity"
	"health-marketplace-backend/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB returns a gorm handle backed by sqlmock. The fake repositories
// never touch SQL, so only transaction boundaries show up as expectations.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func authContext(userID uuid.UUID, roleID int) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, userID)
	return context.WithValue(ctx, middleware.RoleIDKey, roleID)
}

// fakeProfessionalRepo implements ProfessionalProfileRepository in memory.
type fakeProfessionalRepo struct {
	profiles   map[int64]*entity.ProfessionalProfile
	updateRows int64
	updated    []*entity.ProfessionalProfile
	approvals  []entity.ApprovalStatus

	// raceTo simulates a concurrent reviewer: the profile flips to this
	// status after the first read.
	raceTo    entity.ApprovalStatus
	findCount int
}

func newFakeProfessionalRepo(profiles ...*entity.ProfessionalProfile) *fakeProfessionalRepo {
	m := make(map[int64]*entity.ProfessionalProfile, len(profiles))
	for _, p := range profiles {
		m[p.ID] = p
	}
	return &fakeProfessionalRepo{profiles: m, updateRows: 1}
}

func (f *fakeProfessionalRepo) Create(db *gorm.DB, profile *entity.ProfessionalProfile) error {
	profile.ID = int64(len(f.profiles) + 1)
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeProfessionalRepo) FindByID(db *gorm.DB, id int64) (*entity.ProfessionalProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, nil
	}
	f.findCount++
	if f.raceTo != "" && f.findCount > 1 {
		p.ApprovalStatus = f.raceTo
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProfessionalRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.ProfessionalProfile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeProfessionalRepo) FindPending(db *gorm.DB) ([]entity.ProfessionalProfile, error) {
	var out []entity.ProfessionalProfile
	for _, p := range f.profiles {
		if p.IsPending() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProfessionalRepo) FindApproved(db *gorm.DB, filter repository.ProfessionalSearchFilter) ([]entity.ProfessionalProfile, error) {
	var out []entity.ProfessionalProfile
	for _, p := range f.profiles {
		if p.IsApproved() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProfessionalRepo) Update(db *gorm.DB, profile *entity.ProfessionalProfile) error {
	clone := *profile
	f.profiles[profile.ID] = &clone
	f.updated = append(f.updated, &clone)
	return nil
}

func (f *fakeProfessionalRepo) UpdateApprovalFromPending(db *gorm.DB, id int64, status entity.ApprovalStatus, approvalDate *time.Time, rejectionReason *string) (int64, error) {
	f.approvals = append(f.approvals, status)
	if f.updateRows > 0 {
		if p, ok := f.profiles[id]; ok && p.IsPending() {
			p.ApprovalStatus = status
			p.ApprovalDate = approvalDate
			p.RejectionReason = rejectionReason
		}
	}
	return f.updateRows, nil
}

// fakeUserRepo implements UserRepository in memory.
type fakeUserRepo struct {
	users    map[uuid.UUID]*entity.User
	mirrored []entity.ApprovalStatus
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	m := make(map[uuid.UUID]*entity.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) Create(db *gorm.DB, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUserRepo) Update(db *gorm.DB, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateApprovalStatus(db *gorm.DB, id uuid.UUID, status entity.ApprovalStatus) error {
	f.mirrored = append(f.mirrored, status)
	if u, ok := f.users[id]; ok {
		s := status
		u.ApprovalStatus = &s
	}
	return nil
}

// fakeBookingRepo implements BookingRepository in memory.
type fakeBookingRepo struct {
	bookings   map[uuid.UUID]*entity.Booking
	updateRows int64
}

func newFakeBookingRepo(bookings ...*entity.Booking) *fakeBookingRepo {
	m := make(map[uuid.UUID]*entity.Booking, len(bookings))
	for _, b := range bookings {
		m[b.ID] = b
	}
	return &fakeBookingRepo{bookings: m, updateRows: 1}
}

func (f *fakeBookingRepo) Create(db *gorm.DB, booking *entity.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	clone := *booking
	f.bookings[booking.ID] = &clone
	return nil
}

func (f *fakeBookingRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	clone := *b
	return &clone, nil
}

func (f *fakeBookingRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Booking, error) {
	var out []entity.Booking
	for _, b := range f.bookings {
		if b.PatientID == patientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindByProfessionalID(db *gorm.DB, professionalID int64) ([]entity.Booking, error) {
	var out []entity.Booking
	for _, b := range f.bookings {
		if b.ProfessionalID == professionalID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindAll(db *gorm.DB) ([]entity.Booking, error) {
	var out []entity.Booking
	for _, b := range f.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatusFrom(db *gorm.DB, id uuid.UUID, from, to entity.BookingStatus) (int64, error) {
	if f.updateRows > 0 {
		if b, ok := f.bookings[id]; ok && b.Status == from {
			b.Status = to
		}
	}
	return f.updateRows, nil
}

// fakeAuditService records actions without writing anywhere.
type fakeAuditService struct {
	actions []string
}

func (f *fakeAuditService) LogAction(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	f.actions = append(f.actions, action)
	return nil
}
