package usecase

import (
	"testing"

	"health-marketplace-backend/internal/delivery/dto"
	"health-marketplace-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCategoryRepo struct {
	categories map[int64]*entity.Category
}

func newFakeCategoryRepo(categories ...*entity.Category) *fakeCategoryRepo {
	m := make(map[int64]*entity.Category, len(categories))
	for _, c := range categories {
		m[c.ID] = c
	}
	return &fakeCategoryRepo{categories: m}
}

func (f *fakeCategoryRepo) Create(db *gorm.DB, category *entity.Category) error {
	category.ID = int64(len(f.categories) + 1)
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) FindByID(db *gorm.DB, id int64) (*entity.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (f *fakeCategoryRepo) FindAll(db *gorm.DB) ([]entity.Category, error) {
	var out []entity.Category
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(db *gorm.DB, category *entity.Category) error {
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) Delete(db *gorm.DB, id int64) (int64, error) {
	if _, ok := f.categories[id]; !ok {
		return 0, nil
	}
	delete(f.categories, id)
	return 1, nil
}

type fakeActivityRepo struct {
	activities map[int64]*entity.Activity
}

func newFakeActivityRepo(activities ...*entity.Activity) *fakeActivityRepo {
	m := make(map[int64]*entity.Activity, len(activities))
	for _, a := range activities {
		m[a.ID] = a
	}
	return &fakeActivityRepo{activities: m}
}

func (f *fakeActivityRepo) Create(db *gorm.DB, activity *entity.Activity) error {
	activity.ID = int64(len(f.activities) + 1)
	f.activities[activity.ID] = activity
	return nil
}

func (f *fakeActivityRepo) FindByID(db *gorm.DB, id int64) (*entity.Activity, error) {
	a, ok := f.activities[id]
	if !ok {
		return nil, nil
	}
	return a, nil
}

func (f *fakeActivityRepo) FindAll(db *gorm.DB) ([]entity.Activity, error) {
	var out []entity.Activity
	for _, a := range f.activities {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeActivityRepo) Update(db *gorm.DB, activity *entity.Activity) error {
	f.activities[activity.ID] = activity
	return nil
}

func (f *fakeActivityRepo) Delete(db *gorm.DB, id int64) (int64, error) {
	if _, ok := f.activities[id]; !ok {
		return 0, nil
	}
	delete(f.activities, id)
	return 1, nil
}

type fakeOfferingRepo struct {
	offerings map[int64]*entity.ProfessionalActivity
}

func newFakeOfferingRepo(offerings ...*entity.ProfessionalActivity) *fakeOfferingRepo {
	m := make(map[int64]*entity.ProfessionalActivity, len(offerings))
	for _, o := range offerings {
		m[o.ID] = o
	}
	return &fakeOfferingRepo{offerings: m}
}

func (f *fakeOfferingRepo) Create(db *gorm.DB, offering *entity.ProfessionalActivity) error {
	offering.ID = int64(len(f.offerings) + 1)
	f.offerings[offering.ID] = offering
	return nil
}

func (f *fakeOfferingRepo) FindByID(db *gorm.DB, id int64) (*entity.ProfessionalActivity, error) {
	o, ok := f.offerings[id]
	if !ok {
		return nil, nil
	}
	return o, nil
}

func (f *fakeOfferingRepo) FindByProfessionalID(db *gorm.DB, professionalID int64) ([]entity.ProfessionalActivity, error) {
	var out []entity.ProfessionalActivity
	for _, o := range f.offerings {
		if o.ProfessionalID == professionalID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOfferingRepo) Update(db *gorm.DB, offering *entity.ProfessionalActivity) error {
	f.offerings[offering.ID] = offering
	return nil
}

func (f *fakeOfferingRepo) Delete(db *gorm.DB, id int64) (int64, error) {
	if _, ok := f.offerings[id]; !ok {
		return 0, nil
	}
	delete(f.offerings, id)
	return 1, nil
}

func (f *fakeOfferingRepo) CountByActivityID(db *gorm.DB, activityID int64) (int64, error) {
	var count int64
	for _, o := range f.offerings {
		if o.ActivityID == activityID {
			count++
		}
	}
	return count, nil
}

func TestDeleteActivity_BlockedWhileOffered(t *testing.T) {
	db, mock := newTestDB(t)
	activity := &entity.Activity{ID: 1, Name: "Physiotherapy"}
	offering := &entity.ProfessionalActivity{ID: 1, ProfessionalID: 1, ActivityID: 1}
	uc := NewCatalogUsecase(db, testLogger(), newFakeCategoryRepo(), newFakeActivityRepo(activity), newFakeOfferingRepo(offering), &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := uc.DeleteActivity(authContext(uuid.New(), entity.RoleIDAdmin), 1)
	assert.ErrorIs(t, err, ErrActivityInUse)
}

func TestDeleteActivity_SucceedsWhenUnused(t *testing.T) {
	db, mock := newTestDB(t)
	activity := &entity.Activity{ID: 1, Name: "Physiotherapy"}
	activityRepo := newFakeActivityRepo(activity)
	uc := NewCatalogUsecase(db, testLogger(), newFakeCategoryRepo(), activityRepo, newFakeOfferingRepo(), &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uc.DeleteActivity(authContext(uuid.New(), entity.RoleIDAdmin), 1)
	require.NoError(t, err)
	assert.Empty(t, activityRepo.activities)
}

func TestCreateActivity_RequiresKnownCategory(t *testing.T) {
	db, mock := newTestDB(t)
	uc := NewCatalogUsecase(db, testLogger(), newFakeCategoryRepo(), newFakeActivityRepo(), newFakeOfferingRepo(), &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	categoryID := int64(42)
	_, err := uc.CreateActivity(authContext(uuid.New(), entity.RoleIDAdmin), &dto.CreateActivityRequest{
		Name:       "Acupuncture",
		CategoryID: &categoryID,
	})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCreateActivity_UncategorizedAllowed(t *testing.T) {
	db, mock := newTestDB(t)
	uc := NewCatalogUsecase(db, testLogger(), newFakeCategoryRepo(), newFakeActivityRepo(), newFakeOfferingRepo(), &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := uc.CreateActivity(authContext(uuid.New(), entity.RoleIDAdmin), &dto.CreateActivityRequest{
		Name: "Acupuncture",
	})
	require.NoError(t, err)
	assert.Nil(t, resp.CategoryID)
}
