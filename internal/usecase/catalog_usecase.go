package usecase

import (
	"context"
	"errors"
	"strconv"

	"health-marketplace-backend/internal/converter"
	"health-marketplace-backend/internal/delivery/dto"
	"health-marketplace-backend/internal/delivery/http/middleware"
	"health-marketplace-backend/internal/domain/entity"
	"health-marketplace-backend/internal/domain/repository"
	"health-marketplace-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrActivityNotFound    = errors.New("activity not found")
	ErrCategoryNameTaken   = errors.New("category name already exists")
	ErrActivityNameTaken   = errors.New("activity name already exists")
	ErrActivityInUse       = errors.New("activity is referenced by offerings and cannot be deleted")
	ErrCategoryHasActivity = errors.New("category still has activities and cannot be deleted")
)

// CatalogUsecase manages the admin-curated catalog of categories and
// activities professionals offer services under.
type CatalogUsecase interface {
	CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, categoryID int64, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, categoryID int64) error
	ListCategories(ctx context.Context) (*dto.CategoryListResponse, error)
	CreateActivity(ctx context.Context, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error)
	UpdateActivity(ctx context.Context, activityID int64, req *dto.UpdateActivityRequest) (*dto.ActivityResponse, error)
	DeleteActivity(ctx context.Context, activityID int64) error
	ListActivities(ctx context.Context) (*dto.ActivityListResponse, error)
}

type catalogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	categoryRepo repository.CategoryRepository
	activityRepo repository.ActivityRepository
	offeringRepo repository.ProfessionalActivityRepository
	auditService service.AuditService
}

func NewCatalogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	categoryRepo repository.CategoryRepository,
	activityRepo repository.ActivityRepository,
	offeringRepo repository.ProfessionalActivityRepository,
	auditService service.AuditService,
) CatalogUsecase {
	return &catalogUsecase{
		db:           db,
		log:          log,
		categoryRepo: categoryRepo,
		activityRepo: activityRepo,
		offeringRepo: offeringRepo,
		auditService: auditService,
	}
}

func (u *catalogUsecase) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	category := &entity.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := u.categoryRepo.Create(tx, category); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrCategoryNameTaken
		}
		u.log.Warnf("Failed to create category: %+v", err)
		return nil, err
	}

	u.auditCatalog(ctx, tx, entity.AuditActionCatalogCategoryWrite, "category", category.ID, nil, category)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.CategoryToResponse(category), nil
}

func (u *catalogUsecase) UpdateCategory(ctx context.Context, categoryID int64, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	category, err := u.categoryRepo.FindByID(tx, categoryID)
	if err != nil {
		u.log.Warnf("Failed to find category %d: %+v", categoryID, err)
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	old := *category
	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Description != "" {
		category.Description = req.Description
	}

	if err := u.categoryRepo.Update(tx, category); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrCategoryNameTaken
		}
		u.log.Warnf("Failed to update category %d: %+v", categoryID, err)
		return nil, err
	}

	u.auditCatalog(ctx, tx, entity.AuditActionCatalogCategoryWrite, "category", categoryID, &old, category)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.CategoryToResponse(category), nil
}

// DeleteCategory removes an empty category. Categories still referenced by
// activities are protected.
func (u *catalogUsecase) DeleteCategory(ctx context.Context, categoryID int64) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	category, err := u.categoryRepo.FindByID(tx, categoryID)
	if err != nil {
		u.log.Warnf("Failed to find category %d: %+v", categoryID, err)
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	rows, err := u.categoryRepo.Delete(tx, categoryID)
	if err != nil {
		if isForeignKeyError(err, "category") {
			return ErrCategoryHasActivity
		}
		u.log.Warnf("Failed to delete category %d: %+v", categoryID, err)
		return err
	}
	if rows == 0 {
		return ErrCategoryNotFound
	}

	u.auditCatalog(ctx, tx, entity.AuditActionCatalogCategoryWrite, "category", categoryID, category, nil)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *catalogUsecase) ListCategories(ctx context.Context) (*dto.CategoryListResponse, error) {
	categories, err := u.categoryRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list categories: %+v", err)
		return nil, err
	}

	return &dto.CategoryListResponse{
		Categories: converter.CategoriesToResponses(categories),
		Total:      len(categories),
	}, nil
}

func (u *catalogUsecase) CreateActivity(ctx context.Context, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if req.CategoryID != nil {
		category, err := u.categoryRepo.FindByID(tx, *req.CategoryID)
		if err != nil {
			u.log.Warnf("Failed to find category %d: %+v", *req.CategoryID, err)
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
	}

	activity := &entity.Activity{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	}
	if err := u.activityRepo.Create(tx, activity); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrActivityNameTaken
		}
		u.log.Warnf("Failed to create activity: %+v", err)
		return nil, err
	}

	u.auditCatalog(ctx, tx, entity.AuditActionCatalogActivityWrite, "activity", activity.ID, nil, activity)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ActivityToResponse(activity), nil
}

func (u *catalogUsecase) UpdateActivity(ctx context.Context, activityID int64, req *dto.UpdateActivityRequest) (*dto.ActivityResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	activity, err := u.activityRepo.FindByID(tx, activityID)
	if err != nil {
		u.log.Warnf("Failed to find activity %d: %+v", activityID, err)
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}

	old := *activity
	if req.Name != "" {
		activity.Name = req.Name
	}
	if req.Description != nil {
		activity.Description = *req.Description
	}
	if req.CategoryID != nil {
		category, err := u.categoryRepo.FindByID(tx, *req.CategoryID)
		if err != nil {
			u.log.Warnf("Failed to find category %d: %+v", *req.CategoryID, err)
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		activity.CategoryID = req.CategoryID
	}

	if err := u.activityRepo.Update(tx, activity); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrActivityNameTaken
		}
		u.log.Warnf("Failed to update activity %d: %+v", activityID, err)
		return nil, err
	}

	u.auditCatalog(ctx, tx, entity.AuditActionCatalogActivityWrite, "activity", activityID, &old, activity)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ActivityToResponse(activity), nil
}

// DeleteActivity removes a catalog activity unless any professional still
// offers it.
func (u *catalogUsecase) DeleteActivity(ctx context.Context, activityID int64) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	activity, err := u.activityRepo.FindByID(tx, activityID)
	if err != nil {
		u.log.Warnf("Failed to find activity %d: %+v", activityID, err)
		return err
	}
	if activity == nil {
		return ErrActivityNotFound
	}

	count, err := u.offeringRepo.CountByActivityID(tx, activityID)
	if err != nil {
		u.log.Warnf("Failed to count offerings for activity %d: %+v", activityID, err)
		return err
	}
	if count > 0 {
		return ErrActivityInUse
	}

	rows, err := u.activityRepo.Delete(tx, activityID)
	if err != nil {
		u.log.Warnf("Failed to delete activity %d: %+v", activityID, err)
		return err
	}
	if rows == 0 {
		return ErrActivityNotFound
	}

	u.auditCatalog(ctx, tx, entity.AuditActionCatalogActivityWrite, "activity", activityID, activity, nil)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *catalogUsecase) ListActivities(ctx context.Context) (*dto.ActivityListResponse, error) {
	activities, err := u.activityRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list activities: %+v", err)
		return nil, err
	}

	return &dto.ActivityListResponse{
		Activities: converter.ActivitiesToResponses(activities),
		Total:      len(activities),
	}, nil
}

func (u *catalogUsecase) auditCatalog(ctx context.Context, tx *gorm.DB, action, entityName string, entityID int64, oldValue, newValue interface{}) {
	adminID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogAction(ctx, tx, &adminID, action, entityName, strconv.FormatInt(entityID, 10), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}
}
