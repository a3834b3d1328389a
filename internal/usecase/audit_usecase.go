package usecase

import (
	"context"

	"health-marketplace-backend/internal/converter"
	"health-marketplace-backend/internal/delivery/dto"
	"health-marketplace-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const defaultAuditLogLimit = 100

// AuditUsecase exposes the audit trail to admins.
type AuditUsecase interface {
	ListRecent(ctx context.Context, limit int) (*dto.AuditLogListResponse, error)
}

type auditUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditUsecase(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditUsecase {
	return &auditUsecase{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (u *auditUsecase) ListRecent(ctx context.Context, limit int) (*dto.AuditLogListResponse, error) {
	if limit <= 0 || limit > defaultAuditLogLimit {
		limit = defaultAuditLogLimit
	}

	logs, err := u.auditRepo.FindRecent(u.db.WithContext(ctx), limit)
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}
