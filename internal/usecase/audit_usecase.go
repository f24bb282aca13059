package usecase

import (
	"context"
	"net/http"

	"webshop/internal/domain/model"
	repo "webshop/internal/repository"
)

// 監査ログの参照（ADMIN専用）
type AuditUsecase struct {
	auditRepo repo.AuditLogRepository
}

func NewAuditUsecase(auditRepo repo.AuditLogRepository) *AuditUsecase {
	return &AuditUsecase{auditRepo: auditRepo}
}

type ListAuditLogsInput struct {
	Action       string
	ResourceType string
	ResourceID   *int64
	Limit        int
}

func (u *AuditUsecase) List(ctx context.Context, adminID int64, in ListAuditLogsInput) ([]model.AuditLog, error) {
	if adminID <= 0 {
		return nil, errUnauthorized()
	}
	if in.Limit < 1 {
		in.Limit = 50
	}
	if in.Limit > 500 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	logs, err := u.auditRepo.List(ctx, repo.AuditLogFilter{
		Action:       in.Action,
		ResourceType: in.ResourceType,
		ResourceID:   in.ResourceID,
		Limit:        in.Limit,
	})
	if err != nil {
		return nil, errDB()
	}
	return logs, nil
}
