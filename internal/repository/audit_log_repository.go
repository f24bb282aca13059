package repository

import (
	"context"

	"webshop/internal/domain/model"
)

type AuditLogFilter struct {
	Action       string
	ResourceType string
	ResourceID   *int64
	Limit        int
}

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	List(ctx context.Context, f AuditLogFilter) ([]model.AuditLog, error)
}
