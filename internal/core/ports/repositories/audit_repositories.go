package repositories

import (
	"context"

	"github.com/plantaohub/plantao_backend/internal/core/domain"
)

// AuditLogFilter narrows an audit log listing. Zero values mean "no filter".
type AuditLogFilter struct {
	ActorID   string
	Action    string // case-insensitive substring match
	TableName string
}

// AuditLogRepository persists the append-only audit trail.
type AuditLogRepository interface {
	// SaveAuditLog appends one entry.
	SaveAuditLog(ctx context.Context, entry domain.AuditLog) error

	// ListAuditLogs retrieves entries newest first, with the total number of
	// entries matching the filter.
	ListAuditLogs(ctx context.Context, filter AuditLogFilter, limit, offset int) ([]domain.AuditLog, int64, error)
}
