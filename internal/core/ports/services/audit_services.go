package services

import (
	"context"

	"github.com/plantaohub/plantao_backend/internal/core/domain"
	portsrepo "github.com/plantaohub/plantao_backend/internal/core/ports/repositories"
)

// AuditSvcFacade records and lists the audit trail. Record is best-effort by
// policy: a failed write is logged and never fails the calling operation.
type AuditSvcFacade interface {
	// Record appends an audit entry for a mutating action. details, when
	// non-nil, is JSON-marshalled into the entry.
	Record(ctx context.Context, actorID, action, tableName, recordID string, details any, originIP string)

	// ListLogs lists audit entries, newest first. Manager-only.
	ListLogs(ctx context.Context, actorID string, filter portsrepo.AuditLogFilter, page, perPage int) ([]domain.AuditLog, int64, error)
}
