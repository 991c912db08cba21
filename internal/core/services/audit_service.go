package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/plantaohub/plantao_backend/internal/core/domain"
	portsrepo "github.com/plantaohub/plantao_backend/internal/core/ports/repositories"
	portssvc "github.com/plantaohub/plantao_backend/internal/core/ports/services"
	"github.com/plantaohub/plantao_backend/internal/middleware"
)

// AuditService writes and lists the append-only audit trail.
type AuditService struct {
	auditRepo portsrepo.AuditLogRepository
	userRepo  portsrepo.UserRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditLogRepository, userRepo portsrepo.UserRepository) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		userRepo:  userRepo,
	}
}

var _ portssvc.AuditSvcFacade = (*AuditService)(nil)

// Record appends one audit entry. Failures are logged and swallowed so the
// calling operation never fails on account of its audit write.
func (s *AuditService) Record(ctx context.Context, actorID, action, tableName, recordID string, details any, originIP string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var payload []byte
	if details != nil {
		var err error
		payload, err = json.Marshal(details)
		if err != nil {
			logger.Error("Failed to marshal audit details", slog.String("error", err.Error()), slog.String("action", action))
			payload = nil
		}
	}

	entry := domain.AuditLog{
		LogID:     uuid.NewString(),
		ActorID:   actorID,
		Action:    action,
		TableName: tableName,
		RecordID:  recordID,
		Details:   payload,
		OriginIP:  originIP,
		CreatedAt: time.Now(),
	}

	if err := s.auditRepo.SaveAuditLog(ctx, entry); err != nil {
		logger.Error("Failed to write audit log entry",
			slog.String("error", err.Error()),
			slog.String("action", action),
			slog.String("actor_id", actorID),
		)
	}
}

// ListLogs lists audit entries, newest first. Manager-only.
func (s *AuditService) ListLogs(ctx context.Context, actorID string, filter portsrepo.AuditLogFilter, page, perPage int) ([]domain.AuditLog, int64, error) {
	if _, err := requireManagerial(ctx, s.userRepo, actorID); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}
	offset := (page - 1) * perPage

	return s.auditRepo.ListAuditLogs(ctx, filter, perPage, offset)
}
