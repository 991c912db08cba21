package dto

import (
	"encoding/json"
	"time"

	"github.com/plantaohub/plantao_backend/internal/core/domain"
)

// ListAuditLogsParams defines query parameters for the audit log listing.
type ListAuditLogsParams struct {
	Page    int    `form:"page,default=1"`
	PerPage int    `form:"perPage,default=50"`
	ActorID string `form:"actorID"`
	Action  string `form:"action"`
	Table   string `form:"table"`
}

// AuditLogResponse is the public representation of one audit entry.
type AuditLogResponse struct {
	LogID     string          `json:"logID"`
	ActorID   string          `json:"actorID"`
	Action    string          `json:"action"`
	TableName string          `json:"tableName,omitempty"`
	RecordID  string          `json:"recordID,omitempty"`
	Details   json.RawMessage `json:"details,omitempty"`
	OriginIP  string          `json:"originIP,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToAuditLogResponse converts a domain.AuditLog to its response DTO.
func ToAuditLogResponse(l *domain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		LogID:     l.LogID,
		ActorID:   l.ActorID,
		Action:    l.Action,
		TableName: l.TableName,
		RecordID:  l.RecordID,
		Details:   json.RawMessage(l.Details),
		OriginIP:  l.OriginIP,
		CreatedAt: l.CreatedAt,
	}
}

// ListAuditLogsResponse wraps a page of audit entries.
type ListAuditLogsResponse struct {
	Logs    []AuditLogResponse `json:"logs"`
	Total   int64              `json:"total"`
	Page    int                `json:"page"`
	PerPage int                `json:"perPage"`
}
