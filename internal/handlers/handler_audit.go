package handlers

import (
	"github.com/gin-gonic/gin"

	portsrepo "github.com/plantaohub/plantao_backend/internal/core/ports/repositories"
	portssvc "github.com/plantaohub/plantao_backend/internal/core/ports/services"
	"github.com/plantaohub/plantao_backend/internal/dto"
)

// auditHandler handles the audit trail listing.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: as}
}

// registerAuditRoutes registers the audit log routes.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	rg.GET("/audit-logs", h.listLogs)
}

func (h *auditHandler) listLogs(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var params dto.ListAuditLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	filter := portsrepo.AuditLogFilter{
		ActorID:   params.ActorID,
		Action:    params.Action,
		TableName: params.Table,
	}
	logs, total, err := h.auditService.ListLogs(c.Request.Context(), userID, filter, params.Page, params.PerPage)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ListAuditLogsResponse{
		Logs:    make([]dto.AuditLogResponse, len(logs)),
		Total:   total,
		Page:    params.Page,
		PerPage: params.PerPage,
	}
	for i := range logs {
		resp.Logs[i] = dto.ToAuditLogResponse(&logs[i])
	}
	respondOK(c, "Audit logs", resp)
}
