package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/plantaohub/plantao_backend/internal/core/ports/services"
	"github.com/plantaohub/plantao_backend/internal/dto"
)

// settingHandler handles the configuration store endpoints.
type settingHandler struct {
	settingService portssvc.SettingSvcFacade
}

func newSettingHandler(ss portssvc.SettingSvcFacade) *settingHandler {
	return &settingHandler{settingService: ss}
}

// registerSettingRoutes registers the configuration routes.
func registerSettingRoutes(rg *gin.RouterGroup, settingService portssvc.SettingSvcFacade) {
	h := newSettingHandler(settingService)

	settings := rg.Group("/settings")
	{
		settings.GET("", h.listSettings)
		settings.PUT("/:key", h.putSetting)
	}
}

func (h *settingHandler) listSettings(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	settings, err := h.settingService.ListSettings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Settings", dto.ToSettingResponses(settings))
}

func (h *settingHandler) putSetting(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.PutSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.settingService.PutSetting(c.Request.Context(), userID, c.Param("key"), req.Value, c.ClientIP()); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Setting saved", nil)
}
