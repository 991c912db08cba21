package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/plantaohub/plantao_backend/internal/core/ports/services"
	"github.com/plantaohub/plantao_backend/internal/dto"
	"github.com/plantaohub/plantao_backend/internal/utils"
)

// rankingHandler handles the merit ranking endpoints.
type rankingHandler struct {
	rankingService portssvc.RankingSvcFacade
}

func newRankingHandler(rs portssvc.RankingSvcFacade) *rankingHandler {
	return &rankingHandler{rankingService: rs}
}

// registerRankingRoutes registers routes related to the ranking.
func registerRankingRoutes(rg *gin.RouterGroup, rankingService portssvc.RankingSvcFacade) {
	h := newRankingHandler(rankingService)

	rankings := rg.Group("/rankings")
	{
		rankings.GET("", h.currentRanking)
		rankings.POST("/recalculate/:month", h.recalculateMonth)
		rankings.POST("/recalculate-accumulated", h.recalculateAccumulated)
	}
}

func (h *rankingHandler) currentRanking(c *gin.Context) {
	entries, err := h.rankingService.CurrentRanking(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Ranking", dto.RankingResponse{Ranking: entries})
}

func (h *rankingHandler) recalculateMonth(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	month, err := utils.ParseMonth(c.Param("month"))
	if err != nil {
		respondBindError(c, err)
		return
	}

	scores, err := h.rankingService.RankMonth(c.Request.Context(), userID, month, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Ranking recalculated", dto.ToScoreResponses(scores))
}

func (h *rankingHandler) recalculateAccumulated(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.RankAccumulatedRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	rankings, err := h.rankingService.RankAccumulated(c.Request.Context(), userID, req.Months, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Accumulated ranking recalculated", rankings)
}
