package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/plantaohub/plantao_backend/internal/core/ports/services"
	"github.com/plantaohub/plantao_backend/internal/dto"
	"github.com/plantaohub/plantao_backend/internal/utils"
)

// scoreHandler handles the monthly score endpoints.
type scoreHandler struct {
	scoreService portssvc.ScoreSvcFacade
}

func newScoreHandler(ss portssvc.ScoreSvcFacade) *scoreHandler {
	return &scoreHandler{scoreService: ss}
}

// registerScoreRoutes registers routes related to monthly scores.
func registerScoreRoutes(rg *gin.RouterGroup, scoreService portssvc.ScoreSvcFacade) {
	h := newScoreHandler(scoreService)

	scores := rg.Group("/scores")
	{
		scores.POST("", h.upsertScore)
		scores.POST("/import", h.importScores)
		scores.GET("/month/:month", h.scoresForMonth)
		scores.GET("/worker/:workerID", h.workerScores)
		scores.GET("/me", h.myPerformance)
		scores.DELETE("/:scoreID", h.deleteScore)
	}
}

func (h *scoreHandler) upsertScore(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.UpsertScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	score, err := h.scoreService.UpsertScore(c.Request.Context(), userID, req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Score saved", dto.ToScoreResponse(score))
}

func (h *scoreHandler) importScores(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.ImportScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.scoreService.ImportScores(c.Request.Context(), userID, req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Scores imported", result)
}

func (h *scoreHandler) scoresForMonth(c *gin.Context) {
	month, err := utils.ParseMonth(c.Param("month"))
	if err != nil {
		respondBindError(c, err)
		return
	}

	scores, err := h.scoreService.ScoresForMonth(c.Request.Context(), month)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Scores", dto.ToScoreResponses(scores))
}

func (h *scoreHandler) workerScores(c *gin.Context) {
	scores, err := h.scoreService.WorkerScores(c.Request.Context(), c.Param("workerID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Score history", dto.ToScoreResponses(scores))
}

func (h *scoreHandler) myPerformance(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	performance, err := h.scoreService.MyPerformance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Performance", performance)
}

func (h *scoreHandler) deleteScore(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	if err := h.scoreService.DeleteScore(c.Request.Context(), userID, c.Param("scoreID"), c.ClientIP()); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Score deleted", nil)
}
