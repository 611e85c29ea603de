package handler

import (
	"github.com/gin-gonic/gin"

	"sportcast/internal/auth"
	"sportcast/internal/repository"
	"sportcast/internal/service"
)

// ScoringHandler exposes candidate evaluation. Authorization is enforced by
// the service so scheduled runs and HTTP share one gate.
type ScoringHandler struct {
	Svc *service.ScoringService
}

func (h *ScoringHandler) Register(r *gin.Engine, authRequired gin.HandlerFunc) {
	group := r.Group("/api/v1/scoring", authRequired)
	group.POST("/calculate/:id", h.calculate)
	group.POST("/calculate-batch", h.calculateBatch)
	group.POST("/select-best", h.selectBest)
	group.GET("", h.list)
	group.GET("/:id", h.get)
}

func (h *ScoringHandler) calculate(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	score, err := h.Svc.CalculateOne(c.Request.Context(), auth.CurrentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, score, nil)
}

func (h *ScoringHandler) calculateBatch(c *gin.Context) {
	created, err := h.Svc.CalculateBatch(c.Request.Context(), auth.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, created, map[string]any{"created": len(created)})
}

func (h *ScoringHandler) selectBest(c *gin.Context) {
	result, err := h.Svc.CalculateBatchAndSelectBest(c.Request.Context(), auth.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, result, nil)
}

func (h *ScoringHandler) get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	score, err := h.Svc.GetScore(c.Request.Context(), auth.CurrentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, score, nil)
}

func (h *ScoringHandler) list(c *gin.Context) {
	items, err := h.Svc.ListScores(c.Request.Context(), auth.CurrentUser(c), repository.ListPredictionScoresParams{
		Limit:  intQuery(c, "limit", 50),
		Offset: intQuery(c, "offset", 0),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, items, nil)
}
