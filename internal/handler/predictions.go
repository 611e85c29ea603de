package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sportcast/internal/auth"
	"sportcast/internal/models"
	"sportcast/internal/repository"
)

type PredictionHandler struct {
	Repo repository.Repository
}

func (h *PredictionHandler) Register(r *gin.Engine, authRequired, adminRequired gin.HandlerFunc) {
	group := r.Group("/api/v1/predictions")
	group.POST("", authRequired, h.create)
	group.GET("", authRequired, adminRequired, h.listAll)
	group.GET("/pending", authRequired, adminRequired, h.listPending)
	group.GET("/approved", h.listApproved)
	group.GET("/:id", h.get)
	group.GET("/:id/bets", h.listBets)
	group.PUT("/:id/approve", authRequired, adminRequired, h.approve)
}

type predictionRequest struct {
	GameID     string `json:"game_id" binding:"required"`
	Prediction string `json:"prediction" binding:"required"`
	OptionA    string `json:"option_a" binding:"required"`
	OptionB    string `json:"option_b" binding:"required"`
	// Betting window in hours.
	Duration    int     `json:"duration" binding:"required,min=1"`
	Deadline    *string `json:"deadline"`
	UserAddress *string `json:"user_address"`
}

func (h *PredictionHandler) create(c *gin.Context) {
	var req predictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	user := auth.CurrentUser(c)
	if user == nil {
		Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	expiresAt := time.Now().UTC().Add(time.Duration(req.Duration) * time.Hour)
	item := models.PredictionEvent{
		GameID:      req.GameID,
		Prediction:  req.Prediction,
		OptionA:     req.OptionA,
		OptionB:     req.OptionB,
		Duration:    req.Duration,
		Deadline:    req.Deadline,
		CreatorID:   user.ID,
		Status:      models.PredictionStatusPending,
		ExpiresAt:   &expiresAt,
		UserAddress: req.UserAddress,
	}
	if err := h.Repo.CreatePrediction(c.Request.Context(), &item); err != nil {
		respondError(c, err)
		return
	}
	Ok(c, item, nil)
}

func (h *PredictionHandler) listAll(c *gin.Context) {
	h.list(c, nil)
}

func (h *PredictionHandler) listPending(c *gin.Context) {
	status := models.PredictionStatusPending
	h.list(c, &status)
}

func (h *PredictionHandler) listApproved(c *gin.Context) {
	status := models.PredictionStatusApproved
	h.list(c, &status)
}

func (h *PredictionHandler) list(c *gin.Context, status *string) {
	params := repository.ListPredictionsParams{
		Limit:  intQuery(c, "limit", 20),
		Offset: intQuery(c, "offset", 0),
		Status: status,
	}
	ctx := c.Request.Context()
	items, err := h.Repo.ListPredictions(ctx, params)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.Repo.CountPredictions(ctx, params)
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, items, paginationMeta(total, params.Limit, params.Offset))
}

func (h *PredictionHandler) get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	item, err := h.Repo.GetPrediction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, item, nil)
}

func (h *PredictionHandler) listBets(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	items, err := h.Repo.ListBetsByPrediction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, items, nil)
}

type approveRequest struct {
	Status string `json:"status"`
}

func (h *PredictionHandler) approve(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	req := approveRequest{Status: models.PredictionStatusApproved}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
	}
	if req.Status != models.PredictionStatusApproved && req.Status != models.PredictionStatusRejected {
		Error(c, http.StatusBadRequest, "status must be approved or rejected", nil)
		return
	}
	ctx := c.Request.Context()
	if err := h.Repo.SetPredictionStatus(ctx, id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	item, err := h.Repo.GetPrediction(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, item, nil)
}
