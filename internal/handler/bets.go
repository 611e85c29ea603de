package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"sportcast/internal/auth"
	"sportcast/internal/models"
	"sportcast/internal/repository"
)

type BetHandler struct {
	Repo repository.Repository
}

func (h *BetHandler) Register(r *gin.Engine, authRequired gin.HandlerFunc) {
	group := r.Group("/api/v1/bets")
	group.POST("", authRequired, h.place)
	group.GET("/my", authRequired, h.listMine)
	group.GET("/prediction/:id", h.listByPrediction)
	group.GET("/prediction/:id/total", h.totalByPrediction)
}

type betRequest struct {
	PredictionID uint64  `json:"prediction_id" binding:"required"`
	Option       string  `json:"option" binding:"required"`
	Amount       string  `json:"amount" binding:"required"`
	UserAddress  string  `json:"user_address"`
	TxHash       *string `json:"transaction_hash"`
	PoolID       *string `json:"pool_id"`
}

func (h *BetHandler) place(c *gin.Context) {
	var req betRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	user := auth.CurrentUser(c)
	if user == nil {
		Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.Sign() <= 0 {
		Error(c, http.StatusBadRequest, "amount must be a positive decimal", nil)
		return
	}

	ctx := c.Request.Context()
	prediction, err := h.Repo.GetPrediction(ctx, req.PredictionID)
	if err != nil {
		respondError(c, err)
		return
	}
	if prediction.Status != models.PredictionStatusApproved && prediction.Status != models.PredictionStatusActive {
		Error(c, http.StatusUnprocessableEntity, "prediction is not open for betting", nil)
		return
	}
	if req.Option != prediction.OptionA && req.Option != prediction.OptionB {
		Error(c, http.StatusBadRequest, "option must match one of the prediction outcomes", nil)
		return
	}

	bet := models.Bet{
		PredictionID:    req.PredictionID,
		UserID:          user.ID,
		UserAddress:     req.UserAddress,
		Option:          req.Option,
		Amount:          amount,
		TransactionHash: req.TxHash,
		PoolID:          req.PoolID,
	}
	if err := h.Repo.PlaceBet(ctx, &bet); err != nil {
		respondError(c, err)
		return
	}
	Ok(c, bet, nil)
}

func (h *BetHandler) listMine(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	items, err := h.Repo.ListBetsByUser(c.Request.Context(), user.ID,
		intQuery(c, "limit", 50), intQuery(c, "offset", 0))
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, items, nil)
}

func (h *BetHandler) listByPrediction(c *gin.Context) {
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

func (h *BetHandler) totalByPrediction(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	total, err := h.Repo.SumBetAmountByPrediction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, gin.H{"prediction_id": id, "total_amount": total}, nil)
}
