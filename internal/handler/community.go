package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sportcast/internal/auth"
	"sportcast/internal/models"
	"sportcast/internal/repository"
)

type CommunityHandler struct {
	Repo repository.Repository
}

func (h *CommunityHandler) Register(r *gin.Engine, authRequired, adminRequired gin.HandlerFunc) {
	group := r.Group("/api/v1/community")
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.POST("", authRequired, h.create)
	group.PUT("/:id", authRequired, adminRequired, h.update)
	group.DELETE("/:id", authRequired, adminRequired, h.remove)
	group.POST("/:id/like", authRequired, h.like)
}

func (h *CommunityHandler) list(c *gin.Context) {
	params := repository.ListCommunityPostsParams{
		Limit:    intQuery(c, "limit", 20),
		Offset:   intQuery(c, "offset", 0),
		Category: strQueryPtr(c, "category"),
	}
	ctx := c.Request.Context()
	items, err := h.Repo.ListCommunityPosts(ctx, params)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.Repo.CountCommunityPosts(ctx, params)
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, items, paginationMeta(total, params.Limit, params.Offset))
}

func (h *CommunityHandler) get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	item, err := h.Repo.GetCommunityPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, item, nil)
}

type communityPostRequest struct {
	Category string `json:"category" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	Time     string `json:"time"`
	IsHot    bool   `json:"is_hot"`
}

func (h *CommunityHandler) create(c *gin.Context) {
	var req communityPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	author := "anonymous"
	if user := auth.CurrentUser(c); user != nil {
		author = user.Username
	}
	item := models.CommunityPost{
		Category: req.Category,
		Title:    req.Title,
		Content:  req.Content,
		Author:   author,
		Time:     req.Time,
		IsHot:    req.IsHot,
	}
	if err := h.Repo.CreateCommunityPost(c.Request.Context(), &item); err != nil {
		respondError(c, err)
		return
	}
	Ok(c, item, nil)
}

func (h *CommunityHandler) update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req communityPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	item := models.CommunityPost{
		ID:       id,
		Category: req.Category,
		Title:    req.Title,
		Content:  req.Content,
		Time:     req.Time,
		IsHot:    req.IsHot,
	}
	if err := h.Repo.UpdateCommunityPost(c.Request.Context(), &item); err != nil {
		respondError(c, err)
		return
	}
	Ok(c, item, nil)
}

func (h *CommunityHandler) remove(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Repo.DeleteCommunityPost(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	Ok(c, gin.H{"deleted": id}, nil)
}

func (h *CommunityHandler) like(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Repo.IncrementCommunityPostLikes(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	Ok(c, gin.H{"liked": id}, nil)
}
