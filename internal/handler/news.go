package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"sportcast/internal/models"
	"sportcast/internal/repository"
)

type NewsHandler struct {
	Repo repository.Repository
}

func (h *NewsHandler) Register(r *gin.Engine, authRequired, adminRequired gin.HandlerFunc) {
	group := r.Group("/api/v1/news")
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.POST("", authRequired, adminRequired, h.create)
	group.PUT("/:id", authRequired, adminRequired, h.update)
	group.DELETE("/:id", authRequired, adminRequired, h.remove)
	group.POST("/:id/like", authRequired, h.like)
}

func (h *NewsHandler) list(c *gin.Context) {
	params := repository.ListNewsParams{
		Limit:  intQuery(c, "limit", 20),
		Offset: intQuery(c, "offset", 0),
		League: strQueryPtr(c, "league"),
		Team:   strQueryPtr(c, "team"),
	}
	ctx := c.Request.Context()
	items, err := h.Repo.ListNews(ctx, params)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.Repo.CountNews(ctx, params)
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, items, paginationMeta(total, params.Limit, params.Offset))
}

func (h *NewsHandler) get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	item, err := h.Repo.GetNews(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, item, nil)
}

type newsRequest struct {
	Time    string   `json:"time" binding:"required"`
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Source  string   `json:"source" binding:"required"`
	Team    string   `json:"team" binding:"required"`
	League  string   `json:"league" binding:"required"`
	Date    string   `json:"date" binding:"required"`
	Tags    []string `json:"tags"`
}

func (r newsRequest) model() (models.News, error) {
	tags, err := tagsJSON(r.Tags)
	if err != nil {
		return models.News{}, err
	}
	return models.News{
		Time:    r.Time,
		Title:   r.Title,
		Content: r.Content,
		Source:  r.Source,
		Team:    r.Team,
		League:  r.League,
		Date:    r.Date,
		Tags:    tags,
	}, nil
}

func (h *NewsHandler) create(c *gin.Context) {
	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	item, err := req.model()
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.Repo.CreateNews(c.Request.Context(), &item); err != nil {
		respondError(c, err)
		return
	}
	Ok(c, item, nil)
}

func (h *NewsHandler) update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	item, err := req.model()
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	item.ID = id
	if err := h.Repo.UpdateNews(c.Request.Context(), &item); err != nil {
		respondError(c, err)
		return
	}
	Ok(c, item, nil)
}

func (h *NewsHandler) remove(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Repo.DeleteNews(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	Ok(c, gin.H{"deleted": id}, nil)
}

func (h *NewsHandler) like(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Repo.IncrementNewsLikes(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	Ok(c, gin.H{"liked": id}, nil)
}

func tagsJSON(tags []string) (datatypes.JSON, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
