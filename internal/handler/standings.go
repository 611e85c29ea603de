package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"sportcast/internal/models"
	"sportcast/internal/repository"
)

type StandingsHandler struct {
	Repo repository.Repository
}

func (h *StandingsHandler) Register(r *gin.Engine, authRequired, adminRequired gin.HandlerFunc) {
	group := r.Group("/api/v1/standings")
	group.GET("", h.list)
	group.POST("", authRequired, adminRequired, h.create)
	group.PUT("/:id", authRequired, adminRequired, h.update)
	group.DELETE("/:id", authRequired, adminRequired, h.remove)
}

func (h *StandingsHandler) list(c *gin.Context) {
	params := repository.ListStandingsParams{
		League: strQueryPtr(c, "league"),
	}
	items, err := h.Repo.ListLeagueStandings(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, items, nil)
}

type standingRequest struct {
	League       string   `json:"league" binding:"required"`
	Rank         int      `json:"rank" binding:"required"`
	Team         string   `json:"team" binding:"required"`
	Played       int      `json:"played"`
	Won          int      `json:"won"`
	Drawn        int      `json:"drawn"`
	Lost         int      `json:"lost"`
	GoalsFor     int      `json:"goals_for"`
	GoalsAgainst int      `json:"goals_against"`
	GoalDiff     int      `json:"goal_diff"`
	Points       int      `json:"points"`
	Form         []string `json:"form"`
}

func (r standingRequest) model() (models.LeagueStanding, error) {
	form := r.Form
	if form == nil {
		form = []string{}
	}
	raw, err := json.Marshal(form)
	if err != nil {
		return models.LeagueStanding{}, err
	}
	return models.LeagueStanding{
		League:       r.League,
		Rank:         r.Rank,
		Team:         r.Team,
		Played:       r.Played,
		Won:          r.Won,
		Drawn:        r.Drawn,
		Lost:         r.Lost,
		GoalsFor:     r.GoalsFor,
		GoalsAgainst: r.GoalsAgainst,
		GoalDiff:     r.GoalDiff,
		Points:       r.Points,
		Form:         datatypes.JSON(raw),
	}, nil
}

func (h *StandingsHandler) create(c *gin.Context) {
	var req standingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	item, err := req.model()
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.Repo.CreateLeagueStanding(c.Request.Context(), &item); err != nil {
		respondError(c, err)
		return
	}
	Ok(c, item, nil)
}

func (h *StandingsHandler) update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req standingRequest
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
	if err := h.Repo.UpdateLeagueStanding(c.Request.Context(), &item); err != nil {
		respondError(c, err)
		return
	}
	Ok(c, item, nil)
}

func (h *StandingsHandler) remove(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Repo.DeleteLeagueStanding(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	Ok(c, gin.H{"deleted": id}, nil)
}
