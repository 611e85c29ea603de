package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"sportcast/internal/apperrors"
)

func idParam(c *gin.Context, name string) (uint64, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		Error(c, http.StatusBadRequest, name+" must be a positive integer", nil)
		return 0, false
	}
	return id, true
}

func intQuery(c *gin.Context, name string, def int) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func strQueryPtr(c *gin.Context, name string) *string {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	return &raw
}

func paginationMeta(total int64, limit, offset int) map[string]any {
	return map[string]any{
		"total":  total,
		"limit":  limit,
		"offset": offset,
	}
}

// respondError maps storage and authorization sentinels onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		Error(c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, apperrors.ErrConflict):
		Error(c, http.StatusConflict, "conflict", nil)
	case errors.Is(err, apperrors.ErrForbidden):
		Error(c, http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, apperrors.ErrUnauthorized):
		Error(c, http.StatusUnauthorized, "unauthorized", nil)
	default:
		Error(c, http.StatusInternalServerError, err.Error(), nil)
	}
}
