package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sportcast/internal/apperrors"
	"sportcast/internal/auth"
	"sportcast/internal/models"
	"sportcast/internal/repository"
)

type AuthHandler struct {
	Repo   repository.Repository
	Tokens *auth.TokenService
}

func (h *AuthHandler) Register(r *gin.Engine, authRequired gin.HandlerFunc) {
	group := r.Group("/api/v1/auth")
	group.POST("/register", h.register)
	group.POST("/login", h.login)
	group.GET("/me", authRequired, h.me)
	group.POST("/logout", authRequired, h.logout)
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Repo.GetUserByUsername(ctx, req.Username); err == nil {
		Error(c, http.StatusConflict, "username already taken", nil)
		return
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		respondError(c, err)
		return
	}
	if _, err := h.Repo.GetUserByEmail(ctx, req.Email); err == nil {
		Error(c, http.StatusConflict, "email already registered", nil)
		return
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		respondError(c, err)
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		Error(c, http.StatusInternalServerError, "could not hash password", nil)
		return
	}
	user := models.User{
		Username:       strings.TrimSpace(req.Username),
		Email:          strings.TrimSpace(req.Email),
		HashedPassword: hashed,
		FullName:       strings.TrimSpace(req.FullName),
		IsActive:       true,
	}
	if err := h.Repo.CreateUser(ctx, &user); err != nil {
		respondError(c, err)
		return
	}
	Ok(c, user, nil)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	user, err := h.Repo.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			Error(c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		respondError(c, err)
		return
	}
	if !user.IsActive || !auth.CheckPassword(req.Password, user.HashedPassword) {
		Error(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	token, err := h.Tokens.Issue(user)
	if err != nil {
		Error(c, http.StatusInternalServerError, "could not issue token", nil)
		return
	}
	Ok(c, gin.H{"access_token": token, "token_type": "bearer"}, nil)
}

func (h *AuthHandler) me(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	Ok(c, user, nil)
}

// logout is stateless: the client discards its token.
func (h *AuthHandler) logout(c *gin.Context) {
	Ok(c, gin.H{"message": "logged out"}, nil)
}
