package db

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"sportcast/internal/apperrors"
	"sportcast/internal/auth"
	"sportcast/internal/config"
	"sportcast/internal/models"
	"sportcast/internal/repository"
)

// EnsureAdminUser creates the bootstrap admin account if it does not exist.
// A blank configured password disables seeding.
func EnsureAdminUser(ctx context.Context, repo repository.Repository, cfg config.AdminConfig, logger *zap.Logger) error {
	if cfg.Password == "" {
		return nil
	}

	_, err := repo.GetUserByUsername(ctx, cfg.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	hashed, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return err
	}
	user := models.User{
		Username:       cfg.Username,
		Email:          cfg.Email,
		HashedPassword: hashed,
		IsActive:       true,
		IsSuperuser:    true,
		IsAdmin:        true,
	}
	if err := repo.CreateUser(ctx, &user); err != nil {
		return err
	}
	if logger != nil {
		logger.Info("admin user seeded", zap.String("username", cfg.Username))
	}
	return nil
}
