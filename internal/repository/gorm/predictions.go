package gormrepository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sportcast/internal/apperrors"
	"sportcast/internal/models"
	"sportcast/internal/repository"
)

// --- Prediction events -------------------------------------------------------

func (s *Store) CreatePrediction(ctx context.Context, item *models.PredictionEvent) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetPrediction(ctx context.Context, id uint64) (*models.PredictionEvent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.PredictionEvent
	err := s.db.WithContext(ctx).Preload("Creator").First(&item, id).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &item, nil
}

func (s *Store) predictionQuery(ctx context.Context, params repository.ListPredictionsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.PredictionEvent{})
	if params.Status != nil && *params.Status != "" {
		query = query.Where("status = ?", *params.Status)
	}
	if params.CreatorID != nil && *params.CreatorID != 0 {
		query = query.Where("creator_id = ?", *params.CreatorID)
	}
	return query
}

func (s *Store) ListPredictions(ctx context.Context, params repository.ListPredictionsParams) ([]models.PredictionEvent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.PredictionEvent
	err := s.predictionQuery(ctx, params).
		Preload("Creator").
		Order("created_at DESC").
		Limit(normalizeLimit(params.Limit, 50)).
		Offset(normalizeOffset(params.Offset)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountPredictions(ctx context.Context, params repository.ListPredictionsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := s.predictionQuery(ctx, params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// ListUnscoredPredictions returns pending events that have no score row yet,
// ordered by id ascending.
func (s *Store) ListUnscoredPredictions(ctx context.Context) ([]models.PredictionEvent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.PredictionEvent
	err := s.db.WithContext(ctx).
		Preload("Creator").
		Where("status = ?", models.PredictionStatusPending).
		Where("id NOT IN (?)",
			s.db.Model(&models.PredictionScore{}).Select("prediction_id")).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) SetPredictionStatus(ctx context.Context, id uint64, status string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return setPredictionStatus(s.db.WithContext(ctx), id, status)
}

func (s *Store) SetPredictionStatusTx(ctx context.Context, tx *gorm.DB, id uint64, status string) error {
	if tx == nil {
		return nil
	}
	return setPredictionStatus(tx.WithContext(ctx), id, status)
}

func setPredictionStatus(db *gorm.DB, id uint64, status string) error {
	res := db.Model(&models.PredictionEvent{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *Store) DeletePredictionTx(ctx context.Context, tx *gorm.DB, id uint64) error {
	if tx == nil {
		return nil
	}
	return tx.WithContext(ctx).Where("id = ?", id).Delete(&models.PredictionEvent{}).Error
}

// --- Prediction scores -------------------------------------------------------

func (s *Store) PredictionScoreExists(ctx context.Context, predictionID uint64) (bool, error) {
	if s == nil || s.db == nil {
		return false, nil
	}
	var total int64
	err := s.db.WithContext(ctx).Model(&models.PredictionScore{}).
		Where("prediction_id = ?", predictionID).
		Count(&total).Error
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

func (s *Store) GetPredictionScoreByPredictionID(ctx context.Context, predictionID uint64) (*models.PredictionScore, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.PredictionScore
	err := s.db.WithContext(ctx).Where("prediction_id = ?", predictionID).First(&item).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &item, nil
}

func (s *Store) InsertPredictionScore(ctx context.Context, item *models.PredictionScore) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	err := s.db.WithContext(ctx).Create(item).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrConflict
	}
	return err
}

// InsertPredictionScoreTx stages one insert under a savepoint so a duplicate
// or constraint failure rolls back only this item, not the surrounding
// transaction.
func (s *Store) InsertPredictionScoreTx(ctx context.Context, tx *gorm.DB, item *models.PredictionScore) error {
	if tx == nil || item == nil {
		return nil
	}
	tx = tx.WithContext(ctx)
	name := fmt.Sprintf("sp_score_%d", item.PredictionID)
	if err := tx.SavePoint(name).Error; err != nil {
		return err
	}
	if err := tx.Create(item).Error; err != nil {
		if spErr := tx.RollbackTo(name).Error; spErr != nil {
			return spErr
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrConflict
		}
		return err
	}
	return nil
}

func (s *Store) DeletePredictionScoreByPredictionTx(ctx context.Context, tx *gorm.DB, predictionID uint64) error {
	if tx == nil {
		return nil
	}
	return tx.WithContext(ctx).Where("prediction_id = ?", predictionID).Delete(&models.PredictionScore{}).Error
}

func (s *Store) ListPredictionScores(ctx context.Context, params repository.ListPredictionScoresParams) ([]models.PredictionScore, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.PredictionScore
	err := s.db.WithContext(ctx).
		Order("total_score DESC").
		Limit(normalizeLimit(params.Limit, 50)).
		Offset(normalizeOffset(params.Offset)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// --- Bets --------------------------------------------------------------------

// PlaceBet inserts the bet and bumps the prediction's totals in one
// transaction.
func (s *Store) PlaceBet(ctx context.Context, item *models.Bet) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		res := tx.Model(&models.PredictionEvent{}).
			Where("id = ?", item.PredictionID).
			Updates(map[string]any{
				"total_bets":   gorm.Expr("total_bets + 1"),
				"total_amount": gorm.Expr("total_amount + ?", item.Amount),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

func (s *Store) ListBetsByUser(ctx context.Context, userID uint64, limit, offset int) ([]models.Bet, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Bet
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(normalizeLimit(limit, 50)).
		Offset(normalizeOffset(offset)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListBetsByPrediction(ctx context.Context, predictionID uint64) ([]models.Bet, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Bet
	err := s.db.WithContext(ctx).
		Where("prediction_id = ?", predictionID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) SumBetAmountByPrediction(ctx context.Context, predictionID uint64) (decimal.Decimal, error) {
	if s == nil || s.db == nil {
		return decimal.Zero, nil
	}
	var raw struct {
		Total decimal.Decimal
	}
	err := s.db.WithContext(ctx).Model(&models.Bet{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("prediction_id = ?", predictionID).
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	return raw.Total, nil
}
