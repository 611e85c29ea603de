package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sportcast/internal/apperrors"
	"sportcast/internal/models"
	"sportcast/internal/repository"
	"sportcast/internal/scoring"
)

// ScoringService drives candidate evaluation: single-candidate scoring,
// batch scoring of everything unscored, and the select-best pass that
// approves one winner and removes the rest.
type ScoringService struct {
	Repo   repository.Repository
	Scorer *scoring.Scorer
	Logger *zap.Logger
}

func NewScoringService(repo repository.Repository, scorer *scoring.Scorer, logger *zap.Logger) *ScoringService {
	return &ScoringService{Repo: repo, Scorer: scorer, Logger: logger}
}

// SystemActor is the privileged identity used by scheduled runs.
func SystemActor() *models.User {
	return &models.User{Username: "system", IsActive: true, IsAdmin: true}
}

// SelectionResult reports one select-best pass. Scores holds every score
// computed during the pass, including those of candidates deleted by it.
// Event is the winning prediction with its approved status.
type SelectionResult struct {
	Winner       *models.PredictionScore  `json:"winner"`
	Event        *models.PredictionEvent  `json:"winner_event"`
	Scores       []models.PredictionScore `json:"scores"`
	DeletedCount int                      `json:"deleted_count"`
}

func requireAdmin(actor *models.User) error {
	if actor == nil || !actor.IsAdmin {
		return apperrors.ErrForbidden
	}
	return nil
}

func promptInput(ev *models.PredictionEvent) scoring.PromptInput {
	in := scoring.PromptInput{
		GameID:     ev.GameID,
		Prediction: ev.Prediction,
		OptionA:    ev.OptionA,
		OptionB:    ev.OptionB,
	}
	if ev.Creator.ID != 0 {
		in.CreatorUsername = ev.Creator.Username
		in.CreatorActivityDays = int(time.Since(ev.Creator.CreatedAt).Hours() / 24)
		if in.CreatorActivityDays < 0 {
			in.CreatorActivityDays = 0
		}
	} else {
		in.CreatorUsername = "unknown"
	}
	return in
}

// CalculateOne scores a single candidate and persists the result. A
// candidate that already has a score is a conflict and stays untouched.
func (s *ScoringService) CalculateOne(ctx context.Context, actor *models.User, predictionID uint64) (*models.PredictionScore, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	ev, err := s.Repo.GetPrediction(ctx, predictionID)
	if err != nil {
		return nil, err
	}

	exists, err := s.Repo.PredictionScoreExists(ctx, predictionID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrConflict
	}

	set, outcome := s.Scorer.Score(ctx, promptInput(ev))
	if outcome.Degraded && s.Logger != nil {
		s.Logger.Warn("candidate scored with defaults",
			zap.Uint64("prediction_id", predictionID),
			zap.String("reason", outcome.Reason))
	}

	score := set.Model(predictionID)
	if err := s.Repo.InsertPredictionScore(ctx, &score); err != nil {
		return nil, err
	}
	return &score, nil
}

// CalculateBatch scores every unscored pending candidate in id order,
// committing all successful inserts together. One candidate's persistence
// failure is logged and skipped. A run with nothing unscored creates
// nothing.
func (s *ScoringService) CalculateBatch(ctx context.Context, actor *models.User) ([]models.PredictionScore, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	candidates, err := s.Repo.ListUnscoredPredictions(ctx)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	var created []models.PredictionScore
	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		for i := range candidates {
			ev := &candidates[i]
			set, outcome := s.Scorer.Score(ctx, promptInput(ev))
			if outcome.Degraded && s.Logger != nil {
				s.Logger.Warn("candidate scored with defaults",
					zap.Uint64("prediction_id", ev.ID),
					zap.String("reason", outcome.Reason))
			}
			score := set.Model(ev.ID)
			if err := s.Repo.InsertPredictionScoreTx(ctx, tx, &score); err != nil {
				if s.Logger != nil {
					s.Logger.Warn("score insert failed, skipping candidate",
						zap.Uint64("prediction_id", ev.ID), zap.Error(err))
				}
				continue
			}
			created = append(created, score)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CalculateBatchAndSelectBest scores every unscored candidate, approves the
// one with the strictly highest total and deletes the remaining candidates
// from the run, scores before events, all in one commit. An empty unscored
// set mutates nothing. If no score persists, nothing is approved or
// deleted.
func (s *ScoringService) CalculateBatchAndSelectBest(ctx context.Context, actor *models.User) (*SelectionResult, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	candidates, err := s.Repo.ListUnscoredPredictions(ctx)
	if err != nil {
		return nil, err
	}
	result := &SelectionResult{}
	if len(candidates) == 0 {
		return result, nil
	}

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		persisted := make(map[uint64]bool, len(candidates))
		var winner *models.PredictionScore
		winnerIdx := -1

		for i := range candidates {
			ev := &candidates[i]
			set, outcome := s.Scorer.Score(ctx, promptInput(ev))
			if outcome.Degraded && s.Logger != nil {
				s.Logger.Warn("candidate scored with defaults",
					zap.Uint64("prediction_id", ev.ID),
					zap.String("reason", outcome.Reason))
			}
			score := set.Model(ev.ID)
			if err := s.Repo.InsertPredictionScoreTx(ctx, tx, &score); err != nil {
				if s.Logger != nil {
					s.Logger.Warn("score insert failed, skipping candidate",
						zap.Uint64("prediction_id", ev.ID), zap.Error(err))
				}
				continue
			}
			result.Scores = append(result.Scores, score)
			persisted[ev.ID] = true
			// Strictly greater keeps the first encountered on ties.
			if winner == nil || score.TotalScore > winner.TotalScore {
				copied := score
				winner = &copied
				winnerIdx = i
			}
		}

		if winner == nil {
			return nil
		}

		if err := s.Repo.SetPredictionStatusTx(ctx, tx, winner.PredictionID, models.PredictionStatusApproved); err != nil {
			return err
		}
		for i := range candidates {
			id := candidates[i].ID
			if id == winner.PredictionID {
				continue
			}
			if persisted[id] {
				if err := s.Repo.DeletePredictionScoreByPredictionTx(ctx, tx, id); err != nil {
					return err
				}
			}
			if err := s.Repo.DeletePredictionTx(ctx, tx, id); err != nil {
				return err
			}
			result.DeletedCount++
		}
		result.Winner = winner
		approved := candidates[winnerIdx]
		approved.Status = models.PredictionStatusApproved
		result.Event = &approved
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Winner != nil && s.Logger != nil {
		s.Logger.Info("best candidate selected",
			zap.Uint64("prediction_id", result.Winner.PredictionID),
			zap.Float64("total_score", result.Winner.TotalScore),
			zap.Int("deleted", result.DeletedCount))
	}
	return result, nil
}

// GetScore returns the stored score for one candidate.
func (s *ScoringService) GetScore(ctx context.Context, actor *models.User, predictionID uint64) (*models.PredictionScore, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.Repo.GetPredictionScoreByPredictionID(ctx, predictionID)
}

// ListScores returns stored scores ordered by total descending.
func (s *ScoringService) ListScores(ctx context.Context, actor *models.User, params repository.ListPredictionScoresParams) ([]models.PredictionScore, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.Repo.ListPredictionScores(ctx, params)
}
