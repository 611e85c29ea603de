package service

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sportcast/internal/apperrors"
	"sportcast/internal/models"
	"sportcast/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// It implements the full interface but only a subset is used by scoring
// service tests.
type stubRepo struct {
	users       map[uint64]models.User
	predictions map[uint64]models.PredictionEvent
	scores      map[uint64]models.PredictionScore
	bets        []models.Bet

	// prediction ids whose score insert should fail
	failInsert map[uint64]error
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		users:       map[uint64]models.User{},
		predictions: map[uint64]models.PredictionEvent{},
		scores:      map[uint64]models.PredictionScore{},
		failInsert:  map[uint64]error{},
	}
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func (s *stubRepo) CreateUser(ctx context.Context, item *models.User) error {
	s.users[item.ID] = *item
	return nil
}
func (s *stubRepo) GetUserByID(ctx context.Context, id uint64) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, apperrors.ErrNotFound
}
func (s *stubRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}
func (s *stubRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *stubRepo) CreateNews(ctx context.Context, item *models.News) error { return nil }
func (s *stubRepo) GetNews(ctx context.Context, id uint64) (*models.News, error) {
	return nil, apperrors.ErrNotFound
}
func (s *stubRepo) ListNews(ctx context.Context, params repository.ListNewsParams) ([]models.News, error) {
	return nil, nil
}
func (s *stubRepo) CountNews(ctx context.Context, params repository.ListNewsParams) (int64, error) {
	return 0, nil
}
func (s *stubRepo) UpdateNews(ctx context.Context, item *models.News) error { return nil }
func (s *stubRepo) DeleteNews(ctx context.Context, id uint64) error         { return nil }
func (s *stubRepo) IncrementNewsLikes(ctx context.Context, id uint64) error { return nil }

func (s *stubRepo) CreateCommunityPost(ctx context.Context, item *models.CommunityPost) error {
	return nil
}
func (s *stubRepo) GetCommunityPost(ctx context.Context, id uint64) (*models.CommunityPost, error) {
	return nil, apperrors.ErrNotFound
}
func (s *stubRepo) ListCommunityPosts(ctx context.Context, params repository.ListCommunityPostsParams) ([]models.CommunityPost, error) {
	return nil, nil
}
func (s *stubRepo) CountCommunityPosts(ctx context.Context, params repository.ListCommunityPostsParams) (int64, error) {
	return 0, nil
}
func (s *stubRepo) UpdateCommunityPost(ctx context.Context, item *models.CommunityPost) error {
	return nil
}
func (s *stubRepo) DeleteCommunityPost(ctx context.Context, id uint64) error         { return nil }
func (s *stubRepo) IncrementCommunityPostLikes(ctx context.Context, id uint64) error { return nil }

func (s *stubRepo) CreateLeagueStanding(ctx context.Context, item *models.LeagueStanding) error {
	return nil
}
func (s *stubRepo) GetLeagueStanding(ctx context.Context, id uint64) (*models.LeagueStanding, error) {
	return nil, apperrors.ErrNotFound
}
func (s *stubRepo) ListLeagueStandings(ctx context.Context, params repository.ListStandingsParams) ([]models.LeagueStanding, error) {
	return nil, nil
}
func (s *stubRepo) UpdateLeagueStanding(ctx context.Context, item *models.LeagueStanding) error {
	return nil
}
func (s *stubRepo) DeleteLeagueStanding(ctx context.Context, id uint64) error { return nil }

func (s *stubRepo) CreatePrediction(ctx context.Context, item *models.PredictionEvent) error {
	s.predictions[item.ID] = *item
	return nil
}
func (s *stubRepo) GetPrediction(ctx context.Context, id uint64) (*models.PredictionEvent, error) {
	if p, ok := s.predictions[id]; ok {
		return &p, nil
	}
	return nil, apperrors.ErrNotFound
}
func (s *stubRepo) ListPredictions(ctx context.Context, params repository.ListPredictionsParams) ([]models.PredictionEvent, error) {
	var out []models.PredictionEvent
	for _, p := range s.predictions {
		if params.Status != nil && p.Status != *params.Status {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (s *stubRepo) CountPredictions(ctx context.Context, params repository.ListPredictionsParams) (int64, error) {
	items, _ := s.ListPredictions(ctx, params)
	return int64(len(items)), nil
}
func (s *stubRepo) ListUnscoredPredictions(ctx context.Context) ([]models.PredictionEvent, error) {
	var out []models.PredictionEvent
	for _, p := range s.predictions {
		if p.Status != models.PredictionStatusPending {
			continue
		}
		if _, scored := s.scores[p.ID]; scored {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (s *stubRepo) SetPredictionStatus(ctx context.Context, id uint64, status string) error {
	p, ok := s.predictions[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	p.Status = status
	s.predictions[id] = p
	return nil
}
func (s *stubRepo) SetPredictionStatusTx(ctx context.Context, tx *gorm.DB, id uint64, status string) error {
	return s.SetPredictionStatus(ctx, id, status)
}
func (s *stubRepo) DeletePredictionTx(ctx context.Context, tx *gorm.DB, id uint64) error {
	delete(s.predictions, id)
	return nil
}

func (s *stubRepo) PredictionScoreExists(ctx context.Context, predictionID uint64) (bool, error) {
	_, ok := s.scores[predictionID]
	return ok, nil
}
func (s *stubRepo) GetPredictionScoreByPredictionID(ctx context.Context, predictionID uint64) (*models.PredictionScore, error) {
	if sc, ok := s.scores[predictionID]; ok {
		return &sc, nil
	}
	return nil, apperrors.ErrNotFound
}
func (s *stubRepo) InsertPredictionScore(ctx context.Context, item *models.PredictionScore) error {
	return s.InsertPredictionScoreTx(ctx, nil, item)
}
func (s *stubRepo) InsertPredictionScoreTx(ctx context.Context, tx *gorm.DB, item *models.PredictionScore) error {
	if err, ok := s.failInsert[item.PredictionID]; ok {
		return err
	}
	if _, ok := s.scores[item.PredictionID]; ok {
		return apperrors.ErrConflict
	}
	s.scores[item.PredictionID] = *item
	return nil
}
func (s *stubRepo) DeletePredictionScoreByPredictionTx(ctx context.Context, tx *gorm.DB, predictionID uint64) error {
	delete(s.scores, predictionID)
	return nil
}
func (s *stubRepo) ListPredictionScores(ctx context.Context, params repository.ListPredictionScoresParams) ([]models.PredictionScore, error) {
	var out []models.PredictionScore
	for _, sc := range s.scores {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalScore > out[j].TotalScore })
	return out, nil
}

func (s *stubRepo) PlaceBet(ctx context.Context, item *models.Bet) error {
	s.bets = append(s.bets, *item)
	return nil
}
func (s *stubRepo) ListBetsByUser(ctx context.Context, userID uint64, limit, offset int) ([]models.Bet, error) {
	var out []models.Bet
	for _, b := range s.bets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}
func (s *stubRepo) ListBetsByPrediction(ctx context.Context, predictionID uint64) ([]models.Bet, error) {
	var out []models.Bet
	for _, b := range s.bets {
		if b.PredictionID == predictionID {
			out = append(out, b)
		}
	}
	return out, nil
}
func (s *stubRepo) SumBetAmountByPrediction(ctx context.Context, predictionID uint64) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, b := range s.bets {
		if b.PredictionID == predictionID {
			total = total.Add(b.Amount)
		}
	}
	return total, nil
}

var errInsertRefused = errors.New("insert refused")
