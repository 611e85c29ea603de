package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sportcast/internal/models"
)

type ListNewsParams struct {
	Limit  int
	Offset int
	League *string
	Team   *string
}

type ListCommunityPostsParams struct {
	Limit    int
	Offset   int
	Category *string
}

type ListStandingsParams struct {
	League *string
}

type ListPredictionsParams struct {
	Limit     int
	Offset    int
	Status    *string
	CreatorID *uint64
}

type ListPredictionScoresParams struct {
	Limit  int
	Offset int
}

type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Users
	CreateUser(ctx context.Context, item *models.User) error
	GetUserByID(ctx context.Context, id uint64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// News
	CreateNews(ctx context.Context, item *models.News) error
	GetNews(ctx context.Context, id uint64) (*models.News, error)
	ListNews(ctx context.Context, params ListNewsParams) ([]models.News, error)
	CountNews(ctx context.Context, params ListNewsParams) (int64, error)
	UpdateNews(ctx context.Context, item *models.News) error
	DeleteNews(ctx context.Context, id uint64) error
	IncrementNewsLikes(ctx context.Context, id uint64) error

	// Community posts
	CreateCommunityPost(ctx context.Context, item *models.CommunityPost) error
	GetCommunityPost(ctx context.Context, id uint64) (*models.CommunityPost, error)
	ListCommunityPosts(ctx context.Context, params ListCommunityPostsParams) ([]models.CommunityPost, error)
	CountCommunityPosts(ctx context.Context, params ListCommunityPostsParams) (int64, error)
	UpdateCommunityPost(ctx context.Context, item *models.CommunityPost) error
	DeleteCommunityPost(ctx context.Context, id uint64) error
	IncrementCommunityPostLikes(ctx context.Context, id uint64) error

	// League standings
	CreateLeagueStanding(ctx context.Context, item *models.LeagueStanding) error
	GetLeagueStanding(ctx context.Context, id uint64) (*models.LeagueStanding, error)
	ListLeagueStandings(ctx context.Context, params ListStandingsParams) ([]models.LeagueStanding, error)
	UpdateLeagueStanding(ctx context.Context, item *models.LeagueStanding) error
	DeleteLeagueStanding(ctx context.Context, id uint64) error

	// Prediction events (candidate store)
	CreatePrediction(ctx context.Context, item *models.PredictionEvent) error
	GetPrediction(ctx context.Context, id uint64) (*models.PredictionEvent, error)
	ListPredictions(ctx context.Context, params ListPredictionsParams) ([]models.PredictionEvent, error)
	CountPredictions(ctx context.Context, params ListPredictionsParams) (int64, error)
	// ListUnscoredPredictions returns pending candidates with no score row,
	// ordered by id ascending. Batch processing and the winner tie-break
	// depend on this order.
	ListUnscoredPredictions(ctx context.Context) ([]models.PredictionEvent, error)
	SetPredictionStatus(ctx context.Context, id uint64, status string) error
	SetPredictionStatusTx(ctx context.Context, tx *gorm.DB, id uint64, status string) error
	DeletePredictionTx(ctx context.Context, tx *gorm.DB, id uint64) error

	// Prediction scores (score store)
	PredictionScoreExists(ctx context.Context, predictionID uint64) (bool, error)
	GetPredictionScoreByPredictionID(ctx context.Context, predictionID uint64) (*models.PredictionScore, error)
	InsertPredictionScore(ctx context.Context, item *models.PredictionScore) error
	// InsertPredictionScoreTx stages one insert inside tx; a failure must not
	// poison the surrounding transaction.
	InsertPredictionScoreTx(ctx context.Context, tx *gorm.DB, item *models.PredictionScore) error
	DeletePredictionScoreByPredictionTx(ctx context.Context, tx *gorm.DB, predictionID uint64) error
	ListPredictionScores(ctx context.Context, params ListPredictionScoresParams) ([]models.PredictionScore, error)

	// Bets
	PlaceBet(ctx context.Context, item *models.Bet) error
	ListBetsByUser(ctx context.Context, userID uint64, limit, offset int) ([]models.Bet, error)
	ListBetsByPrediction(ctx context.Context, predictionID uint64) ([]models.Bet, error)
	SumBetAmountByPrediction(ctx context.Context, predictionID uint64) (decimal.Decimal, error)
}
