package gormrepository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"sportcast/internal/apperrors"
	"sportcast/internal/models"
	"sportcast/internal/repository"
)

type Store struct {
	db *gorm.DB
}

var _ repository.Repository = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- Users -------------------------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, item *models.User) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	err := s.db.WithContext(ctx).Create(item).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrConflict
	}
	return err
}

func (s *Store) GetUserByID(ctx context.Context, id uint64) (*models.User, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.User
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &item, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&item).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &item, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(email)).First(&item).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &item, nil
}

// --- News --------------------------------------------------------------------

func (s *Store) CreateNews(ctx context.Context, item *models.News) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetNews(ctx context.Context, id uint64) (*models.News, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.News
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &item, nil
}

func (s *Store) newsQuery(ctx context.Context, params repository.ListNewsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.News{})
	if params.League != nil && strings.TrimSpace(*params.League) != "" {
		query = query.Where("league = ?", strings.TrimSpace(*params.League))
	}
	if params.Team != nil && strings.TrimSpace(*params.Team) != "" {
		query = query.Where("team = ?", strings.TrimSpace(*params.Team))
	}
	return query
}

func (s *Store) ListNews(ctx context.Context, params repository.ListNewsParams) ([]models.News, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.News
	err := s.newsQuery(ctx, params).
		Order("created_at DESC").
		Limit(normalizeLimit(params.Limit, 50)).
		Offset(normalizeOffset(params.Offset)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountNews(ctx context.Context, params repository.ListNewsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := s.newsQuery(ctx, params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) UpdateNews(ctx context.Context, item *models.News) error {
	if s == nil || s.db == nil || item == nil || item.ID == 0 {
		return nil
	}
	res := s.db.WithContext(ctx).Model(&models.News{}).Where("id = ?", item.ID).Updates(item)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteNews(ctx context.Context, id uint64) error {
	return s.deleteByID(ctx, &models.News{}, id)
}

func (s *Store) IncrementNewsLikes(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	res := s.db.WithContext(ctx).Model(&models.News{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// --- Community posts ---------------------------------------------------------

func (s *Store) CreateCommunityPost(ctx context.Context, item *models.CommunityPost) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetCommunityPost(ctx context.Context, id uint64) (*models.CommunityPost, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.CommunityPost
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &item, nil
}

func (s *Store) communityQuery(ctx context.Context, params repository.ListCommunityPostsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.CommunityPost{})
	if params.Category != nil && strings.TrimSpace(*params.Category) != "" {
		query = query.Where("category = ?", strings.TrimSpace(*params.Category))
	}
	return query
}

func (s *Store) ListCommunityPosts(ctx context.Context, params repository.ListCommunityPostsParams) ([]models.CommunityPost, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.CommunityPost
	err := s.communityQuery(ctx, params).
		Order("created_at DESC").
		Limit(normalizeLimit(params.Limit, 50)).
		Offset(normalizeOffset(params.Offset)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountCommunityPosts(ctx context.Context, params repository.ListCommunityPostsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := s.communityQuery(ctx, params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) UpdateCommunityPost(ctx context.Context, item *models.CommunityPost) error {
	if s == nil || s.db == nil || item == nil || item.ID == 0 {
		return nil
	}
	res := s.db.WithContext(ctx).Model(&models.CommunityPost{}).Where("id = ?", item.ID).Updates(item)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteCommunityPost(ctx context.Context, id uint64) error {
	return s.deleteByID(ctx, &models.CommunityPost{}, id)
}

func (s *Store) IncrementCommunityPostLikes(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	res := s.db.WithContext(ctx).Model(&models.CommunityPost{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// --- League standings --------------------------------------------------------

func (s *Store) CreateLeagueStanding(ctx context.Context, item *models.LeagueStanding) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetLeagueStanding(ctx context.Context, id uint64) (*models.LeagueStanding, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.LeagueStanding
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &item, nil
}

func (s *Store) ListLeagueStandings(ctx context.Context, params repository.ListStandingsParams) ([]models.LeagueStanding, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.LeagueStanding{})
	if params.League != nil && strings.TrimSpace(*params.League) != "" {
		query = query.Where("league = ?", strings.TrimSpace(*params.League))
	}
	var items []models.LeagueStanding
	if err := query.Order("league ASC, rank ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpdateLeagueStanding(ctx context.Context, item *models.LeagueStanding) error {
	if s == nil || s.db == nil || item == nil || item.ID == 0 {
		return nil
	}
	res := s.db.WithContext(ctx).Model(&models.LeagueStanding{}).Where("id = ?", item.ID).Updates(item)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteLeagueStanding(ctx context.Context, id uint64) error {
	return s.deleteByID(ctx, &models.LeagueStanding{}, id)
}

// --- helpers -----------------------------------------------------------------

func (s *Store) deleteByID(ctx context.Context, model any, id uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}

func normalizeLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
