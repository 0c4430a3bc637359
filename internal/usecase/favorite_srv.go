package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"movie-favorites/internal/data/entity"
	"movie-favorites/internal/data/repository"
	"movie-favorites/internal/dto/request"
	"movie-favorites/internal/dto/response"
	"movie-favorites/internal/queue"
	"movie-favorites/pkg/utils"
)

type FavoriteService interface {
	GetFavorites(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FavoriteResponse], error)
	GetFavoritesDetailed(ctx context.Context) ([]response.FavoriteDetailResponse, error)
	GetFavoriteByID(ctx context.Context, favoriteID int64) (*response.FavoriteDetailResponse, error)
	CreateFavorite(ctx context.Context, req *request.FavoriteRequest) (*response.FavoriteResponse, error)
	DeleteFavorite(ctx context.Context, favoriteID int64) error

	GetFavoritesByUser(ctx context.Context, userID int64) ([]response.FavoriteDetailResponse, error)
	GetFavoritesByMovie(ctx context.Context, movieID int64) ([]response.FavoriteDetailResponse, error)
	CheckFavorite(ctx context.Context, userID, movieID int64) (*response.FavoriteCheckResponse, error)
	DeleteAllByUser(ctx context.Context, userID int64) (int64, error)
	GetStats(ctx context.Context) (*response.FavoriteStatsResponse, error)
	GetRecommendations(ctx context.Context, userID int64, limit int) ([]response.MovieResponse, error)
}

type favoriteService struct {
	repo      *repository.Repository
	publisher *queue.Publisher
	log       *zap.Logger
}

func NewFavoriteService(repo *repository.Repository, publisher *queue.Publisher, log *zap.Logger) FavoriteService {
	return &favoriteService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "favorite")),
	}
}

func (s *favoriteService) GetFavorites(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FavoriteResponse], error) {
	favorites, err := s.repo.Favorite.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get favorites: %w", err)
	}

	total, err := s.repo.Favorite.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count favorites: %w", err)
	}

	favoriteResponses := make([]response.FavoriteResponse, len(favorites))
	for i, favorite := range favorites {
		favoriteResponses[i] = response.FavoriteToResponse(favorite)
	}

	return response.NewPaginatedResponse(favoriteResponses, req.Page, req.PerPage, total), nil
}

// GetFavoritesDetailed returns every favorite joined with its user name
// and movie title. Orphaned favorites, should referential integrity
// ever be bypassed, are simply absent from the result.
func (s *favoriteService) GetFavoritesDetailed(ctx context.Context) ([]response.FavoriteDetailResponse, error) {
	details, err := s.repo.Favorite.FindAllDetailed(ctx)
	if err != nil {
		return nil, fmt.Errorf("get detailed favorites: %w", err)
	}

	s.log.Debug("Detailed favorites retrieved", zap.Int("count", len(details)))
	return response.FavoriteDetailsToResponse(details), nil
}

func (s *favoriteService) GetFavoriteByID(ctx context.Context, favoriteID int64) (*response.FavoriteDetailResponse, error) {
	detail, err := s.repo.Favorite.FindDetailByID(ctx, favoriteID)
	if err != nil {
		return nil, fmt.Errorf("get favorite by id: %w", err)
	}
	if detail == nil {
		return nil, fmt.Errorf("favorite %d: %w", favoriteID, repository.ErrNotFound)
	}

	detailResp := response.FavoriteDetailToResponse(detail)
	return &detailResp, nil
}

// CreateFavorite marks a movie as a favorite. Both referenced rows are
// checked first for friendly 404s; the insert itself still enforces the
// unique pair and the foreign keys atomically, so a concurrent
// duplicate or delete surfaces as ErrDuplicate or ErrForeignKey.
func (s *favoriteService) CreateFavorite(ctx context.Context, req *request.FavoriteRequest) (*response.FavoriteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create favorite validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", req.UserID, repository.ErrNotFound)
	}

	movie, err := s.repo.Movie.FindByID(ctx, req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("check movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d: %w", req.MovieID, repository.ErrNotFound)
	}

	favorite := &entity.Favorite{
		UserID:  req.UserID,
		MovieID: req.MovieID,
	}

	if err := s.repo.Favorite.Create(ctx, favorite); err != nil {
		return nil, fmt.Errorf("create favorite: %w", err)
	}

	s.log.Info("Favorite created",
		zap.Int64("favorite_id", favorite.ID),
		zap.Int64("user_id", favorite.UserID),
		zap.Int64("movie_id", favorite.MovieID),
	)

	// Best effort, a broker outage must not fail the write
	_ = s.publisher.Publish(ctx, queue.NewFavoriteMarked(favorite.UserID, favorite.MovieID))

	favoriteResp := response.FavoriteToResponse(favorite)
	return &favoriteResp, nil
}

// DeleteFavorite is the unfavorite operation.
func (s *favoriteService) DeleteFavorite(ctx context.Context, favoriteID int64) error {
	favorite, err := s.repo.Favorite.FindByID(ctx, favoriteID)
	if err != nil {
		return fmt.Errorf("find favorite: %w", err)
	}
	if favorite == nil {
		return fmt.Errorf("favorite %d: %w", favoriteID, repository.ErrNotFound)
	}

	if err := s.repo.Favorite.Delete(ctx, favoriteID); err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}

	_ = s.publisher.Publish(ctx, queue.NewFavoriteUnmarked(favorite.UserID, favorite.MovieID))

	return nil
}

func (s *favoriteService) GetFavoritesByUser(ctx context.Context, userID int64) ([]response.FavoriteDetailResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, repository.ErrNotFound)
	}

	details, err := s.repo.Favorite.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get favorites by user: %w", err)
	}

	return response.FavoriteDetailsToResponse(details), nil
}

func (s *favoriteService) GetFavoritesByMovie(ctx context.Context, movieID int64) ([]response.FavoriteDetailResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("check movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d: %w", movieID, repository.ErrNotFound)
	}

	details, err := s.repo.Favorite.FindByMovie(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get favorites by movie: %w", err)
	}

	return response.FavoriteDetailsToResponse(details), nil
}

func (s *favoriteService) CheckFavorite(ctx context.Context, userID, movieID int64) (*response.FavoriteCheckResponse, error) {
	exists, err := s.repo.Favorite.Exists(ctx, userID, movieID)
	if err != nil {
		return nil, fmt.Errorf("check favorite: %w", err)
	}

	return &response.FavoriteCheckResponse{
		UserID:    userID,
		MovieID:   movieID,
		Favorited: exists,
	}, nil
}

func (s *favoriteService) DeleteAllByUser(ctx context.Context, userID int64) (int64, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("check user: %w", err)
	}
	if user == nil {
		return 0, fmt.Errorf("user %d: %w", userID, repository.ErrNotFound)
	}

	deleted, err := s.repo.Favorite.DeleteAllByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("delete favorites by user: %w", err)
	}

	return deleted, nil
}

func (s *favoriteService) GetStats(ctx context.Context) (*response.FavoriteStatsResponse, error) {
	stats, err := s.repo.Favorite.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("get favorite stats: %w", err)
	}

	statsResp := response.FavoriteStatsToResponse(stats)
	return &statsResp, nil
}

func (s *favoriteService) GetRecommendations(ctx context.Context, userID int64, limit int) ([]response.MovieResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, repository.ErrNotFound)
	}

	movies, err := s.repo.Favorite.FindRecommendations(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("get recommendations: %w", err)
	}

	return response.MoviesToResponse(movies), nil
}
