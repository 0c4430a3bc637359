package usecase

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"movie-favorites/internal/data/entity"
	"movie-favorites/internal/data/repository"
	"movie-favorites/internal/dto/request"
	"movie-favorites/internal/dto/response"
	"movie-favorites/internal/queue"
	"movie-favorites/pkg/utils"
)

// maxPosterBytes caps uploaded poster size at 5 MB.
const maxPosterBytes = 5 << 20

type Poster struct {
	ContentType string
	Data        []byte
}

type MovieService interface {
	GetMovies(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, movieID int64) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID int64, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID int64) error

	SearchMovies(ctx context.Context, req *request.MovieSearchRequest, page *request.PaginatedRequest) ([]response.MovieResponse, error)
	GetRecentMovies(ctx context.Context, limit int) ([]response.MovieResponse, error)
	GetPopularMovies(ctx context.Context, limit int) ([]response.RankedMovieResponse, error)
	GetMoviesByClassification(ctx context.Context, classification string, page *request.PaginatedRequest) ([]response.MovieResponse, error)

	UploadPoster(ctx context.Context, movieID int64, poster []byte) error
	GetPoster(ctx context.Context, movieID int64) (*Poster, error)
}

type movieService struct {
	repo      *repository.Repository
	publisher *queue.Publisher
	log       *zap.Logger
}

func NewMovieService(repo *repository.Repository, publisher *queue.Publisher, log *zap.Logger) MovieService {
	return &movieService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	movies, err := s.repo.Movie.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	s.log.Debug("Movies retrieved",
		zap.Int("count", len(movies)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(response.MoviesToResponse(movies), req.Page, req.PerPage, total), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID int64) (*response.MovieResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie by id: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d: %w", movieID, repository.ErrNotFound)
	}

	movieResp := response.MovieToResponse(movie)
	return &movieResp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movie := &entity.Movie{
		Title:           req.Title,
		Director:        req.Director,
		Genre:           req.Genre,
		DurationMinutes: req.DurationMinutes,
		Year:            req.Year,
		Classification:  req.Classification,
		Synopsis:        req.Synopsis,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.Int64("movie_id", movie.ID),
		zap.String("title", movie.Title),
	)

	// Best effort, a broker outage must not fail the write
	_ = s.publisher.Publish(ctx, queue.NewMovieCreated(movie.ID, movie.Title))

	movieResp := response.MovieToResponse(movie)
	return &movieResp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID int64, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d: %w", movieID, repository.ErrNotFound)
	}

	// Apply partial updates only for provided fields
	updated := false

	if req.Title != nil && *req.Title != movie.Title {
		movie.Title = *req.Title
		updated = true
	}
	if req.Director != nil && *req.Director != movie.Director {
		movie.Director = *req.Director
		updated = true
	}
	if req.Genre != nil && *req.Genre != movie.Genre {
		movie.Genre = *req.Genre
		updated = true
	}
	if req.DurationMinutes != nil && *req.DurationMinutes != movie.DurationMinutes {
		movie.DurationMinutes = *req.DurationMinutes
		updated = true
	}
	if req.Year != nil && *req.Year != movie.Year {
		movie.Year = *req.Year
		updated = true
	}
	if req.Classification != nil && *req.Classification != movie.Classification {
		movie.Classification = *req.Classification
		updated = true
	}
	if req.Synopsis != nil {
		movie.Synopsis = req.Synopsis
		updated = true
	}

	if updated {
		if err := s.repo.Movie.Update(ctx, movie); err != nil {
			return nil, fmt.Errorf("update movie: %w", err)
		}
		s.log.Info("Movie updated", zap.Int64("movie_id", movieID))
	}

	movieResp := response.MovieToResponse(movie)
	return &movieResp, nil
}

// DeleteMovie removes the movie; dependent favorites cascade away.
func (s *movieService) DeleteMovie(ctx context.Context, movieID int64) error {
	if err := s.repo.Movie.Delete(ctx, movieID); err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}

	return nil
}

func (s *movieService) SearchMovies(ctx context.Context, req *request.MovieSearchRequest, page *request.PaginatedRequest) ([]response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.Year != nil && (req.YearMin != nil || req.YearMax != nil) {
		return nil, fmt.Errorf("validation failed: year and year range are mutually exclusive")
	}
	if req.YearMin != nil && req.YearMax != nil && *req.YearMin > *req.YearMax {
		return nil, fmt.Errorf("validation failed: year_min greater than year_max")
	}
	if req.DurationMin != nil && req.DurationMax != nil && *req.DurationMin > *req.DurationMax {
		return nil, fmt.Errorf("validation failed: duration_min greater than duration_max")
	}

	filter := repository.MovieSearchFilter{
		Title:          req.Title,
		Director:       req.Director,
		Genre:          req.Genre,
		Year:           req.Year,
		YearMin:        req.YearMin,
		YearMax:        req.YearMax,
		Classification: req.Classification,
		DurationMin:    req.DurationMin,
		DurationMax:    req.DurationMax,
	}

	movies, err := s.repo.Movie.Search(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}

	return response.MoviesToResponse(movies), nil
}

func (s *movieService) GetRecentMovies(ctx context.Context, limit int) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent movies: %w", err)
	}

	return response.MoviesToResponse(movies), nil
}

func (s *movieService) GetPopularMovies(ctx context.Context, limit int) ([]response.RankedMovieResponse, error) {
	ranked, err := s.repo.Movie.FindPopular(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("get popular movies: %w", err)
	}

	responses := make([]response.RankedMovieResponse, len(ranked))
	for i, movie := range ranked {
		responses[i] = response.RankedMovieToResponse(movie)
	}
	return responses, nil
}

func (s *movieService) GetMoviesByClassification(ctx context.Context, classification string, page *request.PaginatedRequest) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindByClassification(ctx, classification, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("get movies by classification: %w", err)
	}

	return response.MoviesToResponse(movies), nil
}

func (s *movieService) UploadPoster(ctx context.Context, movieID int64, poster []byte) error {
	if len(poster) == 0 {
		return fmt.Errorf("validation failed: poster file is empty")
	}
	if len(poster) > maxPosterBytes {
		return fmt.Errorf("validation failed: poster exceeds %d bytes", maxPosterBytes)
	}

	contentType := http.DetectContentType(poster)
	if contentType != "image/jpeg" && contentType != "image/png" && contentType != "image/webp" {
		return fmt.Errorf("validation failed: unsupported poster type %s", contentType)
	}

	if err := s.repo.Movie.UpdatePoster(ctx, movieID, poster); err != nil {
		return fmt.Errorf("upload poster: %w", err)
	}

	s.log.Info("Poster uploaded",
		zap.Int64("movie_id", movieID),
		zap.Int("bytes", len(poster)),
	)
	return nil
}

func (s *movieService) GetPoster(ctx context.Context, movieID int64) (*Poster, error) {
	poster, err := s.repo.Movie.GetPoster(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get poster: %w", err)
	}
	if len(poster) == 0 {
		return nil, fmt.Errorf("poster for movie %d: %w", movieID, repository.ErrNotFound)
	}

	return &Poster{
		ContentType: http.DetectContentType(poster),
		Data:        poster,
	}, nil
}
