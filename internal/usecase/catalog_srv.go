package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"movie-favorites/internal/adapter/tmdb"
	"movie-favorites/internal/data/entity"
	"movie-favorites/internal/data/repository"
	"movie-favorites/internal/dto/response"
	"movie-favorites/pkg/utils"
)

// ImportResult summarizes one catalog import run.
type ImportResult struct {
	Fetched  int                      `json:"fetched"`
	Imported int                      `json:"imported"`
	Skipped  int                      `json:"skipped"`
	Movies   []response.MovieResponse `json:"movies"`
}

// CatalogService pulls movies from TMDB into the local catalog.
type CatalogService interface {
	ImportPopular(ctx context.Context, page int) (*ImportResult, error)
	ImportSearch(ctx context.Context, query string, page int) (*ImportResult, error)
}

type catalogService struct {
	repo *repository.Repository
	tmdb *tmdb.Client
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, tmdbClient *tmdb.Client, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		tmdb: tmdbClient,
		log:  log.With(zap.String("service", "catalog")),
	}
}

// ErrTMDBDisabled is returned when no bearer token is configured.
var ErrTMDBDisabled = fmt.Errorf("TMDB integration disabled: no bearer token configured")

func (s *catalogService) ImportPopular(ctx context.Context, page int) (*ImportResult, error) {
	if !s.tmdb.Enabled() {
		return nil, ErrTMDBDisabled
	}

	results, err := s.tmdb.FetchPopular(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("fetch popular movies: %w", err)
	}

	return s.importResults(ctx, results)
}

func (s *catalogService) ImportSearch(ctx context.Context, query string, page int) (*ImportResult, error) {
	if !s.tmdb.Enabled() {
		return nil, ErrTMDBDisabled
	}
	if query == "" {
		return nil, fmt.Errorf("validation failed: query is required")
	}

	results, err := s.tmdb.Search(ctx, query, page)
	if err != nil {
		return nil, fmt.Errorf("search movies on TMDB: %w", err)
	}

	return s.importResults(ctx, results)
}

// importResults maps and stores each fetched movie. Titles already in
// the catalog are skipped, as are entries the validator rejects; one
// bad entry never aborts the batch.
func (s *catalogService) importResults(ctx context.Context, results []tmdb.MovieResult) (*ImportResult, error) {
	importResult := &ImportResult{Fetched: len(results)}

	for _, result := range results {
		existing, err := s.repo.Movie.FindByTitle(ctx, result.Title)
		if err != nil {
			return nil, fmt.Errorf("check existing title: %w", err)
		}
		if existing != nil {
			importResult.Skipped++
			continue
		}

		details, err := s.tmdb.FetchDetails(ctx, result.ID)
		if err != nil {
			s.log.Warn("Failed to fetch movie details, using list data",
				zap.Int64("tmdb_id", result.ID),
				zap.Error(err),
			)
		}

		req := tmdb.MapToMovieRequest(result, details)
		if errs := utils.ValidateStruct(&req); len(errs) > 0 {
			s.log.Warn("Skipping unmappable TMDB movie",
				zap.String("title", result.Title),
				zap.Any("errors", errs),
			)
			importResult.Skipped++
			continue
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
			s.log.Warn("Failed to import movie",
				zap.String("title", req.Title),
				zap.Error(err),
			)
			importResult.Skipped++
			continue
		}

		if poster, err := s.tmdb.DownloadPoster(ctx, result.PosterPath); err != nil {
			s.log.Warn("Failed to download poster",
				zap.String("title", req.Title),
				zap.Error(err),
			)
		} else if len(poster) > 0 {
			if err := s.repo.Movie.UpdatePoster(ctx, movie.ID, poster); err != nil {
				s.log.Warn("Failed to store poster",
					zap.Int64("movie_id", movie.ID),
					zap.Error(err),
				)
			}
		}

		importResult.Imported++
		importResult.Movies = append(importResult.Movies, response.MovieToResponse(movie))
	}

	s.log.Info("Catalog import finished",
		zap.Int("fetched", importResult.Fetched),
		zap.Int("imported", importResult.Imported),
		zap.Int("skipped", importResult.Skipped),
	)

	return importResult, nil
}
