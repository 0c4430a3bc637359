package usecase

import (
	"go.uber.org/zap"

	"movie-favorites/internal/adapter/tmdb"
	"movie-favorites/internal/data/repository"
	"movie-favorites/internal/queue"
)

type Service struct {
	User     UserService
	Movie    MovieService
	Favorite FavoriteService
	Catalog  CatalogService
}

func NewService(repo *repository.Repository, tmdbClient *tmdb.Client, publisher *queue.Publisher, log *zap.Logger) *Service {
	return &Service{
		User:     NewUserService(repo, log),
		Movie:    NewMovieService(repo, publisher, log),
		Favorite: NewFavoriteService(repo, publisher, log),
		Catalog:  NewCatalogService(repo, tmdbClient, log),
	}
}
