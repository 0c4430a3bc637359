package repository

import (
	"go.uber.org/zap"

	"movie-favorites/pkg/database"
)

type Repository struct {
	User     UserRepository
	Movie    MovieRepository
	Favorite FavoriteRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Movie:    NewMovieRepository(db, log),
		Favorite: NewFavoriteRepository(db, log),
	}
}
