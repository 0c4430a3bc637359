package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"movie-favorites/internal/data/entity"
	"movie-favorites/pkg/database"
)

type FavoriteRepository interface {
	Create(ctx context.Context, favorite *entity.Favorite) error
	FindByID(ctx context.Context, id int64) (*entity.Favorite, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Favorite, error)
	CountAll(ctx context.Context) (int64, error)
	FindAllDetailed(ctx context.Context) ([]*entity.FavoriteDetail, error)
	FindDetailByID(ctx context.Context, id int64) (*entity.FavoriteDetail, error)
	FindByUser(ctx context.Context, userID int64) ([]*entity.FavoriteDetail, error)
	FindByMovie(ctx context.Context, movieID int64) ([]*entity.FavoriteDetail, error)
	Exists(ctx context.Context, userID, movieID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	DeleteAllByUser(ctx context.Context, userID int64) (int64, error)
	Stats(ctx context.Context) (*entity.FavoriteStats, error)
	FindRecommendations(ctx context.Context, userID int64, limit int) ([]*entity.Movie, error)
}

type favoriteRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFavoriteRepository(db database.PgxIface, log *zap.Logger) FavoriteRepository {
	return &favoriteRepository{
		db:  db,
		log: log.With(zap.String("repository", "favorite")),
	}
}

// Create inserts the favorite in a single statement. Uniqueness of the
// (user, movie) pair and both foreign keys are checked by the database
// as part of the insert, so concurrent duplicates cannot slip through.
func (r *favoriteRepository) Create(ctx context.Context, favorite *entity.Favorite) error {
	query := `
		INSERT INTO favorito (id_usuario, id_pelicula)
		VALUES ($1, $2)
		RETURNING id, fecha_marcado
	`

	err := r.db.QueryRow(ctx, query, favorite.UserID, favorite.MovieID).
		Scan(&favorite.ID, &favorite.MarkedAt)

	if err != nil {
		if translated := translateError(err); translated != err {
			return fmt.Errorf("create favorite (%d,%d): %w",
				favorite.UserID, favorite.MovieID, translated)
		}
		r.log.Error("Failed to create favorite",
			zap.Error(err),
			zap.Int64("user_id", favorite.UserID),
			zap.Int64("movie_id", favorite.MovieID),
		)
		return fmt.Errorf("create favorite (%d,%d): %w",
			favorite.UserID, favorite.MovieID, err)
	}

	return nil
}

func (r *favoriteRepository) FindByID(ctx context.Context, id int64) (*entity.Favorite, error) {
	query := `
		SELECT id, id_usuario, id_pelicula, fecha_marcado
		FROM favorito
		WHERE id = $1
	`

	var favorite entity.Favorite
	err := r.db.QueryRow(ctx, query, id).Scan(
		&favorite.ID,
		&favorite.UserID,
		&favorite.MovieID,
		&favorite.MarkedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find favorite by ID",
			zap.Error(err),
			zap.Int64("favorite_id", id),
		)
		return nil, fmt.Errorf("find favorite %d: %w", id, err)
	}

	return &favorite, nil
}

func (r *favoriteRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Favorite, error) {
	query := `
		SELECT id, id_usuario, id_pelicula, fecha_marcado
		FROM favorito
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find all favorites",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find favorites: %w", err)
	}
	defer rows.Close()

	var favorites []*entity.Favorite
	for rows.Next() {
		var favorite entity.Favorite
		err := rows.Scan(
			&favorite.ID,
			&favorite.UserID,
			&favorite.MovieID,
			&favorite.MarkedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favorites = append(favorites, &favorite)
	}

	return favorites, rows.Err()
}

func (r *favoriteRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM favorito`).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count favorites", zap.Error(err))
		return 0, fmt.Errorf("count favorites: %w", err)
	}

	return total, nil
}

const favoriteDetailQuery = `
	SELECT f.id, f.id_usuario, u.nombre, f.id_pelicula, p.titulo, f.fecha_marcado
	FROM favorito f
	JOIN usuario u ON u.id = f.id_usuario
	JOIN pelicula p ON p.id = f.id_pelicula
`

func (r *favoriteRepository) queryDetails(ctx context.Context, query string, args ...any) ([]*entity.FavoriteDetail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []*entity.FavoriteDetail
	for rows.Next() {
		var detail entity.FavoriteDetail
		err := rows.Scan(
			&detail.FavoriteID,
			&detail.UserID,
			&detail.UserName,
			&detail.MovieID,
			&detail.MovieTitle,
			&detail.MarkedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan favorite detail: %w", err)
		}
		details = append(details, &detail)
	}

	return details, rows.Err()
}

// FindAllDetailed resolves every favorite to its user name and movie
// title. Inner joins silently drop any orphaned row, so the query never
// fails on a dangling reference.
func (r *favoriteRepository) FindAllDetailed(ctx context.Context) ([]*entity.FavoriteDetail, error) {
	details, err := r.queryDetails(ctx, favoriteDetailQuery+` ORDER BY f.id`)
	if err != nil {
		r.log.Error("Failed to find detailed favorites", zap.Error(err))
		return nil, fmt.Errorf("find detailed favorites: %w", err)
	}

	return details, nil
}

func (r *favoriteRepository) FindDetailByID(ctx context.Context, id int64) (*entity.FavoriteDetail, error) {
	details, err := r.queryDetails(ctx, favoriteDetailQuery+` WHERE f.id = $1`, id)
	if err != nil {
		r.log.Error("Failed to find favorite detail",
			zap.Error(err),
			zap.Int64("favorite_id", id),
		)
		return nil, fmt.Errorf("find favorite detail %d: %w", id, err)
	}

	if len(details) == 0 {
		return nil, nil
	}
	return details[0], nil
}

func (r *favoriteRepository) FindByUser(ctx context.Context, userID int64) ([]*entity.FavoriteDetail, error) {
	details, err := r.queryDetails(ctx, favoriteDetailQuery+` WHERE f.id_usuario = $1 ORDER BY f.id`, userID)
	if err != nil {
		r.log.Error("Failed to find favorites by user",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find favorites by user %d: %w", userID, err)
	}

	return details, nil
}

func (r *favoriteRepository) FindByMovie(ctx context.Context, movieID int64) ([]*entity.FavoriteDetail, error) {
	details, err := r.queryDetails(ctx, favoriteDetailQuery+` WHERE f.id_pelicula = $1 ORDER BY f.id`, movieID)
	if err != nil {
		r.log.Error("Failed to find favorites by movie",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find favorites by movie %d: %w", movieID, err)
	}

	return details, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, movieID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM favorito WHERE id_usuario = $1 AND id_pelicula = $2)`

	err := r.db.QueryRow(ctx, query, userID, movieID).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check favorite existence",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("movie_id", movieID),
		)
		return false, fmt.Errorf("check favorite (%d,%d): %w", userID, movieID, err)
	}

	return exists, nil
}

func (r *favoriteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM favorito WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete favorite",
			zap.Error(err),
			zap.Int64("favorite_id", id),
		)
		return fmt.Errorf("delete favorite %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete favorite %d: %w", id, ErrNotFound)
	}

	r.log.Info("Favorite deleted", zap.Int64("favorite_id", id))
	return nil
}

// DeleteAllByUser unmarks everything a user has favorited and reports
// how many rows went away.
func (r *favoriteRepository) DeleteAllByUser(ctx context.Context, userID int64) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM favorito WHERE id_usuario = $1`, userID)
	if err != nil {
		r.log.Error("Failed to delete favorites by user",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return 0, fmt.Errorf("delete favorites by user %d: %w", userID, err)
	}

	deleted := result.RowsAffected()
	r.log.Info("Favorites deleted for user",
		zap.Int64("user_id", userID),
		zap.Int64("deleted", deleted),
	)
	return deleted, nil
}

// Stats computes the platform-wide counters in four queries. The genre
// ranking splits the comma-delimited genero column so each genre counts
// individually.
func (r *favoriteRepository) Stats(ctx context.Context) (*entity.FavoriteStats, error) {
	stats := &entity.FavoriteStats{}

	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM favorito`).Scan(&stats.TotalFavorites)
	if err != nil {
		return nil, fmt.Errorf("count favorites: %w", err)
	}

	topUserQuery := `
		SELECT u.id, u.nombre, COUNT(f.id) AS favoritos
		FROM usuario u
		JOIN favorito f ON f.id_usuario = u.id
		GROUP BY u.id, u.nombre
		ORDER BY favoritos DESC, u.id
		LIMIT 1
	`
	var topUser entity.RankedUser
	err = r.db.QueryRow(ctx, topUserQuery).Scan(&topUser.ID, &topUser.Name, &topUser.FavoriteCount)
	if err == nil {
		stats.TopUser = &topUser
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("top user: %w", err)
	}

	topMovieQuery := `
		SELECT p.id, p.titulo, COUNT(f.id) AS favoritos
		FROM pelicula p
		JOIN favorito f ON f.id_pelicula = p.id
		GROUP BY p.id, p.titulo
		ORDER BY favoritos DESC, p.id
		LIMIT 1
	`
	var topMovie entity.RankedMovie
	err = r.db.QueryRow(ctx, topMovieQuery).Scan(&topMovie.ID, &topMovie.Title, &topMovie.FavoriteCount)
	if err == nil {
		stats.TopMovie = &topMovie
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("top movie: %w", err)
	}

	topGenreQuery := `
		SELECT TRIM(g) AS genero, COUNT(*) AS favoritos
		FROM favorito f
		JOIN pelicula p ON p.id = f.id_pelicula,
		     unnest(string_to_array(p.genero, ',')) AS g
		GROUP BY TRIM(g)
		ORDER BY favoritos DESC, genero
		LIMIT 1
	`
	var topGenre entity.RankedGenre
	err = r.db.QueryRow(ctx, topGenreQuery).Scan(&topGenre.Genre, &topGenre.FavoriteCount)
	if err == nil {
		stats.TopGenre = &topGenre
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("top genre: %w", err)
	}

	return stats, nil
}

// FindRecommendations suggests movies sharing at least one genre with
// the user's favorites, excluding movies already favorited.
func (r *favoriteRepository) FindRecommendations(ctx context.Context, userID int64, limit int) ([]*entity.Movie, error) {
	query := `
		WITH generos_favoritos AS (
			SELECT DISTINCT TRIM(g) AS genero
			FROM favorito f
			JOIN pelicula p ON p.id = f.id_pelicula,
			     unnest(string_to_array(p.genero, ',')) AS g
			WHERE f.id_usuario = $1
		)
		SELECT DISTINCT p.id, p.titulo, p.director, p.genero, p.duracion,
		       p.anio, p.clasificacion, p.sinopsis, p.fecha_creacion
		FROM pelicula p,
		     unnest(string_to_array(p.genero, ',')) AS g
		WHERE TRIM(g) IN (SELECT genero FROM generos_favoritos)
		  AND p.id NOT IN (SELECT id_pelicula FROM favorito WHERE id_usuario = $1)
		ORDER BY p.id
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		r.log.Error("Failed to find recommendations",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find recommendations for user %d: %w", userID, err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Director,
			&movie.Genre,
			&movie.DurationMinutes,
			&movie.Year,
			&movie.Classification,
			&movie.Synopsis,
			&movie.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		movies = append(movies, &movie)
	}

	return movies, rows.Err()
}
