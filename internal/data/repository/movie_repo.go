package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"movie-favorites/internal/data/entity"
	"movie-favorites/pkg/database"
)

// MovieSearchFilter holds the optional catalog search criteria. Nil
// fields are skipped when building the WHERE clause.
type MovieSearchFilter struct {
	Title          *string
	Director       *string
	Genre          *string
	Year           *int
	YearMin        *int
	YearMax        *int
	Classification *string
	DurationMin    *int
	DurationMax    *int
}

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)
	FindByTitle(ctx context.Context, title string) (*entity.Movie, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Movie, error)
	CountAll(ctx context.Context) (int64, error)
	Search(ctx context.Context, filter MovieSearchFilter, limit, offset int) ([]*entity.Movie, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.Movie, error)
	FindPopular(ctx context.Context, limit int) ([]*entity.RankedMovie, error)
	FindByClassification(ctx context.Context, classification string, limit, offset int) ([]*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id int64) error

	UpdatePoster(ctx context.Context, id int64, poster []byte) error
	GetPoster(ctx context.Context, id int64) ([]byte, error)
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `id, titulo, director, genero, duracion, anio, clasificacion, sinopsis, fecha_creacion`

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
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
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO pelicula (titulo, director, genero, duracion, anio, clasificacion, sinopsis)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, fecha_creacion
	`

	err := r.db.QueryRow(ctx, query,
		movie.Title,
		movie.Director,
		movie.Genre,
		movie.DurationMinutes,
		movie.Year,
		movie.Classification,
		movie.Synopsis,
	).Scan(&movie.ID, &movie.CreatedAt)

	if err != nil {
		if translated := translateError(err); translated != err {
			return fmt.Errorf("create movie %q: %w", movie.Title, translated)
		}
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie %q: %w", movie.Title, err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM pelicula WHERE id = $1`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("find movie %d: %w", id, err)
	}

	return movie, nil
}

// FindByTitle looks up a movie by exact title. Used by the catalog
// importer to avoid duplicating titles fetched twice from TMDB.
func (r *movieRepository) FindByTitle(ctx context.Context, title string) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM pelicula WHERE titulo = $1 LIMIT 1`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, title))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by title",
			zap.Error(err),
			zap.String("title", title),
		)
		return nil, fmt.Errorf("find movie by title: %w", err)
	}

	return movie, nil
}

func (r *movieRepository) queryMovies(ctx context.Context, query string, args ...any) ([]*entity.Movie, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	return movies, rows.Err()
}

func (r *movieRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM pelicula ORDER BY id LIMIT $1 OFFSET $2`

	movies, err := r.queryMovies(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find all movies",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find movies: %w", err)
	}

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM pelicula`).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("count movies: %w", err)
	}

	return total, nil
}

// Search builds the WHERE clause from whichever criteria are set.
func (r *movieRepository) Search(ctx context.Context, filter MovieSearchFilter, limit, offset int) ([]*entity.Movie, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + movieColumns + ` FROM pelicula WHERE 1=1`)

	args := []any{}
	argCount := 1

	addCondition := func(clause string, value any) {
		queryBuilder.WriteString(fmt.Sprintf(" AND "+clause, argCount))
		args = append(args, value)
		argCount++
	}

	if filter.Title != nil {
		addCondition("titulo ILIKE $%d", "%"+*filter.Title+"%")
	}
	if filter.Director != nil {
		addCondition("director ILIKE $%d", "%"+*filter.Director+"%")
	}
	if filter.Genre != nil {
		addCondition("genero ILIKE $%d", "%"+*filter.Genre+"%")
	}
	if filter.Year != nil {
		addCondition("anio = $%d", *filter.Year)
	}
	if filter.YearMin != nil {
		addCondition("anio >= $%d", *filter.YearMin)
	}
	if filter.YearMax != nil {
		addCondition("anio <= $%d", *filter.YearMax)
	}
	if filter.Classification != nil {
		addCondition("clasificacion = $%d", *filter.Classification)
	}
	if filter.DurationMin != nil {
		addCondition("duracion >= $%d", *filter.DurationMin)
	}
	if filter.DurationMax != nil {
		addCondition("duracion <= $%d", *filter.DurationMax)
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	movies, err := r.queryMovies(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to search movies", zap.Error(err))
		return nil, fmt.Errorf("search movies: %w", err)
	}

	r.log.Debug("Movies searched", zap.Int("count", len(movies)))
	return movies, nil
}

func (r *movieRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM pelicula ORDER BY fecha_creacion DESC LIMIT $1`

	movies, err := r.queryMovies(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to find recent movies", zap.Error(err))
		return nil, fmt.Errorf("find recent movies: %w", err)
	}

	return movies, nil
}

// FindPopular ranks movies by favorite count, most favorited first.
// Movies never favorited are excluded.
func (r *movieRepository) FindPopular(ctx context.Context, limit int) ([]*entity.RankedMovie, error) {
	query := `
		SELECT p.id, p.titulo, COUNT(f.id) AS favoritos
		FROM pelicula p
		JOIN favorito f ON f.id_pelicula = p.id
		GROUP BY p.id, p.titulo
		ORDER BY favoritos DESC, p.id
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to find popular movies", zap.Error(err))
		return nil, fmt.Errorf("find popular movies: %w", err)
	}
	defer rows.Close()

	var ranked []*entity.RankedMovie
	for rows.Next() {
		var movie entity.RankedMovie
		if err := rows.Scan(&movie.ID, &movie.Title, &movie.FavoriteCount); err != nil {
			return nil, fmt.Errorf("scan ranked movie: %w", err)
		}
		ranked = append(ranked, &movie)
	}

	return ranked, rows.Err()
}

func (r *movieRepository) FindByClassification(ctx context.Context, classification string, limit, offset int) ([]*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM pelicula WHERE clasificacion = $1 ORDER BY id LIMIT $2 OFFSET $3`

	movies, err := r.queryMovies(ctx, query, classification, limit, offset)
	if err != nil {
		r.log.Error("Failed to find movies by classification",
			zap.Error(err),
			zap.String("classification", classification),
		)
		return nil, fmt.Errorf("find movies by classification: %w", err)
	}

	return movies, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE pelicula
		SET titulo = $2, director = $3, genero = $4, duracion = $5,
		    anio = $6, clasificacion = $7, sinopsis = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Director,
		movie.Genre,
		movie.DurationMinutes,
		movie.Year,
		movie.Classification,
		movie.Synopsis,
	)

	if err != nil {
		if translated := translateError(err); translated != err {
			return fmt.Errorf("update movie %d: %w", movie.ID, translated)
		}
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.Int64("movie_id", movie.ID),
		)
		return fmt.Errorf("update movie %d: %w", movie.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update movie %d: %w", movie.ID, ErrNotFound)
	}

	return nil
}

// Delete removes a movie and, via ON DELETE CASCADE, every favorite
// pointing at it.
func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM pelicula WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("delete movie %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete movie %d: %w", id, ErrNotFound)
	}

	r.log.Info("Movie deleted", zap.Int64("movie_id", id))
	return nil
}

func (r *movieRepository) UpdatePoster(ctx context.Context, id int64, poster []byte) error {
	result, err := r.db.Exec(ctx, `UPDATE pelicula SET poster = $2 WHERE id = $1`, id, poster)
	if err != nil {
		r.log.Error("Failed to update poster",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("update poster %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update poster %d: %w", id, ErrNotFound)
	}

	return nil
}

func (r *movieRepository) GetPoster(ctx context.Context, id int64) ([]byte, error) {
	var poster []byte
	err := r.db.QueryRow(ctx, `SELECT poster FROM pelicula WHERE id = $1`, id).Scan(&poster)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get poster %d: %w", id, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to get poster",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("get poster %d: %w", id, err)
	}

	return poster, nil
}
