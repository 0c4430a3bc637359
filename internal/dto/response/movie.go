package response

import (
	"time"

	"movie-favorites/internal/data/entity"
)

type MovieResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Director        string    `json:"director"`
	Genre           string    `json:"genre"`
	DurationMinutes int       `json:"duration_minutes"`
	Year            int       `json:"year"`
	Classification  string    `json:"classification"`
	Synopsis        *string   `json:"synopsis,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type RankedMovieResponse struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	FavoriteCount int64  `json:"favorite_count"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:              movie.ID,
		Title:           movie.Title,
		Director:        movie.Director,
		Genre:           movie.Genre,
		DurationMinutes: movie.DurationMinutes,
		Year:            movie.Year,
		Classification:  movie.Classification,
		Synopsis:        movie.Synopsis,
		CreatedAt:       movie.CreatedAt,
	}
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	responses := make([]MovieResponse, len(movies))
	for i, movie := range movies {
		responses[i] = MovieToResponse(movie)
	}
	return responses
}

func RankedMovieToResponse(movie *entity.RankedMovie) RankedMovieResponse {
	return RankedMovieResponse{
		ID:            movie.ID,
		Title:         movie.Title,
		FavoriteCount: movie.FavoriteCount,
	}
}
