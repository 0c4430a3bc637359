package response

import (
	"time"

	"movie-favorites/internal/data/entity"
)

type FavoriteResponse struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"user_id"`
	MovieID  int64     `json:"movie_id"`
	MarkedAt time.Time `json:"marked_at"`
}

// FavoriteDetailResponse is the joined shape: favorite plus the owning
// user's name and the movie's title.
type FavoriteDetailResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	UserName   string    `json:"user_name"`
	MovieID    int64     `json:"movie_id"`
	MovieTitle string    `json:"movie_title"`
	MarkedAt   time.Time `json:"marked_at"`
}

type FavoriteCheckResponse struct {
	UserID    int64 `json:"user_id"`
	MovieID   int64 `json:"movie_id"`
	Favorited bool  `json:"favorited"`
}

type FavoriteStatsResponse struct {
	TotalFavorites int64                `json:"total_favorites"`
	TopUser        *RankedUserResponse  `json:"top_user,omitempty"`
	TopMovie       *RankedMovieResponse `json:"top_movie,omitempty"`
	TopGenre       *RankedGenreResponse `json:"top_genre,omitempty"`
}

type RankedUserResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FavoriteCount int64  `json:"favorite_count"`
}

type RankedGenreResponse struct {
	Genre         string `json:"genre"`
	FavoriteCount int64  `json:"favorite_count"`
}

func FavoriteToResponse(favorite *entity.Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:       favorite.ID,
		UserID:   favorite.UserID,
		MovieID:  favorite.MovieID,
		MarkedAt: favorite.MarkedAt,
	}
}

func FavoriteDetailToResponse(detail *entity.FavoriteDetail) FavoriteDetailResponse {
	return FavoriteDetailResponse{
		ID:         detail.FavoriteID,
		UserID:     detail.UserID,
		UserName:   detail.UserName,
		MovieID:    detail.MovieID,
		MovieTitle: detail.MovieTitle,
		MarkedAt:   detail.MarkedAt,
	}
}

func FavoriteDetailsToResponse(details []*entity.FavoriteDetail) []FavoriteDetailResponse {
	responses := make([]FavoriteDetailResponse, len(details))
	for i, detail := range details {
		responses[i] = FavoriteDetailToResponse(detail)
	}
	return responses
}

func FavoriteStatsToResponse(stats *entity.FavoriteStats) FavoriteStatsResponse {
	resp := FavoriteStatsResponse{TotalFavorites: stats.TotalFavorites}

	if stats.TopUser != nil {
		resp.TopUser = &RankedUserResponse{
			ID:            stats.TopUser.ID,
			Name:          stats.TopUser.Name,
			FavoriteCount: stats.TopUser.FavoriteCount,
		}
	}
	if stats.TopMovie != nil {
		ranked := RankedMovieToResponse(stats.TopMovie)
		resp.TopMovie = &ranked
	}
	if stats.TopGenre != nil {
		resp.TopGenre = &RankedGenreResponse{
			Genre:         stats.TopGenre.Genre,
			FavoriteCount: stats.TopGenre.FavoriteCount,
		}
	}

	return resp
}
