package entity

import "time"

// Favorite is the join entity between users and movies. The
// (UserID, MovieID) pair is unique at the storage layer.
type Favorite struct {
	ID       int64     `db:"id"`
	UserID   int64     `db:"id_usuario"`
	MovieID  int64     `db:"id_pelicula"`
	MarkedAt time.Time `db:"fecha_marcado"`
}

// FavoriteDetail is the joined read shape: one row per favorite with
// the owning user's name and the favorited movie's title resolved.
type FavoriteDetail struct {
	FavoriteID int64     `db:"id"`
	UserID     int64     `db:"id_usuario"`
	UserName   string    `db:"nombre"`
	MovieID    int64     `db:"id_pelicula"`
	MovieTitle string    `db:"titulo"`
	MarkedAt   time.Time `db:"fecha_marcado"`
}

// FavoriteStats aggregates platform-wide favorite counters.
type FavoriteStats struct {
	TotalFavorites int64
	TopUser        *RankedUser
	TopMovie       *RankedMovie
	TopGenre       *RankedGenre
}

type RankedGenre struct {
	Genre         string
	FavoriteCount int64
}

type RankedUser struct {
	ID            int64
	Name          string
	FavoriteCount int64
}

type RankedMovie struct {
	ID            int64
	Title         string
	FavoriteCount int64
}
