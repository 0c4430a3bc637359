package usecase

import (
	"context"
	"fmt"
	"testing"

	"movie-favorites/internal/data/entity"
	"movie-favorites/internal/data/repository"
)

func seedUser(t *testing.T, repo *repository.Repository, name, email string) *entity.User {
	t.Helper()
	user := &entity.User{Name: name, Email: email}
	if err := repo.User.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func seedMovie(t *testing.T, repo *repository.Repository, title string) *entity.Movie {
	t.Helper()
	movie := &entity.Movie{
		Title:           title,
		Director:        "Francis Ford Coppola",
		Genre:           "Drama, Crimen",
		DurationMinutes: 175,
		Year:            1972,
		Classification:  "R",
	}
	if err := repo.Movie.Create(context.Background(), movie); err != nil {
		t.Fatalf("seed movie %s: %v", title, err)
	}
	return movie
}

func seedFavorite(t *testing.T, repo *repository.Repository, userID, movieID int64) *entity.Favorite {
	t.Helper()
	favorite := &entity.Favorite{UserID: userID, MovieID: movieID}
	if err := repo.Favorite.Create(context.Background(), favorite); err != nil {
		t.Fatalf("seed favorite %d/%d: %v", userID, movieID, err)
	}
	return favorite
}

// seedCatalog mirrors the shipped seed migration: 4 users, 5 movies
// and 9 favorites.
func seedCatalog(t *testing.T, repo *repository.Repository) {
	t.Helper()
	var users []*entity.User
	for i := 1; i <= 4; i++ {
		users = append(users, seedUser(t, repo,
			fmt.Sprintf("Usuario %d", i),
			fmt.Sprintf("usuario%d@email.com", i),
		))
	}
	var movies []*entity.Movie
	for i := 1; i <= 5; i++ {
		movies = append(movies, seedMovie(t, repo, fmt.Sprintf("Película %d", i)))
	}

	pairs := [][2]int{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 3},
		{2, 1}, {2, 4},
		{3, 0}, {3, 4},
	}
	for _, pair := range pairs {
		seedFavorite(t, repo, users[pair[0]].ID, movies[pair[1]].ID)
	}
}
