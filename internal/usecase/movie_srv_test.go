package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"movie-favorites/internal/data/repository"
	"movie-favorites/internal/dto/request"
)

func newMovieServiceForTest(t *testing.T) (MovieService, *repository.Repository) {
	t.Helper()
	repo, _ := newMemRepository()
	return NewMovieService(repo, nil, zap.NewNop()), repo
}

func validMovieRequest() request.MovieRequest {
	synopsis := "La historia de la familia Corleone."
	return request.MovieRequest{
		Title:           "El Padrino",
		Director:        "Francis Ford Coppola",
		Genre:           "Drama, Crimen",
		DurationMinutes: 175,
		Year:            1972,
		Classification:  "R",
		Synopsis:        &synopsis,
	}
}

func TestCreateMovieAndGet(t *testing.T) {
	service, _ := newMovieServiceForTest(t)
	ctx := context.Background()

	req := validMovieRequest()
	created, err := service.CreateMovie(ctx, &req)
	if err != nil {
		t.Fatalf("CreateMovie: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected generated ID")
	}

	fetched, err := service.GetMovieByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetMovieByID: %v", err)
	}
	if fetched.Title != "El Padrino" || fetched.Year != 1972 {
		t.Errorf("unexpected movie %+v", fetched)
	}
}

func TestCreateMovieYearBounds(t *testing.T) {
	service, _ := newMovieServiceForTest(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		year    int
		wantErr bool
	}{
		{"below lower bound", 1887, true},
		{"lower bound", 1888, false},
		{"upper bound", 2100, false},
		{"above upper bound", 2101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validMovieRequest()
			req.Title = "Año " + tt.name
			req.Year = tt.year

			_, err := service.CreateMovie(ctx, &req)
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "validation failed") {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateMovie: %v", err)
			}
		})
	}
}

func TestCreateMovieValidation(t *testing.T) {
	service, _ := newMovieServiceForTest(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*request.MovieRequest)
	}{
		{"missing title", func(r *request.MovieRequest) { r.Title = "" }},
		{"missing director", func(r *request.MovieRequest) { r.Director = "" }},
		{"zero duration", func(r *request.MovieRequest) { r.DurationMinutes = 0 }},
		{"overlong duration", func(r *request.MovieRequest) { r.DurationMinutes = 601 }},
		{"unknown classification", func(r *request.MovieRequest) { r.Classification = "XX" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validMovieRequest()
			tt.mutate(&req)

			_, err := service.CreateMovie(ctx, &req)
			if err == nil || !strings.Contains(err.Error(), "validation failed") {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestSearchMoviesMutualExclusion(t *testing.T) {
	service, _ := newMovieServiceForTest(t)
	ctx := context.Background()
	page := &request.PaginatedRequest{Page: 1, PerPage: 10}

	year, yearMin, yearMax := 1972, 1970, 1960

	_, err := service.SearchMovies(ctx, &request.MovieSearchRequest{Year: &year, YearMin: &yearMin}, page)
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Fatalf("expected mutual exclusion error, got %v", err)
	}

	_, err = service.SearchMovies(ctx, &request.MovieSearchRequest{YearMin: &yearMin, YearMax: &yearMax}, page)
	if err == nil || !strings.Contains(err.Error(), "year_min greater than year_max") {
		t.Fatalf("expected range error, got %v", err)
	}
}

func TestSearchMoviesByTitle(t *testing.T) {
	repo, _ := newMemRepository()
	service := NewMovieService(repo, nil, zap.NewNop())
	ctx := context.Background()

	seedMovie(t, repo, "El Padrino")
	seedMovie(t, repo, "El Padrino II")
	seedMovie(t, repo, "Casablanca")

	title := "padrino"
	movies, err := service.SearchMovies(ctx, &request.MovieSearchRequest{Title: &title}, &request.PaginatedRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("SearchMovies: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(movies))
	}
}

func TestGetPopularMoviesRanking(t *testing.T) {
	repo, _ := newMemRepository()
	service := NewMovieService(repo, nil, zap.NewNop())
	ctx := context.Background()

	userA := seedUser(t, repo, "Ana", "ana@email.com")
	userB := seedUser(t, repo, "Luis", "luis@email.com")
	first := seedMovie(t, repo, "El Padrino")
	second := seedMovie(t, repo, "Casablanca")

	seedFavorite(t, repo, userA.ID, first.ID)
	seedFavorite(t, repo, userB.ID, first.ID)
	seedFavorite(t, repo, userA.ID, second.ID)

	ranked, err := service.GetPopularMovies(ctx, 10)
	if err != nil {
		t.Fatalf("GetPopularMovies: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked movies, got %d", len(ranked))
	}
	if ranked[0].Title != "El Padrino" || ranked[0].FavoriteCount != 2 {
		t.Errorf("unexpected top movie %+v", ranked[0])
	}
}

func TestUploadPosterRejectsNonImage(t *testing.T) {
	repo, _ := newMemRepository()
	service := NewMovieService(repo, nil, zap.NewNop())
	ctx := context.Background()

	movie := seedMovie(t, repo, "El Padrino")

	err := service.UploadPoster(ctx, movie.ID, []byte("definitely not an image"))
	if err == nil || !strings.Contains(err.Error(), "unsupported poster type") {
		t.Fatalf("expected content-type rejection, got %v", err)
	}

	if err := service.UploadPoster(ctx, movie.ID, nil); err == nil {
		t.Fatal("expected empty poster rejection")
	}
}

func TestUploadAndGetPoster(t *testing.T) {
	repo, _ := newMemRepository()
	service := NewMovieService(repo, nil, zap.NewNop())
	ctx := context.Background()

	movie := seedMovie(t, repo, "El Padrino")

	// Minimal valid PNG header followed by padding
	png := append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)
	if err := service.UploadPoster(ctx, movie.ID, png); err != nil {
		t.Fatalf("UploadPoster: %v", err)
	}

	poster, err := service.GetPoster(ctx, movie.ID)
	if err != nil {
		t.Fatalf("GetPoster: %v", err)
	}
	if poster.ContentType != "image/png" {
		t.Errorf("expected image/png, got %s", poster.ContentType)
	}
	if len(poster.Data) != len(png) {
		t.Errorf("poster bytes changed: %d != %d", len(poster.Data), len(png))
	}
}

func TestGetPosterMissing(t *testing.T) {
	repo, _ := newMemRepository()
	service := NewMovieService(repo, nil, zap.NewNop())
	ctx := context.Background()

	movie := seedMovie(t, repo, "El Padrino")

	_, err := service.GetPoster(ctx, movie.ID)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for movie without poster, got %v", err)
	}
}
