package wire

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"movie-favorites/internal/adaptor"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	catalogHandler *adaptor.CatalogHandler,
	cache func(http.Handler) http.Handler,
) {
	r.Route("/api/movies", func(r chi.Router) {
		// Catalog reads; the heavier list endpoints sit behind the cache
		r.With(cache).Get("/", movieHandler.GetMovies)
		r.Get("/search", movieHandler.SearchMovies)
		r.With(cache).Get("/recent", movieHandler.GetRecentMovies)
		r.With(cache).Get("/popular", movieHandler.GetPopularMovies)
		r.Get("/classification/{code}", movieHandler.GetMoviesByClassification)
		r.Get("/{id}", movieHandler.GetMovieByID)
		r.Get("/{id}/poster", movieHandler.GetPoster)

		// Catalog writes
		r.Post("/", movieHandler.CreateMovie)
		r.Put("/{id}", movieHandler.UpdateMovie)
		r.Delete("/{id}", movieHandler.DeleteMovie)
		r.Post("/{id}/poster", movieHandler.UploadPoster)

		// TMDB imports
		r.Get("/tmdb/popular", catalogHandler.ImportPopular)
		r.Get("/tmdb/search", catalogHandler.ImportSearch)
	})
}
