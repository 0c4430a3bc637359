package wire

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"movie-favorites/internal/adaptor"
)

func wireFavorite(
	r chi.Router,
	favoriteHandler *adaptor.FavoriteHandler,
	cache func(http.Handler) http.Handler,
) {
	r.Route("/api/favorites", func(r chi.Router) {
		r.With(cache).Get("/", favoriteHandler.GetFavorites)
		r.With(cache).Get("/detailed", favoriteHandler.GetFavoritesDetailed)
		r.Get("/stats", favoriteHandler.GetStats)
		r.Get("/user/{userID}", favoriteHandler.GetFavoritesByUser)
		r.Get("/movie/{movieID}", favoriteHandler.GetFavoritesByMovie)
		r.Get("/check/{userID}/{movieID}", favoriteHandler.CheckFavorite)
		r.Get("/recommendations/{userID}", favoriteHandler.GetRecommendations)
		r.Get("/{id}", favoriteHandler.GetFavoriteByID)

		r.Post("/", favoriteHandler.CreateFavorite)
		r.Delete("/user/{userID}/all", favoriteHandler.DeleteAllByUser)
		r.Delete("/{id}", favoriteHandler.DeleteFavorite)
	})
}
