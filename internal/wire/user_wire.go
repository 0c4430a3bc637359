package wire

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"movie-favorites/internal/adaptor"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	cache func(http.Handler) http.Handler,
) {
	r.Route("/api/users", func(r chi.Router) {
		r.With(cache).Get("/", userHandler.GetUsers)
		r.Get("/{id}", userHandler.GetUserByID)
		r.Post("/", userHandler.CreateUser)
		r.Put("/{id}", userHandler.UpdateUser)
		r.Delete("/{id}", userHandler.DeleteUser)
	})
}
