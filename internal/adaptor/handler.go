package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"movie-favorites/internal/data/repository"
	"movie-favorites/internal/usecase"
	"movie-favorites/pkg/utils"
)

type Handler struct {
	User     *UserHandler
	Movie    *MovieHandler
	Favorite *FavoriteHandler
	Catalog  *CatalogHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		User:     NewUserHandler(service.User, log),
		Movie:    NewMovieHandler(service.Movie, log),
		Favorite: NewFavoriteHandler(service.Favorite, log),
		Catalog:  NewCatalogHandler(service.Catalog, log),
	}
}

// writeServiceError maps service errors onto the response envelope.
// Repository sentinels drive the status code: duplicates and dangling
// references are conflicts, missing rows are 404s, rejected input is a
// 400. Anything unrecognized is a 500 and gets logged at error level.
func writeServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, repository.ErrDuplicate):
		log.Warn(operation+" failed - duplicate", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), map[string]string{"code": "constraint_violation"})

	case errors.Is(err, repository.ErrForeignKey):
		log.Warn(operation+" failed - dangling reference", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), map[string]string{"code": "reference_error"})

	case errors.Is(err, repository.ErrCheckFailed):
		log.Warn(operation+" failed - check constraint", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error(), map[string]string{"code": "constraint_violation"})

	case strings.Contains(err.Error(), "validation failed"):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrTMDBDisabled):
		log.Warn(operation + " failed - TMDB disabled")
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
