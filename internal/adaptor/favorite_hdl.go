package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"movie-favorites/internal/dto/request"
	"movie-favorites/internal/usecase"
	"movie-favorites/pkg/utils"
)

type FavoriteHandler struct {
	service usecase.FavoriteService
	log     *zap.Logger
}

func NewFavoriteHandler(service usecase.FavoriteService, log *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
		log:     log.With(zap.String("handler", "favorite")),
	}
}

// GetFavorites handles GET /api/favorites
func (h *FavoriteHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	favorites, err := h.service.GetFavorites(r.Context(), req)
	if err != nil {
		writeServiceError(h.log, w, err, "get favorites")
		return
	}

	utils.ResponseSuccess(w, "success", favorites)
}

// GetFavoritesDetailed handles GET /api/favorites/detailed
func (h *FavoriteHandler) GetFavoritesDetailed(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.GetFavoritesDetailed(r.Context())
	if err != nil {
		writeServiceError(h.log, w, err, "get detailed favorites")
		return
	}

	utils.ResponseSuccess(w, "success", details)
}

// GetFavoriteByID handles GET /api/favorites/{id}
func (h *FavoriteHandler) GetFavoriteByID(w http.ResponseWriter, r *http.Request) {
	favoriteID, ok := utils.ParseInt64(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid favorite ID", nil)
		return
	}

	favorite, err := h.service.GetFavoriteByID(r.Context(), favoriteID)
	if err != nil {
		writeServiceError(h.log, w, err, "get favorite by ID")
		return
	}

	utils.ResponseSuccess(w, "success", favorite)
}

// CreateFavorite handles POST /api/favorites
func (h *FavoriteHandler) CreateFavorite(w http.ResponseWriter, r *http.Request) {
	var req request.FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	favorite, err := h.service.CreateFavorite(r.Context(), &req)
	if err != nil {
		writeServiceError(h.log, w, err, "create favorite")
		return
	}

	utils.ResponseCreated(w, "Favorite created successfully", favorite)
}

// DeleteFavorite handles DELETE /api/favorites/{id}
func (h *FavoriteHandler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	favoriteID, ok := utils.ParseInt64(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid favorite ID", nil)
		return
	}

	if err := h.service.DeleteFavorite(r.Context(), favoriteID); err != nil {
		writeServiceError(h.log, w, err, "delete favorite")
		return
	}

	utils.ResponseNoContent(w)
}

// GetFavoritesByUser handles GET /api/favorites/user/{userID}
func (h *FavoriteHandler) GetFavoritesByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.ParseInt64(chi.URLParam(r, "userID"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user ID", nil)
		return
	}

	details, err := h.service.GetFavoritesByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(h.log, w, err, "get favorites by user")
		return
	}

	utils.ResponseSuccess(w, "success", details)
}

// GetFavoritesByMovie handles GET /api/favorites/movie/{movieID}
func (h *FavoriteHandler) GetFavoritesByMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := utils.ParseInt64(chi.URLParam(r, "movieID"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid movie ID", nil)
		return
	}

	details, err := h.service.GetFavoritesByMovie(r.Context(), movieID)
	if err != nil {
		writeServiceError(h.log, w, err, "get favorites by movie")
		return
	}

	utils.ResponseSuccess(w, "success", details)
}

// CheckFavorite handles GET /api/favorites/check/{userID}/{movieID}
func (h *FavoriteHandler) CheckFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.ParseInt64(chi.URLParam(r, "userID"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user ID", nil)
		return
	}

	movieID, ok := utils.ParseInt64(chi.URLParam(r, "movieID"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid movie ID", nil)
		return
	}

	check, err := h.service.CheckFavorite(r.Context(), userID, movieID)
	if err != nil {
		writeServiceError(h.log, w, err, "check favorite")
		return
	}

	utils.ResponseSuccess(w, "success", check)
}

// DeleteAllByUser handles DELETE /api/favorites/user/{userID}/all
func (h *FavoriteHandler) DeleteAllByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.ParseInt64(chi.URLParam(r, "userID"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user ID", nil)
		return
	}

	deleted, err := h.service.DeleteAllByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(h.log, w, err, "delete favorites by user")
		return
	}

	utils.ResponseSuccess(w, "Favorites deleted successfully", map[string]int64{"deleted": deleted})
}

// GetStats handles GET /api/favorites/stats
func (h *FavoriteHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		writeServiceError(h.log, w, err, "get favorite stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// GetRecommendations handles GET /api/favorites/recommendations/{userID}
func (h *FavoriteHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.ParseInt64(chi.URLParam(r, "userID"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user ID", nil)
		return
	}

	limit := utils.ParseInt(r.URL.Query().Get("limit"), 10)

	movies, err := h.service.GetRecommendations(r.Context(), userID, limit)
	if err != nil {
		writeServiceError(h.log, w, err, "get recommendations")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}
