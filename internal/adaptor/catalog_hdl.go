package adaptor

import (
	"net/http"

	"go.uber.org/zap"

	"movie-favorites/internal/usecase"
	"movie-favorites/pkg/utils"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ImportPopular handles GET /api/movies/tmdb/popular
func (h *CatalogHandler) ImportPopular(w http.ResponseWriter, r *http.Request) {
	page := utils.ParseInt(r.URL.Query().Get("page"), 1)

	result, err := h.service.ImportPopular(r.Context(), page)
	if err != nil {
		writeServiceError(h.log, w, err, "import popular movies")
		return
	}

	utils.ResponseSuccess(w, "Import finished", result)
}

// ImportSearch handles GET /api/movies/tmdb/search?q=
func (h *CatalogHandler) ImportSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := query.Get("q")
	if q == "" {
		utils.ResponseBadRequest(w, "Query parameter 'q' is required", nil)
		return
	}
	page := utils.ParseInt(query.Get("page"), 1)

	result, err := h.service.ImportSearch(r.Context(), q, page)
	if err != nil {
		writeServiceError(h.log, w, err, "import movies from search")
		return
	}

	utils.ResponseSuccess(w, "Import finished", result)
}
