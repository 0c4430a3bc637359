package adaptor

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"movie-favorites/internal/dto/request"
	"movie-favorites/internal/usecase"
	"movie-favorites/pkg/utils"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	movies, err := h.service.GetMovies(r.Context(), req)
	if err != nil {
		writeServiceError(h.log, w, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetMovieByID handles GET /api/movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movieID, ok := utils.ParseInt64(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid movie ID", nil)
		return
	}

	movie, err := h.service.GetMovieByID(r.Context(), movieID)
	if err != nil {
		writeServiceError(h.log, w, err, "get movie by ID")
		return
	}

	utils.ResponseSuccess(w, "success", movie)
}

// CreateMovie handles POST /api/movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		writeServiceError(h.log, w, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "Movie created successfully", movie)
}

// UpdateMovie handles PUT /api/movies/{id}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := utils.ParseInt64(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid movie ID", nil)
		return
	}

	var req request.MovieUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	movie, err := h.service.UpdateMovie(r.Context(), movieID, &req)
	if err != nil {
		writeServiceError(h.log, w, err, "update movie")
		return
	}

	utils.ResponseSuccess(w, "Movie updated successfully", movie)
}

// DeleteMovie handles DELETE /api/movies/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := utils.ParseInt64(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid movie ID", nil)
		return
	}

	if err := h.service.DeleteMovie(r.Context(), movieID); err != nil {
		writeServiceError(h.log, w, err, "delete movie")
		return
	}

	utils.ResponseNoContent(w)
}

// SearchMovies handles GET /api/movies/search
func (h *MovieHandler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.MovieSearchRequest{
		Title:          optionalString(query.Get("title")),
		Director:       optionalString(query.Get("director")),
		Genre:          optionalString(query.Get("genre")),
		Year:           optionalInt(query.Get("year")),
		YearMin:        optionalInt(query.Get("year_min")),
		YearMax:        optionalInt(query.Get("year_max")),
		Classification: optionalString(query.Get("classification")),
		DurationMin:    optionalInt(query.Get("duration_min")),
		DurationMax:    optionalInt(query.Get("duration_max")),
	}
	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	movies, err := h.service.SearchMovies(r.Context(), req, page)
	if err != nil {
		writeServiceError(h.log, w, err, "search movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetRecentMovies handles GET /api/movies/recent
func (h *MovieHandler) GetRecentMovies(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 10)

	movies, err := h.service.GetRecentMovies(r.Context(), limit)
	if err != nil {
		writeServiceError(h.log, w, err, "get recent movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetPopularMovies handles GET /api/movies/popular
func (h *MovieHandler) GetPopularMovies(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 10)

	movies, err := h.service.GetPopularMovies(r.Context(), limit)
	if err != nil {
		writeServiceError(h.log, w, err, "get popular movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetMoviesByClassification handles GET /api/movies/classification/{code}
func (h *MovieHandler) GetMoviesByClassification(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		utils.ResponseBadRequest(w, "Classification code is required", nil)
		return
	}

	query := r.URL.Query()
	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	movies, err := h.service.GetMoviesByClassification(r.Context(), code, page)
	if err != nil {
		writeServiceError(h.log, w, err, "get movies by classification")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// UploadPoster handles POST /api/movies/{id}/poster (multipart field "poster")
func (h *MovieHandler) UploadPoster(w http.ResponseWriter, r *http.Request) {
	movieID, ok := utils.ParseInt64(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid movie ID", nil)
		return
	}

	if err := r.ParseMultipartForm(maxPosterMemory); err != nil {
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, _, err := r.FormFile("poster")
	if err != nil {
		utils.ResponseBadRequest(w, "Poster file is required", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.Error("Failed to read poster upload", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	if err := h.service.UploadPoster(r.Context(), movieID, data); err != nil {
		writeServiceError(h.log, w, err, "upload poster")
		return
	}

	utils.ResponseSuccess(w, "Poster uploaded successfully", nil)
}

// GetPoster handles GET /api/movies/{id}/poster and serves the raw image.
func (h *MovieHandler) GetPoster(w http.ResponseWriter, r *http.Request) {
	movieID, ok := utils.ParseInt64(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid movie ID", nil)
		return
	}

	poster, err := h.service.GetPoster(r.Context(), movieID)
	if err != nil {
		writeServiceError(h.log, w, err, "get poster")
		return
	}

	w.Header().Set("Content-Type", poster.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(poster.Data)
}

// maxPosterMemory bounds the in-memory part of multipart parsing.
const maxPosterMemory = 8 << 20

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func optionalInt(value string) *int {
	if value == "" {
		return nil
	}
	parsed := utils.ParseInt(value, -1)
	if parsed < 0 {
		return nil
	}
	return &parsed
}
