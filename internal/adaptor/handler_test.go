package adaptor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"movie-favorites/internal/data/repository"
	"movie-favorites/internal/dto/request"
	"movie-favorites/internal/dto/response"
	"movie-favorites/internal/usecase"
	"movie-favorites/pkg/utils"
)

// stubUserService returns canned values so the tests can exercise the
// HTTP surface in isolation.
type stubUserService struct {
	user *response.UserResponse
	err  error
}

func (s *stubUserService) GetUsers(context.Context, *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if s.err != nil {
		return nil, s.err
	}
	return response.NewPaginatedResponse([]response.UserResponse{*s.user}, 1, 10, 1), nil
}

func (s *stubUserService) GetUserByID(context.Context, int64) (*response.UserResponse, error) {
	return s.user, s.err
}

func (s *stubUserService) CreateUser(context.Context, *request.UserRequest) (*response.UserResponse, error) {
	return s.user, s.err
}

func (s *stubUserService) UpdateUser(context.Context, int64, *request.UserUpdateRequest) (*response.UserResponse, error) {
	return s.user, s.err
}

func (s *stubUserService) DeleteUser(context.Context, int64) error {
	return s.err
}

func newUserRouter(service usecase.UserService) *chi.Mux {
	handler := NewUserHandler(service, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/api/users", handler.GetUsers)
	r.Get("/api/users/{id}", handler.GetUserByID)
	r.Post("/api/users", handler.CreateUser)
	r.Put("/api/users/{id}", handler.UpdateUser)
	r.Delete("/api/users/{id}", handler.DeleteUser)
	return r
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var body utils.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON envelope: %v", err)
	}
	return body
}

func TestCreateUserHandler(t *testing.T) {
	service := &stubUserService{user: &response.UserResponse{ID: 1, Name: "Ana", Email: "ana@email.com"}}
	router := newUserRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"name":"Ana","email":"ana@email.com"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	if !body.Status {
		t.Error("expected status=true")
	}
}

func TestCreateUserHandlerValidation(t *testing.T) {
	router := newUserRouter(&stubUserService{})

	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{"name":`},
		{"missing email", `{"name":"Ana"}`},
		{"bad email", `{"name":"Ana","email":"nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestCreateUserHandlerDuplicate(t *testing.T) {
	service := &stubUserService{err: fmt.Errorf("create user: %w", repository.ErrDuplicate)}
	router := newUserRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"name":"Ana","email":"ana@email.com"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body.Status {
		t.Error("expected status=false")
	}
}

func TestGetUserHandlerStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", fmt.Errorf("user 42: %w", repository.ErrNotFound), http.StatusNotFound},
		{"validation", fmt.Errorf("validation failed: Name: required"), http.StatusBadRequest},
		{"unexpected", fmt.Errorf("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newUserRouter(&stubUserService{err: tt.err})

			req := httptest.NewRequest(http.MethodGet, "/api/users/42", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
		})
	}
}

func TestGetUserHandlerInvalidID(t *testing.T) {
	router := newUserRouter(&stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", rec.Code)
	}
}

func TestDeleteUserHandler(t *testing.T) {
	router := newUserRouter(&stubUserService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/users/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

type stubFavoriteService struct {
	usecase.FavoriteService

	favorite *response.FavoriteResponse
	details  []response.FavoriteDetailResponse
	err      error
}

func (s *stubFavoriteService) CreateFavorite(context.Context, *request.FavoriteRequest) (*response.FavoriteResponse, error) {
	return s.favorite, s.err
}

func (s *stubFavoriteService) GetFavoritesDetailed(context.Context) ([]response.FavoriteDetailResponse, error) {
	return s.details, s.err
}

func (s *stubFavoriteService) DeleteFavorite(context.Context, int64) error {
	return s.err
}

func newFavoriteRouter(service usecase.FavoriteService) *chi.Mux {
	handler := NewFavoriteHandler(service, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/api/favorites/detailed", handler.GetFavoritesDetailed)
	r.Post("/api/favorites", handler.CreateFavorite)
	r.Delete("/api/favorites/{id}", handler.DeleteFavorite)
	return r
}

func TestCreateFavoriteHandler(t *testing.T) {
	service := &stubFavoriteService{favorite: &response.FavoriteResponse{ID: 1, UserID: 1, MovieID: 2}}
	router := newFavoriteRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/api/favorites", strings.NewReader(`{"user_id":1,"movie_id":2}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateFavoriteHandlerErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		code int
	}{
		{"duplicate pair", `{"user_id":1,"movie_id":2}`, fmt.Errorf("create favorite: %w", repository.ErrDuplicate), http.StatusConflict},
		{"missing movie", `{"user_id":1,"movie_id":99}`, fmt.Errorf("movie 99: %w", repository.ErrNotFound), http.StatusNotFound},
		{"dangling reference", `{"user_id":1,"movie_id":2}`, fmt.Errorf("create favorite: %w", repository.ErrForeignKey), http.StatusConflict},
		{"missing ids", `{}`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newFavoriteRouter(&stubFavoriteService{err: tt.err})

			req := httptest.NewRequest(http.MethodPost, "/api/favorites", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d: %s", tt.code, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGetFavoritesDetailedHandler(t *testing.T) {
	service := &stubFavoriteService{details: []response.FavoriteDetailResponse{
		{ID: 1, UserID: 1, UserName: "María García", MovieID: 1, MovieTitle: "El Padrino"},
	}}
	router := newFavoriteRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/api/favorites/detailed", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "María García") || !strings.Contains(rec.Body.String(), "El Padrino") {
		t.Errorf("expected joined names in body: %s", rec.Body.String())
	}
}

type stubCatalogService struct {
	result *usecase.ImportResult
	err    error
}

func (s *stubCatalogService) ImportPopular(context.Context, int) (*usecase.ImportResult, error) {
	return s.result, s.err
}

func (s *stubCatalogService) ImportSearch(context.Context, string, int) (*usecase.ImportResult, error) {
	return s.result, s.err
}

func newCatalogRouter(service usecase.CatalogService) *chi.Mux {
	handler := NewCatalogHandler(service, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/api/movies/tmdb/popular", handler.ImportPopular)
	r.Get("/api/movies/tmdb/search", handler.ImportSearch)
	return r
}

func TestImportPopularHandler(t *testing.T) {
	service := &stubCatalogService{result: &usecase.ImportResult{Fetched: 2, Imported: 1, Skipped: 1}}
	router := newCatalogRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/api/movies/tmdb/popular", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestImportDisabledHandler(t *testing.T) {
	router := newCatalogRouter(&stubCatalogService{err: usecase.ErrTMDBDisabled})

	req := httptest.NewRequest(http.MethodGet, "/api/movies/tmdb/popular", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when TMDB is disabled, got %d", rec.Code)
	}
}

func TestImportSearchHandlerRequiresQuery(t *testing.T) {
	router := newCatalogRouter(&stubCatalogService{result: &usecase.ImportResult{}})

	req := httptest.NewRequest(http.MethodGet, "/api/movies/tmdb/search", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without q, got %d", rec.Code)
	}
}
