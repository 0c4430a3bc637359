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

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetUsers handles GET /api/users
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	users, err := h.service.GetUsers(r.Context(), req)
	if err != nil {
		writeServiceError(h.log, w, err, "get users")
		return
	}

	utils.ResponseSuccess(w, "success", users)
}

// GetUserByID handles GET /api/users/{id}
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.ParseInt64(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user ID", nil)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		writeServiceError(h.log, w, err, "get user by ID")
		return
	}

	utils.ResponseSuccess(w, "success", user)
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req request.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	user, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		writeServiceError(h.log, w, err, "create user")
		return
	}

	utils.ResponseCreated(w, "User created successfully", user)
}

// UpdateUser handles PUT /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.ParseInt64(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user ID", nil)
		return
	}

	var req request.UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	user, err := h.service.UpdateUser(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(h.log, w, err, "update user")
		return
	}

	utils.ResponseSuccess(w, "User updated successfully", user)
}

// DeleteUser handles DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.ParseInt64(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user ID", nil)
		return
	}

	if err := h.service.DeleteUser(r.Context(), userID); err != nil {
		writeServiceError(h.log, w, err, "delete user")
		return
	}

	utils.ResponseNoContent(w)
}
