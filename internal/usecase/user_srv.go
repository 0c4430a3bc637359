package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"movie-favorites/internal/data/entity"
	"movie-favorites/internal/data/repository"
	"movie-favorites/internal/dto/request"
	"movie-favorites/internal/dto/response"
	"movie-favorites/pkg/utils"
)

type UserService interface {
	GetUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetUserByID(ctx context.Context, userID int64) (*response.UserResponse, error)
	CreateUser(ctx context.Context, req *request.UserRequest) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, userID int64, req *request.UserUpdateRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := s.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}

	total, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	s.log.Debug("Users retrieved",
		zap.Int("count", len(users)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(userResponses, req.Page, req.PerPage, total), nil
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, repository.ErrNotFound)
	}

	userResp := response.UserToResponse(user)
	return &userResp, nil
}

// CreateUser registers a user. The email is pre-checked for a friendly
// duplicate message; the unique index still backstops the insert, so a
// concurrent registration of the same address surfaces as ErrDuplicate
// either way.
func (s *userService) CreateUser(ctx context.Context, req *request.UserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s already registered: %w", req.Email, repository.ErrDuplicate)
	}

	user := &entity.User{
		Name:  req.Name,
		Email: req.Email,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
	)

	userResp := response.UserToResponse(user)
	return &userResp, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID int64, req *request.UserUpdateRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, repository.ErrNotFound)
	}

	// Apply partial updates only for provided fields
	updated := false

	if req.Name != nil && *req.Name != user.Name {
		user.Name = *req.Name
		updated = true
	}
	if req.Email != nil && *req.Email != user.Email {
		user.Email = *req.Email
		updated = true
	}

	if updated {
		if err := s.repo.User.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		s.log.Info("User updated", zap.Int64("user_id", userID))
	}

	userResp := response.UserToResponse(user)
	return &userResp, nil
}

// DeleteUser removes the user and, through the cascade, every favorite
// the user had marked.
func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.repo.User.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return nil
}
