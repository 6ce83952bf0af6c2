package service

import (
	"context"
	"errors"
	"fmt"
	"wings_cafe/internal/common"
	"wings_cafe/internal/common/security"
	"wings_cafe/internal/domain/model"
	"wings_cafe/internal/domain/repository"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("username and password are required: %w", common.ErrValidation)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       req.Username,
		HashedPassword: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict on a duplicate username
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.HashedPassword = "" // Clear password before returning
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("username and password are required: %w", common.ErrValidation)
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Generic message so callers cannot probe for usernames
			return nil, fmt.Errorf("invalid username or password: %w", common.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, fmt.Errorf("invalid username or password: %w", common.ErrUnauthorized)
	}

	token, err := security.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &LoginResponse{Token: token, User: user}, nil
}

// ListUsers backs the user management page, which previously ran on mock
// data client-side.
func (s *AuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].HashedPassword = ""
	}
	return users, nil
}
