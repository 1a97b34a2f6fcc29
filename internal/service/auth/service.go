package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	jwtauth "github.com/whalechillz/mas-win-sub025/internal/auth"
	"github.com/whalechillz/mas-win-sub025/internal/infra/storage/adminuser"
	"github.com/whalechillz/mas-win-sub025/internal/service/auth/models"
)

// Service authenticates admin users
type Service struct {
	users  UserRepository
	tokens TokenIssuer
	logger Logger
}

// NewService creates the admin auth service
func NewService(users UserRepository, tokens TokenIssuer, logger Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Login checks the password and returns a signed access token
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, adminuser.ErrUserNotFound) {
			s.logger.Warn("Login: unknown email %s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if !jwtauth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warn("Login: wrong password for user id=%d", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, expires, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		s.logger.Error("Login: failed to issue token for user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Login - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user id=%d signed in", user.ID)
	return &models.LoginResponse{
		Token:     token,
		ExpiresAt: expires,
		User: models.UserInfo{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	}, nil
}
