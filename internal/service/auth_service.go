package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Gbothemy/crypto-earning/internal/domain"
	"github.com/Gbothemy/crypto-earning/internal/logger"
	"github.com/Gbothemy/crypto-earning/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuthService resolves usernames to accounts and issues session tokens.
type AuthService struct {
	db       *pgxpool.Pool
	userRepo *repository.UserRepository
}

func NewAuthService(db *pgxpool.Pool) *AuthService {
	return &AuthService{
		db:       db,
		userRepo: repository.NewUserRepository(db),
	}
}

// Login finds the account for username or creates it on first sight, and
// returns the user together with a signed session token.
func (s *AuthService) Login(ctx context.Context, username, email, avatar string) (*domain.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, "", errors.New("username is required")
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		user = &domain.User{
			Username: username,
			Email:    email,
			Avatar:   avatar,
		}
		if err = s.userRepo.Create(ctx, user); err != nil {
			return nil, "", err
		}
		logger.Info("new account created", "user_id", user.ID, "username", username)
	} else if err != nil {
		return nil, "", err
	}

	token, err := GenerateJWT(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetUser returns the user row for an authenticated session.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// UpdateProfile changes the mutable profile fields.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, username, email, avatar string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username is required")
	}
	u := &domain.User{ID: userID, Username: username, Email: email, Avatar: avatar}
	err := s.userRepo.UpdateProfile(ctx, u)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}
