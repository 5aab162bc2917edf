package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gatherly/internal/domain"
)

type userService struct {
	userRepo       domain.UserRepository
	contextTimeout time.Duration
}

// NewUserService creates a UserService with the given repository.
func NewUserService(userRepo domain.UserRepository, timeout time.Duration) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		contextTimeout: timeout,
	}
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateAccount is the only user mutation the system allows: name and email
// edits for the caller's own account.
func (s *userService) UpdateAccount(ctx context.Context, userID string, name, email *string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("name must not be empty: %w", domain.ErrInvalidInput)
		}
		user.Name = trimmed
	}
	if email != nil {
		normalized := strings.TrimSpace(strings.ToLower(*email))
		if !emailRegexp.MatchString(normalized) {
			return nil, fmt.Errorf("invalid email format: %w", domain.ErrInvalidInput)
		}
		user.Email = normalized
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
