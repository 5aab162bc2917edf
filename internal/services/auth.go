package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gatherly/internal/domain"
)

const (
	minPasswordLen = 8
	tokenExpiry    = 24 * time.Hour
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	userRepo domain.UserRepository
	hasher   domain.PasswordHasher
	issuer   domain.TokenIssuer
}

// NewAuthService creates an AuthService with the given repository, hasher, and token issuer.
func NewAuthService(userRepo domain.UserRepository, hasher domain.PasswordHasher, issuer domain.TokenIssuer) domain.AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
	}
}

func (s *authService) SignUp(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("invalid email format: %w", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, domain.ErrInvalidInput)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := domain.NewUser(email, strings.TrimSpace(name), hash, salt, now, now)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		// Same failure for unknown email and wrong password.
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrForbidden)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrForbidden)
	}
	token, err := s.issuer.Issue(user.ID, user.Email, tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}
