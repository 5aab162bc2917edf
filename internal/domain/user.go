package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// User represents a registered account. The core treats users as read-only
// except for the name/email edit; creation happens through the auth flow.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(email, name, passwordHash, salt string, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Salt:         salt,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
}

// AuthService defines signup and login. Everything else in the system
// receives an already-resolved caller ID; this is the only place credentials
// are handled.
type AuthService interface {
	SignUp(ctx context.Context, email, password, name string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
}

// UserService defines account-level operations for the authenticated user.
type UserService interface {
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateAccount(ctx context.Context, userID string, name, email *string) (*User, error)
}
