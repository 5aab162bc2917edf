package domain

import (
	"context"
	"io"
	"time"
)

// Profile is the optional one-to-one extension of a user. At most one
// profile exists per user (unique user_id). All content fields are optional.
// swagger:model Profile
type Profile struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Bio         *string   `json:"bio"`
	PhoneNumber *string   `json:"phone_number"`
	Address     *string   `json:"address"`
	AvatarURL   *string   `json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProfile returns a new Profile for the user. ID is typically set by the repository on create.
func NewProfile(userID string, bio, phoneNumber, address *string, createdAt, updatedAt time.Time) *Profile {
	return &Profile{
		UserID:      userID,
		Bio:         bio,
		PhoneNumber: phoneNumber,
		Address:     address,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// ProfileRepository defines storage for profiles.
//
// Create returns ErrConflict when a profile already exists for the user.
// UpdateOwned and DeleteOwned match rows by id AND user_id in a single
// statement and return ErrNotFound when nothing matched.
type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	UpdateOwned(ctx context.Context, profileID, userID string, bio, phoneNumber, address *string) (*Profile, error)
	DeleteOwned(ctx context.Context, profileID, userID string) error
	// SetAvatarURL updates the avatar reference on the user's profile.
	SetAvatarURL(ctx context.Context, userID, url string) (*Profile, error)
}

// AvatarStorage stores avatar binaries externally and returns a public URL.
// The core persists only the URL.
type AvatarStorage interface {
	Store(ctx context.Context, key, contentType string, body io.Reader) (url string, err error)
}

// ProfileService defines profile operations. Mutations take the caller's ID
// explicitly and verify ownership against the stored row.
type ProfileService interface {
	GetMyProfile(ctx context.Context, userID string) (*Profile, error)
	GetProfile(ctx context.Context, profileID string) (*Profile, error)
	CreateProfile(ctx context.Context, userID string, bio, phoneNumber, address *string) (*Profile, error)
	UpdateProfile(ctx context.Context, profileID, userID string, bio, phoneNumber, address *string) (*Profile, error)
	DeleteProfile(ctx context.Context, profileID, userID string) error
	UpdateAvatar(ctx context.Context, userID, filename, contentType string, body io.Reader) (*Profile, error)
}
