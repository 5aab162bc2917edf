package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"gatherly/internal/domain"

	"github.com/google/uuid"
)

type profileService struct {
	profileRepo    domain.ProfileRepository
	avatarStore    domain.AvatarStorage
	contextTimeout time.Duration
}

// NewProfileService creates a ProfileService backed by the given repository
// and avatar blob storage.
func NewProfileService(profileRepo domain.ProfileRepository, avatarStore domain.AvatarStorage, timeout time.Duration) domain.ProfileService {
	return &profileService{
		profileRepo:    profileRepo,
		avatarStore:    avatarStore,
		contextTimeout: timeout,
	}
}

func (s *profileService) GetMyProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get profile by user: %w", err)
	}
	return profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, profileID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// CreateProfile enforces the one-profile-per-user invariant: a second create
// for the same user returns ErrConflict so the client can branch to update.
func (s *profileService) CreateProfile(ctx context.Context, userID string, bio, phoneNumber, address *string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := time.Now()
	profile := domain.NewProfile(userID, bio, phoneNumber, address, now, now)
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, profileID, userID string, bio, phoneNumber, address *string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	updated, err := s.profileRepo.UpdateOwned(ctx, profileID, userID, bio, phoneNumber, address)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return updated, nil
}

func (s *profileService) DeleteProfile(ctx context.Context, profileID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.profileRepo.DeleteOwned(ctx, profileID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrForbidden
		}
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// UpdateAvatar stores the binary externally and persists only the resulting
// URL. The object key is random so re-uploads never collide.
func (s *profileService) UpdateAvatar(ctx context.Context, userID, filename, contentType string, body io.Reader) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	key := "avatars/" + uuid.NewString() + path.Ext(filename)
	url, err := s.avatarStore.Store(ctx, key, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("store avatar: %w", err)
	}
	profile, err := s.profileRepo.SetAvatarURL(ctx, userID, url)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("set avatar url: %w", err)
	}
	return profile, nil
}
