package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gatherly/internal/domain"
)

type rsvpService struct {
	eventRepo      domain.EventRepository
	rsvpRepo       domain.RSVPRepository
	contextTimeout time.Duration
}

// NewRSVPService creates an RSVPService with the given repositories.
func NewRSVPService(eventRepo domain.EventRepository, rsvpRepo domain.RSVPRepository, timeout time.Duration) domain.RSVPService {
	return &rsvpService{
		eventRepo:      eventRepo,
		rsvpRepo:       rsvpRepo,
		contextTimeout: timeout,
	}
}

// Respond records the caller's response. Any status is reachable from any
// status, including itself; the upsert keeps exactly one row per
// (event, user) pair no matter how often it is called.
func (s *rsvpService) Respond(ctx context.Context, eventID, userID string, status domain.RSVPStatus) (*domain.RSVP, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := domain.ParseRSVPStatus(string(status)); err != nil {
		return nil, fmt.Errorf("status must be GOING, MAYBE, or NOT_GOING: %w", domain.ErrInvalidInput)
	}

	// The response must reference a live event.
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	now := time.Now()
	rsvp := domain.NewRSVP(eventID, userID, status, now, now)
	if err := s.rsvpRepo.Upsert(ctx, rsvp); err != nil {
		return nil, fmt.Errorf("upsert rsvp: %w", err)
	}
	return rsvp, nil
}

// GetForCaller returns (nil, nil) when the caller has not responded yet.
// Absence of a row is the implicit NoResponse state, not an error.
func (s *rsvpService) GetForCaller(ctx context.Context, eventID, userID string) (*domain.RSVP, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rsvp, err := s.rsvpRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rsvp: %w", err)
	}
	return rsvp, nil
}
