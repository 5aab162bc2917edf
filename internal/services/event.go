package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gatherly/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	tagRepo        domain.TagRepository
	rsvpRepo       domain.RSVPRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	tagRepo domain.TagRepository,
	rsvpRepo domain.RSVPRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		tagRepo:        tagRepo,
		rsvpRepo:       rsvpRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventService) ListAllEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) ListMyEvents(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("list events by organizer: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.OrganizerID == "" {
		return fmt.Errorf("event organizer is required: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(event.Title) == "" ||
		strings.TrimSpace(event.Description) == "" ||
		strings.TrimSpace(event.Location) == "" ||
		event.Date.IsZero() {
		return fmt.Errorf("title, description, location, and date are required: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	event.Date = event.Date.UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	return s.eventRepo.Create(ctx, event)
}

// UpdateEvent applies the supplied fields only when the event exists and the
// caller organizes it. Both failure modes surface as ErrForbidden: a caller
// cannot learn whether an event they do not own exists.
func (s *eventService) UpdateEvent(ctx context.Context, eventID, organizerID string, title, description, location *string, date *time.Time) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if title != nil && strings.TrimSpace(*title) == "" {
		return nil, fmt.Errorf("title must not be empty: %w", domain.ErrInvalidInput)
	}
	if description != nil && strings.TrimSpace(*description) == "" {
		return nil, fmt.Errorf("description must not be empty: %w", domain.ErrInvalidInput)
	}
	if location != nil && strings.TrimSpace(*location) == "" {
		return nil, fmt.Errorf("location must not be empty: %w", domain.ErrInvalidInput)
	}
	if date != nil {
		utc := date.UTC()
		date = &utc
	}

	updated, err := s.eventRepo.UpdateOwned(ctx, eventID, organizerID, title, description, location, date)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

// DeleteEvent removes the event with its tags and RSVPs, then notifies
// GOING/MAYBE respondents by email. Notification failures are logged, never
// surfaced: the deletion has already committed.
func (s *eventService) DeleteEvent(ctx context.Context, eventID, organizerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrForbidden
		}
		return fmt.Errorf("get event: %w", err)
	}

	rsvps, err := s.rsvpRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("list rsvps: %w", err)
	}

	if err := s.eventRepo.DeleteOwned(ctx, eventID, organizerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrForbidden
		}
		return fmt.Errorf("delete event: %w", err)
	}

	s.notifyCancelled(ctx, event, organizerID, rsvps)
	return nil
}

func (s *eventService) notifyCancelled(ctx context.Context, event *domain.Event, organizerID string, rsvps []*domain.RSVP) {
	organizerName := "The organizer"
	if organizer, err := s.userRepo.GetByID(ctx, organizerID); err == nil && organizer.Name != "" {
		organizerName = organizer.Name
	}
	for _, v := range rsvps {
		if v.Status == domain.RSVPNotGoing {
			continue
		}
		user, err := s.userRepo.GetByID(ctx, v.UserID)
		if err != nil {
			s.logger.Warn("skip cancellation notice", "event_id", event.ID, "user_id", v.UserID, "err", err)
			continue
		}
		data := &domain.EventCancelledEmailData{
			Email:         user.Email,
			EventTitle:    event.Title,
			EventDate:     event.Date.UTC().Format(time.RFC3339),
			OrganizerName: organizerName,
		}
		if err := s.emailService.SendEventCancelled(ctx, data); err != nil {
			s.logger.Warn("send cancellation notice", "event_id", event.ID, "user_id", v.UserID, "err", err)
		}
	}
}

// AddTag requires the same ownership proof as event mutation: tags are
// reachable only through their event, so mutating them is mutating the event.
func (s *eventService) AddTag(ctx context.Context, eventID, organizerID, name string) (*domain.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("tag name is required: %w", domain.ErrInvalidInput)
	}
	if err := s.requireOrganizer(ctx, eventID, organizerID); err != nil {
		return nil, err
	}
	tag := &domain.Tag{EventID: eventID, Name: name}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}

func (s *eventService) RemoveTag(ctx context.Context, eventID, tagID, organizerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireOrganizer(ctx, eventID, organizerID); err != nil {
		return err
	}
	if err := s.tagRepo.DeleteByEventAndID(ctx, eventID, tagID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}

func (s *eventService) requireOrganizer(ctx context.Context, eventID, organizerID string) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrForbidden
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != organizerID {
		return domain.ErrForbidden
	}
	return nil
}
