package domain

import (
	"context"
	"time"
)

// Event represents a published event owned by its organizer. OrganizerID is
// fixed at creation and never changes. Tags and RSVPs are populated only by
// the eager listing; elsewhere they are nil.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	OrganizerID string    `json:"organizer_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Tags        []*Tag    `json:"tags,omitempty"`
	RSVPs       []*RSVP   `json:"rsvps,omitempty"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(organizerID, title, description, location string, date time.Time, createdAt, updatedAt time.Time) *Event {
	return &Event{
		OrganizerID: organizerID,
		Title:       title,
		Description: description,
		Location:    location,
		Date:        date,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventRepository defines the interface for event storage.
//
// UpdateOwned and DeleteOwned match rows by id AND organizer_id in a single
// statement, so the ownership check and the mutation cannot interleave with
// a concurrent writer. Both return ErrNotFound when nothing matched; callers
// decide how to surface that.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// ListAll returns every event, newest first, with tags and RSVPs attached.
	ListAll(ctx context.Context) ([]*Event, error)
	// ListByOrganizerID returns the organizer's events, newest first, without children.
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Event, error)
	UpdateOwned(ctx context.Context, eventID, organizerID string, title, description, location *string, date *time.Time) (*Event, error)
	// DeleteOwned removes the event and all of its tags and RSVPs in one transaction.
	DeleteOwned(ctx context.Context, eventID, organizerID string) error
}

// EventService defines the organizer- and reader-facing event operations.
// Every mutating call takes the caller's ID explicitly; ownership is always
// re-derived from stored rows, never trusted from the request.
type EventService interface {
	ListAllEvents(ctx context.Context) ([]*Event, error)
	ListMyEvents(ctx context.Context, organizerID string) ([]*Event, error)
	GetEventByID(ctx context.Context, eventID string) (*Event, error)
	CreateEvent(ctx context.Context, event *Event) error
	UpdateEvent(ctx context.Context, eventID, organizerID string, title, description, location *string, date *time.Time) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, organizerID string) error
	AddTag(ctx context.Context, eventID, organizerID, name string) (*Tag, error)
	RemoveTag(ctx context.Context, eventID, tagID, organizerID string) error
}
