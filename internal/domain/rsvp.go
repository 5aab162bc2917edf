package domain

import (
	"context"
	"time"
)

// RSVPStatus is a user's attendance response to an event.
type RSVPStatus string

// Wire values for RSVP statuses.
const (
	RSVPGoing    RSVPStatus = "GOING"
	RSVPMaybe    RSVPStatus = "MAYBE"
	RSVPNotGoing RSVPStatus = "NOT_GOING"
)

// ParseRSVPStatus validates a wire value. Returns ErrInvalidInput for
// anything other than the three literal statuses.
func ParseRSVPStatus(s string) (RSVPStatus, error) {
	switch RSVPStatus(s) {
	case RSVPGoing, RSVPMaybe, RSVPNotGoing:
		return RSVPStatus(s), nil
	}
	return "", ErrInvalidInput
}

// RSVP is the single attendance record for an (event, user) pair. Absence of
// a row means "no response yet". Responding again overwrites the status and
// bumps UpdatedAt; there is never more than one row per pair.
// swagger:model RSVP
type RSVP struct {
	ID        string     `json:"id"`
	EventID   string     `json:"event_id"`
	UserID    string     `json:"user_id"`
	Status    RSVPStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewRSVP returns a new RSVP. ID is typically set by the repository on create.
func NewRSVP(eventID, userID string, status RSVPStatus, createdAt, updatedAt time.Time) *RSVP {
	return &RSVP{
		EventID:   eventID,
		UserID:    userID,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// RSVPRepository defines storage for attendance records.
type RSVPRepository interface {
	// Upsert inserts the record or, if one already exists for the
	// (event_id, user_id) pair, overwrites its status in the same statement.
	// ID and CreatedAt are populated from the stored row.
	Upsert(ctx context.Context, rsvp *RSVP) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*RSVP, error)
	ListByEventID(ctx context.Context, eventID string) ([]*RSVP, error)
}

// RSVPService defines the attendance operations for authenticated users.
type RSVPService interface {
	// Respond records or overwrites the caller's response for the event.
	Respond(ctx context.Context, eventID, userID string, status RSVPStatus) (*RSVP, error)
	// GetForCaller returns the caller's response, or (nil, nil) when there is none.
	GetForCaller(ctx context.Context, eventID, userID string) (*RSVP, error)
}
