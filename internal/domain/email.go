package domain

import "context"

// Mailer sends a single email. Implementations may use SES, SMTP, or a no-op.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EventCancelledEmailData is the payload for the event cancellation notice
// sent to respondents when an organizer deletes an event.
type EventCancelledEmailData struct {
	Email         string
	EventTitle    string
	EventDate     string
	OrganizerName string
}

// EmailService defines the outbound email operations.
type EmailService interface {
	SendEventCancelled(ctx context.Context, data *EventCancelledEmailData) error
}
