package services

import (
	"context"
	"fmt"

	"gatherly/internal/domain"
)

type emailService struct {
	mailer domain.Mailer
}

// NewEmailService returns an EmailService that uses the given Mailer.
func NewEmailService(mailer domain.Mailer) domain.EmailService {
	return &emailService{mailer: mailer}
}

// SendEventCancelled notifies a respondent that an event they responded to
// was cancelled by its organizer.
func (s *emailService) SendEventCancelled(ctx context.Context, data *domain.EventCancelledEmailData) error {
	if data == nil {
		return fmt.Errorf("event cancelled data is nil")
	}
	subject := fmt.Sprintf("Cancelled: %s", data.EventTitle)
	text := fmt.Sprintf(
		"%s has cancelled %q, which was scheduled for %s. Your RSVP has been removed.",
		data.OrganizerName, data.EventTitle, data.EventDate,
	)
	html := fmt.Sprintf(
		"<p><strong>%s</strong> has cancelled <strong>%s</strong>, which was scheduled for %s.</p><p>Your RSVP has been removed.</p>",
		data.OrganizerName, data.EventTitle, data.EventDate,
	)
	if err := s.mailer.Send(data.Email, subject, html, text); err != nil {
		return fmt.Errorf("send event cancelled email: %w", err)
	}
	return nil
}
