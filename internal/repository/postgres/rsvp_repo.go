package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gatherly/internal/domain"
)

type rsvpRepository struct {
	DB *sql.DB
}

func NewRSVPRepository(db *sql.DB) domain.RSVPRepository {
	return &rsvpRepository{
		DB: db,
	}
}

// Upsert relies on the unique (event_id, user_id) index: a second response
// for the same pair overwrites the status in the same statement, so the
// at-most-one-row invariant holds even under concurrent responses.
func (r *rsvpRepository) Upsert(ctx context.Context, v *domain.RSVP) error {
	query := `
		INSERT INTO rsvps (event_id, user_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id, user_id)
		DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`
	return r.DB.QueryRowContext(ctx, query, v.EventID, v.UserID, v.Status, v.CreatedAt, v.UpdatedAt).
		Scan(&v.ID, &v.CreatedAt)
}

func (r *rsvpRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.RSVP, error) {
	query := `
		SELECT id, event_id, user_id, status, created_at, updated_at
		FROM rsvps
		WHERE event_id = $1 AND user_id = $2
	`
	v := &domain.RSVP{}
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).
		Scan(&v.ID, &v.EventID, &v.UserID, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *rsvpRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.RSVP, error) {
	query := `
		SELECT id, event_id, user_id, status, created_at, updated_at
		FROM rsvps
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rsvps := make([]*domain.RSVP, 0)
	for rows.Next() {
		v := &domain.RSVP{}
		if err := rows.Scan(&v.ID, &v.EventID, &v.UserID, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		rsvps = append(rsvps, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rsvps, nil
}
