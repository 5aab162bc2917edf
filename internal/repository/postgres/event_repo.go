package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gatherly/internal/domain"

	"github.com/lib/pq"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (organizer_id, title, description, location, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, e.OrganizerID, e.Title, e.Description, e.Location, e.Date, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, organizer_id, title, description, location, date, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.OrganizerID, &e.Title, &e.Description, &e.Location, &e.Date, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT id, organizer_id, title, description, location, date, created_at, updated_at
		FROM events
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	byID := make(map[string]*domain.Event)
	ids := make([]string, 0)
	for rows.Next() {
		e := &domain.Event{}
		if err := rows.Scan(&e.ID, &e.OrganizerID, &e.Title, &e.Description, &e.Location, &e.Date, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		e.Tags = []*domain.Tag{}
		e.RSVPs = []*domain.RSVP{}
		events = append(events, e)
		byID[e.ID] = e
		ids = append(ids, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return events, nil
	}
	if err := r.attachTags(ctx, byID, ids); err != nil {
		return nil, err
	}
	if err := r.attachRSVPs(ctx, byID, ids); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) attachTags(ctx context.Context, byID map[string]*domain.Event, ids []string) error {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, event_id, name FROM tags WHERE event_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		t := &domain.Tag{}
		if err := rows.Scan(&t.ID, &t.EventID, &t.Name); err != nil {
			return err
		}
		if e, ok := byID[t.EventID]; ok {
			e.Tags = append(e.Tags, t)
		}
	}
	return rows.Err()
}

func (r *eventRepository) attachRSVPs(ctx context.Context, byID map[string]*domain.Event, ids []string) error {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, event_id, user_id, status, created_at, updated_at FROM rsvps WHERE event_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		v := &domain.RSVP{}
		if err := rows.Scan(&v.ID, &v.EventID, &v.UserID, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return err
		}
		if e, ok := byID[v.EventID]; ok {
			e.RSVPs = append(e.RSVPs, v)
		}
	}
	return rows.Err()
}

func (r *eventRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	query := `
		SELECT id, organizer_id, title, description, location, date, created_at, updated_at
		FROM events
		WHERE organizer_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		if err := rows.Scan(&e.ID, &e.OrganizerID, &e.Title, &e.Description, &e.Location, &e.Date, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// UpdateOwned applies the supplied fields with a single conditional write:
// the row is matched by id AND organizer_id, so a non-owner (or a missing
// event) yields ErrNotFound without a separate read.
func (r *eventRepository) UpdateOwned(ctx context.Context, eventID, organizerID string, title, description, location *string, date *time.Time) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *title)
		n++
	}
	if description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *description)
		n++
	}
	if location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *location)
		n++
	}
	if date != nil {
		setClauses = append(setClauses, fmt.Sprintf("date = $%d", n))
		args = append(args, *date)
		n++
	}
	args = append(args, eventID, organizerID)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d AND organizer_id = $%d
		RETURNING id, organizer_id, title, description, location, date, created_at, updated_at
	`, strings.Join(setClauses, ", "), n, n+1)
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&e.ID, &e.OrganizerID, &e.Title, &e.Description, &e.Location, &e.Date, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// DeleteOwned removes the event's RSVPs, tags, and the event itself in one
// transaction. The event row is matched by id AND organizer_id; if that
// matches nothing the transaction rolls back with ErrNotFound, so no child
// rows are lost for an event the caller does not own.
func (r *eventRepository) DeleteOwned(ctx context.Context, eventID, organizerID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rsvps WHERE event_id = $1`, eventID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE event_id = $1`, eventID); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1 AND organizer_id = $2`, eventID, organizerID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}
