package postgres

import (
	"context"
	"database/sql"

	"gatherly/internal/domain"
)

type tagRepository struct {
	DB *sql.DB
}

// NewTagRepository returns a domain.TagRepository implemented with Postgres.
func NewTagRepository(db *sql.DB) domain.TagRepository {
	return &tagRepository{DB: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	query := `
		INSERT INTO tags (event_id, name)
		VALUES ($1, $2)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, tag.EventID, tag.Name).Scan(&tag.ID)
}

func (r *tagRepository) DeleteByEventAndID(ctx context.Context, eventID, tagID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM tags WHERE id = $1 AND event_id = $2`, tagID, eventID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *tagRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Tag, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, event_id, name FROM tags WHERE event_id = $1 ORDER BY id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]*domain.Tag, 0)
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.EventID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}
