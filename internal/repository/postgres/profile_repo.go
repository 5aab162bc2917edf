package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gatherly/internal/domain"

	"github.com/lib/pq"
)

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{DB: db}
}

func scanProfile(row *sql.Row) (*domain.Profile, error) {
	p := &domain.Profile{}
	var bio, phone, address, avatar sql.NullString
	err := row.Scan(&p.ID, &p.UserID, &bio, &phone, &address, &avatar, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if bio.Valid {
		p.Bio = &bio.String
	}
	if phone.Valid {
		p.PhoneNumber = &phone.String
	}
	if address.Valid {
		p.Address = &address.String
	}
	if avatar.Valid {
		p.AvatarURL = &avatar.String
	}
	return p, nil
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, bio, phone_number, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, p.UserID, p.Bio, p.PhoneNumber, p.Address, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `
		SELECT id, user_id, bio, phone_number, address, avatar_url, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	return scanProfile(r.DB.QueryRowContext(ctx, query, id))
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `
		SELECT id, user_id, bio, phone_number, address, avatar_url, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	return scanProfile(r.DB.QueryRowContext(ctx, query, userID))
}

// UpdateOwned matches the row by id AND user_id in one statement, same
// policy as events: a missing profile and someone else's profile are
// indistinguishable to the caller.
func (r *profileRepository) UpdateOwned(ctx context.Context, profileID, userID string, bio, phoneNumber, address *string) (*domain.Profile, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if bio != nil {
		setClauses = append(setClauses, fmt.Sprintf("bio = $%d", n))
		args = append(args, *bio)
		n++
	}
	if phoneNumber != nil {
		setClauses = append(setClauses, fmt.Sprintf("phone_number = $%d", n))
		args = append(args, *phoneNumber)
		n++
	}
	if address != nil {
		setClauses = append(setClauses, fmt.Sprintf("address = $%d", n))
		args = append(args, *address)
		n++
	}
	args = append(args, profileID, userID)
	query := fmt.Sprintf(`
		UPDATE profiles SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING id, user_id, bio, phone_number, address, avatar_url, created_at, updated_at
	`, strings.Join(setClauses, ", "), n, n+1)
	return scanProfile(r.DB.QueryRowContext(ctx, query, args...))
}

func (r *profileRepository) DeleteOwned(ctx context.Context, profileID, userID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1 AND user_id = $2`, profileID, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepository) SetAvatarURL(ctx context.Context, userID, url string) (*domain.Profile, error) {
	query := `
		UPDATE profiles SET avatar_url = $1, updated_at = NOW()
		WHERE user_id = $2
		RETURNING id, user_id, bio, phone_number, address, avatar_url, created_at, updated_at
	`
	return scanProfile(r.DB.QueryRowContext(ctx, query, url, userID))
}
