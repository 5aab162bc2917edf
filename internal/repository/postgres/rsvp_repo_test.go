package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"gatherly/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestRSVPRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	now := fixedTime
	earlier := fixedTime.Add(-time.Hour)

	tests := []struct {
		name     string
		mock     func(mock sqlmock.Sqlmock)
		wantID   string
		wantCrAt time.Time
		wantErr  bool
	}{
		{
			name: "inserts new row",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO rsvps \(event_id, user_id, status, created_at, updated_at\)`).
					WithArgs("ev-1", "user-1", domain.RSVPGoing, now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("rsvp-1", now))
			},
			wantID:   "rsvp-1",
			wantCrAt: now,
		},
		{
			name: "conflict keeps original row and created_at",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`ON CONFLICT \(event_id, user_id\)`).
					WithArgs("ev-1", "user-1", domain.RSVPGoing, now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("rsvp-existing", earlier))
			},
			wantID:   "rsvp-existing",
			wantCrAt: earlier,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO rsvps`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewRSVPRepository(db)
			rsvp := domain.NewRSVP("ev-1", "user-1", domain.RSVPGoing, now, now)
			err = repo.Upsert(ctx, rsvp)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, rsvp.ID)
			require.True(t, rsvp.CreatedAt.Equal(tt.wantCrAt))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRSVPRepository_GetByEventAndUser(t *testing.T) {
	ctx := context.Background()
	cols := []string{"id", "event_id", "user_id", "status", "created_at", "updated_at"}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE event_id = \$1 AND user_id = \$2`).
					WithArgs("ev-1", "user-1").
					WillReturnRows(sqlmock.NewRows(cols).
						AddRow("rsvp-1", "ev-1", "user-1", "MAYBE", fixedTime, fixedTime))
			},
		},
		{
			name: "no response yet",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE event_id = \$1 AND user_id = \$2`).
					WithArgs("ev-1", "user-1").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewRSVPRepository(db)
			rsvp, err := repo.GetByEventAndUser(ctx, "ev-1", "user-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "rsvp-1", rsvp.ID)
			require.Equal(t, domain.RSVPMaybe, rsvp.Status)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRSVPRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM rsvps`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "user_id", "status", "created_at", "updated_at"}).
			AddRow("rsvp-2", "ev-1", "user-2", "NOT_GOING", fixedTime, fixedTime).
			AddRow("rsvp-1", "ev-1", "user-1", "GOING", fixedTime, fixedTime))

	repo := NewRSVPRepository(db)
	rsvps, err := repo.ListByEventID(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, rsvps, 2)
	require.Equal(t, domain.RSVPNotGoing, rsvps[0].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}
