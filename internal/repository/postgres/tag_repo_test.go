package postgres

import (
	"context"
	"database/sql"
	"testing"

	"gatherly/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestTagRepository_Create(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO tags \(event_id, name\)`).
		WithArgs("ev-1", "tech").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("tag-1"))

	repo := NewTagRepository(db)
	tag := &domain.Tag{EventID: "ev-1", Name: "tech"}
	require.NoError(t, repo.Create(ctx, tag))
	require.Equal(t, "tag-1", tag.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_DeleteByEventAndID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "deletes matched row",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM tags WHERE id = \$1 AND event_id = \$2`).
					WithArgs("tag-1", "ev-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "tag belongs to another event",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM tags WHERE id = \$1 AND event_id = \$2`).
					WithArgs("tag-1", "ev-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM tags`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewTagRepository(db)
			err = repo.DeleteByEventAndID(ctx, "ev-1", "tag-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTagRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, event_id, name FROM tags WHERE event_id = \$1`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "name"}).
			AddRow("tag-1", "ev-1", "tech").
			AddRow("tag-2", "ev-1", "tech"))

	repo := NewTagRepository(db)
	tags, err := repo.ListByEventID(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, tags, 2)
	require.Equal(t, "tech", tags[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}
