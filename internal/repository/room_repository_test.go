package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/visitdesk/visitdesk-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func roomRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "capacity", "location", "active", "created_at", "updated_at"}).
		AddRow("room-1", "Aurora", "aurora@rooms.example", 8, nil, true, time.Now(), time.Now())
}

func TestRoomRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRoomRepository(db)

	active := true
	mock.ExpectQuery(`SELECT id, name, email, capacity, location, active, created_at, updated_at`).
		WithArgs("%aur%", active).
		WillReturnRows(roomRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM rooms WHERE 1=1 AND (name ILIKE $1 OR email ILIKE $1) AND active = $2")).
		WithArgs("%aur%", active).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rooms, total, err := repo.List(context.Background(), models.RoomFilter{Search: "aur", Active: &active})
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	require.Equal(t, 1, total)
	require.Equal(t, "Aurora", rooms[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryListActive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRoomRepository(db)

	mock.ExpectQuery(`FROM rooms WHERE active = TRUE ORDER BY name ASC`).
		WillReturnRows(roomRows())

	rooms, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryGetByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRoomRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM rooms WHERE id = $1")).
		WithArgs("room-1").
		WillReturnRows(roomRows())

	room, err := repo.GetByID(context.Background(), "room-1")
	require.NoError(t, err)
	require.Equal(t, "room-1", room.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRoomRepository(db)

	mock.ExpectExec(`INSERT INTO rooms`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	room := &models.Room{Name: "Borealis", Email: "borealis@rooms.example", Capacity: 4, Active: true}
	require.NoError(t, repo.Create(context.Background(), room))
	require.NotEmpty(t, room.ID)
	require.False(t, room.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRoomRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM rooms WHERE id = $1")).
		WithArgs("room-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "room-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
