package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/visitdesk/visitdesk-api/internal/models"
)

func visitRows() *sqlmock.Rows {
	start := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{"id", "room_id", "visitor_name", "visitor_email", "company",
		"host_name", "purpose", "status", "scheduled_start", "scheduled_end",
		"checked_in_at", "checked_out_at", "created_at", "updated_at"}).
		AddRow("vis-1", "room-1", "Ada Lovelace", nil, "Analytical Engines Ltd",
			"Grace Hopper", nil, models.VisitExpected, start, start.Add(time.Hour),
			nil, nil, time.Now(), time.Now())
}

func TestVisitRepositoryListForDay(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewVisitRepository(db)

	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("scheduled_end > $1 AND scheduled_start < $2")).
		WithArgs(day, day.AddDate(0, 0, 1)).
		WillReturnRows(visitRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM visits")).
		WithArgs(day, day.AddDate(0, 0, 1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	visits, total, err := repo.List(context.Background(), models.VisitFilter{Day: &day})
	require.NoError(t, err)
	require.Len(t, visits, 1)
	require.Equal(t, 1, total)
	require.Equal(t, "Ada Lovelace", visits[0].VisitorName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVisitRepositoryListStatusAndSearch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewVisitRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("status = ANY($1) AND (visitor_name ILIKE $2 OR host_name ILIKE $2)")).
		WithArgs(sqlmock.AnyArg(), "%ada%").
		WillReturnRows(visitRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM visits")).
		WithArgs(sqlmock.AnyArg(), "%ada%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	visits, _, err := repo.List(context.Background(), models.VisitFilter{
		Status: []models.VisitStatus{models.VisitExpected},
		Search: "ada",
	})
	require.NoError(t, err)
	require.Len(t, visits, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVisitRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewVisitRepository(db)

	mock.ExpectExec(`INSERT INTO visits`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	start := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	visit := &models.Visit{
		VisitorName:    "Ada Lovelace",
		HostName:       "Grace Hopper",
		Status:         models.VisitExpected,
		ScheduledStart: start,
		ScheduledEnd:   start.Add(time.Hour),
	}
	require.NoError(t, repo.Create(context.Background(), visit))
	require.NotEmpty(t, visit.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVisitRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewVisitRepository(db)

	mock.ExpectExec(`UPDATE visits SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	now := time.Now().UTC()
	visit := &models.Visit{ID: "vis-1", VisitorName: "Ada Lovelace", HostName: "Grace Hopper",
		Status: models.VisitCheckedIn, CheckedInAt: &now,
		ScheduledStart: now, ScheduledEnd: now.Add(time.Hour)}
	require.NoError(t, repo.Update(context.Background(), visit))
	require.NoError(t, mock.ExpectationsWereMet())
}
