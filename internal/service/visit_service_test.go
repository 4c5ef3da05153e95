package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visitdesk/visitdesk-api/internal/models"
	appErrors "github.com/visitdesk/visitdesk-api/pkg/errors"
)

type fakeVisitRepo struct {
	visits    map[string]*models.Visit
	listErr   error
	updateErr error
}

func newFakeVisitRepo(visits ...*models.Visit) *fakeVisitRepo {
	repo := &fakeVisitRepo{visits: map[string]*models.Visit{}}
	for _, v := range visits {
		repo.visits[v.ID] = v
	}
	return repo
}

func (m *fakeVisitRepo) List(ctx context.Context, filter models.VisitFilter) ([]models.Visit, int, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	var out []models.Visit
	for _, v := range m.visits {
		out = append(out, *v)
	}
	return out, len(out), nil
}

func (m *fakeVisitRepo) GetByID(ctx context.Context, id string) (*models.Visit, error) {
	v, ok := m.visits[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *v
	return &copied, nil
}

func (m *fakeVisitRepo) Create(ctx context.Context, visit *models.Visit) error {
	if visit.ID == "" {
		visit.ID = "vis-new"
	}
	m.visits[visit.ID] = visit
	return nil
}

func (m *fakeVisitRepo) Update(ctx context.Context, visit *models.Visit) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.visits[visit.ID] = visit
	return nil
}

func (m *fakeVisitRepo) Delete(ctx context.Context, id string) error {
	delete(m.visits, id)
	return nil
}

func expectedVisit(id string) *models.Visit {
	start := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	return &models.Visit{
		ID:             id,
		VisitorName:    "Ada Lovelace",
		HostName:       "Grace Hopper",
		Status:         models.VisitExpected,
		ScheduledStart: start,
		ScheduledEnd:   start.Add(time.Hour),
	}
}

func fixedClock(t *testing.T) func() time.Time {
	t.Helper()
	instant := time.Date(2026, time.March, 10, 10, 5, 0, 0, time.UTC)
	return func() time.Time { return instant }
}

func TestVisitServiceCreateStartsExpected(t *testing.T) {
	repo := newFakeVisitRepo()
	svc := NewVisitService(repo, nil, nil, nil, fixedClock(t))

	start := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	visit, err := svc.Create(context.Background(), CreateVisitRequest{
		VisitorName:    "Ada Lovelace",
		HostName:       "Grace Hopper",
		ScheduledStart: start,
		ScheduledEnd:   start.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, models.VisitExpected, visit.Status)
	assert.Nil(t, visit.CheckedInAt)
}

func TestVisitServiceCreateRejectsInvertedSchedule(t *testing.T) {
	svc := NewVisitService(newFakeVisitRepo(), nil, nil, nil, nil)

	start := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), CreateVisitRequest{
		VisitorName:    "Ada Lovelace",
		HostName:       "Grace Hopper",
		ScheduledStart: start,
		ScheduledEnd:   start.Add(-time.Minute),
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestVisitServiceCheckInLifecycle(t *testing.T) {
	repo := newFakeVisitRepo(expectedVisit("vis-1"))
	svc := NewVisitService(repo, nil, nil, nil, fixedClock(t))

	visit, err := svc.CheckIn(context.Background(), "vis-1")
	require.NoError(t, err)
	assert.Equal(t, models.VisitCheckedIn, visit.Status)
	require.NotNil(t, visit.CheckedInAt)
	assert.Equal(t, fixedClock(t)(), *visit.CheckedInAt)

	// A second check-in is a conflict.
	_, err = svc.CheckIn(context.Background(), "vis-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	visit, err = svc.CheckOut(context.Background(), "vis-1")
	require.NoError(t, err)
	assert.Equal(t, models.VisitCheckedOut, visit.Status)
	require.NotNil(t, visit.CheckedOutAt)
}

func TestVisitServiceCheckOutRequiresCheckedIn(t *testing.T) {
	repo := newFakeVisitRepo(expectedVisit("vis-1"))
	svc := NewVisitService(repo, nil, nil, nil, nil)

	_, err := svc.CheckOut(context.Background(), "vis-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestVisitServiceGetNotFound(t *testing.T) {
	svc := NewVisitService(newFakeVisitRepo(), nil, nil, nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestVisitServiceListRejectsUnknownStatus(t *testing.T) {
	svc := NewVisitService(newFakeVisitRepo(), nil, nil, nil, nil)

	_, _, err := svc.List(context.Background(), VisitListRequest{Status: []string{"LOITERING"}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
