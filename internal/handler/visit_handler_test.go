package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visitdesk/visitdesk-api/internal/models"
	"github.com/visitdesk/visitdesk-api/internal/service"
	"github.com/visitdesk/visitdesk-api/pkg/response"
)

type fakeVisitRepo struct {
	visits map[string]*models.Visit
}

func newFakeVisitRepo(visits ...*models.Visit) *fakeVisitRepo {
	repo := &fakeVisitRepo{visits: map[string]*models.Visit{}}
	for _, v := range visits {
		repo.visits[v.ID] = v
	}
	return repo
}

func (m *fakeVisitRepo) List(ctx context.Context, filter models.VisitFilter) ([]models.Visit, int, error) {
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
	m.visits[visit.ID] = visit
	return nil
}

func (m *fakeVisitRepo) Delete(ctx context.Context, id string) error {
	delete(m.visits, id)
	return nil
}

func newVisitHandlerTest(visits ...*models.Visit) (*VisitHandler, *fakeVisitRepo) {
	repo := newFakeVisitRepo(visits...)
	svc := service.NewVisitService(repo, nil, nil, nil, nil)
	return NewVisitHandler(svc), repo
}

func seededVisit(id string) *models.Visit {
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

func TestVisitHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, repo := newVisitHandlerTest()

	body, _ := json.Marshal(map[string]interface{}{
		"visitor_name":    "Ada Lovelace",
		"host_name":       "Grace Hopper",
		"scheduled_start": "2026-03-10T10:00:00Z",
		"scheduled_end":   "2026-03-10T11:00:00Z",
	})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/visits", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, repo.visits, 1)
}

func TestVisitHandlerCreateRejectsMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newVisitHandlerTest()

	body := []byte(`{"visitor_name":"Ada Lovelace"}`)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/visits", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVisitHandlerCheckInFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newVisitHandlerTest(seededVisit("vis-1"))

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/visits/vis-1/check-in", nil)
	c.Params = gin.Params{{Key: "id", Value: "vis-1"}}

	handler.CheckIn(c)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	payload, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var visit models.Visit
	require.NoError(t, json.Unmarshal(payload, &visit))
	assert.Equal(t, models.VisitCheckedIn, visit.Status)
	assert.NotNil(t, visit.CheckedInAt)

	// Checking in the same visit again conflicts.
	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/visits/vis-1/check-in", nil)
	c.Params = gin.Params{{Key: "id", Value: "vis-1"}}

	handler.CheckIn(c)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestVisitHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newVisitHandlerTest()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/visits/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVisitHandlerListBadDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newVisitHandlerTest()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/visits?date=10-03-2026", nil)

	handler.List(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
