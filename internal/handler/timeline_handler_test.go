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

	"github.com/visitdesk/visitdesk-api/internal/dto"
	"github.com/visitdesk/visitdesk-api/internal/models"
	"github.com/visitdesk/visitdesk-api/internal/service"
	"github.com/visitdesk/visitdesk-api/pkg/config"
	"github.com/visitdesk/visitdesk-api/pkg/response"
)

type fakeRoomRepo struct {
	rooms []models.Room
}

func (m *fakeRoomRepo) ListActive(ctx context.Context) ([]models.Room, error) {
	return m.rooms, nil
}

func (m *fakeRoomRepo) GetByID(ctx context.Context, id string) (*models.Room, error) {
	for _, r := range m.rooms {
		if r.ID == id {
			room := r
			return &room, nil
		}
	}
	return nil, sql.ErrNoRows
}

type fakeBookingRepo struct {
	bookings []models.Booking
}

func (m *fakeBookingRepo) ListForDay(ctx context.Context, day time.Time, roomIDs []string) ([]models.Booking, error) {
	return m.bookings, nil
}

func newTimelineHandlerTest(rooms []models.Room, bookings []models.Booking) *TimelineHandler {
	svc := service.NewTimelineService(
		&fakeRoomRepo{rooms: rooms},
		&fakeBookingRepo{bookings: bookings},
		newFakeVisitRepo(),
		nil, nil,
		config.TimelineConfig{FineSnapMinutes: 5, ClickSnapMinutes: 30},
		nil,
	)
	return NewTimelineHandler(svc)
}

func TestTimelineHandlerDay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	start := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	handler := newTimelineHandlerTest(
		[]models.Room{{ID: "room-1", Name: "Aurora", Email: "aurora@rooms.example", Active: true}},
		[]models.Booking{{
			ID: "bk-1", RoomID: "room-1", Title: "Standup",
			Status: models.BookingConfirmed, StartTime: start, EndTime: start.Add(time.Hour),
		}},
	)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/timeline?date=2026-03-10&style=full&pph=60", nil)

	handler.Day(c)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	payload, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var timeline dto.TimelineResponse
	require.NoError(t, json.Unmarshal(payload, &timeline))

	require.Len(t, timeline.Lanes, 1)
	require.Len(t, timeline.Lanes[0].Boxes, 1)
	assert.Equal(t, 9*60.0, timeline.Lanes[0].Boxes[0].OffsetX)
	assert.Equal(t, 60.0, timeline.Lanes[0].Boxes[0].Width)
}

func TestTimelineHandlerDayRejectsBadPixels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTimelineHandlerTest(nil, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/timeline?date=2026-03-10&pph=-4", nil)

	handler.Day(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimelineHandlerClick(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTimelineHandlerTest(
		[]models.Room{{ID: "room-1", Name: "Aurora", Email: "aurora@rooms.example", Active: true}},
		nil,
	)

	body, _ := json.Marshal(dto.TimelineClickRequest{
		RoomID: "room-1", Date: "2026-03-10", OffsetX: 587, Style: "full",
	})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/timeline/click", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Click(c)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	payload, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var resolved dto.TimelineClickResponse
	require.NoError(t, json.Unmarshal(payload, &resolved))

	expected := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, expected.UnixMilli(), resolved.Timestamp)
}

func TestTimelineHandlerClickMissingRoom(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTimelineHandlerTest(nil, nil)

	body := []byte(`{"date":"2026-03-10","offset_x":10}`)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/timeline/click", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Click(c)
	// room_id carries a binding:"required" tag.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
