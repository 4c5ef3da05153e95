package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/visitdesk/visitdesk-api/internal/models"
	"github.com/visitdesk/visitdesk-api/internal/recurrence"
	appErrors "github.com/visitdesk/visitdesk-api/pkg/errors"
)

type bookingRepository interface {
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, int, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	Update(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id string) error
}

// BookingService manages room reservations and their recurrence rules.
type BookingService struct {
	repo      bookingRepository
	rooms     roomRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBookingService constructs the service.
func NewBookingService(repo bookingRepository, rooms roomRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{repo: repo, rooms: rooms, cache: cache, validator: validate, logger: logger}
}

// BookingListRequest describes filters for listing bookings.
type BookingListRequest struct {
	RoomID   string     `json:"room_id"`
	Day      *time.Time `json:"day"`
	From     *time.Time `json:"from"`
	To       *time.Time `json:"to"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// RecurrenceRequest is the editable recurrence payload. It mirrors the draft
// superset form: every variant's fields at once, with the variant tag
// selecting which ones count.
type RecurrenceRequest struct {
	Type                string   `json:"type" validate:"required"`
	Interval            int      `json:"interval"`
	DaysOfWeek          []string `json:"days_of_week"`
	DayOfMonth          int      `json:"day_of_month"`
	Index               string   `json:"index"`
	Month               int      `json:"month"`
	RangeType           string   `json:"range_type" validate:"required"`
	EndDate             string   `json:"end_date"`
	NumberOfOccurrences int      `json:"number_of_occurrences"`
}

// CreateBookingRequest describes create payload.
type CreateBookingRequest struct {
	RoomID         string             `json:"room_id" validate:"required"`
	Title          string             `json:"title" validate:"required"`
	OrganizerEmail string             `json:"organizer_email" validate:"required,email"`
	StartTime      time.Time          `json:"start_time" validate:"required"`
	EndTime        time.Time          `json:"end_time" validate:"required"`
	Status         string             `json:"status"`
	Recurrence     *RecurrenceRequest `json:"recurrence"`
}

// UpdateBookingRequest describes update payload. A nil Recurrence releases
// any existing rule; a present one replaces it wholesale.
type UpdateBookingRequest struct {
	RoomID         string             `json:"room_id" validate:"required"`
	Title          string             `json:"title" validate:"required"`
	OrganizerEmail string             `json:"organizer_email" validate:"required,email"`
	StartTime      time.Time          `json:"start_time" validate:"required"`
	EndTime        time.Time          `json:"end_time" validate:"required"`
	Status         string             `json:"status"`
	Recurrence     *RecurrenceRequest `json:"recurrence"`
}

// BookingView decorates a booking with its human-readable recurrence phrase.
type BookingView struct {
	models.Booking
	RecurrenceText string `json:"recurrence_text,omitempty"`
}

func newBookingView(b models.Booking) BookingView {
	view := BookingView{Booking: b}
	if b.Recurrence != nil {
		view.RecurrenceText = recurrence.Describe(b.Recurrence.PatternedRecurrence, nil)
	}
	return view
}

// List returns bookings.
func (s *BookingService) List(ctx context.Context, req BookingListRequest) ([]BookingView, *models.Pagination, error) {
	filter := models.BookingFilter{
		RoomID:   req.RoomID,
		Day:      req.Day,
		From:     req.From,
		To:       req.To,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	bookings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list bookings")
	}
	views := make([]BookingView, len(bookings))
	for i, b := range bookings {
		views[i] = newBookingView(b)
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return views, pagination, nil
}

// Get returns a booking by id.
func (s *BookingService) Get(ctx context.Context, id string) (*BookingView, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get booking")
	}
	view := newBookingView(*booking)
	return &view, nil
}

// Create registers a new booking, validating any recurrence rule against the
// booking's own start.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (*BookingView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_time must be after start_time")
	}
	if err := s.ensureRoom(ctx, req.RoomID); err != nil {
		return nil, err
	}

	status := models.BookingStatus(req.Status)
	if req.Status == "" {
		status = models.BookingConfirmed
	}
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown booking status")
	}

	booking := &models.Booking{
		RoomID:         req.RoomID,
		Title:          req.Title,
		OrganizerEmail: req.OrganizerEmail,
		Status:         status,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
	}

	if req.Recurrence != nil {
		rec, err := s.commitRecurrence(*req.Recurrence, req.StartTime, req.EndTime)
		if err != nil {
			return nil, err
		}
		booking.Recurrence = models.NewRecurrenceValue(rec)
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create booking")
	}
	s.invalidateTimeline(ctx)
	view := newBookingView(*booking)
	return &view, nil
}

// Update modifies a booking. The recurrence rule is replaced wholesale; a nil
// request field releases it.
func (s *BookingService) Update(ctx context.Context, id string, req UpdateBookingRequest) (*BookingView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_time must be after start_time")
	}
	if err := s.ensureRoom(ctx, req.RoomID); err != nil {
		return nil, err
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load booking")
	}

	booking.RoomID = req.RoomID
	booking.Title = req.Title
	booking.OrganizerEmail = req.OrganizerEmail
	booking.StartTime = req.StartTime
	booking.EndTime = req.EndTime
	if req.Status != "" {
		status := models.BookingStatus(req.Status)
		if !status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown booking status")
		}
		booking.Status = status
	}

	booking.Recurrence = nil
	if req.Recurrence != nil {
		rec, err := s.commitRecurrence(*req.Recurrence, req.StartTime, req.EndTime)
		if err != nil {
			return nil, err
		}
		booking.Recurrence = models.NewRecurrenceValue(rec)
	}

	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update booking")
	}
	s.invalidateTimeline(ctx)
	view := newBookingView(*booking)
	return &view, nil
}

// Delete removes a booking.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete booking")
	}
	s.invalidateTimeline(ctx)
	return nil
}

// Occurrences previews the concrete dates a recurring booking materializes on
// within the window.
func (s *BookingService) Occurrences(ctx context.Context, id string, from, to time.Time) ([]time.Time, bool, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load booking")
	}
	if booking.Recurrence == nil {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "booking has no recurrence")
	}

	occurrences, truncated, err := recurrence.Expand(booking.Recurrence.PatternedRecurrence, recurrence.ExpandConfig{
		RangeStart: from,
		RangeEnd:   to,
	})
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to expand recurrence")
	}
	return occurrences, truncated, nil
}

// commitRecurrence runs the request through the draft state machine and
// returns the normalized rule. Field-scoped problems surface as a validation
// error carrying the per-field messages.
func (s *BookingService) commitRecurrence(req RecurrenceRequest, start, end time.Time) (recurrence.PatternedRecurrence, error) {
	draft, fieldErr := draftFromRequest(req, start)
	if fieldErr != nil {
		return recurrence.PatternedRecurrence{}, fieldErr
	}

	rec, errs := recurrence.Validate(draft, start, func() error {
		if !end.After(start) {
			return fmt.Errorf("booking end must be after its start")
		}
		return nil
	})
	if !errs.Empty() {
		return recurrence.PatternedRecurrence{}, appErrors.
			Clone(appErrors.ErrValidation, "invalid recurrence").
			WithFields(errs)
	}
	return rec, nil
}

// draftFromRequest builds the editing draft: SetType installs the variant's
// defaults, then the request's own fields overwrite them.
func draftFromRequest(req RecurrenceRequest, start time.Time) (recurrence.Draft, *appErrors.Error) {
	patternType := recurrence.PatternType(req.Type)
	if !patternType.Valid() {
		return recurrence.Draft{}, appErrors.Clone(appErrors.ErrValidation, "unknown recurrence type").
			WithFields(map[string]string{"pattern.type": "unknown recurrence type"})
	}

	draft := recurrence.NewDraft(recurrence.DateOf(start))
	draft.SetType(patternType)
	// days_of_week is the complete selection; the variant's preselected
	// weekday must not merge into it.
	draft.Weekdays = make(map[recurrence.Weekday]bool)
	if req.Interval > 0 {
		draft.Interval = req.Interval
	}
	for _, raw := range req.DaysOfWeek {
		day := recurrence.Weekday(raw)
		if !day.Valid() {
			return recurrence.Draft{}, appErrors.Clone(appErrors.ErrValidation, "unknown weekday").
				WithFields(map[string]string{"pattern.daysOfWeek": fmt.Sprintf("unknown weekday %q", raw)})
		}
		draft.Weekdays[day] = true
	}
	if req.DayOfMonth > 0 {
		draft.DayOfMonth = req.DayOfMonth
	}
	if req.Index != "" {
		draft.Index = recurrence.WeekIndex(req.Index)
	}
	if req.Month > 0 {
		draft.Month = time.Month(req.Month)
	}

	switch recurrence.RangeType(req.RangeType) {
	case recurrence.RangeEndDate:
		draft.Range.Type = recurrence.RangeEndDate
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return recurrence.Draft{}, appErrors.Clone(appErrors.ErrValidation, "invalid recurrence end date").
				WithFields(map[string]string{"range.endDate": "expected YYYY-MM-DD"})
		}
		draft.Range.EndDate = recurrence.DateOf(end)
	case recurrence.RangeNumbered:
		draft.Range.Type = recurrence.RangeNumbered
		draft.Range.NumberOfOccurrences = req.NumberOfOccurrences
	default:
		return recurrence.Draft{}, appErrors.Clone(appErrors.ErrValidation, "unknown recurrence range type").
			WithFields(map[string]string{"range.type": "unknown recurrence range type"})
	}

	return draft, nil
}

func (s *BookingService) ensureRoom(ctx context.Context, roomID string) error {
	if s.rooms == nil {
		return nil
	}
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrValidation, "room does not exist")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}
	return nil
}

func (s *BookingService) invalidateTimeline(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, "timeline:*")
	}
}
