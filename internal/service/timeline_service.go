package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/visitdesk/visitdesk-api/internal/dto"
	"github.com/visitdesk/visitdesk-api/internal/models"
	"github.com/visitdesk/visitdesk-api/internal/timebar"
	"github.com/visitdesk/visitdesk-api/pkg/config"
	appErrors "github.com/visitdesk/visitdesk-api/pkg/errors"
)

const (
	// StyleBusiness shows 08:00-20:00 with the layout origin at 08:00.
	StyleBusiness = "business"
	// StyleFull shows the whole day from midnight.
	StyleFull = "full"

	defaultPixelsPerHour = 60
)

type timelineRoomRepository interface {
	ListActive(ctx context.Context) ([]models.Room, error)
	GetByID(ctx context.Context, id string) (*models.Room, error)
}

type timelineBookingRepository interface {
	ListForDay(ctx context.Context, day time.Time, roomIDs []string) ([]models.Booking, error)
}

type timelineVisitRepository interface {
	List(ctx context.Context, filter models.VisitFilter) ([]models.Visit, int, error)
}

// TimelineService assembles the per-day render geometry: it loads every active
// room, overlays that day's bookings and room-bound visits, stacks overlapping
// slots into rows and converts each slot into layout coordinates.
type TimelineService struct {
	rooms    timelineRoomRepository
	bookings timelineBookingRepository
	visits   timelineVisitRepository
	cache    *CacheService
	metrics  *MetricsService
	cfg      config.TimelineConfig
	logger   *zap.Logger
}

// NewTimelineService constructs the service.
func NewTimelineService(rooms timelineRoomRepository, bookings timelineBookingRepository, visits timelineVisitRepository,
	cache *CacheService, metrics *MetricsService, cfg config.TimelineConfig, logger *zap.Logger) *TimelineService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimelineService{
		rooms:    rooms,
		bookings: bookings,
		visits:   visits,
		cache:    cache,
		metrics:  metrics,
		cfg:      cfg,
		logger:   logger,
	}
}

// TimelineRequest selects the day and display mode to render.
type TimelineRequest struct {
	Date          string  `json:"date"`
	Style         string  `json:"style"`
	PixelsPerHour float64 `json:"pixels_per_hour"`
}

// timelineSlot is one interval awaiting geometry, with enough metadata to
// label the resulting box.
type timelineSlot struct {
	interval   timebar.Interval
	sourceID   string
	label      string
	styleClass string
}

// BuildDay renders the full day view for every active room.
func (s *TimelineService) BuildDay(ctx context.Context, req TimelineRequest) (*dto.TimelineResponse, error) {
	day, err := parseDay(req.Date)
	if err != nil {
		return nil, err
	}
	styleName, style, err := resolveStyle(req.Style, req.PixelsPerHour)
	if err != nil {
		return nil, err
	}

	// The geometry scales with pixels-per-hour, so the resolved scale is part
	// of the cache identity.
	cacheKey := fmt.Sprintf("timeline:%s:%s:%g", day.Format("2006-01-02"), styleName, style.PixelsPerHour)
	if s.cache.Enabled() {
		var cached dto.TimelineResponse
		if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
			return &cached, nil
		}
	}

	started := time.Now()

	rooms, err := s.rooms.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}

	roomIDs := make([]string, len(rooms))
	for i, room := range rooms {
		roomIDs[i] = room.ID
	}

	bookings, err := s.bookings.ListForDay(ctx, day, roomIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bookings")
	}
	visits, _, err := s.visits.List(ctx, models.VisitFilter{Day: &day, Page: 1, PageSize: 1000})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load visits")
	}

	slotsByRoom := groupSlots(bookings, visits)

	response := &dto.TimelineResponse{
		Date:  day.Format("2006-01-02"),
		Style: styleName,
		Lanes: make([]dto.TimelineLane, 0, len(rooms)),
	}
	for _, room := range rooms {
		lane, err := buildLane(room, slotsByRoom[room.ID], day, style)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build timeline lane")
		}
		response.Lanes = append(response.Lanes, lane)
	}

	if s.metrics != nil {
		s.metrics.ObserveTimelineBuild(styleName, time.Since(started))
	}
	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, cacheKey, response, s.cfg.CacheTTL)
	}
	return response, nil
}

// ResolveClick converts a clicked layout offset back into a snapped timestamp
// suitable for pre-filling a booking form.
func (s *TimelineService) ResolveClick(ctx context.Context, req dto.TimelineClickRequest) (*dto.TimelineClickResponse, error) {
	day, err := parseDay(req.Date)
	if err != nil {
		return nil, err
	}
	_, style, err := resolveStyle(req.Style, 0)
	if err != nil {
		return nil, err
	}
	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
	}

	snapped := timebar.OffsetToTime(req.OffsetX, style, day, s.cfg.ClickSnapMinutes)
	return &dto.TimelineClickResponse{
		RoomID:    room.ID,
		Timestamp: snapped.UnixMilli(),
	}, nil
}

// Schedules returns the compact per-room occupancy records for one day. Items
// appear once in ScheduleItems; EventsIndex lists their positions row by row.
func (s *TimelineService) Schedules(ctx context.Context, date string) ([]models.Schedule, error) {
	day, err := parseDay(date)
	if err != nil {
		return nil, err
	}

	rooms, err := s.rooms.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	roomIDs := make([]string, len(rooms))
	for i, room := range rooms {
		roomIDs[i] = room.ID
	}
	bookings, err := s.bookings.ListForDay(ctx, day, roomIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bookings")
	}
	visits, _, err := s.visits.List(ctx, models.VisitFilter{Day: &day, Page: 1, PageSize: 1000})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load visits")
	}

	slotsByRoom := groupSlots(bookings, visits)

	schedules := make([]models.Schedule, 0, len(rooms))
	for _, room := range rooms {
		slots := slotsByRoom[room.ID]
		intervals := make([]timebar.Interval, len(slots))
		items := make([]models.ScheduleItem, len(slots))
		for i, slot := range slots {
			intervals[i] = slot.interval
			items[i] = models.ScheduleItem{
				Status: slot.styleClass,
				Start:  slot.interval.Start.UnixMilli(),
				End:    slot.interval.End.UnixMilli(),
			}
		}
		rows, err := timebar.AssignRowIndices(intervals)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to stack schedule rows")
		}
		if rows == nil {
			rows = [][]int{}
		}
		schedules = append(schedules, models.Schedule{
			RoomID:        room.ID,
			RoomName:      room.Name,
			RoomEmail:     room.Email,
			UsageRange:    day.Format("2006-01-02"),
			ScheduleItems: items,
			EventsIndex:   rows,
		})
	}
	return schedules, nil
}

// groupSlots merges bookings and room-bound visits into per-room slot lists.
// Cancelled bookings never reach here; visits without a room are front-desk
// only and stay off the timeline.
func groupSlots(bookings []models.Booking, visits []models.Visit) map[string][]timelineSlot {
	byRoom := make(map[string][]timelineSlot)
	for _, b := range bookings {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], timelineSlot{
			interval:   timebar.Interval{Start: b.StartTime, End: b.EndTime},
			sourceID:   b.ID,
			label:      b.Title,
			styleClass: bookingStyleClass(b.Status),
		})
	}
	for _, v := range visits {
		if v.RoomID == nil {
			continue
		}
		byRoom[*v.RoomID] = append(byRoom[*v.RoomID], timelineSlot{
			interval:   timebar.Interval{Start: v.ScheduledStart, End: v.ScheduledEnd},
			sourceID:   v.ID,
			label:      v.VisitorName,
			styleClass: visitStyleClass(v.Status),
		})
	}
	return byRoom
}

func buildLane(room models.Room, slots []timelineSlot, day time.Time, style timebar.BoxStyle) (dto.TimelineLane, error) {
	lane := dto.TimelineLane{
		RoomID:    room.ID,
		RoomName:  room.Name,
		RoomEmail: room.Email,
		Boxes:     []dto.TimelineBox{},
	}

	intervals := make([]timebar.Interval, len(slots))
	for i, slot := range slots {
		intervals[i] = slot.interval
	}
	rows, err := timebar.AssignRowIndices(intervals)
	if err != nil {
		return dto.TimelineLane{}, err
	}
	lane.RowCount = len(rows)

	for rowIndex, indices := range rows {
		for _, idx := range indices {
			slot := slots[idx]
			segment, err := timebar.ClipToDay(slot.interval, day, style)
			if err != nil {
				return dto.TimelineLane{}, err
			}
			if segment.Width == 0 && !segment.SpansBefore && !segment.SpansAfter &&
				!slot.interval.Overlaps(timebar.Interval{Start: timebar.StartOfDay(day), End: timebar.EndOfDay(day)}) {
				continue
			}
			lane.Boxes = append(lane.Boxes, dto.TimelineBox{
				OffsetX:     segment.OffsetStart,
				Width:       segment.Width,
				RowIndex:    rowIndex,
				StyleClass:  slot.styleClass,
				SpansBefore: segment.SpansBefore,
				SpansAfter:  segment.SpansAfter,
				Start:       slot.interval.Start.UnixMilli(),
				End:         slot.interval.End.UnixMilli(),
				SourceID:    slot.sourceID,
				Label:       slot.label,
			})
		}
	}
	return lane, nil
}

func bookingStyleClass(status models.BookingStatus) string {
	switch status {
	case models.BookingTentative:
		return "booking-tentative"
	default:
		return "booking-confirmed"
	}
}

func visitStyleClass(status models.VisitStatus) string {
	switch status {
	case models.VisitCheckedIn:
		return "visit-checked-in"
	case models.VisitCheckedOut:
		return "visit-checked-out"
	default:
		return "visit-expected"
	}
}

func parseDay(raw string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "date must be formatted as YYYY-MM-DD")
	}
	return day, nil
}

func resolveStyle(name string, pixelsPerHour float64) (string, timebar.BoxStyle, error) {
	if pixelsPerHour <= 0 {
		pixelsPerHour = defaultPixelsPerHour
	}
	switch name {
	case "", StyleBusiness:
		return StyleBusiness, timebar.BusinessHoursStyle(pixelsPerHour), nil
	case StyleFull:
		return StyleFull, timebar.FullDayStyle(pixelsPerHour), nil
	}
	return "", timebar.BoxStyle{}, appErrors.Clone(appErrors.ErrValidation, "unknown timeline style")
}
