package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/visitdesk/visitdesk-api/internal/models"
)

// BookingRepository persists room bookings.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository constructs a booking repository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, room_id, title, organizer_email, status, start_time, end_time, recurrence, created_at, updated_at`

// List returns bookings matching filters.
func (r *BookingRepository) List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, int, error) {
	base := "FROM bookings"
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.RoomID != "" {
		where = append(where, fmt.Sprintf("room_id = $%d", len(args)+1))
		args = append(args, filter.RoomID)
	}
	if filter.Day != nil {
		dayStart := time.Date(filter.Day.Year(), filter.Day.Month(), filter.Day.Day(), 0, 0, 0, 0, filter.Day.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)
		where = append(where, fmt.Sprintf("end_time > $%d AND start_time < $%d", len(args)+1, len(args)+2))
		args = append(args, dayStart, dayEnd)
	}
	if filter.From != nil {
		where = append(where, fmt.Sprintf("end_time > $%d", len(args)+1))
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		where = append(where, fmt.Sprintf("start_time < $%d", len(args)+1))
		args = append(args, *filter.To)
	}
	if len(filter.Status) > 0 {
		statuses := make([]string, len(filter.Status))
		for i, s := range filter.Status {
			statuses[i] = string(s)
		}
		where = append(where, fmt.Sprintf("status = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(statuses))
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s %s WHERE %s ORDER BY start_time ASC LIMIT %d OFFSET %d`,
		bookingColumns, base, whereClause, size, offset)
	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}
	return bookings, total, nil
}

// ListForDay returns the bookings overlapping one calendar day for a set of
// rooms, ordered chronologically. An empty room set means all rooms.
func (r *BookingRepository) ListForDay(ctx context.Context, day time.Time, roomIDs []string) ([]models.Booking, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	where := "end_time > $1 AND start_time < $2 AND status <> 'CANCELLED'"
	args := []interface{}{dayStart, dayEnd}
	if len(roomIDs) > 0 {
		where += " AND room_id = ANY($3)"
		args = append(args, pq.Array(roomIDs))
	}

	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE %s ORDER BY start_time ASC`, bookingColumns, where)
	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("list bookings for day: %w", err)
	}
	return bookings, nil
}

// GetByID fetches a booking.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)
	var booking models.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, err
	}
	return &booking, nil
}

// Create inserts a booking.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now
	query := `INSERT INTO bookings (id, room_id, title, organizer_email, status, start_time, end_time, recurrence, created_at, updated_at)
VALUES (:id, :room_id, :title, :organizer_email, :status, :start_time, :end_time, :recurrence, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, booking); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// Update modifies a booking, replacing its recurrence wholesale.
func (r *BookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	booking.UpdatedAt = time.Now().UTC()
	query := `UPDATE bookings SET room_id = :room_id, title = :title, organizer_email = :organizer_email,
status = :status, start_time = :start_time, end_time = :end_time, recurrence = :recurrence, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, booking); err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	return nil
}

// Delete removes a booking.
func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM bookings WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}
