package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/visitdesk/visitdesk-api/internal/recurrence"
)

// BookingStatus tracks whether a booking still occupies its room slot.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingTentative BookingStatus = "TENTATIVE"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Valid reports whether the status is known.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingConfirmed, BookingTentative, BookingCancelled:
		return true
	}
	return false
}

// Booking represents a meeting-room reservation. Recurrence is optional and
// replaced wholesale on edit; releasing recurrence stores NULL.
type Booking struct {
	ID             string           `db:"id" json:"id"`
	RoomID         string           `db:"room_id" json:"room_id"`
	Title          string           `db:"title" json:"title"`
	OrganizerEmail string           `db:"organizer_email" json:"organizer_email"`
	Status         BookingStatus    `db:"status" json:"status"`
	StartTime      time.Time        `db:"start_time" json:"start_time"`
	EndTime        time.Time        `db:"end_time" json:"end_time"`
	Recurrence     *RecurrenceValue `db:"recurrence" json:"recurrence,omitempty"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at" json:"updated_at"`
}

// BookingFilter describes query params for listing bookings.
type BookingFilter struct {
	RoomID   string
	Day      *time.Time
	From     *time.Time
	To       *time.Time
	Status   []BookingStatus
	Page     int
	PageSize int
}

// RecurrenceValue stores a PatternedRecurrence in a JSONB column while
// keeping the exact wire shape in API payloads.
type RecurrenceValue struct {
	recurrence.PatternedRecurrence
}

// NewRecurrenceValue wraps a recurrence for persistence.
func NewRecurrenceValue(rec recurrence.PatternedRecurrence) *RecurrenceValue {
	return &RecurrenceValue{PatternedRecurrence: rec}
}

// Value implements driver.Valuer.
func (v RecurrenceValue) Value() (driver.Value, error) {
	raw, err := json.Marshal(v.PatternedRecurrence)
	if err != nil {
		return nil, fmt.Errorf("marshal recurrence: %w", err)
	}
	return raw, nil
}

// Scan implements sql.Scanner.
func (v *RecurrenceValue) Scan(src interface{}) error {
	if src == nil {
		return nil
	}
	var raw []byte
	switch typed := src.(type) {
	case []byte:
		raw = typed
	case string:
		raw = []byte(typed)
	default:
		return fmt.Errorf("scan recurrence: unsupported type %T", src)
	}
	return json.Unmarshal(raw, &v.PatternedRecurrence)
}

// MarshalJSON keeps the wire shape of the embedded recurrence.
func (v RecurrenceValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.PatternedRecurrence)
}

// UnmarshalJSON keeps the wire shape of the embedded recurrence.
func (v *RecurrenceValue) UnmarshalJSON(raw []byte) error {
	return json.Unmarshal(raw, &v.PatternedRecurrence)
}
