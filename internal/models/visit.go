package models

import "time"

// VisitStatus tracks the front-desk lifecycle of a visit.
type VisitStatus string

const (
	VisitExpected   VisitStatus = "EXPECTED"
	VisitCheckedIn  VisitStatus = "CHECKED_IN"
	VisitCheckedOut VisitStatus = "CHECKED_OUT"
)

// Valid reports whether the status is a known lifecycle state.
func (s VisitStatus) Valid() bool {
	switch s {
	case VisitExpected, VisitCheckedIn, VisitCheckedOut:
		return true
	}
	return false
}

// Visit represents a visitor appointment, optionally tied to a room.
type Visit struct {
	ID           string      `db:"id" json:"id"`
	RoomID       *string     `db:"room_id" json:"room_id,omitempty"`
	VisitorName  string      `db:"visitor_name" json:"visitor_name"`
	VisitorEmail *string     `db:"visitor_email" json:"visitor_email,omitempty"`
	Company      *string     `db:"company" json:"company,omitempty"`
	HostName     string      `db:"host_name" json:"host_name"`
	Purpose      *string     `db:"purpose" json:"purpose,omitempty"`
	Status       VisitStatus `db:"status" json:"status"`
	ScheduledStart time.Time `db:"scheduled_start" json:"scheduled_start"`
	ScheduledEnd   time.Time `db:"scheduled_end" json:"scheduled_end"`
	CheckedInAt  *time.Time  `db:"checked_in_at" json:"checked_in_at,omitempty"`
	CheckedOutAt *time.Time  `db:"checked_out_at" json:"checked_out_at,omitempty"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

// VisitFilter narrows down visits for listing and the day sheet.
type VisitFilter struct {
	Day      *time.Time
	RoomID   string
	Status   []VisitStatus
	Search   string
	Page     int
	PageSize int
}
