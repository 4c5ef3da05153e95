package models

import (
	"time"

	"github.com/visitdesk/visitdesk-api/internal/timebar"
)

// ScheduleItem is one occupied slot on a room's timeline. Start and End are
// millisecond epoch integers, matching the wire contract with the frontend.
type ScheduleItem struct {
	Status string `json:"status"`
	Start  int64  `json:"start"`
	End    int64  `json:"end"`
}

// Interval resolves the item's epoch bounds into an absolute interval in the
// given location.
func (i ScheduleItem) Interval(loc *time.Location) timebar.Interval {
	if loc == nil {
		loc = time.UTC
	}
	return timebar.Interval{
		Start: time.UnixMilli(i.Start).In(loc),
		End:   time.UnixMilli(i.End).In(loc),
	}
}

// Schedule is the per-room occupancy record exchanged with the frontend.
// EventsIndex references positions in ScheduleItems row by row so the event
// payloads are not duplicated per stacking row.
type Schedule struct {
	RoomID        string         `json:"roomId"`
	RoomName      string         `json:"roomName"`
	RoomEmail     string         `json:"roomEmail"`
	UsageRange    string         `json:"usageRange"`
	ScheduleItems []ScheduleItem `json:"scheduleItems"`
	EventsIndex   [][]int        `json:"eventsIndex"`
}

// ScheduleDay is one calendar day of one room lane, with items pre-bucketed
// into stacking rows. Built fresh per fetch and never mutated afterwards.
type ScheduleDay struct {
	Day  time.Time        `json:"day"`
	Rows [][]ScheduleItem `json:"rows"`
}
