package dto

// TimelineBox is the render geometry for one interval on a room lane:
// everything the frontend needs to draw a rectangle.
type TimelineBox struct {
	OffsetX     float64 `json:"offset_x"`
	Width       float64 `json:"width"`
	RowIndex    int     `json:"row_index"`
	StyleClass  string  `json:"style_class"`
	SpansBefore bool    `json:"spans_before"`
	SpansAfter  bool    `json:"spans_after"`
	Start       int64   `json:"start"`
	End         int64   `json:"end"`
	SourceID    string  `json:"source_id"`
	Label       string  `json:"label,omitempty"`
}

// TimelineLane is one room's stacked day timeline.
type TimelineLane struct {
	RoomID    string        `json:"room_id"`
	RoomName  string        `json:"room_name"`
	RoomEmail string        `json:"room_email"`
	RowCount  int           `json:"row_count"`
	Boxes     []TimelineBox `json:"boxes"`
}

// TimelineResponse is the full day view across rooms.
type TimelineResponse struct {
	Date  string         `json:"date"`
	Style string         `json:"style"`
	Lanes []TimelineLane `json:"lanes"`
}

// TimelineClickRequest maps a clicked layout offset back to a timestamp.
type TimelineClickRequest struct {
	RoomID  string  `json:"room_id" binding:"required"`
	Date    string  `json:"date" binding:"required"`
	OffsetX float64 `json:"offset_x"`
	Style   string  `json:"style"`
}

// TimelineClickResponse is the snapped create-booking suggestion.
type TimelineClickResponse struct {
	RoomID    string `json:"room_id"`
	Timestamp int64  `json:"timestamp"`
}
