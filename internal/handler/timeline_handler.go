package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/visitdesk/visitdesk-api/internal/dto"
	"github.com/visitdesk/visitdesk-api/internal/service"
	appErrors "github.com/visitdesk/visitdesk-api/pkg/errors"
	"github.com/visitdesk/visitdesk-api/pkg/response"
)

// TimelineHandler exposes the day-view geometry endpoints.
type TimelineHandler struct {
	timeline *service.TimelineService
}

// NewTimelineHandler constructs TimelineHandler.
func NewTimelineHandler(timeline *service.TimelineService) *TimelineHandler {
	return &TimelineHandler{timeline: timeline}
}

// Day godoc
// @Summary Render the day timeline across rooms
// @Tags Timeline
// @Produce json
// @Param date query string true "Day to render (YYYY-MM-DD)"
// @Param style query string false "Display mode: business or full"
// @Param pph query number false "Pixels per hour"
// @Success 200 {object} response.Envelope
// @Router /timeline [get]
func (h *TimelineHandler) Day(c *gin.Context) {
	req := service.TimelineRequest{
		Date:  c.Query("date"),
		Style: c.Query("style"),
	}
	if raw := c.Query("pph"); raw != "" {
		pph, err := strconv.ParseFloat(raw, 64)
		if err != nil || pph <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "pph must be a positive number"))
			return
		}
		req.PixelsPerHour = pph
	}

	timeline, err := h.timeline.BuildDay(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timeline, nil)
}

// Click godoc
// @Summary Resolve a clicked layout offset to a snapped timestamp
// @Tags Timeline
// @Accept json
// @Produce json
// @Param payload body dto.TimelineClickRequest true "Click payload"
// @Success 200 {object} response.Envelope
// @Router /timeline/click [post]
func (h *TimelineHandler) Click(c *gin.Context) {
	var req dto.TimelineClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	resolved, err := h.timeline.ResolveClick(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resolved, nil)
}

// Schedules godoc
// @Summary Per-room occupancy records for one day
// @Tags Timeline
// @Produce json
// @Param date query string true "Day to fetch (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /timeline/schedules [get]
func (h *TimelineHandler) Schedules(c *gin.Context) {
	schedules, err := h.timeline.Schedules(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules, nil)
}
