package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/visitdesk/visitdesk-api/internal/service"
	appErrors "github.com/visitdesk/visitdesk-api/pkg/errors"
	"github.com/visitdesk/visitdesk-api/pkg/response"
)

// VisitHandler exposes visitor appointment endpoints including the front-desk
// check-in flow.
type VisitHandler struct {
	visits *service.VisitService
}

// NewVisitHandler constructs VisitHandler.
func NewVisitHandler(visits *service.VisitService) *VisitHandler {
	return &VisitHandler{visits: visits}
}

// List godoc
// @Summary List visits
// @Tags Visits
// @Produce json
// @Param date query string false "Day filter (YYYY-MM-DD)"
// @Param roomId query string false "Filter by room"
// @Param status query string false "Comma-separated statuses"
// @Param search query string false "Search by visitor or host"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /visits [get]
func (h *VisitHandler) List(c *gin.Context) {
	var req service.VisitListRequest
	if raw := c.Query("date"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be formatted as YYYY-MM-DD"))
			return
		}
		req.Day = &day
	}
	req.RoomID = c.Query("roomId")
	req.Search = strings.TrimSpace(c.Query("search"))
	if raw := c.Query("status"); raw != "" {
		req.Status = strings.Split(raw, ",")
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		req.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		req.PageSize = size
	}

	visits, pagination, err := h.visits.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, visits, pagination)
}

// Get godoc
// @Summary Get visit detail
// @Tags Visits
// @Produce json
// @Param id path string true "Visit ID"
// @Success 200 {object} response.Envelope
// @Router /visits/{id} [get]
func (h *VisitHandler) Get(c *gin.Context) {
	visit, err := h.visits.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, visit, nil)
}

// Create godoc
// @Summary Pre-register a visit
// @Tags Visits
// @Accept json
// @Produce json
// @Param payload body service.CreateVisitRequest true "Visit payload"
// @Success 201 {object} response.Envelope
// @Router /visits [post]
func (h *VisitHandler) Create(c *gin.Context) {
	var req service.CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	visit, err := h.visits.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, visit)
}

// CheckIn godoc
// @Summary Check a visitor in
// @Tags Visits
// @Produce json
// @Param id path string true "Visit ID"
// @Success 200 {object} response.Envelope
// @Router /visits/{id}/check-in [post]
func (h *VisitHandler) CheckIn(c *gin.Context) {
	visit, err := h.visits.CheckIn(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, visit, nil)
}

// CheckOut godoc
// @Summary Check a visitor out
// @Tags Visits
// @Produce json
// @Param id path string true "Visit ID"
// @Success 200 {object} response.Envelope
// @Router /visits/{id}/check-out [post]
func (h *VisitHandler) CheckOut(c *gin.Context) {
	visit, err := h.visits.CheckOut(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, visit, nil)
}

// Delete godoc
// @Summary Delete visit
// @Tags Visits
// @Produce json
// @Param id path string true "Visit ID"
// @Success 204
// @Router /visits/{id} [delete]
func (h *VisitHandler) Delete(c *gin.Context) {
	if err := h.visits.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
