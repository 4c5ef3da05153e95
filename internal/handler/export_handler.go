package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/visitdesk/visitdesk-api/internal/service"
	"github.com/visitdesk/visitdesk-api/pkg/response"
)

// ExportHandler serves printable front-desk documents.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// DaySheet godoc
// @Summary Download the visitor day sheet as PDF
// @Tags Exports
// @Produce application/pdf
// @Param date query string true "Day to export (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Router /exports/day-sheet [get]
func (h *ExportHandler) DaySheet(c *gin.Context) {
	payload, filename, err := h.exports.DaySheet(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", payload)
}
