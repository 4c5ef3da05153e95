package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/visitdesk/visitdesk-api/internal/models"
	appErrors "github.com/visitdesk/visitdesk-api/pkg/errors"
	"github.com/visitdesk/visitdesk-api/pkg/export"
)

// ExportService produces the front-desk day sheet: every visit for one day as
// a printable PDF.
type ExportService struct {
	visits  visitRepository
	pdf     *export.PDFExporter
	enabled bool
	logger  *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(visits visitRepository, pdf *export.PDFExporter, enabled bool, logger *zap.Logger) *ExportService {
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{visits: visits, pdf: pdf, enabled: enabled, logger: logger}
}

// Enabled reports whether exports are switched on.
func (s *ExportService) Enabled() bool {
	return s != nil && s.enabled
}

// DaySheet renders the visitor day sheet for the given date.
func (s *ExportService) DaySheet(ctx context.Context, date string) ([]byte, string, error) {
	if !s.Enabled() {
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "exports are disabled")
	}
	day, err := parseDay(date)
	if err != nil {
		return nil, "", err
	}

	visits, _, err := s.visits.List(ctx, models.VisitFilter{Day: &day, Page: 1, PageSize: 1000})
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load visits")
	}

	headers := []string{"Visitor", "Company", "Host", "Scheduled", "Status"}
	rows := make([]map[string]string, 0, len(visits))
	for _, v := range visits {
		company := ""
		if v.Company != nil {
			company = *v.Company
		}
		rows = append(rows, map[string]string{
			"Visitor": v.VisitorName,
			"Company": company,
			"Host":    v.HostName,
			"Scheduled": fmt.Sprintf("%s - %s",
				v.ScheduledStart.Format("15:04"), v.ScheduledEnd.Format("15:04")),
			"Status": string(v.Status),
		})
	}

	title := fmt.Sprintf("Visitor day sheet %s", day.Format("2006-01-02"))
	payload, err := s.pdf.Render(export.Dataset{Headers: headers, Rows: rows}, title)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render day sheet")
	}

	filename := fmt.Sprintf("day-sheet-%s-%s.pdf", day.Format("2006-01-02"), time.Now().UTC().Format("150405"))
	s.logger.Info("day sheet rendered", zap.String("date", date), zap.Int("visits", len(visits)))
	return payload, filename, nil
}
