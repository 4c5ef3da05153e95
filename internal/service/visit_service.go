package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/visitdesk/visitdesk-api/internal/models"
	appErrors "github.com/visitdesk/visitdesk-api/pkg/errors"
)

type visitRepository interface {
	List(ctx context.Context, filter models.VisitFilter) ([]models.Visit, int, error)
	GetByID(ctx context.Context, id string) (*models.Visit, error)
	Create(ctx context.Context, visit *models.Visit) error
	Update(ctx context.Context, visit *models.Visit) error
	Delete(ctx context.Context, id string) error
}

// VisitService manages visitor appointments and the front-desk check-in flow.
type VisitService struct {
	repo      visitRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewVisitService constructs the service. The clock is injectable for tests;
// nil falls back to time.Now.
func NewVisitService(repo visitRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger, now func() time.Time) *VisitService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &VisitService{repo: repo, cache: cache, validator: validate, logger: logger, now: now}
}

// VisitListRequest describes filters for listing visits.
type VisitListRequest struct {
	Day      *time.Time `json:"day"`
	RoomID   string     `json:"room_id"`
	Status   []string   `json:"status"`
	Search   string     `json:"search"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// CreateVisitRequest describes a pre-registration payload.
type CreateVisitRequest struct {
	RoomID         *string   `json:"room_id"`
	VisitorName    string    `json:"visitor_name" validate:"required"`
	VisitorEmail   *string   `json:"visitor_email" validate:"omitempty,email"`
	Company        *string   `json:"company"`
	HostName       string    `json:"host_name" validate:"required"`
	Purpose        *string   `json:"purpose"`
	ScheduledStart time.Time `json:"scheduled_start" validate:"required"`
	ScheduledEnd   time.Time `json:"scheduled_end" validate:"required"`
}

// List returns visits.
func (s *VisitService) List(ctx context.Context, req VisitListRequest) ([]models.Visit, *models.Pagination, error) {
	filter := models.VisitFilter{
		Day:      req.Day,
		RoomID:   req.RoomID,
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	for _, raw := range req.Status {
		status := models.VisitStatus(raw)
		if !status.Valid() {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, "unknown visit status")
		}
		filter.Status = append(filter.Status, status)
	}
	visits, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list visits")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return visits, pagination, nil
}

// Get returns a visit by id.
func (s *VisitService) Get(ctx context.Context, id string) (*models.Visit, error) {
	visit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "visit not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get visit")
	}
	return visit, nil
}

// Create pre-registers a visit in the EXPECTED state.
func (s *VisitService) Create(ctx context.Context, req CreateVisitRequest) (*models.Visit, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if !req.ScheduledEnd.After(req.ScheduledStart) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "scheduled_end must be after scheduled_start")
	}
	visit := &models.Visit{
		RoomID:         req.RoomID,
		VisitorName:    req.VisitorName,
		VisitorEmail:   req.VisitorEmail,
		Company:        req.Company,
		HostName:       req.HostName,
		Purpose:        req.Purpose,
		Status:         models.VisitExpected,
		ScheduledStart: req.ScheduledStart,
		ScheduledEnd:   req.ScheduledEnd,
	}
	if err := s.repo.Create(ctx, visit); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create visit")
	}
	s.invalidateTimeline(ctx)
	return visit, nil
}

// CheckIn marks an expected visitor as arrived.
func (s *VisitService) CheckIn(ctx context.Context, id string) (*models.Visit, error) {
	visit, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if visit.Status != models.VisitExpected {
		return nil, appErrors.Clone(appErrors.ErrConflict, "visit is not awaiting check-in")
	}
	now := s.now().UTC()
	visit.Status = models.VisitCheckedIn
	visit.CheckedInAt = &now
	if err := s.repo.Update(ctx, visit); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check in visit")
	}
	s.invalidateTimeline(ctx)
	return visit, nil
}

// CheckOut marks a checked-in visitor as departed.
func (s *VisitService) CheckOut(ctx context.Context, id string) (*models.Visit, error) {
	visit, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if visit.Status != models.VisitCheckedIn {
		return nil, appErrors.Clone(appErrors.ErrConflict, "visit is not checked in")
	}
	now := s.now().UTC()
	visit.Status = models.VisitCheckedOut
	visit.CheckedOutAt = &now
	if err := s.repo.Update(ctx, visit); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check out visit")
	}
	s.invalidateTimeline(ctx)
	return visit, nil
}

// Delete removes a visit.
func (s *VisitService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete visit")
	}
	s.invalidateTimeline(ctx)
	return nil
}

func (s *VisitService) invalidateTimeline(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, "timeline:*")
	}
}
