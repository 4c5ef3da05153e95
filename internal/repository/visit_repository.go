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

// VisitRepository persists visitor appointments.
type VisitRepository struct {
	db *sqlx.DB
}

// NewVisitRepository constructs a visit repository.
func NewVisitRepository(db *sqlx.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

const visitColumns = `id, room_id, visitor_name, visitor_email, company, host_name, purpose, status,
scheduled_start, scheduled_end, checked_in_at, checked_out_at, created_at, updated_at`

// List returns visits matching filters.
func (r *VisitRepository) List(ctx context.Context, filter models.VisitFilter) ([]models.Visit, int, error) {
	base := "FROM visits"
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Day != nil {
		dayStart := time.Date(filter.Day.Year(), filter.Day.Month(), filter.Day.Day(), 0, 0, 0, 0, filter.Day.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)
		where = append(where, fmt.Sprintf("scheduled_end > $%d AND scheduled_start < $%d", len(args)+1, len(args)+2))
		args = append(args, dayStart, dayEnd)
	}
	if filter.RoomID != "" {
		where = append(where, fmt.Sprintf("room_id = $%d", len(args)+1))
		args = append(args, filter.RoomID)
	}
	if len(filter.Status) > 0 {
		statuses := make([]string, len(filter.Status))
		for i, s := range filter.Status {
			statuses[i] = string(s)
		}
		where = append(where, fmt.Sprintf("status = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(statuses))
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(visitor_name ILIKE $%d OR host_name ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+filter.Search+"%")
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

	query := fmt.Sprintf(`SELECT %s %s WHERE %s ORDER BY scheduled_start ASC LIMIT %d OFFSET %d`,
		visitColumns, base, whereClause, size, offset)
	var visits []models.Visit
	if err := r.db.SelectContext(ctx, &visits, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list visits: %w", err)
	}
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count visits: %w", err)
	}
	return visits, total, nil
}

// GetByID fetches a visit.
func (r *VisitRepository) GetByID(ctx context.Context, id string) (*models.Visit, error) {
	query := fmt.Sprintf(`SELECT %s FROM visits WHERE id = $1`, visitColumns)
	var visit models.Visit
	if err := r.db.GetContext(ctx, &visit, query, id); err != nil {
		return nil, err
	}
	return &visit, nil
}

// Create inserts a visit.
func (r *VisitRepository) Create(ctx context.Context, visit *models.Visit) error {
	if visit.ID == "" {
		visit.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if visit.CreatedAt.IsZero() {
		visit.CreatedAt = now
	}
	visit.UpdatedAt = now
	query := `INSERT INTO visits (id, room_id, visitor_name, visitor_email, company, host_name, purpose, status,
scheduled_start, scheduled_end, checked_in_at, checked_out_at, created_at, updated_at)
VALUES (:id, :room_id, :visitor_name, :visitor_email, :company, :host_name, :purpose, :status,
:scheduled_start, :scheduled_end, :checked_in_at, :checked_out_at, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, visit); err != nil {
		return fmt.Errorf("create visit: %w", err)
	}
	return nil
}

// Update modifies a visit.
func (r *VisitRepository) Update(ctx context.Context, visit *models.Visit) error {
	visit.UpdatedAt = time.Now().UTC()
	query := `UPDATE visits SET room_id = :room_id, visitor_name = :visitor_name, visitor_email = :visitor_email,
company = :company, host_name = :host_name, purpose = :purpose, status = :status,
scheduled_start = :scheduled_start, scheduled_end = :scheduled_end,
checked_in_at = :checked_in_at, checked_out_at = :checked_out_at, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, visit); err != nil {
		return fmt.Errorf("update visit: %w", err)
	}
	return nil
}

// Delete removes a visit.
func (r *VisitRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM visits WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete visit: %w", err)
	}
	return nil
}
