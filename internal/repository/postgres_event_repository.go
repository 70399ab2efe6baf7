package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Diaconix/event-manager/internal/domain"
)

// eventColumns defines the columns to select for events
const eventColumns = `id, tenant_id, title, COALESCE(description, '') as description,
	starts_at, capacity, open,
	collect_name, collect_phone, collect_email, collect_company, collect_dietary,
	created_at`

// PostgresEventRepository implements EventRepository using PostgreSQL
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgresEventRepository
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

// scanEvent scans a row into an Event struct
func (r *PostgresEventRepository) scanEvent(row pgx.Row) (*domain.Event, error) {
	event := &domain.Event{}
	err := row.Scan(
		&event.ID,
		&event.TenantID,
		&event.Title,
		&event.Description,
		&event.StartsAt,
		&event.Capacity,
		&event.Open,
		&event.FormFields.Name,
		&event.FormFields.Phone,
		&event.FormFields.Email,
		&event.FormFields.Company,
		&event.FormFields.Dietary,
		&event.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return event, nil
}

// Create creates a new event
func (r *PostgresEventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (id, tenant_id, title, description, starts_at, capacity, open,
			collect_name, collect_phone, collect_email, collect_company, collect_dietary,
			created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.TenantID,
		event.Title,
		nullStringOrValue(event.Description),
		event.StartsAt,
		event.Capacity,
		event.Open,
		event.FormFields.Name,
		event.FormFields.Phone,
		event.FormFields.Email,
		event.FormFields.Company,
		event.FormFields.Dietary,
		event.CreatedAt,
	)
	return err
}

// GetByID retrieves an event by ID under the tenant
func (r *PostgresEventRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1 AND tenant_id = $2
	`
	return r.scanEvent(r.pool.QueryRow(ctx, query, id, tenantID))
}

// List retrieves the tenant's events, newest first
func (r *PostgresEventRepository) List(ctx context.Context, tenantID string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		event, err := r.scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// CloseRegistration sets the registration-open flag to false
func (r *PostgresEventRepository) CloseRegistration(ctx context.Context, tenantID, id string) (bool, error) {
	query := `
		UPDATE events
		SET open = false
		WHERE id = $1 AND tenant_id = $2
	`
	result, err := r.pool.Exec(ctx, query, id, tenantID)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

// nullStringOrValue returns nil for empty strings, otherwise returns the value
func nullStringOrValue(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
