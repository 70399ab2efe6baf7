package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Diaconix/event-manager/internal/domain"
)

// guestRecordColumns defines the joined columns selected for guest records
const guestRecordColumns = `g.id, t.id, g.name, g.phone, g.email, g.company, g.dietary,
	COALESCE(g.package, '') as package, g.registered_at, t.state, t.checked_in_at`

// PostgresTicketRepository implements TicketRepository using PostgreSQL
type PostgresTicketRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTicketRepository creates a new PostgresTicketRepository
func NewPostgresTicketRepository(pool *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{pool: pool}
}

// scanGuestRecord scans a joined guests/tickets row into a GuestRecord
func (r *PostgresTicketRepository) scanGuestRecord(row pgx.Row) (*domain.GuestRecord, error) {
	rec := &domain.GuestRecord{}
	err := row.Scan(
		&rec.GuestID,
		&rec.TicketID,
		&rec.Name,
		&rec.Phone,
		&rec.Email,
		&rec.Company,
		&rec.Dietary,
		&rec.Package,
		&rec.RegisteredAt,
		&rec.State,
		&rec.CheckedInAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// Issue persists the guest and ticket in one transaction. The event row is
// locked first so the capacity check and the insert cannot interleave with a
// concurrent registration for the same event.
func (r *PostgresTicketRepository) Issue(ctx context.Context, event *domain.Event, guest *domain.Guest, ticket *domain.Ticket) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if event.HasCapacity() {
		var capacity *int
		lockQuery := `
			SELECT capacity
			FROM events
			WHERE id = $1 AND tenant_id = $2
			FOR UPDATE
		`
		if err := tx.QueryRow(ctx, lockQuery, event.ID, event.TenantID).Scan(&capacity); err != nil {
			return err
		}

		if capacity != nil {
			countQuery := `
				SELECT COUNT(*)
				FROM tickets t
				JOIN guests g ON g.id = t.guest_id
				WHERE g.event_id = $1
			`
			var count int
			if err := tx.QueryRow(ctx, countQuery, event.ID).Scan(&count); err != nil {
				return err
			}
			if count+1 > *capacity {
				return ErrCapacityExceeded
			}
		}
	}

	guestQuery := `
		INSERT INTO guests (id, event_id, name, phone, email, company, dietary, package,
			registered_at, retention_deadline)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.Exec(ctx, guestQuery,
		guest.ID,
		guest.EventID,
		guest.Name,
		guest.Phone,
		guest.Email,
		guest.Company,
		guest.Dietary,
		nullStringOrValue(guest.Package),
		guest.RegisteredAt,
		guest.RetentionDeadline,
	)
	if err != nil {
		return err
	}

	ticketQuery := `
		INSERT INTO tickets (id, guest_id, token_verifier, state, issued_at, checked_in_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = tx.Exec(ctx, ticketQuery,
		ticket.ID,
		ticket.GuestID,
		ticket.TokenVerifier,
		ticket.State,
		ticket.IssuedAt,
		ticket.CheckedInAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// CheckIn applies the issued -> checked_in transition as a single conditional
// update keyed on the verifier and the caller's tenant. When the update
// matches nothing, a follow-up read distinguishes an already-checked-in
// ticket from an unknown one; unknown and cross-tenant are the same outcome.
func (r *PostgresTicketRepository) CheckIn(ctx context.Context, tenantID, verifier string, at time.Time) (*domain.GuestRecord, bool, error) {
	updateQuery := `
		UPDATE tickets t
		SET state = $4, checked_in_at = $3
		FROM guests g
		JOIN events e ON e.id = g.event_id
		WHERE t.token_verifier = $1
		  AND t.state = $5
		  AND g.id = t.guest_id
		  AND e.tenant_id = $2
		RETURNING ` + guestRecordColumns + `
	`
	rec, err := r.scanGuestRecord(r.pool.QueryRow(ctx, updateQuery,
		verifier, tenantID, at, domain.TicketStateCheckedIn, domain.TicketStateIssued))
	if err != nil {
		return nil, false, err
	}
	if rec != nil {
		return rec, true, nil
	}

	// No transition happened: either the ticket is already checked in, or the
	// verifier does not resolve under this tenant.
	selectQuery := `
		SELECT ` + guestRecordColumns + `
		FROM tickets t
		JOIN guests g ON g.id = t.guest_id
		JOIN events e ON e.id = g.event_id
		WHERE t.token_verifier = $1 AND e.tenant_id = $2
	`
	rec, err = r.scanGuestRecord(r.pool.QueryRow(ctx, selectQuery, verifier, tenantID))
	if err != nil {
		return nil, false, err
	}
	if rec == nil || rec.State != domain.TicketStateCheckedIn {
		return nil, false, nil
	}
	return rec, false, nil
}

// ListGuests returns the event's guest records, ordered by registration time
func (r *PostgresTicketRepository) ListGuests(ctx context.Context, tenantID, eventID string) ([]*domain.GuestRecord, error) {
	query := `
		SELECT ` + guestRecordColumns + `
		FROM guests g
		JOIN tickets t ON t.guest_id = g.id
		JOIN events e ON e.id = g.event_id
		WHERE e.id = $1 AND e.tenant_id = $2
		ORDER BY g.registered_at ASC
	`
	rows, err := r.pool.Query(ctx, query, eventID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.GuestRecord, 0)
	for rows.Next() {
		rec, err := r.scanGuestRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Stats returns the event's aggregate counts. The counts are over ticket
// rows, which retention scrubbing never deletes, so they stay correct after
// personal fields are erased.
func (r *PostgresTicketRepository) Stats(ctx context.Context, tenantID, eventID string) (*domain.EventStats, error) {
	query := `
		SELECT COUNT(t.id), COUNT(t.checked_in_at)
		FROM events e
		LEFT JOIN guests g ON g.event_id = e.id
		LEFT JOIN tickets t ON t.guest_id = g.id
		WHERE e.id = $1 AND e.tenant_id = $2
		GROUP BY e.id
	`
	stats := &domain.EventStats{}
	err := r.pool.QueryRow(ctx, query, eventID, tenantID).Scan(&stats.Registered, &stats.CheckedIn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return stats, nil
}

// ScheduleDeletion sets the guest's retention deadline under the tenant
func (r *PostgresTicketRepository) ScheduleDeletion(ctx context.Context, tenantID, guestID string, deadline time.Time) (bool, error) {
	query := `
		UPDATE guests g
		SET retention_deadline = $3
		FROM events e
		WHERE g.id = $1 AND e.id = g.event_id AND e.tenant_id = $2
	`
	result, err := r.pool.Exec(ctx, query, guestID, tenantID, deadline)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

// ScrubDue erases personal fields of guests whose deadline has passed. Each
// guest is scrubbed in its own short transaction so the sweep never holds a
// lock that would block concurrent check-ins, and an interrupted sweep leaves
// no row partially scrubbed.
func (r *PostgresTicketRepository) ScrubDue(ctx context.Context, now time.Time, limit int) (int, error) {
	dueQuery := `
		SELECT g.id
		FROM guests g
		WHERE g.retention_deadline IS NOT NULL
		  AND g.retention_deadline <= $1
		  AND (g.name IS NOT NULL OR g.phone IS NOT NULL OR g.email IS NOT NULL
		       OR g.company IS NOT NULL OR g.dietary IS NOT NULL)
		ORDER BY g.retention_deadline ASC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, dueQuery, now, limit)
	if err != nil {
		return 0, err
	}
	due := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, err
		}
		due = append(due, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	scrubbed := 0
	for _, guestID := range due {
		ok, err := r.scrubGuest(ctx, guestID)
		if err != nil {
			return scrubbed, err
		}
		if ok {
			scrubbed++
		}
	}
	return scrubbed, nil
}

// scrubGuest nulls one guest's personal fields and invalidates the ticket
// verifier in a single transaction. The WHERE clause re-checks that the
// guest still has personal data, so a concurrent sweep cannot double-count.
func (r *PostgresTicketRepository) scrubGuest(ctx context.Context, guestID string) (bool, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	guestQuery := `
		UPDATE guests
		SET name = NULL, phone = NULL, email = NULL, company = NULL, dietary = NULL
		WHERE id = $1
		  AND (name IS NOT NULL OR phone IS NOT NULL OR email IS NOT NULL
		       OR company IS NOT NULL OR dietary IS NOT NULL)
	`
	result, err := tx.Exec(ctx, guestQuery, guestID)
	if err != nil {
		return false, err
	}
	if result.RowsAffected() == 0 {
		return false, nil
	}

	// The marker keeps the uniqueness constraint satisfied while being
	// unmatchable by any real verifier, which is always raw hex.
	ticketQuery := `
		UPDATE tickets
		SET token_verifier = 'scrubbed:' || id
		WHERE guest_id = $1 AND token_verifier NOT LIKE 'scrubbed:%'
	`
	if _, err := tx.Exec(ctx, ticketQuery, guestID); err != nil {
		return false, err
	}

	return true, tx.Commit(ctx)
}
