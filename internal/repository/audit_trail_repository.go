package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/domain"
)

// AuditTrailRepository is the append-only sink for ticket audit entries.
type AuditTrailRepository interface {
	Create(ctx context.Context, entry *domain.AuditTrail) error
	ListByTicket(ctx context.Context, ticketID string, limit, offset int) ([]*domain.AuditTrail, error)
}

type auditTrailRepository struct {
	pool *pgxpool.Pool
}

// NewAuditTrailRepository instantiates the repository.
func NewAuditTrailRepository(pool *pgxpool.Pool) AuditTrailRepository {
	return &auditTrailRepository{pool: pool}
}

func (r *auditTrailRepository) Create(ctx context.Context, entry *domain.AuditTrail) error {
	const query = `
        INSERT INTO audit_trails (ticket_id, actor_id, action, details, occurred_at)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		entry.TicketID,
		entry.ActorID,
		entry.Action,
		entry.Details,
		entry.OccurredAt,
	).Scan(&entry.ID)
}

func (r *auditTrailRepository) ListByTicket(ctx context.Context, ticketID string, limit, offset int) ([]*domain.AuditTrail, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, ticket_id, actor_id, action, details, occurred_at
        FROM audit_trails WHERE ticket_id=$1
        ORDER BY occurred_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, ticketID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.AuditTrail
	for rows.Next() {
		var entry domain.AuditTrail
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.ActorID,
			&entry.Action,
			&entry.Details,
			&entry.OccurredAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &entry)
	}
	return result, rows.Err()
}
