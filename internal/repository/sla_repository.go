package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/domain"
)

// SLARepository encapsulates SLA persistence. Many SLAs may exist per area,
// one per priority.
type SLARepository interface {
	Create(ctx context.Context, sla *domain.SLA) error
	Update(ctx context.Context, sla *domain.SLA) error
	GetByID(ctx context.Context, id string) (*domain.SLA, error)
	GetByAreaAndPriority(ctx context.Context, areaID string, priority domain.Priority) (*domain.SLA, error)
	ListByArea(ctx context.Context, areaID string) ([]*domain.SLA, error)
	ListAll(ctx context.Context) ([]*domain.SLA, error)
	Delete(ctx context.Context, id string) error
}

type slaRepository struct {
	pool *pgxpool.Pool
}

// NewSLARepository instantiates the repository.
func NewSLARepository(pool *pgxpool.Pool) SLARepository {
	return &slaRepository{pool: pool}
}

const slaColumns = `id, area_id, priority, response_time_minutes, resolution_time_minutes,
       is_active, created_at, updated_at`

func (r *slaRepository) Create(ctx context.Context, sla *domain.SLA) error {
	const query = `
        INSERT INTO slas (area_id, priority, response_time_minutes, resolution_time_minutes,
            is_active, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		sla.AreaID,
		sla.Priority,
		sla.ResponseTimeMinutes,
		sla.ResolutionTimeMinutes,
		sla.IsActive,
		sla.CreatedAt,
		sla.UpdatedAt,
	).Scan(&sla.ID)
}

func (r *slaRepository) Update(ctx context.Context, sla *domain.SLA) error {
	const query = `
        UPDATE slas SET response_time_minutes=$1, resolution_time_minutes=$2,
            is_active=$3, updated_at=$4
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		sla.ResponseTimeMinutes,
		sla.ResolutionTimeMinutes,
		sla.IsActive,
		sla.UpdatedAt,
		sla.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *slaRepository) GetByID(ctx context.Context, id string) (*domain.SLA, error) {
	query := `SELECT ` + slaColumns + ` FROM slas WHERE id=$1`
	return scanSLA(r.pool.QueryRow(ctx, query, id))
}

func (r *slaRepository) GetByAreaAndPriority(ctx context.Context, areaID string, priority domain.Priority) (*domain.SLA, error) {
	query := `SELECT ` + slaColumns + ` FROM slas WHERE area_id=$1 AND priority=$2 AND is_active`
	return scanSLA(r.pool.QueryRow(ctx, query, areaID, priority))
}

func (r *slaRepository) ListByArea(ctx context.Context, areaID string) ([]*domain.SLA, error) {
	query := `SELECT ` + slaColumns + ` FROM slas WHERE area_id=$1 ORDER BY priority`
	rows, err := r.pool.Query(ctx, query, areaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSLAs(rows)
}

func (r *slaRepository) ListAll(ctx context.Context) ([]*domain.SLA, error) {
	query := `SELECT ` + slaColumns + ` FROM slas ORDER BY area_id, priority`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSLAs(rows)
}

func (r *slaRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM slas WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanSLA(row pgx.Row) (*domain.SLA, error) {
	var sla domain.SLA
	if err := row.Scan(
		&sla.ID,
		&sla.AreaID,
		&sla.Priority,
		&sla.ResponseTimeMinutes,
		&sla.ResolutionTimeMinutes,
		&sla.IsActive,
		&sla.CreatedAt,
		&sla.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sla, nil
}

func scanSLAs(rows pgx.Rows) ([]*domain.SLA, error) {
	var result []*domain.SLA
	for rows.Next() {
		sla, err := scanSLA(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, sla)
	}
	return result, rows.Err()
}
