package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/domain"
)

// AreaRepository encapsulates area persistence.
type AreaRepository interface {
	Create(ctx context.Context, area *domain.Area) error
	Update(ctx context.Context, area *domain.Area) error
	GetByID(ctx context.Context, id string) (*domain.Area, error)
	GetByName(ctx context.Context, name string) (*domain.Area, error)
	ListAll(ctx context.Context) ([]*domain.Area, error)
	Delete(ctx context.Context, id string) error
}

type areaRepository struct {
	pool *pgxpool.Pool
}

// NewAreaRepository instantiates the repository.
func NewAreaRepository(pool *pgxpool.Pool) AreaRepository {
	return &areaRepository{pool: pool}
}

func (r *areaRepository) Create(ctx context.Context, area *domain.Area) error {
	const query = `
        INSERT INTO areas (name, description, is_active, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		area.Name,
		area.Description,
		area.IsActive,
		area.CreatedAt,
		area.UpdatedAt,
	).Scan(&area.ID)
}

func (r *areaRepository) Update(ctx context.Context, area *domain.Area) error {
	const query = `
        UPDATE areas SET name=$1, description=$2, is_active=$3, updated_at=$4 WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		area.Name,
		area.Description,
		area.IsActive,
		area.UpdatedAt,
		area.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *areaRepository) GetByID(ctx context.Context, id string) (*domain.Area, error) {
	const query = `SELECT id, name, description, is_active, created_at, updated_at FROM areas WHERE id=$1`
	return scanArea(r.pool.QueryRow(ctx, query, id))
}

func (r *areaRepository) GetByName(ctx context.Context, name string) (*domain.Area, error) {
	const query = `SELECT id, name, description, is_active, created_at, updated_at FROM areas WHERE name=$1`
	return scanArea(r.pool.QueryRow(ctx, query, name))
}

func (r *areaRepository) ListAll(ctx context.Context) ([]*domain.Area, error) {
	const query = `SELECT id, name, description, is_active, created_at, updated_at FROM areas ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Area
	for rows.Next() {
		area, err := scanArea(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, area)
	}
	return result, rows.Err()
}

func (r *areaRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM areas WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanArea(row pgx.Row) (*domain.Area, error) {
	var area domain.Area
	if err := row.Scan(
		&area.ID,
		&area.Name,
		&area.Description,
		&area.IsActive,
		&area.CreatedAt,
		&area.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &area, nil
}
