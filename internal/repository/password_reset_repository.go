package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PasswordReset stores a pending reset token for a user.
type PasswordReset struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// PasswordResetRepository encapsulates reset token persistence.
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *PasswordReset) error
	GetActiveByTokenHash(ctx context.Context, tokenHash string) (*PasswordReset, error)
	MarkUsed(ctx context.Context, id string) error
}

type passwordResetRepository struct {
	pool *pgxpool.Pool
}

// NewPasswordResetRepository instantiates the repository.
func NewPasswordResetRepository(pool *pgxpool.Pool) PasswordResetRepository {
	return &passwordResetRepository{pool: pool}
}

func (r *passwordResetRepository) Create(ctx context.Context, reset *PasswordReset) error {
	const query = `
        INSERT INTO password_resets (user_id, token_hash, expires_at, created_at)
        VALUES ($1,$2,$3,$4)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		reset.UserID,
		reset.TokenHash,
		reset.ExpiresAt,
		reset.CreatedAt,
	).Scan(&reset.ID)
}

func (r *passwordResetRepository) GetActiveByTokenHash(ctx context.Context, tokenHash string) (*PasswordReset, error) {
	const query = `
        SELECT id, user_id, token_hash, expires_at, used_at, created_at
        FROM password_resets
        WHERE token_hash=$1 AND used_at IS NULL AND expires_at > NOW()`
	var reset PasswordReset
	if err := r.pool.QueryRow(ctx, query, tokenHash).Scan(
		&reset.ID,
		&reset.UserID,
		&reset.TokenHash,
		&reset.ExpiresAt,
		&reset.UsedAt,
		&reset.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *passwordResetRepository) MarkUsed(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE password_resets SET used_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
