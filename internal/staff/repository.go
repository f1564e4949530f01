package staff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing staff data from storage.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Staff, error)
	GetByID(ctx context.Context, id int64) (*Staff, error)
	Create(ctx context.Context, s *Staff) error
	UpdateLastLogin(ctx context.Context, id int64, t time.Time) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const staffColumns = "id, email, password_hash, display_name, created_at, last_login_at, is_active, is_admin"

func scanStaff(row pgx.Row) (*Staff, error) {
	var s Staff
	err := row.Scan(
		&s.ID, &s.Email, &s.PasswordHash, &s.DisplayName,
		&s.CreatedAt, &s.LastLoginAt, &s.IsActive, &s.IsAdmin,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *pgxRepository) GetByEmail(ctx context.Context, email string) (*Staff, error) {
	query := fmt.Sprintf(`SELECT %s FROM public.staff WHERE email = $1`, staffColumns)

	s, err := scanStaff(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get staff by email failed: %w", err)
	}
	return s, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Staff, error) {
	query := fmt.Sprintf(`SELECT %s FROM public.staff WHERE id = $1`, staffColumns)

	s, err := scanStaff(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get staff failed: %w", err)
	}
	return s, nil
}

func (r *pgxRepository) Create(ctx context.Context, s *Staff) error {
	const query = `
		INSERT INTO public.staff (email, password_hash, display_name, is_active, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, s.Email, s.PasswordHash, s.DisplayName, s.IsActive, s.IsAdmin).
		Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create staff failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) UpdateLastLogin(ctx context.Context, id int64, t time.Time) error {
	const query = `UPDATE public.staff SET last_login_at = $1 WHERE id = $2`

	if _, err := r.pool.Exec(ctx, query, t, id); err != nil {
		return fmt.Errorf("update staff last login failed: %w", err)
	}
	return nil
}
