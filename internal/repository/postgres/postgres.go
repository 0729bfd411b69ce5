package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/datelohan/projetorh/internal/repository"
)

// Repository implements persistence interfaces on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// New constructs a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ensure Repository satisfies interfaces.
var (
	_ repository.UserRepository      = (*Repository)(nil)
	_ repository.EmployeeRepository  = (*Repository)(nil)
	_ repository.HiringRepository    = (*Repository)(nil)
	_ repository.VacationRepository  = (*Repository)(nil)
	_ repository.ExpenseRepository   = (*Repository)(nil)
	_ repository.PayslipRepository   = (*Repository)(nil)
	_ repository.TimeEntryRepository = (*Repository)(nil)
)

// translateError maps low-level pgx failures onto repository sentinels so
// callers never see raw storage errors for constraint violations.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return repository.ErrConflict
		case "23503":
			return repository.ErrNotFound
		case "23514", "22P02":
			return repository.ErrInvalidArgument
		}
	}
	return err
}
