package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/datelohan/projetorh/internal/domain"
)

const userColumns = `u.id, u.name, u.email, u.password_hash, u.role, u.active, u.created_at, u.updated_at,
		e.id, e.full_name, e.position`

const userJoin = `FROM users u
		LEFT JOIN employees e ON e.user_id = u.id`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var hash *string
	var empID, empName, empPosition *string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &hash, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt,
		&empID, &empName, &empPosition); err != nil {
		return nil, translateError(err)
	}
	if hash != nil {
		u.PasswordHash = *hash
	}
	if empID != nil {
		u.Employee = &domain.EmployeeSummary{ID: *empID, FullName: *empName, Position: *empPosition}
	}
	return &u, nil
}

// CreateUser inserts an account. Duplicate emails surface as ErrConflict.
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	const query = `INSERT INTO users (id, name, email, password_hash, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.Active, user.CreatedAt, user.UpdatedAt)
	return translateError(err)
}

// GetUserByEmail fetches an account by its login key.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` ` + userJoin + ` WHERE u.email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

// GetUserByID fetches an account by identifier.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` ` + userJoin + ` WHERE u.id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

// ListUsers returns all accounts, newest first.
func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` ` + userJoin + ` ORDER BY u.created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// UpdateUser mutates account fields. The password hash is only replaced
// when a non-empty value is provided.
func (r *Repository) UpdateUser(ctx context.Context, user *domain.User) error {
	const query = `UPDATE users
		SET name = $2,
			email = $3,
			role = $4,
			active = $5,
			password_hash = COALESCE(NULLIF($6, ''), password_hash),
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	row := r.pool.QueryRow(ctx, query, user.ID, user.Name, user.Email, user.Role, user.Active, user.PasswordHash)
	if err := row.Scan(&user.UpdatedAt); err != nil {
		return translateError(err)
	}
	return nil
}

// DeleteUser removes an account by identifier.
func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows)
	}
	return nil
}
