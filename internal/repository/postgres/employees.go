package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/datelohan/projetorh/internal/domain"
)

const employeeColumns = `e.id, e.full_name, e.cpf, e.position, e.department, e.hired_at, e.base_salary,
		e.manager_id, e.user_id, e.created_at, e.updated_at,
		u.id, u.name, u.email, u.role,
		m.id, m.full_name`

const employeeJoin = `FROM employees e
		LEFT JOIN users u ON u.id = e.user_id
		LEFT JOIN employees m ON m.id = e.manager_id`

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var e domain.Employee
	var userID, userName, userEmail *string
	var userRole *domain.Role
	var managerID, managerName *string
	if err := row.Scan(&e.ID, &e.FullName, &e.CPF, &e.Position, &e.Department, &e.HiredAt, &e.BaseSalary,
		&e.ManagerID, &e.UserID, &e.CreatedAt, &e.UpdatedAt,
		&userID, &userName, &userEmail, &userRole,
		&managerID, &managerName); err != nil {
		return nil, translateError(err)
	}
	if userID != nil {
		e.User = &domain.UserSummary{ID: *userID, Name: *userName, Email: *userEmail, Role: *userRole}
	}
	if managerID != nil {
		e.Manager = &domain.ManagerSummary{ID: *managerID, FullName: *managerName}
	}
	return &e, nil
}

// CreateEmployee inserts an employee and, when account is non-nil, the
// linked user in a single transaction. Duplicate cpf or email rolls the
// whole insert back as ErrConflict.
func (r *Repository) CreateEmployee(ctx context.Context, employee *domain.Employee, account *domain.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return translateError(err)
	}
	defer tx.Rollback(ctx)

	if account != nil {
		const userQuery = `INSERT INTO users (id, name, email, password_hash, role, active, created_at, updated_at)
			VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)`
		if _, err := tx.Exec(ctx, userQuery, account.ID, account.Name, account.Email, account.PasswordHash,
			account.Role, account.Active, account.CreatedAt, account.UpdatedAt); err != nil {
			return translateError(err)
		}
		employee.UserID = &account.ID
	}

	const employeeQuery = `INSERT INTO employees (id, full_name, cpf, position, department, hired_at, base_salary, manager_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	if _, err := tx.Exec(ctx, employeeQuery, employee.ID, employee.FullName, employee.CPF, employee.Position,
		employee.Department, employee.HiredAt, employee.BaseSalary, employee.ManagerID, employee.UserID,
		employee.CreatedAt, employee.UpdatedAt); err != nil {
		return translateError(err)
	}
	return translateError(tx.Commit(ctx))
}

// GetEmployeeByID fetches an employee with its user and manager summaries.
func (r *Repository) GetEmployeeByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` ` + employeeJoin + ` WHERE e.id = $1`
	return scanEmployee(r.pool.QueryRow(ctx, query, id))
}

// ListEmployees returns all employees, newest first.
func (r *Repository) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` ` + employeeJoin + ` ORDER BY e.created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *employee)
	}
	return employees, rows.Err()
}
