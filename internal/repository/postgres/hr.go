package postgres

import (
	"context"

	"github.com/datelohan/projetorh/internal/domain"
)

// CreateHiringProcess inserts a process and its ordered stages transactionally.
func (r *Repository) CreateHiringProcess(ctx context.Context, process *domain.HiringProcess) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return translateError(err)
	}
	defer tx.Rollback(ctx)

	const processQuery = `INSERT INTO hiring_processes (id, position, candidate_name, candidate_email, status, owner_user_id, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := tx.Exec(ctx, processQuery, process.ID, process.Position, process.CandidateName,
		process.CandidateEmail, process.Status, process.OwnerUserID, process.Notes,
		process.CreatedAt, process.UpdatedAt); err != nil {
		return translateError(err)
	}

	const stageQuery = `INSERT INTO hiring_stages (id, process_id, stage_order, title, status, scheduled_for, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, stage := range process.Stages {
		if _, err := tx.Exec(ctx, stageQuery, stage.ID, process.ID, stage.Order, stage.Title,
			stage.Status, stage.ScheduledFor, stage.CompletedAt); err != nil {
			return translateError(err)
		}
	}
	return translateError(tx.Commit(ctx))
}

// ListHiringProcesses returns processes with stages, newest first.
func (r *Repository) ListHiringProcesses(ctx context.Context) ([]domain.HiringProcess, error) {
	const query = `SELECT id, position, candidate_name, candidate_email, status, owner_user_id, notes, created_at, updated_at
		FROM hiring_processes ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	processes := make([]domain.HiringProcess, 0)
	index := make(map[string]int)
	for rows.Next() {
		var p domain.HiringProcess
		if err := rows.Scan(&p.ID, &p.Position, &p.CandidateName, &p.CandidateEmail, &p.Status,
			&p.OwnerUserID, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, translateError(err)
		}
		p.Stages = make([]domain.HiringStage, 0)
		index[p.ID] = len(processes)
		processes = append(processes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const stagesQuery = `SELECT id, process_id, stage_order, title, status, scheduled_for, completed_at
		FROM hiring_stages ORDER BY process_id, stage_order`
	stageRows, err := r.pool.Query(ctx, stagesQuery)
	if err != nil {
		return nil, translateError(err)
	}
	defer stageRows.Close()

	for stageRows.Next() {
		var s domain.HiringStage
		if err := stageRows.Scan(&s.ID, &s.ProcessID, &s.Order, &s.Title, &s.Status, &s.ScheduledFor, &s.CompletedAt); err != nil {
			return nil, translateError(err)
		}
		if i, ok := index[s.ProcessID]; ok {
			processes[i].Stages = append(processes[i].Stages, s)
		}
	}
	return processes, stageRows.Err()
}

// CreateVacation inserts a vacation request.
func (r *Repository) CreateVacation(ctx context.Context, vacation *domain.Vacation) error {
	const query = `INSERT INTO vacations (id, employee_id, start_date, end_date, days, status, approver_user_id, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query, vacation.ID, vacation.EmployeeID, vacation.Start, vacation.End,
		vacation.Days, vacation.Status, vacation.ApproverUserID, vacation.Notes, vacation.CreatedAt, vacation.UpdatedAt)
	return translateError(err)
}

// ListVacations returns vacation requests, newest first.
func (r *Repository) ListVacations(ctx context.Context) ([]domain.Vacation, error) {
	const query = `SELECT id, employee_id, start_date, end_date, days, status, approver_user_id, notes, created_at, updated_at
		FROM vacations ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	vacations := make([]domain.Vacation, 0)
	for rows.Next() {
		var v domain.Vacation
		if err := rows.Scan(&v.ID, &v.EmployeeID, &v.Start, &v.End, &v.Days, &v.Status,
			&v.ApproverUserID, &v.Notes, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, translateError(err)
		}
		vacations = append(vacations, v)
	}
	return vacations, rows.Err()
}

// CreateExpense inserts a travel expense report entry.
func (r *Repository) CreateExpense(ctx context.Context, expense *domain.Expense) error {
	const query = `INSERT INTO expenses (id, employee_id, category, description, amount, expense_date, status, approver_user_id, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(ctx, query, expense.ID, expense.EmployeeID, expense.Category, expense.Description,
		expense.Amount, expense.ExpenseDate, expense.Status, expense.ApproverUserID, expense.Notes,
		expense.CreatedAt, expense.UpdatedAt)
	return translateError(err)
}

// ListExpenses returns expense entries, newest first.
func (r *Repository) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	const query = `SELECT id, employee_id, category, description, amount, expense_date, status, approver_user_id, notes, created_at, updated_at
		FROM expenses ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	expenses := make([]domain.Expense, 0)
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Category, &e.Description, &e.Amount, &e.ExpenseDate,
			&e.Status, &e.ApproverUserID, &e.Notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, translateError(err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// CreatePayslip inserts a payroll statement. A duplicate employee+period
// surfaces as ErrConflict.
func (r *Repository) CreatePayslip(ctx context.Context, payslip *domain.Payslip) error {
	const query = `INSERT INTO payslips (id, employee_id, period, reference, gross_amount, net_amount, file_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query, payslip.ID, payslip.EmployeeID, payslip.Period, payslip.Reference,
		payslip.GrossAmount, payslip.NetAmount, payslip.FileURL, payslip.CreatedAt)
	return translateError(err)
}

// ListPayslips returns payroll statements, newest period first.
func (r *Repository) ListPayslips(ctx context.Context) ([]domain.Payslip, error) {
	const query = `SELECT id, employee_id, period, reference, gross_amount, net_amount, file_url, created_at
		FROM payslips ORDER BY period DESC, created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	payslips := make([]domain.Payslip, 0)
	for rows.Next() {
		var p domain.Payslip
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.Period, &p.Reference, &p.GrossAmount, &p.NetAmount,
			&p.FileURL, &p.CreatedAt); err != nil {
			return nil, translateError(err)
		}
		payslips = append(payslips, p)
	}
	return payslips, rows.Err()
}

// CreateTimeEntry inserts a time-clock punch.
func (r *Repository) CreateTimeEntry(ctx context.Context, entry *domain.TimeEntry) error {
	const query = `INSERT INTO time_entries (id, employee_id, entry_type, recorded_at, note)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, entry.ID, entry.EmployeeID, entry.Type, entry.RecordedAt, entry.Note)
	return translateError(err)
}

// ListTimeEntriesByEmployee returns the most recent punches for an employee.
func (r *Repository) ListTimeEntriesByEmployee(ctx context.Context, employeeID string, limit int) ([]domain.TimeEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `SELECT id, employee_id, entry_type, recorded_at, note
		FROM time_entries WHERE employee_id = $1 ORDER BY recorded_at DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	entries := make([]domain.TimeEntry, 0)
	for rows.Next() {
		var e domain.TimeEntry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Type, &e.RecordedAt, &e.Note); err != nil {
			return nil, translateError(err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
