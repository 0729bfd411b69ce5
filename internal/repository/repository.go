package repository

import (
	"context"

	"github.com/datelohan/projetorh/internal/domain"
)

// UserRepository persists login accounts. Email uniqueness is owned by the
// store and surfaces as ErrConflict.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id string) error
}

// EmployeeRepository persists employee records. CreateEmployee inserts the
// optional linked user account in the same transaction.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, employee *domain.Employee, account *domain.User) error
	GetEmployeeByID(ctx context.Context, id string) (*domain.Employee, error)
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
}

// HiringRepository persists hiring processes with their ordered stages.
type HiringRepository interface {
	CreateHiringProcess(ctx context.Context, process *domain.HiringProcess) error
	ListHiringProcesses(ctx context.Context) ([]domain.HiringProcess, error)
}

// VacationRepository persists vacation requests.
type VacationRepository interface {
	CreateVacation(ctx context.Context, vacation *domain.Vacation) error
	ListVacations(ctx context.Context) ([]domain.Vacation, error)
}

// ExpenseRepository persists travel expense reports.
type ExpenseRepository interface {
	CreateExpense(ctx context.Context, expense *domain.Expense) error
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
}

// PayslipRepository persists payroll statements, unique per employee+period.
type PayslipRepository interface {
	CreatePayslip(ctx context.Context, payslip *domain.Payslip) error
	ListPayslips(ctx context.Context) ([]domain.Payslip, error)
}

// TimeEntryRepository persists time-clock punches.
type TimeEntryRepository interface {
	CreateTimeEntry(ctx context.Context, entry *domain.TimeEntry) error
	ListTimeEntriesByEmployee(ctx context.Context, employeeID string, limit int) ([]domain.TimeEntry, error)
}
