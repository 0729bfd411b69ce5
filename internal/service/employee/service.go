package employee

import (
	"context"
	"errors"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/datelohan/projetorh/internal/domain"
	"github.com/datelohan/projetorh/internal/repository"
	"github.com/datelohan/projetorh/pkg/crypto"
)

// ErrDuplicateRecord signals a cpf or email that is already registered.
var ErrDuplicateRecord = errors.New("employee: cpf or email already registered")

// Service handles employee records.
type Service struct {
	employees repository.EmployeeRepository
	logger    *slog.Logger
}

// New constructs a Service.
func New(employees repository.EmployeeRepository, logger *slog.Logger) Service {
	return Service{employees: employees, logger: logger}
}

// AccountInput is the optional nested login account created with an employee.
type AccountInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Active   *bool  `json:"active"`
}

// CreateInput carries the fields accepted by employee creation.
type CreateInput struct {
	FullName   string        `json:"fullName"`
	CPF        string        `json:"cpf"`
	Position   string        `json:"position"`
	Department *string       `json:"department"`
	HiredAt    time.Time     `json:"hiredAt"`
	BaseSalary *float64      `json:"baseSalary"`
	ManagerID  *string       `json:"managerId"`
	Account    *AccountInput `json:"user"`
}

// List returns all employees with user and manager summaries.
func (s Service) List(ctx context.Context) ([]domain.Employee, error) {
	return s.employees.ListEmployees(ctx)
}

// Get returns one employee record.
func (s Service) Get(ctx context.Context, id string) (*domain.Employee, error) {
	return s.employees.GetEmployeeByID(ctx, id)
}

// Create inserts an employee and, when requested, its login account in one
// transaction. Duplicate cpf or email surfaces as ErrDuplicateRecord.
func (s Service) Create(ctx context.Context, input CreateInput) (*domain.Employee, error) {
	now := time.Now().UTC()
	employee := &domain.Employee{
		ID:         uuid.NewString(),
		FullName:   input.FullName,
		CPF:        input.CPF,
		Position:   input.Position,
		Department: input.Department,
		HiredAt:    input.HiredAt,
		BaseSalary: input.BaseSalary,
		ManagerID:  input.ManagerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var account *domain.User
	if input.Account != nil {
		hash, err := crypto.HashPassword(input.Account.Password)
		if err != nil {
			return nil, err
		}
		role := domain.Role(input.Account.Role)
		if !role.Valid() {
			role = domain.RoleEmployee
		}
		active := true
		if input.Account.Active != nil {
			active = *input.Account.Active
		}
		account = &domain.User{
			ID:           uuid.NewString(),
			Name:         input.Account.Name,
			Email:        input.Account.Email,
			PasswordHash: hash,
			Role:         role,
			Active:       active,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	if err := s.employees.CreateEmployee(ctx, employee, account); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrDuplicateRecord
		}
		return nil, err
	}
	s.logger.Info("employee created", "employee_id", employee.ID)
	return s.employees.GetEmployeeByID(ctx, employee.ID)
}
