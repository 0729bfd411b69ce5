package hr

import (
	"context"
	"errors"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/datelohan/projetorh/internal/domain"
	"github.com/datelohan/projetorh/internal/repository"
)

var (
	// ErrInvalidStatus rejects a status outside its enumeration.
	ErrInvalidStatus = errors.New("hr: invalid status")
	// ErrInvalidCategory rejects an expense category outside the enumeration.
	ErrInvalidCategory = errors.New("hr: invalid expense category")
	// ErrInvalidPeriod rejects a vacation range or payslip period that does not parse.
	ErrInvalidPeriod = errors.New("hr: invalid period")
	// ErrDuplicatePayslip signals a second payslip for the same employee and period.
	ErrDuplicatePayslip = errors.New("hr: payslip already exists for period")
)

// Service handles the HR record collections: vacations, expenses, payslips
// and hiring processes.
type Service struct {
	vacations repository.VacationRepository
	expenses  repository.ExpenseRepository
	payslips  repository.PayslipRepository
	hiring    repository.HiringRepository
	employees repository.EmployeeRepository
	logger    *slog.Logger
}

// New constructs a Service.
func New(vacations repository.VacationRepository, expenses repository.ExpenseRepository, payslips repository.PayslipRepository, hiring repository.HiringRepository, employees repository.EmployeeRepository, logger *slog.Logger) Service {
	return Service{
		vacations: vacations,
		expenses:  expenses,
		payslips:  payslips,
		hiring:    hiring,
		employees: employees,
		logger:    logger,
	}
}

// VacationInput carries the fields accepted by vacation creation.
type VacationInput struct {
	EmployeeID     string    `json:"employeeId"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Days           int       `json:"days"`
	Status         string    `json:"status"`
	ApproverUserID *string   `json:"approverUserId"`
	Notes          *string   `json:"notes"`
}

// ListVacations returns all vacation requests.
func (s Service) ListVacations(ctx context.Context) ([]domain.Vacation, error) {
	return s.vacations.ListVacations(ctx)
}

// CreateVacation records a vacation request for an existing employee. Days
// defaults to the calendar span when not provided.
func (s Service) CreateVacation(ctx context.Context, input VacationInput) (*domain.Vacation, error) {
	if !input.End.After(input.Start) {
		return nil, ErrInvalidPeriod
	}
	if _, err := s.employees.GetEmployeeByID(ctx, input.EmployeeID); err != nil {
		return nil, err
	}
	status := domain.VacationRequested
	if input.Status != "" {
		status = domain.VacationStatus(input.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
	}
	days := input.Days
	if days <= 0 {
		days = int(input.End.Sub(input.Start).Hours()/24) + 1
	}

	now := time.Now().UTC()
	vacation := &domain.Vacation{
		ID:             uuid.NewString(),
		EmployeeID:     input.EmployeeID,
		Start:          input.Start,
		End:            input.End,
		Days:           days,
		Status:         status,
		ApproverUserID: input.ApproverUserID,
		Notes:          input.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.vacations.CreateVacation(ctx, vacation); err != nil {
		return nil, err
	}
	s.logger.Info("vacation recorded", "vacation_id", vacation.ID, "employee_id", vacation.EmployeeID)
	return vacation, nil
}

// ExpenseInput carries the fields accepted by expense creation.
type ExpenseInput struct {
	EmployeeID     string    `json:"employeeId"`
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	Amount         float64   `json:"amount"`
	ExpenseDate    time.Time `json:"expenseDate"`
	Status         string    `json:"status"`
	ApproverUserID *string   `json:"approverUserId"`
	Notes          *string   `json:"notes"`
}

// ListExpenses returns all expense entries.
func (s Service) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	return s.expenses.ListExpenses(ctx)
}

// CreateExpense records a travel expense for an existing employee.
func (s Service) CreateExpense(ctx context.Context, input ExpenseInput) (*domain.Expense, error) {
	category := domain.ExpenseCategory(input.Category)
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	status := domain.ExpenseSubmitted
	if input.Status != "" {
		status = domain.ExpenseStatus(input.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
	}
	if _, err := s.employees.GetEmployeeByID(ctx, input.EmployeeID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expense := &domain.Expense{
		ID:             uuid.NewString(),
		EmployeeID:     input.EmployeeID,
		Category:       category,
		Description:    input.Description,
		Amount:         input.Amount,
		ExpenseDate:    input.ExpenseDate,
		Status:         status,
		ApproverUserID: input.ApproverUserID,
		Notes:          input.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.expenses.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}
	s.logger.Info("expense recorded", "expense_id", expense.ID, "employee_id", expense.EmployeeID)
	return expense, nil
}

// PayslipInput carries the fields accepted by payslip creation.
type PayslipInput struct {
	EmployeeID  string    `json:"employeeId"`
	Period      string    `json:"period"`
	Reference   time.Time `json:"reference"`
	GrossAmount float64   `json:"grossAmount"`
	NetAmount   float64   `json:"netAmount"`
	FileURL     *string   `json:"fileUrl"`
}

// ListPayslips returns all payroll statements.
func (s Service) ListPayslips(ctx context.Context) ([]domain.Payslip, error) {
	return s.payslips.ListPayslips(ctx)
}

// CreatePayslip records a payroll statement. Period must be YYYY-MM and
// unique per employee.
func (s Service) CreatePayslip(ctx context.Context, input PayslipInput) (*domain.Payslip, error) {
	if _, err := time.Parse("2006-01", input.Period); err != nil {
		return nil, ErrInvalidPeriod
	}
	if _, err := s.employees.GetEmployeeByID(ctx, input.EmployeeID); err != nil {
		return nil, err
	}

	payslip := &domain.Payslip{
		ID:          uuid.NewString(),
		EmployeeID:  input.EmployeeID,
		Period:      input.Period,
		Reference:   input.Reference,
		GrossAmount: input.GrossAmount,
		NetAmount:   input.NetAmount,
		FileURL:     input.FileURL,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.payslips.CreatePayslip(ctx, payslip); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrDuplicatePayslip
		}
		return nil, err
	}
	s.logger.Info("payslip recorded", "payslip_id", payslip.ID, "period", payslip.Period)
	return payslip, nil
}

// StageInput is one ordered step of a new hiring process.
type StageInput struct {
	Title        string     `json:"title"`
	ScheduledFor *time.Time `json:"scheduledFor"`
}

// HiringInput carries the fields accepted by hiring process creation.
type HiringInput struct {
	Position       string       `json:"position"`
	CandidateName  string       `json:"candidateName"`
	CandidateEmail string       `json:"candidateEmail"`
	Status         string       `json:"status"`
	Notes          *string      `json:"notes"`
	Stages         []StageInput `json:"stages"`
}

// ListHiringProcesses returns all processes with their stages.
func (s Service) ListHiringProcesses(ctx context.Context) ([]domain.HiringProcess, error) {
	return s.hiring.ListHiringProcesses(ctx)
}

// CreateHiringProcess opens a candidate pipeline owned by the acting user.
func (s Service) CreateHiringProcess(ctx context.Context, ownerUserID string, input HiringInput) (*domain.HiringProcess, error) {
	status := domain.HiringProcessOpen
	if input.Status != "" {
		status = domain.HiringProcessStatus(input.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	now := time.Now().UTC()
	process := &domain.HiringProcess{
		ID:             uuid.NewString(),
		Position:       input.Position,
		CandidateName:  input.CandidateName,
		CandidateEmail: input.CandidateEmail,
		Status:         status,
		OwnerUserID:    ownerUserID,
		Notes:          input.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	process.Stages = make([]domain.HiringStage, 0, len(input.Stages))
	for i, stage := range input.Stages {
		process.Stages = append(process.Stages, domain.HiringStage{
			ID:           uuid.NewString(),
			ProcessID:    process.ID,
			Order:        i + 1,
			Title:        stage.Title,
			Status:       domain.HiringStagePending,
			ScheduledFor: stage.ScheduledFor,
		})
	}

	if err := s.hiring.CreateHiringProcess(ctx, process); err != nil {
		return nil, err
	}
	s.logger.Info("hiring process opened", "process_id", process.ID, "position", process.Position)
	return process, nil
}
