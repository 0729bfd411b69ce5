package seed

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/datelohan/projetorh/internal/domain"
	"github.com/datelohan/projetorh/internal/repository/postgres"
	"github.com/datelohan/projetorh/pkg/crypto"
)

// Runner loads the demo dataset: two staff accounts, two employees with a
// manager relation, a hiring process, a vacation, expenses, time entries
// and a payslip.
type Runner struct {
	pool *pgxpool.Pool
	repo *postgres.Repository
	log  *slog.Logger
}

// New constructs a seed runner.
func New(pool *pgxpool.Pool, log *slog.Logger) Runner {
	return Runner{pool: pool, repo: postgres.New(pool), log: log}
}

// Run applies the seed. It is a no-op when the admin account already
// exists, so repeated runs do not duplicate records.
func (r Runner) Run(ctx context.Context) error {
	if _, err := r.repo.GetUserByEmail(ctx, "admin@projetorh.com"); err == nil {
		r.log.Info("seed already applied, skipping")
		return nil
	}

	admin, err := r.createUser(ctx, "HR Admin", "admin@projetorh.com", "admin123", domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	manager, err := r.createUser(ctx, "Team Manager", "gestor@projetorh.com", "gestor123", domain.RoleManager)
	if err != nil {
		return fmt.Errorf("seed manager: %w", err)
	}

	hrDept := "Human Resources"
	techDept := "Technology"
	mariaSalary := 5500.0
	joaoSalary := 7200.0

	mariaAccount, err := r.buildUser("Maria Souza", "maria@projetorh.com", "maria123", domain.RoleHR)
	if err != nil {
		return err
	}
	maria := &domain.Employee{
		ID:         uuid.NewString(),
		FullName:   "Maria Souza",
		CPF:        "12345678901",
		Position:   "HR Analyst",
		Department: &hrDept,
		HiredAt:    time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC),
		BaseSalary: &mariaSalary,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	if err := r.repo.CreateEmployee(ctx, maria, mariaAccount); err != nil {
		return fmt.Errorf("seed employee maria: %w", err)
	}

	joao := &domain.Employee{
		ID:         uuid.NewString(),
		FullName:   "João Silva",
		CPF:        "98765432100",
		Position:   "Fullstack Developer",
		Department: &techDept,
		HiredAt:    time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		BaseSalary: &joaoSalary,
		ManagerID:  &maria.ID,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	if err := r.repo.CreateEmployee(ctx, joao, nil); err != nil {
		return fmt.Errorf("seed employee joão: %w", err)
	}

	if err := r.seedHiringProcess(ctx, admin); err != nil {
		return err
	}
	if err := r.seedRecords(ctx, joao.ID, manager.ID); err != nil {
		return err
	}

	r.log.Info("seed applied")
	return nil
}

func (r Runner) buildUser(name, email, password string, role domain.Role) (*domain.User, error) {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}
	now := time.Now().UTC()
	return &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (r Runner) createUser(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	user, err := r.buildUser(name, email, password, role)
	if err != nil {
		return nil, err
	}
	if err := r.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r Runner) seedHiringProcess(ctx context.Context, owner *domain.User) error {
	now := time.Now().UTC()
	notes := "Process focused on mobile experience."
	process := &domain.HiringProcess{
		ID:             uuid.NewString(),
		Position:       "UX Designer",
		CandidateName:  "Ana Lima",
		CandidateEmail: "ana.lima@example.com",
		Status:         domain.HiringProcessInProgress,
		OwnerUserID:    owner.ID,
		Notes:          &notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	interview := now.Add(3 * 24 * time.Hour)
	done := now
	process.Stages = []domain.HiringStage{
		{ID: uuid.NewString(), ProcessID: process.ID, Order: 1, Title: "Resume screening", Status: domain.HiringStageDone, CompletedAt: &done},
		{ID: uuid.NewString(), ProcessID: process.ID, Order: 2, Title: "Technical interview", Status: domain.HiringStageInProgress, ScheduledFor: &interview},
		{ID: uuid.NewString(), ProcessID: process.ID, Order: 3, Title: "Offer", Status: domain.HiringStagePending},
	}
	if err := r.repo.CreateHiringProcess(ctx, process); err != nil {
		return fmt.Errorf("seed hiring process: %w", err)
	}
	return nil
}

func (r Runner) seedRecords(ctx context.Context, employeeID, approverID string) error {
	now := time.Now().UTC()

	vacationNotes := "Year-end break."
	vacation := &domain.Vacation{
		ID:             uuid.NewString(),
		EmployeeID:     employeeID,
		Start:          time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC),
		End:            time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC),
		Days:           15,
		Status:         domain.VacationApproved,
		ApproverUserID: &approverID,
		Notes:          &vacationNotes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := r.repo.CreateVacation(ctx, vacation); err != nil {
		return fmt.Errorf("seed vacation: %w", err)
	}

	flightNotes := "React Summit SP conference."
	expenses := []domain.Expense{
		{
			ID:             uuid.NewString(),
			EmployeeID:     employeeID,
			Category:       domain.ExpenseTransport,
			Description:    "Flight to conference",
			Amount:         1450.75,
			ExpenseDate:    time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC),
			Status:         domain.ExpenseReimbursed,
			ApproverUserID: &approverID,
			Notes:          &flightNotes,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:             uuid.NewString(),
			EmployeeID:     employeeID,
			Category:       domain.ExpenseMeals,
			Description:    "Client lunch",
			Amount:         120.50,
			ExpenseDate:    time.Date(2024, 8, 13, 0, 0, 0, 0, time.UTC),
			Status:         domain.ExpenseApproved,
			ApproverUserID: &approverID,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
	for i := range expenses {
		if err := r.repo.CreateExpense(ctx, &expenses[i]); err != nil {
			return fmt.Errorf("seed expense: %w", err)
		}
	}

	punchNote := "Automatic entry from mobile app."
	entries := []domain.TimeEntry{
		{ID: uuid.NewString(), EmployeeID: employeeID, Type: domain.TimeEntryIn, RecordedAt: now.Add(-6 * time.Hour), Note: &punchNote},
		{ID: uuid.NewString(), EmployeeID: employeeID, Type: domain.TimeEntryOut, RecordedAt: now},
	}
	for i := range entries {
		if err := r.repo.CreateTimeEntry(ctx, &entries[i]); err != nil {
			return fmt.Errorf("seed time entry: %w", err)
		}
	}

	fileURL := "https://storage.projetorh.com/payslips/2024-07-joao.pdf"
	payslip := &domain.Payslip{
		ID:          uuid.NewString(),
		EmployeeID:  employeeID,
		Period:      "2024-07",
		Reference:   time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC),
		GrossAmount: 7200,
		NetAmount:   5800.45,
		FileURL:     &fileURL,
		CreatedAt:   now,
	}
	if err := r.repo.CreatePayslip(ctx, payslip); err != nil {
		return fmt.Errorf("seed payslip: %w", err)
	}
	return nil
}
