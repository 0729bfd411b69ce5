package timeclock

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/datelohan/projetorh/internal/domain"
	"github.com/datelohan/projetorh/internal/repository"
	"github.com/datelohan/projetorh/internal/ws"
)

// ErrInvalidEntryType rejects a punch type outside IN/OUT.
var ErrInvalidEntryType = errors.New("timeclock: invalid entry type")

// Service handles time-clock persistence and streaming.
type Service struct {
	entries   repository.TimeEntryRepository
	employees repository.EmployeeRepository
	hub       *ws.Hub
	logger    *slog.Logger
}

// New constructs a time-clock service.
func New(entries repository.TimeEntryRepository, employees repository.EmployeeRepository, hub *ws.Hub, logger *slog.Logger) Service {
	return Service{entries: entries, employees: employees, hub: hub, logger: logger}
}

// Punch stores a clock entry for an employee and broadcasts it to stream
// subscribers. The employee must exist.
func (s Service) Punch(ctx context.Context, employeeID string, entryType domain.TimeEntryType, note *string) (*domain.TimeEntry, error) {
	if !entryType.Valid() {
		return nil, ErrInvalidEntryType
	}
	if _, err := s.employees.GetEmployeeByID(ctx, employeeID); err != nil {
		return nil, err
	}
	entry := &domain.TimeEntry{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Type:       entryType,
		RecordedAt: time.Now().UTC(),
		Note:       note,
	}
	if err := s.entries.CreateTimeEntry(ctx, entry); err != nil {
		return nil, err
	}
	s.broadcast(entry)
	return entry, nil
}

// List returns the most recent punches for an employee.
func (s Service) List(ctx context.Context, employeeID string, limit int) ([]domain.TimeEntry, error) {
	if _, err := s.employees.GetEmployeeByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.entries.ListTimeEntriesByEmployee(ctx, employeeID, limit)
}

func (s Service) broadcast(entry *domain.TimeEntry) {
	payload, err := json.Marshal(entry)
	if err != nil {
		s.logger.Warn("failed to marshal time entry payload", "error", err)
		return
	}
	s.hub.Broadcast(entry.EmployeeID, payload)
}

// Hub returns the stream hub (useful for HTTP handlers).
func (s Service) Hub() *ws.Hub {
	return s.hub
}
