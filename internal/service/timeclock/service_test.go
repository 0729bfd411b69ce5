package timeclock

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/datelohan/projetorh/internal/domain"
	"github.com/datelohan/projetorh/internal/repository"
	"github.com/datelohan/projetorh/internal/ws"
)

type stubTimeEntryRepository struct {
	entries   []*domain.TimeEntry
	createErr error
	lastLimit int
}

func (s *stubTimeEntryRepository) CreateTimeEntry(_ context.Context, entry *domain.TimeEntry) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubTimeEntryRepository) ListTimeEntriesByEmployee(_ context.Context, employeeID string, limit int) ([]domain.TimeEntry, error) {
	s.lastLimit = limit
	out := make([]domain.TimeEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		if entry.EmployeeID == employeeID {
			out = append(out, *entry)
		}
	}
	return out, nil
}

type stubEmployeeRepository struct {
	employees map[string]*domain.Employee
}

func (s *stubEmployeeRepository) CreateEmployee(_ context.Context, employee *domain.Employee, _ *domain.User) error {
	s.employees[employee.ID] = employee
	return nil
}

func (s *stubEmployeeRepository) GetEmployeeByID(_ context.Context, id string) (*domain.Employee, error) {
	if employee, ok := s.employees[id]; ok {
		copied := *employee
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubEmployeeRepository) ListEmployees(_ context.Context) ([]domain.Employee, error) {
	return nil, nil
}

type recordingSubscriber struct {
	received chan []byte
}

func (r *recordingSubscriber) Send(payload []byte) error {
	r.received <- payload
	return nil
}

func (r *recordingSubscriber) Close() {}

func testService(entries *stubTimeEntryRepository, employees *stubEmployeeRepository) Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(entries, employees, ws.NewHub(), log)
}

func TestPunchRejectsInvalidType(t *testing.T) {
	employees := &stubEmployeeRepository{employees: map[string]*domain.Employee{
		"emp-1": {ID: "emp-1"},
	}}
	svc := testService(&stubTimeEntryRepository{}, employees)

	if _, err := svc.Punch(context.Background(), "emp-1", "LUNCH", nil); !errors.Is(err, ErrInvalidEntryType) {
		t.Fatalf("expected ErrInvalidEntryType, got %v", err)
	}
}

func TestPunchUnknownEmployee(t *testing.T) {
	employees := &stubEmployeeRepository{employees: map[string]*domain.Employee{}}
	svc := testService(&stubTimeEntryRepository{}, employees)

	if _, err := svc.Punch(context.Background(), "ghost", domain.TimeEntryIn, nil); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPunchPersistsAndBroadcasts(t *testing.T) {
	entries := &stubTimeEntryRepository{}
	employees := &stubEmployeeRepository{employees: map[string]*domain.Employee{
		"emp-1": {ID: "emp-1", FullName: "João"},
	}}
	svc := testService(entries, employees)

	subscriber := &recordingSubscriber{received: make(chan []byte, 1)}
	svc.Hub().Register("emp-1", subscriber)

	note := "back from lunch"
	entry, err := svc.Punch(context.Background(), "emp-1", domain.TimeEntryIn, &note)
	if err != nil {
		t.Fatalf("punch: %v", err)
	}
	if entry.Type != domain.TimeEntryIn || entry.EmployeeID != "emp-1" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.RecordedAt.IsZero() {
		t.Fatalf("expected recorded timestamp")
	}
	if len(entries.entries) != 1 {
		t.Fatalf("expected one entry persisted, got %d", len(entries.entries))
	}

	select {
	case payload := <-subscriber.received:
		var streamed domain.TimeEntry
		if err := json.Unmarshal(payload, &streamed); err != nil {
			t.Fatalf("decode broadcast: %v", err)
		}
		if streamed.ID != entry.ID {
			t.Fatalf("broadcast entry %q, want %q", streamed.ID, entry.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast not delivered")
	}
}

func TestPunchSkipsBroadcastOnPersistError(t *testing.T) {
	entries := &stubTimeEntryRepository{createErr: errors.New("boom")}
	employees := &stubEmployeeRepository{employees: map[string]*domain.Employee{
		"emp-1": {ID: "emp-1"},
	}}
	svc := testService(entries, employees)

	subscriber := &recordingSubscriber{received: make(chan []byte, 1)}
	svc.Hub().Register("emp-1", subscriber)

	if _, err := svc.Punch(context.Background(), "emp-1", domain.TimeEntryOut, nil); err == nil {
		t.Fatal("expected persistence error")
	}
	select {
	case <-subscriber.received:
		t.Fatal("unexpected broadcast after failed persist")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestListForwardsLimit(t *testing.T) {
	entries := &stubTimeEntryRepository{}
	employees := &stubEmployeeRepository{employees: map[string]*domain.Employee{
		"emp-1": {ID: "emp-1"},
	}}
	svc := testService(entries, employees)

	if _, err := svc.List(context.Background(), "emp-1", 7); err != nil {
		t.Fatalf("list: %v", err)
	}
	if entries.lastLimit != 7 {
		t.Fatalf("expected limit forwarded, got %d", entries.lastLimit)
	}
}

func TestListUnknownEmployee(t *testing.T) {
	employees := &stubEmployeeRepository{employees: map[string]*domain.Employee{}}
	svc := testService(&stubTimeEntryRepository{}, employees)

	if _, err := svc.List(context.Background(), "ghost", 10); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
