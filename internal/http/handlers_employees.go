package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/datelohan/projetorh/internal/domain"
	"github.com/datelohan/projetorh/internal/repository"
	"github.com/datelohan/projetorh/internal/service/employee"
	"github.com/datelohan/projetorh/internal/service/timeclock"
	"github.com/datelohan/projetorh/internal/ws"
)

// parseDate accepts RFC 3339 timestamps and plain dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func (r *Router) handleEmployees(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		employees, err := r.employees.List(req.Context())
		if err != nil {
			r.fail(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, employees)
	case http.MethodPost:
		var payload struct {
			FullName   string                 `json:"fullName"`
			CPF        string                 `json:"cpf"`
			Position   string                 `json:"position"`
			Department *string                `json:"department"`
			HiredAt    string                 `json:"hiredAt"`
			BaseSalary *float64               `json:"baseSalary"`
			ManagerID  *string                `json:"managerId"`
			Account    *employee.AccountInput `json:"user"`
		}
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if payload.FullName == "" || payload.CPF == "" || payload.Position == "" || payload.HiredAt == "" {
			writeError(w, http.StatusBadRequest, "fullName, cpf, position and hiredAt are required")
			return
		}
		hiredAt, err := parseDate(payload.HiredAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid hiredAt date")
			return
		}
		if payload.Account != nil && (payload.Account.Name == "" || payload.Account.Email == "" || payload.Account.Password == "") {
			writeError(w, http.StatusBadRequest, "user.name, user.email and user.password are required")
			return
		}
		created, err := r.employees.Create(req.Context(), employee.CreateInput{
			FullName:   payload.FullName,
			CPF:        payload.CPF,
			Position:   payload.Position,
			Department: payload.Department,
			HiredAt:    hiredAt,
			BaseSalary: payload.BaseSalary,
			ManagerID:  payload.ManagerID,
			Account:    payload.Account,
		})
		if err != nil {
			switch {
			case errors.Is(err, employee.ErrDuplicateRecord):
				writeError(w, http.StatusConflict, "cpf or email already registered")
			case errors.Is(err, repository.ErrNotFound):
				writeError(w, http.StatusBadRequest, "manager not found")
			default:
				r.fail(w, req, err)
			}
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleEmployeeSubroutes(w http.ResponseWriter, req *http.Request) {
	trimmed := strings.TrimPrefix(req.URL.Path, "/funcionarios/")
	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "ponto" {
		r.notFound(w)
		return
	}
	r.handleTimeclock(w, req, parts[0])
}

func (r *Router) handleTimeclock(w http.ResponseWriter, req *http.Request, employeeID string) {
	switch req.Method {
	case http.MethodGet:
		limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
		entries, err := r.timeclock.List(req.Context(), employeeID, limit)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				writeError(w, http.StatusNotFound, "employee not found")
				return
			}
			r.fail(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	case http.MethodPost:
		var payload struct {
			Type string  `json:"type"`
			Note *string `json:"note"`
		}
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if payload.Type == "" {
			writeError(w, http.StatusBadRequest, "type is required")
			return
		}
		entry, err := r.timeclock.Punch(req.Context(), employeeID, domain.TimeEntryType(payload.Type), payload.Note)
		if err != nil {
			switch {
			case errors.Is(err, timeclock.ErrInvalidEntryType):
				writeError(w, http.StatusBadRequest, "invalid entry type")
			case errors.Is(err, repository.ErrNotFound):
				writeError(w, http.StatusNotFound, "employee not found")
			default:
				r.fail(w, req, err)
			}
			return
		}
		writeJSON(w, http.StatusCreated, entry)
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleTimeclockWS(w http.ResponseWriter, req *http.Request) {
	if _, ok := userIDFromContext(req.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "not authorized")
		return
	}
	employeeID := req.URL.Query().Get("employee_id")
	if employeeID == "" {
		writeError(w, http.StatusBadRequest, "employee_id query parameter required")
		return
	}
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	client := ws.NewClient(conn, r.logger)
	r.timeclock.Hub().Register(employeeID, client)
	go func() {
		defer func() {
			r.timeclock.Hub().Unregister(employeeID, client)
			client.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}
