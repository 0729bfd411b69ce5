package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/datelohan/projetorh/internal/repository"
	"github.com/datelohan/projetorh/internal/service/hr"
)

func (r *Router) writeHRError(w http.ResponseWriter, req *http.Request, err error) {
	switch {
	case errors.Is(err, hr.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid status")
	case errors.Is(err, hr.ErrInvalidCategory):
		writeError(w, http.StatusBadRequest, "invalid expense category")
	case errors.Is(err, hr.ErrInvalidPeriod):
		writeError(w, http.StatusBadRequest, "invalid period")
	case errors.Is(err, hr.ErrDuplicatePayslip):
		writeError(w, http.StatusConflict, "payslip already exists for period")
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "employee not found")
	default:
		r.fail(w, req, err)
	}
}

func (r *Router) handleVacations(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		vacations, err := r.hr.ListVacations(req.Context())
		if err != nil {
			r.fail(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, vacations)
	case http.MethodPost:
		var payload struct {
			EmployeeID     string  `json:"employeeId"`
			Start          string  `json:"start"`
			End            string  `json:"end"`
			Days           int     `json:"days"`
			Status         string  `json:"status"`
			ApproverUserID *string `json:"approverUserId"`
			Notes          *string `json:"notes"`
		}
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if payload.EmployeeID == "" || payload.Start == "" || payload.End == "" {
			writeError(w, http.StatusBadRequest, "employeeId, start and end are required")
			return
		}
		start, err := parseDate(payload.Start)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start date")
			return
		}
		end, err := parseDate(payload.End)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end date")
			return
		}
		vacation, err := r.hr.CreateVacation(req.Context(), hr.VacationInput{
			EmployeeID:     payload.EmployeeID,
			Start:          start,
			End:            end,
			Days:           payload.Days,
			Status:         payload.Status,
			ApproverUserID: payload.ApproverUserID,
			Notes:          payload.Notes,
		})
		if err != nil {
			r.writeHRError(w, req, err)
			return
		}
		writeJSON(w, http.StatusCreated, vacation)
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleExpenses(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		expenses, err := r.hr.ListExpenses(req.Context())
		if err != nil {
			r.fail(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, expenses)
	case http.MethodPost:
		var payload struct {
			EmployeeID     string  `json:"employeeId"`
			Category       string  `json:"category"`
			Description    string  `json:"description"`
			Amount         float64 `json:"amount"`
			ExpenseDate    string  `json:"expenseDate"`
			Status         string  `json:"status"`
			ApproverUserID *string `json:"approverUserId"`
			Notes          *string `json:"notes"`
		}
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if payload.EmployeeID == "" || payload.Category == "" || payload.Description == "" || payload.Amount <= 0 || payload.ExpenseDate == "" {
			writeError(w, http.StatusBadRequest, "employeeId, category, description, amount and expenseDate are required")
			return
		}
		expenseDate, err := parseDate(payload.ExpenseDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid expenseDate date")
			return
		}
		expense, err := r.hr.CreateExpense(req.Context(), hr.ExpenseInput{
			EmployeeID:     payload.EmployeeID,
			Category:       payload.Category,
			Description:    payload.Description,
			Amount:         payload.Amount,
			ExpenseDate:    expenseDate,
			Status:         payload.Status,
			ApproverUserID: payload.ApproverUserID,
			Notes:          payload.Notes,
		})
		if err != nil {
			r.writeHRError(w, req, err)
			return
		}
		writeJSON(w, http.StatusCreated, expense)
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handlePayslips(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		payslips, err := r.hr.ListPayslips(req.Context())
		if err != nil {
			r.fail(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, payslips)
	case http.MethodPost:
		var payload struct {
			EmployeeID  string  `json:"employeeId"`
			Period      string  `json:"period"`
			Reference   string  `json:"reference"`
			GrossAmount float64 `json:"grossAmount"`
			NetAmount   float64 `json:"netAmount"`
			FileURL     *string `json:"fileUrl"`
		}
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if payload.EmployeeID == "" || payload.Period == "" || payload.Reference == "" || payload.GrossAmount <= 0 || payload.NetAmount <= 0 {
			writeError(w, http.StatusBadRequest, "employeeId, period, reference, grossAmount and netAmount are required")
			return
		}
		reference, err := parseDate(payload.Reference)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid reference date")
			return
		}
		payslip, err := r.hr.CreatePayslip(req.Context(), hr.PayslipInput{
			EmployeeID:  payload.EmployeeID,
			Period:      payload.Period,
			Reference:   reference,
			GrossAmount: payload.GrossAmount,
			NetAmount:   payload.NetAmount,
			FileURL:     payload.FileURL,
		})
		if err != nil {
			r.writeHRError(w, req, err)
			return
		}
		writeJSON(w, http.StatusCreated, payslip)
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleHiringProcesses(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		processes, err := r.hr.ListHiringProcesses(req.Context())
		if err != nil {
			r.fail(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, processes)
	case http.MethodPost:
		userID, ok := userIDFromContext(req.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "not authorized")
			return
		}
		var payload hr.HiringInput
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if payload.Position == "" || payload.CandidateName == "" || payload.CandidateEmail == "" {
			writeError(w, http.StatusBadRequest, "position, candidateName and candidateEmail are required")
			return
		}
		process, err := r.hr.CreateHiringProcess(req.Context(), userID, payload)
		if err != nil {
			r.writeHRError(w, req, err)
			return
		}
		writeJSON(w, http.StatusCreated, process)
	default:
		r.methodNotAllowed(w)
	}
}
