package domain

import "time"

// ExpenseCategory classifies a travel expense.
type ExpenseCategory string

const (
	ExpenseTransport ExpenseCategory = "TRANSPORT"
	ExpenseLodging   ExpenseCategory = "LODGING"
	ExpenseMeals     ExpenseCategory = "MEALS"
	ExpenseOther     ExpenseCategory = "OTHER"
)

// Valid reports whether the category belongs to the enumeration.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseTransport, ExpenseLodging, ExpenseMeals, ExpenseOther:
		return true
	}
	return false
}

// ExpenseStatus tracks the reimbursement lifecycle.
type ExpenseStatus string

const (
	ExpenseSubmitted  ExpenseStatus = "SUBMITTED"
	ExpenseApproved   ExpenseStatus = "APPROVED"
	ExpenseRejected   ExpenseStatus = "REJECTED"
	ExpenseReimbursed ExpenseStatus = "REIMBURSED"
)

// Valid reports whether the status belongs to the enumeration.
func (s ExpenseStatus) Valid() bool {
	switch s {
	case ExpenseSubmitted, ExpenseApproved, ExpenseRejected, ExpenseReimbursed:
		return true
	}
	return false
}

// Expense is a travel expense report entry for an employee.
type Expense struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employeeId"`
	Category       ExpenseCategory `json:"category"`
	Description    string          `json:"description"`
	Amount         float64         `json:"amount"`
	ExpenseDate    time.Time       `json:"expenseDate"`
	Status         ExpenseStatus   `json:"status"`
	ApproverUserID *string         `json:"approverUserId,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
