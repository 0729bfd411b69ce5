package domain

import "time"

// VacationStatus tracks approval state of a vacation request.
type VacationStatus string

const (
	VacationRequested VacationStatus = "REQUESTED"
	VacationApproved  VacationStatus = "APPROVED"
	VacationRejected  VacationStatus = "REJECTED"
)

// Valid reports whether the status belongs to the enumeration.
func (s VacationStatus) Valid() bool {
	switch s {
	case VacationRequested, VacationApproved, VacationRejected:
		return true
	}
	return false
}

// Vacation is a vacation request or grant for an employee.
type Vacation struct {
	ID             string         `json:"id"`
	EmployeeID     string         `json:"employeeId"`
	Start          time.Time      `json:"start"`
	End            time.Time      `json:"end"`
	Days           int            `json:"days"`
	Status         VacationStatus `json:"status"`
	ApproverUserID *string        `json:"approverUserId,omitempty"`
	Notes          *string        `json:"notes,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}
