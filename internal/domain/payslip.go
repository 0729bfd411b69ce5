package domain

import "time"

// Payslip is a monthly payroll statement for an employee. Period uses the
// YYYY-MM format and is unique per employee.
type Payslip struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	Period      string    `json:"period"`
	Reference   time.Time `json:"reference"`
	GrossAmount float64   `json:"grossAmount"`
	NetAmount   float64   `json:"netAmount"`
	FileURL     *string   `json:"fileUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
