package domain

import "time"

// Employee is an HR record for a hired person. An employee may or may not
// have a login account attached.
type Employee struct {
	ID         string          `json:"id"`
	FullName   string          `json:"fullName"`
	CPF        string          `json:"cpf"`
	Position   string          `json:"position"`
	Department *string         `json:"department,omitempty"`
	HiredAt    time.Time       `json:"hiredAt"`
	BaseSalary *float64        `json:"baseSalary,omitempty"`
	ManagerID  *string         `json:"managerId,omitempty"`
	UserID     *string         `json:"userId,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	User       *UserSummary    `json:"user,omitempty"`
	Manager    *ManagerSummary `json:"manager,omitempty"`
}

// UserSummary is the account projection embedded in employee reads.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// ManagerSummary identifies the employee's manager.
type ManagerSummary struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
}
