package domain

import "time"

// TimeEntryType distinguishes clock-in from clock-out punches.
type TimeEntryType string

const (
	TimeEntryIn  TimeEntryType = "IN"
	TimeEntryOut TimeEntryType = "OUT"
)

// Valid reports whether the entry type belongs to the enumeration.
func (t TimeEntryType) Valid() bool {
	return t == TimeEntryIn || t == TimeEntryOut
}

// TimeEntry is a single time-clock punch for an employee.
type TimeEntry struct {
	ID         string        `json:"id"`
	EmployeeID string        `json:"employeeId"`
	Type       TimeEntryType `json:"type"`
	RecordedAt time.Time     `json:"recordedAt"`
	Note       *string       `json:"note,omitempty"`
}
