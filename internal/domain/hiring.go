package domain

import "time"

// HiringProcessStatus tracks the lifecycle of a hiring process.
type HiringProcessStatus string

const (
	HiringProcessOpen       HiringProcessStatus = "OPEN"
	HiringProcessInProgress HiringProcessStatus = "IN_PROGRESS"
	HiringProcessClosed     HiringProcessStatus = "CLOSED"
	HiringProcessCancelled  HiringProcessStatus = "CANCELLED"
)

// Valid reports whether the status belongs to the enumeration.
func (s HiringProcessStatus) Valid() bool {
	switch s {
	case HiringProcessOpen, HiringProcessInProgress, HiringProcessClosed, HiringProcessCancelled:
		return true
	}
	return false
}

// HiringStageStatus tracks a single stage within a process.
type HiringStageStatus string

const (
	HiringStagePending    HiringStageStatus = "PENDING"
	HiringStageInProgress HiringStageStatus = "IN_PROGRESS"
	HiringStageDone       HiringStageStatus = "DONE"
)

// Valid reports whether the status belongs to the enumeration.
func (s HiringStageStatus) Valid() bool {
	switch s {
	case HiringStagePending, HiringStageInProgress, HiringStageDone:
		return true
	}
	return false
}

// HiringProcess is a candidate pipeline for an open position.
type HiringProcess struct {
	ID             string              `json:"id"`
	Position       string              `json:"position"`
	CandidateName  string              `json:"candidateName"`
	CandidateEmail string              `json:"candidateEmail"`
	Status         HiringProcessStatus `json:"status"`
	OwnerUserID    string              `json:"ownerUserId"`
	Notes          *string             `json:"notes,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
	Stages         []HiringStage       `json:"stages"`
}

// HiringStage is one ordered step of a hiring process.
type HiringStage struct {
	ID           string            `json:"id"`
	ProcessID    string            `json:"processId"`
	Order        int               `json:"order"`
	Title        string            `json:"title"`
	Status       HiringStageStatus `json:"status"`
	ScheduledFor *time.Time        `json:"scheduledFor,omitempty"`
	CompletedAt  *time.Time        `json:"completedAt,omitempty"`
}
