package snhmodels

import "time"

// InterventionStatus is the lifecycle state of a maintenance intervention
type InterventionStatus string

const (
	InterventionStatusPending    InterventionStatus = "pending"
	InterventionStatusInProgress InterventionStatus = "in_progress"
	InterventionStatusCompleted  InterventionStatus = "completed"
	InterventionStatusCancelled  InterventionStatus = "cancelled"
)

// Valid reports whether s is one of the known intervention statuses
func (s InterventionStatus) Valid() bool {
	switch s {
	case InterventionStatusPending, InterventionStatusInProgress, InterventionStatusCompleted, InterventionStatusCancelled:
		return true
	}
	return false
}

// Intervention is a scheduled maintenance task on a room
type Intervention struct {
	ID           int64              `json:"id" db:"id"`
	RoomID       *int64             `json:"room_id,omitempty" db:"room_id"`
	TechnicianID *string            `json:"technician_id,omitempty" db:"technician_id"`
	Type         string             `json:"type" db:"type"`
	Description  string             `json:"description" db:"description"`
	Status       InterventionStatus `json:"status" db:"status"`
	ScheduledAt  *time.Time         `json:"scheduled_at,omitempty" db:"scheduled_at"`
	CompletedAt  *time.Time         `json:"completed_at,omitempty" db:"completed_at"`
	Notes        string             `json:"notes" db:"notes"`
	CreatedAt    time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" db:"updated_at"`
}
