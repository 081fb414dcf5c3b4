package snhmodels

import "time"

// AlertSeverity classifies how urgent an alert is
type AlertSeverity string

const (
	AlertSeverityInfo     AlertSeverity = "info"
	AlertSeverityWarning  AlertSeverity = "warning"
	AlertSeverityCritical AlertSeverity = "critical"
)

// AlertStatus is the lifecycle state of an alert
type AlertStatus string

const (
	AlertStatusActive       AlertStatus = "active"
	AlertStatusAcknowledged AlertStatus = "acknowledged"
	AlertStatusResolved     AlertStatus = "resolved"
)

// Alert is an operational notification tied to a room or sensor
type Alert struct {
	ID             int64         `json:"id" db:"id"`
	Type           string        `json:"type" db:"type"`
	Severity       AlertSeverity `json:"severity" db:"severity"`
	Status         AlertStatus   `json:"status" db:"status"`
	Message        string        `json:"message" db:"message"`
	RoomID         *int64        `json:"room_id,omitempty" db:"room_id"`
	SensorID       *int64        `json:"sensor_id,omitempty" db:"sensor_id"`
	AcknowledgedBy *string       `json:"acknowledged_by,omitempty" db:"acknowledged_by"`
	AcknowledgedAt *time.Time    `json:"acknowledged_at,omitempty" db:"acknowledged_at"`
	ResolvedBy     *string       `json:"resolved_by,omitempty" db:"resolved_by"`
	ResolvedAt     *time.Time    `json:"resolved_at,omitempty" db:"resolved_at"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
}
