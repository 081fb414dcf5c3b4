package interfaces

import (
	"context"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *snhmodels.Alert) (*snhmodels.Alert, error)
	GetByID(ctx context.Context, alertID int64) (*snhmodels.Alert, error)

	// List returns alerts, optionally filtered by status ("" for all)
	List(ctx context.Context, status snhmodels.AlertStatus) ([]snhmodels.Alert, error)

	Acknowledge(ctx context.Context, alertID int64, userID string) error
	Resolve(ctx context.Context, alertID int64, userID string) error
}
