package interfaces

import (
	"context"
	"time"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

// EnergyQueryParams represents parameters for consumption queries
type EnergyQueryParams struct {
	RoomID *int64
	From   *time.Time
	To     *time.Time
	Limit  int
}

type EnergyRepository interface {
	Insert(ctx context.Context, reading *snhmodels.EnergyReading) error
	Consumption(ctx context.Context, params EnergyQueryParams) ([]snhmodels.EnergyReading, error)
	Statistics(ctx context.Context, params EnergyQueryParams) (*snhmodels.EnergyStatistics, error)
}
