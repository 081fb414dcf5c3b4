package interfaces

import (
	"context"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

type FloorRepository interface {
	Create(ctx context.Context, floor *snhmodels.Floor) (*snhmodels.Floor, error)
	GetByID(ctx context.Context, floorID int64) (*snhmodels.Floor, error)
	List(ctx context.Context) ([]snhmodels.Floor, error)
	Update(ctx context.Context, floor *snhmodels.Floor) error
	Delete(ctx context.Context, floorID int64) error
}
