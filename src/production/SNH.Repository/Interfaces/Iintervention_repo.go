package interfaces

import (
	"context"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

type InterventionRepository interface {
	Create(ctx context.Context, intervention *snhmodels.Intervention) (*snhmodels.Intervention, error)
	GetByID(ctx context.Context, interventionID int64) (*snhmodels.Intervention, error)
	List(ctx context.Context) ([]snhmodels.Intervention, error)
	ListByTechnician(ctx context.Context, technicianID string) ([]snhmodels.Intervention, error)
	Update(ctx context.Context, intervention *snhmodels.Intervention) error
	Complete(ctx context.Context, interventionID int64, notes string) error
	Delete(ctx context.Context, interventionID int64) error
}
