package interfaces

import (
	"context"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

type UserRepository interface {
	// Create user
	Create(ctx context.Context, user *snhmodels.User) (*snhmodels.User, error)

	// Read users
	FindByID(ctx context.Context, userID string) (*snhmodels.User, error)
	FindByEmail(ctx context.Context, email string) (*snhmodels.User, error)
	List(ctx context.Context) ([]snhmodels.User, error)

	// Update user
	Update(ctx context.Context, user *snhmodels.User) error

	// Delete user
	Delete(ctx context.Context, userID string) error
}
