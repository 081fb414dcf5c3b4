package interfaces

import (
	"context"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

// RawReadingRepository is the append-only archive of inbound telemetry.
// No update or delete operations are exposed.
type RawReadingRepository interface {
	// Append stores one raw reading and returns its assigned id
	Append(ctx context.Context, reading *snhmodels.RawReading) (string, error)

	// Latest returns the most recent raw readings, newest first
	Latest(ctx context.Context, limit int) ([]snhmodels.RawReading, error)
}
