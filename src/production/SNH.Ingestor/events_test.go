package snhingestor

import (
	"context"
	"testing"
	"time"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe(func(context.Context, snhmodels.SensorValueChange) {
		order = append(order, "first")
	})
	bus.Subscribe(func(context.Context, snhmodels.SensorValueChange) {
		order = append(order, "second")
	})

	bus.Publish(context.Background(), snhmodels.SensorValueChange{SensorID: 1})

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("delivery order = %v", order)
	}
}

func TestBusNoSubscribers(t *testing.T) {
	bus := NewBus()
	// Must not panic
	bus.Publish(context.Background(), snhmodels.SensorValueChange{SensorID: 1})
}

func TestHotCacheNilClient(t *testing.T) {
	cache := NewHotCache(nil, time.Hour)

	if err := cache.SetLatest(context.Background(), 1, 21.5); err != nil {
		t.Errorf("SetLatest on nil client: %v", err)
	}

	_, ok, err := cache.GetLatest(context.Background(), 1)
	if err != nil {
		t.Errorf("GetLatest on nil client: %v", err)
	}
	if ok {
		t.Error("nil client should never report a hit")
	}
}
