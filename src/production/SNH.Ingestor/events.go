package snhingestor

import (
	"context"
	"sync"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

// ValueChangedHandler consumes sensor value-change events
type ValueChangedHandler func(ctx context.Context, change snhmodels.SensorValueChange)

// Bus is a synchronous in-process event bus for sensor value changes.
// Handlers run on the publisher's goroutine, in subscription order, so a
// published change is fully projected before the next sensor is touched.
type Bus struct {
	mu       sync.RWMutex
	handlers []ValueChangedHandler
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for value-change events
func (b *Bus) Subscribe(handler ValueChangedHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
}

// Publish delivers a change to every subscribed handler
func (b *Bus) Publish(ctx context.Context, change snhmodels.SensorValueChange) {
	b.mu.RLock()
	handlers := make([]ValueChangedHandler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(ctx, change)
	}
}
