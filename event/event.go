// Package event carries domain events out of the aggregates. Emission is
// decoupled from persistence: aggregates accumulate events, use cases drain
// them after a successful store and hand them to a Dispatcher, and a
// dispatcher failure never rolls back the state change that produced them.
package event

import (
	"time"

	"github.com/go-kit/kit/log"
	"github.com/pborman/uuid"
)

// Valid event types.
const (
	CargoBooked             = "cargo_booked"
	CargoRouteAssigned      = "cargo_route_assigned"
	CargoDestinationChanged = "cargo_destination_changed"
	CargoWasHandled         = "cargo_was_handled"
	CargoWasMisdirected     = "cargo_was_misdirected"
	CargoHasArrived         = "cargo_has_arrived"
)

// Event is the envelope delivered to consumers. Data holds an
// operation-specific payload of primitive-safe fields.
type Event struct {
	ID            string                 `json:"event_id"`
	Type          string                 `json:"event_type"`
	Timestamp     time.Time              `json:"timestamp"`
	CorrelationID string                 `json:"correlation_id"`
	AggregateID   string                 `json:"aggregate_id"`
	AggregateType string                 `json:"aggregate_type"`
	Version       uint64                 `json:"version"`
	Data          map[string]interface{} `json:"data,omitempty"`
}

// New stamps a fresh envelope for an aggregate state transition.
func New(eventType, aggregateType, aggregateID string, version uint64, data map[string]interface{}) Event {
	return Event{
		ID:            uuid.New(),
		Type:          eventType,
		Timestamp:     time.Now().UTC(),
		CorrelationID: uuid.New(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		Version:       version,
		Data:          data,
	}
}

// Dispatcher delivers events to external consumers. Delivery order must
// match the order mutations were committed for a given aggregate; nothing
// else is guaranteed.
type Dispatcher interface {
	Dispatch(events ...Event) error
}

type loggingDispatcher struct {
	logger log.Logger
}

// NewLoggingDispatcher returns a dispatcher that logs every event. It stands
// in for a real message broker in demos and tests.
func NewLoggingDispatcher(logger log.Logger) Dispatcher {
	return &loggingDispatcher{logger: logger}
}

func (d *loggingDispatcher) Dispatch(events ...Event) error {
	for _, e := range events {
		d.logger.Log(
			"event_id", e.ID,
			"event_type", e.Type,
			"aggregate_type", e.AggregateType,
			"aggregate_id", e.AggregateID,
			"version", e.Version,
		)
	}
	return nil
}
